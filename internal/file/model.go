package file

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound(apperror.EntityFile)
	ErrTooLarge        = apperror.InvalidInput("file is too large")
	ErrTypeNotAllowed  = apperror.InvalidInput("file type is not allowed")
	ErrNoThumbnail     = apperror.New(apperror.KindNotFound, "thumbnail not available for this file")
	ErrMissingFormFile = apperror.InvalidInput("file is required")
)

// File is an uploaded blob. Paths are relative to the storage root.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
