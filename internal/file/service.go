package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
)

const (
	thumbWidth  = 200
	thumbHeight = 200
)

// UploadInput describes one upload and the limits it must satisfy.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	clock   clock.Clock
	log     zerolog.Logger
}

func NewService(repo Repository, store storage.Storage, clk clock.Clock, log zerolog.Logger) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		clock:   clk,
		log:     log.With().Str("component", "file").Logger(),
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	header := in.FileHeader
	if in.MaxSizeBytes > 0 && header.Size > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Read one byte past the limit so a lying Size header is still caught.
	reader := io.Reader(src)
	if in.MaxSizeBytes > 0 {
		reader = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if in.MaxSizeBytes > 0 && int64(len(fileBytes)) > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	// Trust the bytes, not the client's Content-Type header.
	detected := mimetype.Detect(fileBytes)
	contentType := detected.String()
	if len(in.AllowedTypes) > 0 && !slices.ContainsFunc(in.AllowedTypes, detected.Is) {
		return nil, ErrTypeNotAllowed
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = detected.Extension()
	}

	fileID := uuid.New().String()

	// Sharding path: upload/ab/UUID.ext
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumbnailPath = s.saveThumbnail(ctx, fileBytes, shard, fileID)
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filepath.Base(header.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(fileBytes)),
		CreatedAt:     s.clock.Now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeBlobs(ctx, f)
		return nil, err
	}

	return f, nil
}

// saveThumbnail is best effort: the upload succeeds without one.
func (s *service) saveThumbnail(ctx context.Context, content []byte, shard, fileID string) *string {
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), thumbWidth, thumbHeight)
	if err != nil {
		s.log.Warn().Err(err).Str("file_id", fileID).Msg("thumbnail generation failed")
		return nil
	}

	tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
	if err := s.storage.Save(ctx, tPath, thumbReader); err != nil {
		s.log.Warn().Err(err).Str("file_id", fileID).Msg("thumbnail save failed")
		return nil
	}
	return &tPath
}

func (s *service) removeBlobs(ctx context.Context, f *File) {
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		s.log.Error().Err(err).Str("path", f.StoragePath).Msg("failed to remove stored file")
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			s.log.Error().Err(err).Str("path", *f.ThumbnailPath).Msg("failed to remove stored thumbnail")
		}
	}
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeBlobs(ctx, f)
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}

	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if f.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, f, nil
}
