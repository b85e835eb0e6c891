package request

import (
	"fmt"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// OffsetParams carries record-offset pagination: from is the index of the
// first record to return, not a page number.
type OffsetParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=20" binding:"min=1"`
}

// Validate checks Size against the configured upper bound.
func (p *OffsetParams) Validate(maxSize int) error {
	if maxSize > 0 && p.Size > maxSize {
		return apperror.InvalidInput(fmt.Sprintf("size must not exceed %d", maxSize))
	}
	return nil
}
