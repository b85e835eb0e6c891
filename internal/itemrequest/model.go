package itemrequest

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound(apperror.EntityItemRequest)
	ErrDescriptionRequired = apperror.InvalidInput("description is required")
)

// ItemRequest is a user's public ask for an item nobody lists yet.
type ItemRequest struct {
	ID          string
	Description string
	RequesterID string
	CreatedAt   time.Time
	Items       []ItemBrief
}

// ItemBrief is an item created in answer to a request.
type ItemBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     string `json:"owner_id"`
}
