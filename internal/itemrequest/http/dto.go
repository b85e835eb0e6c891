package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type ListOthersRequest struct {
	request.OffsetParams
}

type ItemAnswer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     string `json:"owner_id"`
}

type RequestResponse struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	RequesterID string       `json:"requester_id"`
	CreatedAt   time.Time    `json:"created"`
	Items       []ItemAnswer `json:"items"`
}

func NewRequestResponse(r *itemrequest.ItemRequest) RequestResponse {
	items := make([]ItemAnswer, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ItemAnswer(it))
	}
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
		Items:       items,
	}
}
