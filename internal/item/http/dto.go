package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/file"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type SearchRequest struct {
	request.OffsetParams
	Text string `form:"text"`
}

type ListRequest struct {
	request.OffsetParams
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

// ItemResponse is the public projection of an item. It never carries
// booking information.
type ItemResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	OwnerID     string            `json:"owner_id"`
	RequestID   *string           `json:"request_id"`
	PhotoURL    *string           `json:"photo_url"`
	Comments    []CommentResponse `json:"comments"`
}

type BookingRefResponse struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
}

// OwnerItemResponse adds the booking window shown to the owner.
type OwnerItemResponse struct {
	ItemResponse
	LastBooking *BookingRefResponse `json:"last_booking"`
	NextBooking *BookingRefResponse `json:"next_booking"`
}

func NewItemResponse(it *item.Item, comments []*item.Comment) ItemResponse {
	var photoURL *string
	if it.PhotoID != nil {
		u := file.FileURL(*it.PhotoID)
		photoURL = &u
	}

	cs := make([]CommentResponse, len(comments))
	for i, c := range comments {
		cs[i] = NewCommentResponse(c)
	}

	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
		PhotoURL:    photoURL,
		Comments:    cs,
	}
}

func NewOwnerItemResponse(v *item.OwnerView) OwnerItemResponse {
	return OwnerItemResponse{
		ItemResponse: NewItemResponse(v.Item, v.Comments),
		LastBooking:  newBookingRef(v.LastBooking),
		NextBooking:  newBookingRef(v.NextBooking),
	}
}

func newBookingRef(ref *item.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{ID: ref.ID, BookerID: ref.BookerID}
}

// NewViewResponse renders whichever projection the service selected.
func NewViewResponse(v item.View) any {
	switch v := v.(type) {
	case *item.OwnerView:
		return NewOwnerItemResponse(v)
	case *item.PublicView:
		return NewItemResponse(v.Item, v.Comments)
	default:
		base := v.Base()
		return NewItemResponse(base.Item, base.Comments)
	}
}
