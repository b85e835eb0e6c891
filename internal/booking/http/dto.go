package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type CreateBookingRequest struct {
	ItemID string    `json:"item_id" binding:"required,uuid"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// DecideRequest carries the owner's verdict as ?approved=true|false.
type DecideRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

// ListBookingsRequest is the query of both listing endpoints. State is
// parsed by booking.ParseBucket rather than a oneof rule so that it is
// case-insensitive and reports the dedicated error kind.
type ListBookingsRequest struct {
	request.OffsetParams
	State string `form:"state"`
}

func (r *ListBookingsRequest) Bucket() (booking.Bucket, error) {
	return booking.ParseBucket(r.State)
}

type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	Item      ItemTag   `json:"item"`
	Booker    UserTag   `json:"booker"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		Item:      ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    UserTag{ID: b.BookerID, Name: b.BookerName},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func newBookingResponses(list []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(list))
	for i, b := range list {
		out[i] = NewBookingResponse(b)
	}
	return out
}
