package item

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound(apperror.EntityItem)
	ErrNameRequired        = apperror.InvalidInput("name is required")
	ErrDescriptionRequired = apperror.InvalidInput("description is required")
	ErrTextRequired        = apperror.InvalidInput("comment text is required")
	ErrDidNotBook          = apperror.New(apperror.KindActionNotPermitted, "user did not book item")
)

// StatusApproved mirrors the booking status stored in bookings.status.
const StatusApproved = "APPROVED"

// Item is a thing a user lists for others to borrow.
type Item struct {
	ID          string
	Name        string
	Description string
	// Available is toggled by the owner. It does not track current bookings.
	Available bool
	OwnerID   string
	RequestID *string
	PhotoID   *string
	CreatedAt time.Time
}

// Comment is feedback left by a past renter.
type Comment struct {
	ID         string
	Text       string
	ItemID     string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// BookingSummary is the slice of a booking the aggregator needs.
type BookingSummary struct {
	ID       string
	BookerID string
	Start    time.Time
	End      time.Time
	Status   string
}

// BookingRef is the projection of a booking shown to the item owner.
type BookingRef struct {
	ID       string
	BookerID string
}

// View is either a PublicView or an OwnerView.
type View interface {
	Base() *PublicView
}

// PublicView is what any user sees of an item.
type PublicView struct {
	Item     *Item
	Comments []*Comment
}

func (v *PublicView) Base() *PublicView { return v }

// OwnerView adds the booking window, visible to the owner only.
type OwnerView struct {
	PublicView
	LastBooking *BookingRef
	NextBooking *BookingRef
}

func (v *OwnerView) Base() *PublicView { return &v.PublicView }

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}
