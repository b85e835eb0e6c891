package booking

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	// ErrNotFound also covers bookings the caller may not see.
	ErrNotFound          = apperror.NotFound(apperror.EntityBooking)
	ErrInvalidDateRange  = apperror.New(apperror.KindInvalidDateRange, "booking end must be after start")
	ErrItemUnavailable   = apperror.New(apperror.KindActionNotAvailable, "item is not available for booking")
	ErrAlreadyApproved   = apperror.New(apperror.KindActionNotAvailable, "booking already confirmed")
	ErrUnsupportedBucket = apperror.New(apperror.KindUnsupportedBucket, "Unknown state: UNSUPPORTED_STATUS")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a renter's request to hold an item for [Start, End).
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	OwnerID    string
	BookerID   string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// Scope selects whose bookings a listing returns.
type Scope int

const (
	ScopeBooker Scope = iota // bookings the user made
	ScopeOwner               // bookings of items the user owns
)

// Query is one page of a user's bookings in a bucket, evaluated at Now.
type Query struct {
	Scope  Scope
	UserID string
	Bucket Bucket
	Now    time.Time
	Offset int
	Size   int
}
