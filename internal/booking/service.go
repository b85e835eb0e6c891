package booking

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemFinder is a plain item lookup without viewer checks.
type ItemFinder interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)
	// Decide applies the owner's approve or reject action.
	Decide(ctx context.Context, ownerID, bookingID string, action Action) (*Booking, error)
	// GetForParticipant returns the booking to its booker or the item owner.
	GetForParticipant(ctx context.Context, viewerID, bookingID string) (*Booking, error)
	ListForRenter(ctx context.Context, userID string, bucket Bucket, offset, size int) ([]*Booking, int, error)
	ListForOwner(ctx context.Context, userID string, bucket Bucket, offset, size int) ([]*Booking, int, error)
}

type service struct {
	repo  Repository
	users UserFinder
	items ItemFinder
	clock clock.Clock
	log   zerolog.Logger
}

func NewService(repo Repository, users UserFinder, items ItemFinder, clk clock.Clock, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
		log:   log.With().Str("component", "booking").Logger(),
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	if !req.End.After(req.Start) {
		return nil, ErrInvalidDateRange
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}
	// Owners cannot book their own items; the item is hidden from them.
	if it.OwnerID == bookerID {
		return nil, item.ErrNotFound
	}

	now := s.clock.Now()
	b := &Booking{
		ItemID:     it.ID,
		ItemName:   it.Name,
		OwnerID:    it.OwnerID,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		Start:      req.Start,
		End:        req.End,
		Status:     StatusWaiting,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingTransition("NEW", string(StatusWaiting))
	s.log.Info().
		Str("booking_id", b.ID).
		Str("item_id", b.ItemID).
		Str("booker_id", bookerID).
		Msg("booking created")
	return b, nil
}

func (s *service) Decide(ctx context.Context, ownerID, bookingID string, action Action) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	from := b.Status
	to, err := Transition(from, action)
	if err != nil {
		return nil, err
	}

	b.Status = to
	b.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(string(from), string(to))
	s.log.Info().
		Str("booking_id", b.ID).
		Str("action", action.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("booking decided")
	return b, nil
}

func (s *service) GetForParticipant(ctx context.Context, viewerID, bookingID string) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != viewerID && b.OwnerID != viewerID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListForRenter(ctx context.Context, userID string, bucket Bucket, offset, size int) ([]*Booking, int, error) {
	return s.list(ctx, ScopeBooker, userID, bucket, offset, size)
}

func (s *service) ListForOwner(ctx context.Context, userID string, bucket Bucket, offset, size int) ([]*Booking, int, error) {
	return s.list(ctx, ScopeOwner, userID, bucket, offset, size)
}

func (s *service) list(ctx context.Context, scope Scope, userID string, bucket Bucket, offset, size int) ([]*Booking, int, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, Query{
		Scope:  scope,
		UserID: userID,
		Bucket: bucket,
		Now:    s.clock.Now(),
		Offset: offset,
		Size:   size,
	})
}
