package item

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserFinder is the part of the user service items depend on.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequestFinder resolves the item request an item answers.
type RequestFinder interface {
	Get(ctx context.Context, userID, requestID string) (*itemrequest.ItemRequest, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, ownerID, itemID string) error

	// GetByID is a plain lookup with no viewer checks.
	GetByID(ctx context.Context, id string) (*Item, error)
	// Get returns an OwnerView to the owner and a PublicView to anyone else.
	Get(ctx context.Context, viewerID, itemID string) (View, error)
	ListByOwner(ctx context.Context, ownerID string, offset, size int) ([]*OwnerView, int, error)
	Search(ctx context.Context, viewerID, text string, offset, size int) ([]*Item, int, error)

	CreateComment(ctx context.Context, userID, itemID, text string) (*Comment, error)
	AttachPhoto(ctx context.Context, ownerID, itemID, fileID string) (*Item, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    UserFinder
	requests RequestFinder
	clock    clock.Clock
	log      zerolog.Logger
}

func NewService(
	repo Repository,
	comments CommentRepository,
	users UserFinder,
	requests RequestFinder,
	clk clock.Clock,
	log zerolog.Logger,
) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		requests: requests,
		clock:    clk,
		log:      log.With().Str("component", "item").Logger(),
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	if req.RequestID != nil {
		if _, err := s.requests.Get(ctx, ownerID, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", it.ID).Str("owner_id", ownerID).Msg("item created")
	return it, nil
}

// ownedItem loads an item for a mutation by its owner. The caller must
// exist. Items of other users are reported as not found so their existence
// is not confirmed.
func (s *service) ownedItem(ctx context.Context, ownerID, itemID string) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error) {
	it, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			it.Name = name
		}
	}
	if req.Description != nil {
		if description := strings.TrimSpace(*req.Description); description != "" {
			it.Description = description
		}
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID string) error {
	if _, err := s.ownedItem(ctx, ownerID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.log.Info().Str("item_id", itemID).Msg("item deleted")
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Get(ctx context.Context, viewerID, itemID string) (View, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForItems(ctx, []string{it.ID})
	if err != nil {
		return nil, err
	}
	public := PublicView{Item: it, Comments: comments[it.ID]}

	if it.OwnerID != viewerID {
		return &public, nil
	}

	bookings, err := s.repo.BookingsFor(ctx, []string{it.ID})
	if err != nil {
		return nil, err
	}
	last, next := BookingWindow(bookings[it.ID], s.clock.Now())
	return &OwnerView{PublicView: public, LastBooking: last, NextBooking: next}, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, offset, size int) ([]*OwnerView, int, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.ListByOwner(ctx, ownerID, offset, size)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	bookings, err := s.repo.BookingsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	comments, err := s.comments.ListForItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	now := s.clock.Now()
	views := make([]*OwnerView, len(items))
	for i, it := range items {
		last, next := BookingWindow(bookings[it.ID], now)
		views[i] = &OwnerView{
			PublicView:  PublicView{Item: it, Comments: comments[it.ID]},
			LastBooking: last,
			NextBooking: next,
		}
	}
	return views, total, nil
}

func (s *service) Search(ctx context.Context, viewerID, text string, offset, size int) ([]*Item, int, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		return nil, 0, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, 0, nil
	}
	return s.repo.Search(ctx, text, offset, size)
}

func (s *service) CreateComment(ctx context.Context, userID, itemID, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.BookingsFor(ctx, []string{it.ID})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !CanComment(bookings[it.ID], userID, now) {
		return nil, ErrDidNotBook
	}

	c := &Comment{
		Text:       text,
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		CreatedAt:  now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", it.ID).Str("user_id", userID).Msg("comment created")
	return c, nil
}

func (s *service) AttachPhoto(ctx context.Context, ownerID, itemID, fileID string) (*Item, error) {
	it, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPhoto(ctx, it.ID, &fileID); err != nil {
		return nil, err
	}
	it.PhotoID = &fileID
	return it, nil
}
