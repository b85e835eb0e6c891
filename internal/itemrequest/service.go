package itemrequest

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/clock"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserFinder is the part of the user service requests depend on.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, userID, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, userID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, userID string, offset, size int) ([]*ItemRequest, int, error)
	Get(ctx context.Context, userID, requestID string) (*ItemRequest, error)
}

type service struct {
	repo  Repository
	users UserFinder
	clock clock.Clock
	log   zerolog.Logger
}

func NewService(repo Repository, users UserFinder, clk clock.Clock, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		clock: clk,
		log:   log.With().Str("component", "itemrequest").Logger(),
	}
}

func (s *service) Create(ctx context.Context, userID, description string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: userID,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", req.ID).Str("user_id", userID).Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, userID string) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByRequester(ctx, userID)
}

func (s *service) ListOthers(ctx context.Context, userID string, offset, size int) ([]*ItemRequest, int, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListOthers(ctx, userID, offset, size)
}

func (s *service) Get(ctx context.Context, userID, requestID string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, requestID)
}
