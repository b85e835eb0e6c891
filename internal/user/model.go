package user

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound(apperror.EntityUser)
	ErrEmailAlreadyUsed   = apperror.New(apperror.KindConflict, "email already used")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.InvalidInput("email is required")
	ErrNameRequired       = apperror.InvalidInput("name is required")
)

// User represents a user in the system.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines options for listing users.
type Filter struct {
	Email  string
	Name   string
	Offset int
	Size   int
}

// UpdateRequest carries the fields of a partial update. Nil and blank
// values leave the stored value untouched.
type UpdateRequest struct {
	Name  *string
	Email *string
}
