package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError independently of its message.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidDateRange   Kind = "invalid_date_range"
	KindActionNotAvailable Kind = "action_not_available"
	KindActionNotPermitted Kind = "action_not_permitted"
	KindUnsupportedBucket  Kind = "unsupported_bucket"
	KindInvalidInput       Kind = "invalid_input"
	KindConflict           Kind = "conflict"
	KindUnauthorized       Kind = "unauthorized"
	KindInternal           Kind = "internal"
)

// Entity names the record type a NotFound error refers to.
type Entity string

const (
	EntityUser        Entity = "user"
	EntityItem        Entity = "item"
	EntityBooking     Entity = "booking"
	EntityComment     Entity = "comment"
	EntityItemRequest Entity = "item request"
	EntityFile        Entity = "file"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Error classification used for matching
	Entity  Entity // Set for KindNotFound
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind and entity,
// so errors.Is matches regardless of message wording.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Entity == t.Entity
}

// StatusFor maps an error kind to the HTTP status the boundary responds with.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidDateRange, KindActionNotAvailable, KindActionNotPermitted,
		KindUnsupportedBucket, KindInvalidInput:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError of the given kind with a message.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Code:    StatusFor(kind),
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Code:    StatusFor(kind),
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NotFound reports a missing record, or one the caller is not allowed to see.
func NotFound(entity Entity) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

// InvalidInput is a shorthand for a 400 with the given message.
func InvalidInput(message string) *AppError {
	return New(KindInvalidInput, message)
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound for the given entity.
func IsNotFound(err error, entity Entity) bool {
	return errors.Is(err, NotFound(entity))
}
