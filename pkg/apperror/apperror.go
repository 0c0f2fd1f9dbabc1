package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error produced by the service wraps exactly one of these.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInternal          = errors.New("internal error")
)

// Error carries a user-facing message together with its kind and an optional cause.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	return e.message
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the sentinel kind of the error.
func (e *Error) Kind() error {
	return e.kind
}

func newError(kind error, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, nil, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, nil, format, args...)
}

func InvalidArgument(format string, args ...interface{}) error {
	return newError(ErrInvalidArgument, nil, format, args...)
}

func InsufficientStock(format string, args ...interface{}) error {
	return newError(ErrInsufficientStock, nil, format, args...)
}

func Unauthorized(format string, args ...interface{}) error {
	return newError(ErrUnauthorized, nil, format, args...)
}

func Forbidden(format string, args ...interface{}) error {
	return newError(ErrForbidden, nil, format, args...)
}

// Internal wraps an unexpected failure. The cause is kept for logging but the
// message stays generic.
func Internal(cause error, format string, args ...interface{}) error {
	return newError(ErrInternal, cause, format, args...)
}

// KindOf returns the sentinel kind of err, defaulting to ErrInternal.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNotFound, ErrConflict, ErrInvalidArgument, ErrInsufficientStock,
		ErrUnauthorized, ErrForbidden,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// HTTPStatus maps an error to the HTTP status code returned to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrInvalidArgument:
		return http.StatusBadRequest
	case ErrInsufficientStock:
		return http.StatusUnprocessableEntity
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to clients.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.message
	}
	return "Internal server error"
}

// Prefix returns err with prefix prepended to its message, keeping its kind.
// Errors that are not *Error are returned unchanged.
func Prefix(err error, prefix string) error {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return err
	}
	return &Error{kind: appErr.kind, message: prefix + appErr.message, cause: appErr.cause}
}
