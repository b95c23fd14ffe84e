package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates a mutation against a resource that is currently immutable (e.g. a locked period).
var ErrForbidden = errors.New("forbidden")

// ErrItemFailed indicates that a single item of a batch could not be applied.
var ErrItemFailed = errors.New("batch item failed")

// AppError is a structured error carrying a kind (one of the sentinels above),
// a human readable message and contextual fields for API clients.
type AppError struct {
	Kind    error
	Code    int
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches the error kind, so errors.Is(err, ErrForbidden) works.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// WithDetail attaches a contextual field and returns the same error for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewAppError wraps an infrastructure error with an HTTP-ish status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFound builds a NotFound error.
func NewNotFound(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Code: http.StatusNotFound, Message: message}
}

// NewConflict builds a Conflict (duplicate) error.
func NewConflict(message string) *AppError {
	return &AppError{Kind: ErrDuplicate, Code: http.StatusConflict, Message: message}
}

// NewForbidden builds a Forbidden error.
func NewForbidden(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Code: http.StatusForbidden, Message: message}
}

// NewBadRequest builds a validation (BadRequest) error.
func NewBadRequest(message string) *AppError {
	return &AppError{Kind: ErrValidation, Code: http.StatusBadRequest, Message: message}
}

// NewItemFailure builds a batch item failure for the given account number.
func NewItemFailure(accountNumber string, cause error) *AppError {
	msg := "batch item failed"
	if cause != nil {
		msg = cause.Error()
	}
	return (&AppError{Kind: ErrItemFailed, Code: http.StatusBadRequest, Message: msg, Err: cause}).
		WithDetail("accountNumber", accountNumber)
}

// KindName returns a stable machine readable name for the error kind.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrItemFailed):
		return "item_failure"
	case errors.Is(err, ErrValidation):
		return "bad_request"
	default:
		return "internal"
	}
}

// DetailsOf returns the contextual fields of the first AppError in the chain, if any.
func DetailsOf(err error) map[string]any {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// MessageOf returns the message of the first AppError in the chain, or the error text.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
