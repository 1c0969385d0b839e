package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrInvalidPassword  = NewError(ErrCodeUnauthorized, "invalid password")
	ErrMalformedSession = NewError(ErrCodeUnauthorized, "malformed session payload")
	ErrSessionNotFound  = NewError(ErrCodeUnauthorized, "session not found")
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "task not found")
	ErrListNotFound     = NewError(ErrCodeNotFound, "list not found")
	ErrTagNotFound      = NewError(ErrCodeNotFound, "tag not found")
	ErrDuplicateTag     = NewError(ErrCodeConflict, "tag already exists")
	ErrDuplicateList    = NewError(ErrCodeConflict, "list already exists")
	ErrDuplicateShare   = NewError(ErrCodeConflict, "list already shared with this user")
	ErrShareWithOwner   = NewError(ErrCodeInvalid, "list cannot be shared with its owner")
	ErrNotListOwner     = NewError(ErrCodeForbidden, "only the list owner may manage shares")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// NewValidationError reports a user-facing validation failure for a single field.
func NewValidationError(field, reason string) *Error {
	return &Error{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: %s", field, reason)}
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
