package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthenticated indicates no valid session/user for the request.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized indicates an authenticated user lacks privilege.
	ErrUnauthorized = errors.New("not authorized")
)

// ValidationError carries the offending field list so handlers can render it
// back to the client next to the submitted form data.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, "; "))
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
