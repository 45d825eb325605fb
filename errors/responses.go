package errors

import (
	"errors"
)

// ErrorResponse is the wire shape of a GatewayError, used by clients and tests
// to decode failure bodies.
type ErrorResponse struct {
	Type      ErrorType `json:"type"`
	Detail    string    `json:"detail"`
	RequestID string    `json:"request_id,omitempty"`
}

// As is a wrapper around errors.As for better error type assertion
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is is a wrapper around errors.Is so callers importing this package do not
// need the standard library one as well.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
