// Package errors provides the error handling system for the bedrockgate server.
// It defines the closed set of failure kinds a request can end in, the structured
// error type rendered to clients, and the classification step that maps any error
// returned by the provider layer onto that set.
//
// Every failure is rendered as JSON:
//
//	{"type": "empty_generation", "detail": "Model did not return any content.", "request_id": "..."}
//
// Basic usage:
//
//	gerr := errors.Classify(err, requestID)
//	errors.LogError(logger, gerr, requestID)
//	errors.WriteError(w, gerr)
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DefaultLogger is the zap logger used when no request logger is at hand.
// It is initialized to a production configuration but can be overridden using SetLogger.
var DefaultLogger *zap.Logger

func init() {
	var err error
	DefaultLogger, err = zap.NewProduction()
	if err != nil {
		DefaultLogger = zap.NewNop()
	}
}

// SetLogger replaces DefaultLogger. A nil logger is ignored.
func SetLogger(logger *zap.Logger) {
	if logger != nil {
		DefaultLogger = logger
	}
}

// ErrorType is the failure kind of a request. The set is closed: Classify
// never produces a value outside the constants below.
type ErrorType string

const (
	// ConfigMissingError means a setting the operation needs was not configured.
	ConfigMissingError ErrorType = "configuration_missing"

	// ProviderClientError means Bedrock answered with a structured service error
	// (validation, access denied, throttling, ...).
	ProviderClientError ErrorType = "provider_client_error"

	// ProviderTransportError means Bedrock could not be reached or did not answer in time.
	ProviderTransportError ErrorType = "provider_transport_error"

	// EmptyGenerationError means the model answered without any generated text.
	EmptyGenerationError ErrorType = "empty_generation"

	// UnexpectedError covers malformed envelopes and anything else.
	UnexpectedError ErrorType = "unexpected_error"

	// ValidationError means the caller's input was rejected before any remote call.
	ValidationError ErrorType = "validation_error"
)

// Types lists every ErrorType in a stable order.
var Types = []ErrorType{
	ConfigMissingError,
	ProviderClientError,
	ProviderTransportError,
	EmptyGenerationError,
	UnexpectedError,
	ValidationError,
}

// GatewayError is the error type rendered to clients. The wrapped error is kept
// for logging and errors.Is/As chains but never serialized.
type GatewayError struct {
	// Type categorizes the error for client handling
	Type ErrorType `json:"type"`

	// Message is the client-facing description
	Message string `json:"detail"`

	// Code is the HTTP status code (not exposed in JSON)
	Code int `json:"-"`

	// RequestID links the error to a specific request
	RequestID string `json:"request_id,omitempty"`

	err error
}

// Error implements the error interface. It combines the error type, message,
// and underlying error (if any).
func (e *GatewayError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *GatewayError) Unwrap() error {
	return e.err
}

// Is matches on Type only, so errors.Is(err, &GatewayError{Type: EmptyGenerationError})
// asks "did this request fail with an empty generation".
func (e *GatewayError) Is(target error) bool {
	t, ok := target.(*GatewayError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WriteError writes err as a JSON response with its status code.
func WriteError(w http.ResponseWriter, err *GatewayError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	if encErr := json.NewEncoder(w).Encode(err); encErr != nil {
		DefaultLogger.Warn("failed to encode error response", zap.Error(encErr))
	}
}

// ErrorWithType writes an error of the given type without an underlying cause.
// The request ID is taken from the response headers when the RequestID
// middleware has set it.
func ErrorWithType(w http.ResponseWriter, message string, errType ErrorType, code int) {
	WriteError(w, &GatewayError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: w.Header().Get("X-Request-ID"),
	})
}
