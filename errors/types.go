package errors

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by the provider layer. Classify maps each of them
// onto exactly one ErrorType.
var (
	// ErrModelNotConfigured is returned by generate-text when no model ID is set.
	ErrModelNotConfigured = errors.New("model id is not configured")

	// ErrKnowledgeBaseNotConfigured is returned by generate-with-retrieval when the
	// knowledge base ID or the model ARN is not set.
	ErrKnowledgeBaseNotConfigured = errors.New("knowledge base configuration is missing")

	// ErrEmptyGeneration is returned when a response envelope carries no text.
	ErrEmptyGeneration = errors.New("model returned no content")

	// ErrMalformedResponse is returned when a response envelope does not have the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Response details. They are what callers see in the "detail" field.
const (
	modelMissingMessage         = "MODEL_ID is not configured."
	knowledgeBaseMissingMessage = "Knowledge base configuration is missing."
	emptyGenerationMessage      = "Model did not return any content."
	transportMessage            = "AWS transport error occurred."
	unexpectedMessage           = "An unexpected error occurred."
)

// NewError creates a GatewayError with full control over its fields.
// Prefer the specialized constructors below.
func NewError(errType ErrorType, message string, code int, requestID string, err error) *GatewayError {
	return &GatewayError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: requestID,
		err:       err,
	}
}

// NewConfigMissingError reports a setting that must be present for the
// operation. The message names the setting and nothing else.
func NewConfigMissingError(requestID string, err error) *GatewayError {
	message := modelMissingMessage
	if errors.Is(err, ErrKnowledgeBaseNotConfigured) {
		message = knowledgeBaseMissingMessage
	}
	return NewError(ConfigMissingError, message, http.StatusInternalServerError, requestID, err)
}

// NewProviderClientError reports a structured Bedrock service error. The
// provider message is passed through because it is meant for the caller
// (e.g. "Too many requests, please wait before trying again.").
func NewProviderClientError(requestID, providerMessage string, err error) *GatewayError {
	message := "AWS ClientError"
	if providerMessage != "" {
		message = "AWS ClientError: " + providerMessage
	}
	return NewError(ProviderClientError, message, http.StatusInternalServerError, requestID, err)
}

// NewProviderTransportError reports a network-level failure. The underlying
// error stays out of the response body.
func NewProviderTransportError(requestID string, err error) *GatewayError {
	return NewError(ProviderTransportError, transportMessage, http.StatusInternalServerError, requestID, err)
}

// NewEmptyGenerationError reports a response without generated text.
func NewEmptyGenerationError(requestID string) *GatewayError {
	return NewError(EmptyGenerationError, emptyGenerationMessage, http.StatusInternalServerError, requestID, ErrEmptyGeneration)
}

// NewUnexpectedError is the catch-all.
func NewUnexpectedError(requestID string, err error) *GatewayError {
	return NewError(UnexpectedError, unexpectedMessage, http.StatusInternalServerError, requestID, err)
}

// NewValidationError reports caller input rejected before any remote call.
//
// Example:
//
//	err := NewValidationError("req_123", "text query parameter is required")
func NewValidationError(requestID, message string) *GatewayError {
	return NewError(ValidationError, message, http.StatusBadRequest, requestID, nil)
}
