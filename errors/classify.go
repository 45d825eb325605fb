package errors

import (
	"context"
	"errors"
	"net"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Classify maps any error produced while serving a request onto the closed
// ErrorType set. It is total: a nil error yields nil, every other error yields
// exactly one GatewayError.
//
// Order matters. Domain sentinels are checked first, then a GatewayError that
// is already classified, then structured service errors, then transport
// failures. Anything left is UnexpectedError.
func Classify(err error, requestID string) *GatewayError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrModelNotConfigured):
		return NewConfigMissingError(requestID, ErrModelNotConfigured)
	case errors.Is(err, ErrKnowledgeBaseNotConfigured):
		return NewConfigMissingError(requestID, ErrKnowledgeBaseNotConfigured)
	case errors.Is(err, ErrEmptyGeneration):
		return NewEmptyGenerationError(requestID)
	case errors.Is(err, ErrMalformedResponse):
		return NewUnexpectedError(requestID, err)
	}

	var gerr *GatewayError
	if errors.As(err, &gerr) {
		if gerr.RequestID == "" {
			gerr.RequestID = requestID
		}
		return gerr
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return NewProviderClientError(requestID, apiErr.ErrorMessage(), err)
	}

	if isTransport(err) {
		return NewProviderTransportError(requestID, err)
	}

	return NewUnexpectedError(requestID, err)
}

// isTransport reports whether err means the request never got a service answer.
func isTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var sendErr *smithyhttp.RequestSendError
	if errors.As(err, &sendErr) {
		return true
	}

	var canceled *smithy.CanceledError
	if errors.As(err, &canceled) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
