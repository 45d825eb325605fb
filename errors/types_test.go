package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNewConfigMissingError(t *testing.T) {
	err := NewConfigMissingError("test-123", ErrModelNotConfigured)

	if err.Type != ConfigMissingError {
		t.Errorf("Expected error type %v, got %v", ConfigMissingError, err.Type)
	}
	if err.Message != "MODEL_ID is not configured." {
		t.Errorf("Expected message naming the setting, got %v", err.Message)
	}
	if err.Code != http.StatusInternalServerError {
		t.Errorf("Expected code %v, got %v", http.StatusInternalServerError, err.Code)
	}
	if !errors.Is(err, ErrModelNotConfigured) {
		t.Error("Expected error chain to contain ErrModelNotConfigured")
	}

	kb := NewConfigMissingError("test-123", ErrKnowledgeBaseNotConfigured)
	if kb.Message != "Knowledge base configuration is missing." {
		t.Errorf("Expected knowledge base message, got %v", kb.Message)
	}
}

func TestSentinelErrorStrings(t *testing.T) {
	for _, err := range []error{
		ErrModelNotConfigured,
		ErrKnowledgeBaseNotConfigured,
		ErrEmptyGeneration,
		ErrMalformedResponse,
	} {
		msg := err.Error()
		if msg == "" || msg[0] < 'a' || msg[0] > 'z' || strings.HasSuffix(msg, ".") {
			t.Errorf("error string %q should be lowercase without trailing punctuation", msg)
		}
	}
}

func TestNewProviderClientError(t *testing.T) {
	inner := errors.New("throttled")

	err := NewProviderClientError("test-456", "rate limited", inner)
	if err.Type != ProviderClientError {
		t.Errorf("Expected error type %v, got %v", ProviderClientError, err.Type)
	}
	if err.Message != "AWS ClientError: rate limited" {
		t.Errorf("Expected provider message to be passed through, got %v", err.Message)
	}
	if err.Unwrap() != inner {
		t.Errorf("Expected inner error %v, got %v", inner, err.Unwrap())
	}

	bare := NewProviderClientError("test-456", "", inner)
	if bare.Message != "AWS ClientError" {
		t.Errorf("Expected generic message without provider text, got %v", bare.Message)
	}
}

func TestNewProviderTransportError(t *testing.T) {
	inner := errors.New("dial tcp 10.0.0.1:443: i/o timeout")

	err := NewProviderTransportError("test-789", inner)
	if err.Type != ProviderTransportError {
		t.Errorf("Expected error type %v, got %v", ProviderTransportError, err.Type)
	}
	if err.Message != "AWS transport error occurred." {
		t.Errorf("Expected generic transport message, got %v", err.Message)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("test-000", "text query parameter is required")

	if err.Type != ValidationError {
		t.Errorf("Expected error type %v, got %v", ValidationError, err.Type)
	}
	if err.Code != http.StatusBadRequest {
		t.Errorf("Expected code %v, got %v", http.StatusBadRequest, err.Code)
	}
	if err.Unwrap() != nil {
		t.Errorf("Expected no inner error, got %v", err.Unwrap())
	}
}
