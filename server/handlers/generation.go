// Package handlers provides HTTP handlers for the bedrockgate server.
//
// Both generation endpoints follow the same flow: read and validate the text
// query parameter, call the provider, and either write {"response": text} or
// classify the failure, log it and write it through the errors package.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/teilomillet/bedrockgate/errors"
	"github.com/teilomillet/bedrockgate/server/middleware"
	"github.com/teilomillet/bedrockgate/server/provider"
	"go.uber.org/zap"
)

// Generator is what the handler needs from the provider layer.
// *provider.Client implements it.
type Generator interface {
	Generate(ctx context.Context, text string) (provider.GenerationResult, error)
	Query(ctx context.Context, text string) (provider.GenerationResult, error)
}

// GenerationRequest is the validated form of the query string.
type GenerationRequest struct {
	Text string `validate:"required"`
}

// GenerationResponse is the success body of both generation endpoints.
type GenerationResponse struct {
	Response string `json:"response"`
}

var validate = validator.New()

// GenerationHandler serves /bedrock/invoke and /bedrock/query.
type GenerationHandler struct {
	generator Generator
	failures  middleware.FailureRecorder
	logger    *zap.Logger
}

// NewGenerationHandler creates a handler. failures may be nil.
func NewGenerationHandler(generator Generator, failures middleware.FailureRecorder, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
		failures:  failures,
		logger:    logger,
	}
}

// Invoke handles generate-text.
func (h *GenerationHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, provider.OperationInvoke, h.generator.Generate)
}

// Query handles generate-with-retrieval.
func (h *GenerationHandler) Query(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, provider.OperationRetrieve, h.generator.Query)
}

func (h *GenerationHandler) serve(w http.ResponseWriter, r *http.Request, operation string, call func(context.Context, string) (provider.GenerationResult, error)) {
	requestID := middleware.GetRequestID(r.Context())
	logger := h.logger.With(zap.String("operation", operation))

	req := GenerationRequest{Text: r.URL.Query().Get("text")}
	if err := validate.Struct(req); err != nil {
		h.fail(w, logger, errors.NewValidationError(requestID, "text query parameter is required"), requestID)
		return
	}

	result, err := call(r.Context(), req.Text)
	if err != nil {
		h.fail(w, logger, errors.Classify(err, requestID), requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(GenerationResponse{Response: result.Text}); err != nil {
		logger.Error("Failed to encode response", zap.Error(err), zap.String("request_id", requestID))
		return
	}

	logger.Debug("Request successful",
		zap.String("request_id", requestID),
		zap.Int("response_length", len(result.Text)),
	)
}

func (h *GenerationHandler) fail(w http.ResponseWriter, logger *zap.Logger, gerr *errors.GatewayError, requestID string) {
	errors.LogError(logger, gerr, requestID)
	if h.failures != nil {
		h.failures.RecordFailure(gerr.Type)
	}
	errors.WriteError(w, gerr)
}
