// Package provider talks to AWS Bedrock. It formats the request payloads,
// performs the two remote operations the gateway exposes and normalizes
// their responses into a GenerationResult or a sentinel error from the
// errors package.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/teilomillet/bedrockgate/config"
	"github.com/teilomillet/bedrockgate/errors"
	"go.uber.org/zap"
)

// Operation names used in logs and metric labels.
const (
	OperationInvoke   = "invoke_model"
	OperationRetrieve = "retrieve_and_generate"
)

// ModelInvoker is the subset of *bedrockruntime.Client used for generate-text.
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// KnowledgeBaseRetriever is the subset of *bedrockagentruntime.Client used for
// generate-with-retrieval.
type KnowledgeBaseRetriever interface {
	RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

// Client composes formatter, remote call and normalizer for both operations.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	invoker   ModelInvoker
	retriever KnowledgeBaseRetriever
	cfg       config.AWSConfig
	logger    *zap.Logger
	metrics   *clientMetrics
}

// NewClient creates a Client over the given SDK clients. registry may be nil,
// in which case metrics are collected but not exported.
func NewClient(cfg config.AWSConfig, invoker ModelInvoker, retriever KnowledgeBaseRetriever, logger *zap.Logger, registry prometheus.Registerer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		invoker:   invoker,
		retriever: retriever,
		cfg:       cfg,
		logger:    logger,
		metrics:   newClientMetrics(registry),
	}
}

// Generate runs text through the configured model with InvokeModel.
// Without a model ID it fails with errors.ErrModelNotConfigured and makes no
// remote call.
func (c *Client) Generate(ctx context.Context, text string) (GenerationResult, error) {
	if !c.cfg.HasModel() {
		return GenerationResult{}, errors.ErrModelNotConfigured
	}

	input, err := FormatModelPayload(text).invokeInput(c.cfg.ModelID)
	if err != nil {
		return GenerationResult{}, err
	}

	c.logger.Debug("Invoking model",
		zap.String("model_id", c.cfg.ModelID),
		zap.Int("input_length", len(text)),
	)

	return c.do(ctx, OperationInvoke, func(ctx context.Context) (GenerationResult, error) {
		out, err := c.invoker.InvokeModel(ctx, input)
		if err != nil {
			return GenerationResult{}, fmt.Errorf("invoke model %s: %w", c.cfg.ModelID, err)
		}
		if out == nil {
			return GenerationResult{}, fmt.Errorf("%w: nil InvokeModel output", errors.ErrMalformedResponse)
		}
		return ExtractGeneration(out.Body)
	})
}

// Query answers text from the configured knowledge base with
// RetrieveAndGenerate. Without both a knowledge base ID and a model ARN it
// fails with errors.ErrKnowledgeBaseNotConfigured and makes no remote call.
func (c *Client) Query(ctx context.Context, text string) (GenerationResult, error) {
	if !c.cfg.HasKnowledgeBase() {
		return GenerationResult{}, errors.ErrKnowledgeBaseNotConfigured
	}

	input := FormatKnowledgeQuery(text, c.cfg.KnowledgeBaseID, c.cfg.ModelARN).retrieveInput()

	c.logger.Debug("Querying knowledge base",
		zap.String("knowledge_base_id", c.cfg.KnowledgeBaseID),
		zap.String("model_arn", c.cfg.ModelARN),
		zap.Int("input_length", len(text)),
	)

	return c.do(ctx, OperationRetrieve, func(ctx context.Context) (GenerationResult, error) {
		out, err := c.retriever.RetrieveAndGenerate(ctx, input)
		if err != nil {
			return GenerationResult{}, fmt.Errorf("retrieve and generate from %s: %w", c.cfg.KnowledgeBaseID, err)
		}
		if out != nil && out.SessionId != nil {
			c.logger.Debug("Knowledge base session", zap.String("session_id", *out.SessionId))
		}
		return ExtractKnowledgeAnswer(out)
	})
}

// do runs one remote operation under the request timeout and records its
// latency and outcome. A panicking call is recorded as an unexpected error
// before the panic continues to the recovery middleware.
func (c *Client) do(ctx context.Context, operation string, call func(context.Context) (GenerationResult, error)) (result GenerationResult, err error) {
	if c.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	completed := false
	defer func() {
		c.metrics.requestLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())

		outcome := "success"
		switch {
		case !completed:
			outcome = string(errors.UnexpectedError)
		case err != nil:
			outcome = string(errors.Classify(err, "").Type)
		}
		c.metrics.requestsTotal.WithLabelValues(operation, outcome).Inc()
	}()

	result, err = call(ctx)
	completed = true
	return result, err
}
