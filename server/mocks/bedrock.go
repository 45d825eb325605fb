package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// MockInvoker stands in for *bedrockruntime.Client in tests.
// It records every call so tests can assert that no remote call was made.
//
// Example usage:
//
//	invoker := NewMockInvoker(func(ctx context.Context, in *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error) {
//	    return GenerationOutput("hi there"), nil
//	})
type MockInvoker struct {
	InvokeFunc func(context.Context, *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error)

	mu     sync.Mutex
	inputs []*bedrockruntime.InvokeModelInput
}

// NewMockInvoker creates a MockInvoker. If invokeFunc is nil, InvokeModel
// returns an envelope with an empty generation.
func NewMockInvoker(invokeFunc func(context.Context, *bedrockruntime.InvokeModelInput) (*bedrockruntime.InvokeModelOutput, error)) *MockInvoker {
	return &MockInvoker{InvokeFunc: invokeFunc}
}

// InvokeModel implements provider.ModelInvoker.
func (m *MockInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, params)
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, params)
	}
	return GenerationOutput(""), nil
}

// Calls returns the number of InvokeModel calls.
func (m *MockInvoker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// LastInput returns the most recent input, or nil.
func (m *MockInvoker) LastInput() *bedrockruntime.InvokeModelInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[len(m.inputs)-1]
}

// MockRetriever stands in for *bedrockagentruntime.Client in tests.
type MockRetriever struct {
	RetrieveFunc func(context.Context, *bedrockagentruntime.RetrieveAndGenerateInput) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)

	mu     sync.Mutex
	inputs []*bedrockagentruntime.RetrieveAndGenerateInput
}

// NewMockRetriever creates a MockRetriever. If retrieveFunc is nil,
// RetrieveAndGenerate returns an output without text.
func NewMockRetriever(retrieveFunc func(context.Context, *bedrockagentruntime.RetrieveAndGenerateInput) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)) *MockRetriever {
	return &MockRetriever{RetrieveFunc: retrieveFunc}
}

// RetrieveAndGenerate implements provider.KnowledgeBaseRetriever.
func (m *MockRetriever) RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, params)
	m.mu.Unlock()

	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, params)
	}
	return &bedrockagentruntime.RetrieveAndGenerateOutput{}, nil
}

// Calls returns the number of RetrieveAndGenerate calls.
func (m *MockRetriever) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// LastInput returns the most recent input, or nil.
func (m *MockRetriever) LastInput() *bedrockagentruntime.RetrieveAndGenerateInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[len(m.inputs)-1]
}

// GenerationOutput builds an InvokeModel output whose body carries generation.
func GenerationOutput(generation string) *bedrockruntime.InvokeModelOutput {
	body, _ := json.Marshal(map[string]interface{}{
		"generation":             generation,
		"prompt_token_count":     12,
		"generation_token_count": 4,
		"stop_reason":            "stop",
	})
	return &bedrockruntime.InvokeModelOutput{
		Body:        body,
		ContentType: aws.String("application/json"),
	}
}

// AnswerOutput builds a RetrieveAndGenerate output with output.text set.
func AnswerOutput(text string) *bedrockagentruntime.RetrieveAndGenerateOutput {
	return &bedrockagentruntime.RetrieveAndGenerateOutput{
		Output:    &agenttypes.RetrieveAndGenerateOutput{Text: aws.String(text)},
		SessionId: aws.String("session-1"),
	}
}
