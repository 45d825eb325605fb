package provider

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Llama 3 chat template around a single user turn.
const (
	promptPrefix = "<|begin_of_text|><|start_header_id|>user<|end_header_id|>\n"
	promptSuffix = "\n<|eot_id|>\n<|start_header_id|>assistant<|end_header_id|>\n"
)

// Fixed generation parameters. They are not configurable per request.
const (
	MaxGenLen   = 512
	Temperature = 0.5
)

const jsonContentType = "application/json"

// ModelPayload is the InvokeModel request body for Meta Llama models.
type ModelPayload struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
}

// FormatModelPayload wraps text in the Llama 3 template. Emptiness of text is
// checked by the HTTP handler, not here.
func FormatModelPayload(text string) ModelPayload {
	return ModelPayload{
		Prompt:      promptPrefix + text + promptSuffix,
		MaxGenLen:   MaxGenLen,
		Temperature: Temperature,
	}
}

// invokeInput builds the SDK input for modelID.
func (p ModelPayload) invokeInput(modelID string) (*bedrockruntime.InvokeModelInput, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal model payload: %w", err)
	}
	return &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String(jsonContentType),
		Accept:      aws.String(jsonContentType),
		Body:        body,
	}, nil
}

// KnowledgeQuery is a retrieve-and-generate request against one knowledge base.
type KnowledgeQuery struct {
	Text            string
	KnowledgeBaseID string
	ModelARN        string
	Type            agenttypes.RetrieveAndGenerateType
}

// FormatKnowledgeQuery builds a KNOWLEDGE_BASE query. The caller has already
// checked that knowledgeBaseID and modelARN are present.
func FormatKnowledgeQuery(text, knowledgeBaseID, modelARN string) KnowledgeQuery {
	return KnowledgeQuery{
		Text:            text,
		KnowledgeBaseID: knowledgeBaseID,
		ModelARN:        modelARN,
		Type:            agenttypes.RetrieveAndGenerateTypeKnowledgeBase,
	}
}

func (q KnowledgeQuery) retrieveInput() *bedrockagentruntime.RetrieveAndGenerateInput {
	return &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &agenttypes.RetrieveAndGenerateInput{
			Text: aws.String(q.Text),
		},
		RetrieveAndGenerateConfiguration: &agenttypes.RetrieveAndGenerateConfiguration{
			Type: q.Type,
			KnowledgeBaseConfiguration: &agenttypes.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(q.KnowledgeBaseID),
				ModelArn:        aws.String(q.ModelARN),
			},
		},
	}
}
