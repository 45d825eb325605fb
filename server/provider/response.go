package provider

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/teilomillet/bedrockgate/errors"
)

// GenerationResult is the text returned to the caller. It is never built with
// an empty Text.
type GenerationResult struct {
	Text string
}

// modelEnvelope is the part of the Llama InvokeModel response we read.
type modelEnvelope struct {
	Generation string `json:"generation"`
}

// ExtractGeneration reads the "generation" field of an InvokeModel response
// body. An absent or empty field is errors.ErrEmptyGeneration; a body that is
// not a JSON object is errors.ErrMalformedResponse.
func ExtractGeneration(body []byte) (GenerationResult, error) {
	var env modelEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return GenerationResult{}, fmt.Errorf("%w: decode model response: %v", errors.ErrMalformedResponse, err)
	}
	if env.Generation == "" {
		return GenerationResult{}, errors.ErrEmptyGeneration
	}
	return GenerationResult{Text: env.Generation}, nil
}

// ExtractKnowledgeAnswer reads output.text of a RetrieveAndGenerate response.
func ExtractKnowledgeAnswer(out *bedrockagentruntime.RetrieveAndGenerateOutput) (GenerationResult, error) {
	if out == nil || out.Output == nil || out.Output.Text == nil {
		return GenerationResult{}, fmt.Errorf("%w: output.text missing", errors.ErrMalformedResponse)
	}
	if *out.Output.Text == "" {
		return GenerationResult{}, errors.ErrEmptyGeneration
	}
	return GenerationResult{Text: *out.Output.Text}, nil
}
