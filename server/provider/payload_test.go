package provider

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatModelPayloadWrapsInput(t *testing.T) {
	inputs := []string{
		"hello",
		"What is the capital of France?",
		"multi\nline\ninput",
		"Hello 世界 🌍",
		"<|eot_id|> inside the input",
		"  padded  ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			payload := FormatModelPayload(input)

			require.True(t, strings.HasPrefix(payload.Prompt, promptPrefix))
			require.True(t, strings.HasSuffix(payload.Prompt, promptSuffix))

			inner := strings.TrimSuffix(strings.TrimPrefix(payload.Prompt, promptPrefix), promptSuffix)
			assert.Equal(t, input, inner)

			assert.Equal(t, 512, payload.MaxGenLen)
			assert.Equal(t, 0.5, payload.Temperature)
		})
	}
}

func TestFormatModelPayloadTemplate(t *testing.T) {
	want := "<|begin_of_text|><|start_header_id|>user<|end_header_id|>\n" +
		"hello\n" +
		"<|eot_id|>\n" +
		"<|start_header_id|>assistant<|end_header_id|>\n"

	assert.Equal(t, want, FormatModelPayload("hello").Prompt)
}

func TestModelPayloadInvokeInput(t *testing.T) {
	input, err := FormatModelPayload("hello").invokeInput("meta.llama3-3-70b-instruct-v1:0")
	require.NoError(t, err)

	assert.Equal(t, "meta.llama3-3-70b-instruct-v1:0", aws.ToString(input.ModelId))
	assert.Equal(t, "application/json", aws.ToString(input.ContentType))
	assert.Equal(t, "application/json", aws.ToString(input.Accept))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(input.Body, &body))
	assert.Len(t, body, 3)
	assert.Contains(t, body["prompt"], "hello")
	assert.Equal(t, float64(512), body["max_gen_len"])
	assert.Equal(t, 0.5, body["temperature"])
}

func TestFormatKnowledgeQuery(t *testing.T) {
	query := FormatKnowledgeQuery("what is in the handbook?", "OR2VV9ZQBY", "arn:aws:bedrock:us-east-2::foundation-model/meta.llama3-3-70b-instruct-v1:0")

	assert.Equal(t, agenttypes.RetrieveAndGenerateTypeKnowledgeBase, query.Type)

	input := query.retrieveInput()
	require.NotNil(t, input.Input)
	assert.Equal(t, "what is in the handbook?", aws.ToString(input.Input.Text))

	cfg := input.RetrieveAndGenerateConfiguration
	require.NotNil(t, cfg)
	assert.Equal(t, agenttypes.RetrieveAndGenerateType("KNOWLEDGE_BASE"), cfg.Type)
	require.NotNil(t, cfg.KnowledgeBaseConfiguration)
	assert.Equal(t, "OR2VV9ZQBY", aws.ToString(cfg.KnowledgeBaseConfiguration.KnowledgeBaseId))
	assert.Equal(t, query.ModelARN, aws.ToString(cfg.KnowledgeBaseConfiguration.ModelArn))
}
