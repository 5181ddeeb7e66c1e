package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/llm"
)

// Invoke sends the prepared request body to the model and returns the raw response body.
func (c *Client) Invoke(ctx context.Context, request llm.InferenceRequest) ([]byte, error) {
	modelID := request.ModelID
	if modelID == "" {
		modelID = c.modelID
	}
	if modelID == "" {
		return nil, fmt.Errorf("model id is required")
	}

	contentType := request.ContentType
	if contentType == "" {
		contentType = llm.ContentTypeJSON
	}
	accept := request.Accept
	if accept == "" {
		accept = llm.ContentTypeJSON
	}

	output, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        request.Body,
		ContentType: aws.String(contentType),
		Accept:      aws.String(accept),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke model %s: %w", modelID, err)
	}

	if output == nil || len(output.Body) == 0 {
		return nil, fmt.Errorf("empty response body from model %s", modelID)
	}

	return output.Body, nil
}
