package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyContent = errors.New("response contained no text")

// Claude messages API request format
type messagesRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	System           string    `json:"system"`
	Messages         []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// Claude text completion API request format
type completionRequest struct {
	Prompt            string   `json:"prompt"`
	MaxTokensToSample int      `json:"max_tokens_to_sample"`
	Temperature       float64  `json:"temperature"`
	TopK              int      `json:"top_k"`
	TopP              float64  `json:"top_p"`
	StopSequences     []string `json:"stop_sequences"`
	AnthropicVersion  string   `json:"anthropic_version"`
}

type completionResponse struct {
	Completion string `json:"completion"`
	StopReason string `json:"stop_reason"`
}

// CompletionPrompt flattens the system instruction and the user prompt into a single Human/Assistant turn.
func CompletionPrompt(system, prompt string) string {
	return "\n\nHuman: " + system + "\n" + prompt + "\n\nAssistant: "
}

// BuildPayload serializes the request body for the given variant.
func BuildPayload(variant Variant, system, prompt string, opts PayloadOptions) ([]byte, error) {
	var payload any

	switch variant {
	case VariantMessages:
		payload = messagesRequest{
			AnthropicVersion: opts.AnthropicVersion,
			MaxTokens:        opts.MaxTokens,
			System:           system,
			Messages: []message{
				{
					Role: "user",
					Content: []contentBlock{
						{Type: "text", Text: prompt},
					},
				},
			},
		}
	case VariantCompletion:
		payload = completionRequest{
			Prompt:            CompletionPrompt(system, prompt),
			MaxTokensToSample: opts.MaxTokensToSample,
			Temperature:       opts.Temperature,
			TopK:              opts.TopK,
			TopP:              opts.TopP,
			StopSequences:     opts.StopSequences,
			AnthropicVersion:  opts.AnthropicVersion,
		}
	default:
		return nil, fmt.Errorf("unsupported variant: %q", variant)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize %s request: %w", variant, err)
	}
	return body, nil
}

func BuildRequest(modelID string, variant Variant, system, prompt string, opts PayloadOptions) (InferenceRequest, error) {
	body, err := BuildPayload(variant, system, prompt, opts)
	if err != nil {
		return InferenceRequest{}, err
	}

	return InferenceRequest{
		ModelID:     modelID,
		ContentType: ContentTypeJSON,
		Accept:      ContentTypeJSON,
		Body:        body,
		Variant:     variant,
	}, nil
}

// DecodeResponse extracts the generated text using the response shape that pairs with variant.
func DecodeResponse(variant Variant, body []byte) (InferenceResult, error) {
	result := InferenceResult{Variant: variant}

	switch variant {
	case VariantMessages:
		var response messagesResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return result, fmt.Errorf("failed to unmarshal messages response: %w", err)
		}
		if len(response.Content) == 0 {
			return result, ErrEmptyContent
		}
		result.Text = response.Content[0].Text
		result.StopReason = response.StopReason
	case VariantCompletion:
		var response completionResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return result, fmt.Errorf("failed to unmarshal completion response: %w", err)
		}
		if response.Completion == "" {
			return result, ErrEmptyContent
		}
		result.Text = response.Completion
		result.StopReason = response.StopReason
	default:
		return result, fmt.Errorf("unsupported variant: %q", variant)
	}

	return result, nil
}
