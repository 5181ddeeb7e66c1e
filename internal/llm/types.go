package llm

import (
	"fmt"
	"strings"
)

// Variant selects the request format sent to the model.
type Variant string

const (
	VariantMessages   Variant = "messages"
	VariantCompletion Variant = "completion"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantMessages, "":
		return VariantMessages, nil
	case VariantCompletion:
		return VariantCompletion, nil
	default:
		return "", fmt.Errorf("unsupported variant: %q", s)
	}
}

const (
	ContentTypeJSON  = "application/json"
	AnthropicVersion = "bedrock-2023-05-31"
)

// InferenceRequest is built fresh for every invocation and not modified afterwards.
type InferenceRequest struct {
	ModelID     string
	ContentType string
	Accept      string
	Body        []byte
	Variant     Variant
}

type InferenceResult struct {
	Text       string
	StopReason string
	Variant    Variant
}

// PayloadOptions holds the model parameters of both variants.
type PayloadOptions struct {
	AnthropicVersion string

	// messages-style
	MaxTokens int

	// completion-style
	MaxTokensToSample int
	Temperature       float64
	TopK              int
	TopP              float64
	StopSequences     []string
}

func DefaultPayloadOptions() PayloadOptions {
	return PayloadOptions{
		AnthropicVersion:  AnthropicVersion,
		MaxTokens:         1024,
		MaxTokensToSample: 200,
		Temperature:       0.5,
		TopK:              250,
		TopP:              1,
		StopSequences:     []string{"\n\nHuman:"},
	}
}
