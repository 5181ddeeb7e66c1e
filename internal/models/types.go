package models

import (
	"time"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRejected  Status = "rejected"
)

// Input message

type PromptRequest struct {
	ID      string `json:"id,omitempty" jsonschema:"optional request identifier, generated when empty"`
	Prompt  string `json:"prompt" jsonschema:"free-text user prompt"`
	System  string `json:"system,omitempty" jsonschema:"optional system instruction overriding the configured one"`
	Variant string `json:"variant,omitempty" jsonschema:"request format: messages (default) or completion"`
}

// Output of one invocation
type PromptResult struct {
	ID         string        `json:"id"`
	ModelID    string        `json:"model_id"`
	Variant    string        `json:"variant"`
	Text       string        `json:"text"`
	StopReason string        `json:"stop_reason,omitempty"`
	Attempts   int           `json:"attempts"`
	Duration   time.Duration `json:"duration_ns"`
}

// Message published to the result stream and written by the batch runner
type PromptOutcome struct {
	RequestID string        `json:"request_id"`
	Status    Status        `json:"status"`
	Result    *PromptResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type FoundationModel struct {
	ID               string   `json:"model_id"`
	Name             string   `json:"model_name"`
	Provider         string   `json:"provider_name"`
	ARN              string   `json:"model_arn"`
	InputModalities  []string `json:"input_modalities"`
	OutputModalities []string `json:"output_modalities"`
	Customizations   []string `json:"customizations_supported"`
	InferenceTypes   []string `json:"inference_types_supported"`
}

type ModelFilter struct {
	Provider       string `json:"provider,omitempty" jsonschema:"optional provider name, e.g. Anthropic"`
	OutputModality string `json:"output_modality,omitempty" jsonschema:"optional output modality: TEXT, IMAGE or EMBEDDING"`
}

// One persisted invocation
type HistoryEntry struct {
	RequestID string        `json:"request_id"`
	ModelID   string        `json:"model_id"`
	Variant   string        `json:"variant"`
	Prompt    string        `json:"prompt"`
	Text      string        `json:"text,omitempty"`
	Status    Status        `json:"status"`
	Attempts  int           `json:"attempts"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
	CreatedAt time.Time     `json:"created_at"`
}
