package config

import "time"

// Config represents the complete prompt configuration
type Config struct {
	Prompt    PromptConfig    `yaml:"prompt"`
	Retry     RetryConfig     `yaml:"retry"`
	Prechecks PrechecksConfig `yaml:"prechecks"`
}

// PromptConfig contains the system instruction and the model parameters of both request formats
type PromptConfig struct {
	System           string           `yaml:"system"`
	Variant          string           `yaml:"variant"`
	AnthropicVersion string           `yaml:"anthropic_version"`
	Messages         MessagesConfig   `yaml:"messages"`
	Completion       CompletionConfig `yaml:"completion"`
}

type MessagesConfig struct {
	MaxTokens int `yaml:"max_tokens"`
}

// CompletionConfig uses pointers where zero is a legitimate value
type CompletionConfig struct {
	MaxTokensToSample int      `yaml:"max_tokens_to_sample"`
	Temperature       *float64 `yaml:"temperature"`
	TopK              int      `yaml:"top_k"`
	TopP              *float64 `yaml:"top_p"`
	StopSequences     []string `yaml:"stop_sequences"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

type PrechecksConfig struct {
	MaxPromptRunes int `yaml:"max_prompt_runes"`
}
