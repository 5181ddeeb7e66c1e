package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"go.yaml.in/yaml/v3"
)

const DefaultPath = "configs/prompt.yaml"

const DefaultSystem = `You are an assistant that helps people make their room comfortable.
Read the user's description of the room and reply ONLY with a JSON object of the form
{"summary": "<one sentence>", "actions": ["<short action>", ...]}.`

func LoadPromptConfig() (*Config, error) {
	path := os.Getenv("PROMPT_CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}

	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	defaults := llm.DefaultPayloadOptions()
	policy := retry.DefaultPolicy()

	if cfg.Prompt.System == "" {
		cfg.Prompt.System = DefaultSystem
	}
	if cfg.Prompt.Variant == "" {
		cfg.Prompt.Variant = string(llm.VariantMessages)
	}
	if cfg.Prompt.AnthropicVersion == "" {
		cfg.Prompt.AnthropicVersion = defaults.AnthropicVersion
	}
	if cfg.Prompt.Messages.MaxTokens == 0 {
		cfg.Prompt.Messages.MaxTokens = defaults.MaxTokens
	}

	completion := &cfg.Prompt.Completion
	if completion.MaxTokensToSample == 0 {
		completion.MaxTokensToSample = defaults.MaxTokensToSample
	}
	if completion.Temperature == nil {
		completion.Temperature = &defaults.Temperature
	}
	if completion.TopK == 0 {
		completion.TopK = defaults.TopK
	}
	if completion.TopP == nil {
		completion.TopP = &defaults.TopP
	}
	if len(completion.StopSequences) == 0 {
		completion.StopSequences = defaults.StopSequences
	}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = policy.MaxAttempts
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = policy.BaseDelay
	}

	if cfg.Prechecks.MaxPromptRunes == 0 {
		cfg.Prechecks.MaxPromptRunes = prechecks.DefaultMaxPromptRunes
	}
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := llm.ParseVariant(c.Prompt.Variant); err != nil {
		errs = append(errs, err)
	}
	if c.Prompt.Messages.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("negative max_tokens: %d", c.Prompt.Messages.MaxTokens))
	}

	completion := c.Prompt.Completion
	if completion.MaxTokensToSample < 0 {
		errs = append(errs, fmt.Errorf("negative max_tokens_to_sample: %d", completion.MaxTokensToSample))
	}
	if completion.Temperature != nil && (*completion.Temperature < 0 || *completion.Temperature > 1) {
		errs = append(errs, fmt.Errorf("temperature %.2f out of range [0.0, 1.0]", *completion.Temperature))
	}
	if completion.TopP != nil && (*completion.TopP < 0 || *completion.TopP > 1) {
		errs = append(errs, fmt.Errorf("top_p %.2f out of range [0.0, 1.0]", *completion.TopP))
	}
	if completion.TopK < 0 {
		errs = append(errs, fmt.Errorf("negative top_k: %d", completion.TopK))
	}

	if c.Retry.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("negative max_attempts: %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseDelay < 0 {
		errs = append(errs, fmt.Errorf("negative base_delay: %s", c.Retry.BaseDelay))
	}
	if c.Prechecks.MaxPromptRunes < 0 {
		errs = append(errs, fmt.Errorf("negative max_prompt_runes: %d", c.Prechecks.MaxPromptRunes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid prompt config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) DefaultVariant() llm.Variant {
	variant, err := llm.ParseVariant(c.Prompt.Variant)
	if err != nil {
		return llm.VariantMessages
	}
	return variant
}

func (c *Config) PayloadOptions() llm.PayloadOptions {
	opts := llm.DefaultPayloadOptions()
	opts.AnthropicVersion = c.Prompt.AnthropicVersion
	opts.MaxTokens = c.Prompt.Messages.MaxTokens
	opts.MaxTokensToSample = c.Prompt.Completion.MaxTokensToSample
	opts.TopK = c.Prompt.Completion.TopK
	opts.StopSequences = c.Prompt.Completion.StopSequences
	if c.Prompt.Completion.Temperature != nil {
		opts.Temperature = *c.Prompt.Completion.Temperature
	}
	if c.Prompt.Completion.TopP != nil {
		opts.TopP = *c.Prompt.Completion.TopP
	}
	return opts
}

func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Retry.MaxAttempts,
		BaseDelay:   c.Retry.BaseDelay,
	}
}
