package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"AWS_REGION", "CLAUDE_MODEL_ID", "PROMPT_API_PORT", "REDIS_CONNECT_RETRIES", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.AWSRegion != "ap-northeast-1" {
		t.Errorf("unexpected region: %s", cfg.AWSRegion)
	}
	if cfg.APIPort != "18080" || cfg.RedisRetries != 5 || cfg.DatabaseURL != "" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("CLAUDE_MODEL_ID", "anthropic.claude-v2")
	t.Setenv("REDIS_CONNECT_RETRIES", "not-a-number")

	cfg := LoadConfig()
	if cfg.AWSRegion != "us-west-2" || cfg.ClaudeModelID != "anthropic.claude-v2" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.RedisRetries != 5 {
		t.Errorf("Expected fallback retries 5, got %d", cfg.RedisRetries)
	}
}

func TestLoadPromptConfig_MissingFileUsesDefaults(t *testing.T) {
	logger := zerolog.Nop()

	t.Setenv("PROMPT_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := loadPromptConfig(&logger)
	if err != nil {
		t.Fatalf("loadPromptConfig failed: %v", err)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.BaseDelay != time.Second {
		t.Errorf("unexpected defaults: %+v", cfg.Retry)
	}
}

func TestLoadPromptConfig_InvalidFile(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "prompt.yaml")
	if err := os.WriteFile(path, []byte("prompt:\n  variant: chat\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PROMPT_CONFIG_PATH", path)

	if _, err := loadPromptConfig(&logger); err == nil {
		t.Error("Expected error for unknown variant")
	}
}

func TestNewRetrier_CountsFailures(t *testing.T) {
	logger := zerolog.Nop()
	var attempts []int

	policy := retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	retrier := NewRetrier(policy, &logger,
		retry.WithSleep(func(ctx context.Context, d time.Duration) error { return nil }),
	)
	if retrier.Policy() != policy {
		t.Errorf("unexpected policy: %+v", retrier.Policy())
	}

	_, err := retry.Do(context.Background(), retrier, func(ctx context.Context, attempt int) (string, error) {
		attempts = append(attempts, attempt)
		return "", errors.New("boom")
	})
	if !errors.Is(err, retry.ErrAttemptsExhausted) {
		t.Errorf("Expected ErrAttemptsExhausted, got %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("Expected 2 attempts, got %v", attempts)
	}
}
