package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/bedrock"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/config"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/history"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	ClaudeModelID      string
	APIPort            string
	RedisAddr          string
	RedisPassword      string
	RedisRetries       int
	DatabaseURL        string
	LogLevel           string
	ConsumerName       string
}

type Dependencies struct {
	Executor *executor.Executor
	Bedrock  *bedrock.Client
	History  *history.Store
	Prompt   *config.Config
	Logger   *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:          getEnv("AWS_REGION", "ap-northeast-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		ClaudeModelID:      getEnv("CLAUDE_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		APIPort:            getEnv("PROMPT_API_PORT", "18080"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisRetries:       getEnvInt("REDIS_CONNECT_RETRIES", 5),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ConsumerName:       getEnv("HOSTNAME", "prompt-agent"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	promptCfg, err := loadPromptConfig(logger)
	if err != nil {
		return nil, err
	}

	opts := []bedrock.Option{bedrock.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, bedrock.WithStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey))
	}

	bedrockClient, err := bedrock.NewClient(ctx, cfg.ClaudeModelID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	stageRunner := prechecks.NewStageRunner([]prechecks.Checker{
		prechecks.NewFormatChecker(),
		prechecks.NewLengthChecker(promptCfg.Prechecks.MaxPromptRunes),
	})

	retrier := NewRetrier(promptCfg.RetryPolicy(), logger)
	policy := retrier.Policy()
	logger.Info().
		Int("max_attempts", policy.MaxAttempts).
		Dur("base_delay", policy.BaseDelay).
		Str("model_id", cfg.ClaudeModelID).
		Msg("retry policy configured")

	exec := executor.NewExecutor(bedrockClient, bedrockClient, stageRunner, retrier, executor.Settings{
		ModelID:        cfg.ClaudeModelID,
		System:         promptCfg.Prompt.System,
		Variant:        promptCfg.DefaultVariant(),
		PayloadOptions: promptCfg.PayloadOptions(),
	}, logger)

	deps := &Dependencies{
		Executor: exec,
		Bedrock:  bedrockClient,
		Prompt:   promptCfg,
		Logger:   logger,
	}

	// History is optional
	if cfg.DatabaseURL != "" {
		store, err := history.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		exec.WithRecorder(store)
		deps.History = store
	}

	return deps, nil
}

func (d *Dependencies) Close() {
	if d.History != nil {
		d.History.Close()
	}
}

// NewRetrier builds the retrier used around every remote call, feeding failed attempts into metrics.
func NewRetrier(policy retry.Policy, logger *zerolog.Logger, opts ...retry.Option) *retry.Retrier {
	base := []retry.Option{
		retry.WithErrorCode(bedrock.ErrorCode),
		retry.WithOnFailure(func(attempt int, err error, delay time.Duration) {
			code := bedrock.ErrorCode(err)
			if code == "" {
				code = "unknown"
			}
			metrics.FailedAttemptCount.WithLabelValues(code).Inc()
		}),
	}
	return retry.NewRetrier(policy, logger, append(base, opts...)...)
}

func loadPromptConfig(logger *zerolog.Logger) (*config.Config, error) {
	promptCfg, err := config.LoadPromptConfig()
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("prompt config not found, using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt config: %w", err)
	}
	return promptCfg, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
