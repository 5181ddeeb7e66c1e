package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Config struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries int
	// BaseDelay feeds the same quadratic backoff used for model calls.
	BaseDelay time.Duration
}

func NewConfig(addr, password string, maxRetries int) Config {
	return Config{
		Addr:       addr,
		Password:   password,
		MaxRetries: maxRetries,
		BaseDelay:  500 * time.Millisecond,
	}
}

// Connect pings Redis until it answers or the retries are used up.
func Connect(ctx context.Context, cfg Config, logger *zerolog.Logger, opts ...retry.Option) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	retrier := retry.NewRetrier(retry.Policy{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.BaseDelay,
	}, logger, opts...)

	attempts, err := retry.Do(ctx, retrier, func(ctx context.Context, attempt int) (int, error) {
		logger.Info().Str("addr", cfg.Addr).Int("attempt", attempt).Msg("Connecting to Redis")
		return attempt, client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	logger.Info().Int("attempts_needed", attempts).Msg("Redis connected")
	return client, nil
}
