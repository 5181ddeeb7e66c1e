package stream

import (
	"context"
	"fmt"

	red "github.com/povarna/generative-ai-agents/prompt-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

const (
	DefaultStream       = "prompt-events"
	DefaultResultStream = "prompt-results"
	DefaultGroup        = "prompt-group"
)

type StreamConfig struct {
	Provider    string // redis only for now
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	processor redis.Processor,
	logger *zerolog.Logger,
) (StreamConsumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := red.Connect(ctx, red.NewConfig(
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			cfg.RedisConfig.ConnectRetries,
		), logger)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.RedisConfig, processor, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", provider)
	}
}
