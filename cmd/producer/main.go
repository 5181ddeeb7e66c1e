package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	red "github.com/povarna/generative-ai-agents/prompt-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/stream"
	streamredis "github.com/povarna/generative-ai-agents/prompt-agent/internal/stream/redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	data := flag.String("d", "", "Inline JSON PromptRequest")
	prompt := flag.String("p", "", "Prompt text (shorthand for -d '{\"prompt\":\"...\"}')")
	variant := flag.String("variant", "", "Request format for -p: messages or completion")
	streamName := flag.String("stream", stream.DefaultStream, "Stream name")
	flag.Parse()

	if *data == "" && *prompt == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>' | -p '<prompt>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	_ = godotenv.Load()
	log.Logger = logger.New(os.Getenv("LOG_LEVEL"))

	if err := run(*data, *prompt, *variant, *streamName); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, prompt, variant, streamName string) error {
	req, err := buildRequest(data, prompt, variant)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	cfg := setup.LoadConfig()
	appLogger := log.Logger

	ctx := context.Background()
	client, err := red.Connect(ctx, red.NewConfig(cfg.RedisAddr, cfg.RedisPassword, 3), &appLogger)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]any{streamredis.PayloadField: string(payload)},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", streamName).Str("id", id).Str("request_id", req.ID).Msg("Published successfully!")
	return nil
}

func buildRequest(data, prompt, variant string) (models.PromptRequest, error) {
	if data == "" {
		return models.PromptRequest{Prompt: prompt, Variant: variant}, nil
	}

	var req models.PromptRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return req, fmt.Errorf("invalid PromptRequest JSON: %w", err)
	}
	return req, nil
}
