package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const PayloadField = "payload"

type Processor interface {
	Execute(ctx context.Context, req models.PromptRequest) (models.PromptResult, error)
}

// streamClient is the subset of *redis.Client used by the consumer.
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type Consumer struct {
	client       streamClient
	stream       string
	resultStream string
	groupID      string
	consumerName string
	processor    Processor
	logger       *zerolog.Logger
}

func NewConsumer(client streamClient, cfg *RedisStreamConfig, processor Processor, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		processor:    processor,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", c.groupID, err)
	}
	return nil
}

// Start first replays messages this consumer read but never acked, then reads new ones.
// Prompts are processed one at a time per consumer; scale out by running more consumers
// in the same group.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("result_stream", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	pending, pendingFrom := true, "0"
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		args := &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}
		if pending {
			args.Streams = []string{c.stream, pendingFrom}
			args.Block = -1
		}

		msgs, err := c.client.XReadGroup(ctx, args).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		if pending && countMessages(msgs) == 0 {
			c.logger.Debug().Str("consumer", c.consumerName).Msg("No pending messages left")
			pending = false
			continue
		}

		for _, stream := range msgs {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
				if pending {
					pendingFrom = msg.ID
				}
			}
		}
	}
}

func countMessages(streams []redis.XStream) int {
	n := 0
	for _, stream := range streams {
		n += len(stream.Messages)
	}
	return n
}

func (c *Consumer) Stop() error {
	return nil
}

// process publishes and acks even after shutdown has started.
// A prompt interrupted by shutdown is left pending instead.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")
	writeCtx := context.WithoutCancel(ctx)

	payload, ok := msg.Values[PayloadField].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.publish(writeCtx, models.PromptOutcome{
			RequestID: msg.ID,
			Status:    models.StatusRejected,
			Error:     "missing payload field",
		})
		c.ack(writeCtx, msg.ID)
		return
	}

	var request models.PromptRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.publish(writeCtx, models.PromptOutcome{
			RequestID: msg.ID,
			Status:    models.StatusRejected,
			Error:     fmt.Sprintf("invalid payload: %v", err),
		})
		c.ack(writeCtx, msg.ID) // bad message, ACK to skip it
		return
	}

	if request.ID == "" {
		request.ID = msg.ID
	}

	result, err := c.processor.Execute(ctx, request)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		// interrupted by shutdown: leave it pending for the next start
		c.logger.Warn().Err(err).Str("id", msg.ID).Msg("Prompt interrupted, message left pending")
		return
	}
	outcome := executor.Outcome(request.ID, result, err)

	c.logger.Info().
		Str("id", msg.ID).
		Str("request_id", outcome.RequestID).
		Str("status", string(outcome.Status)).
		Int("attempts", result.Attempts).
		Msg("Prompt processed")

	c.publish(writeCtx, outcome)
	c.ack(writeCtx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, outcome models.PromptOutcome) {
	if c.resultStream == "" {
		return
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", outcome.RequestID).Msg("Failed to encode outcome")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{PayloadField: string(data)},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", outcome.RequestID).Msg("Failed to publish outcome")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
