package redis

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/rs/zerolog"
)

func closedAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()
	return addr
}

func TestConnect_Unreachable(t *testing.T) {
	logger := zerolog.Nop()
	var delays []time.Duration

	cfg := NewConfig(closedAddr(t), "", 3)
	_, err := Connect(context.Background(), cfg, &logger, retry.WithSleep(func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}))

	if !errors.Is(err, retry.ErrAttemptsExhausted) {
		t.Fatalf("Expected ErrAttemptsExhausted, got %v", err)
	}
	want := []time.Duration{500 * time.Millisecond, 2 * time.Second}
	if len(delays) != 2 || delays[0] != want[0] || delays[1] != want[1] {
		t.Errorf("Expected delays %v, got %v", want, delays)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("localhost:6379", "secret", 5)
	if cfg.Addr != "localhost:6379" || cfg.Password != "secret" || cfg.MaxRetries != 5 || cfg.DB != 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
