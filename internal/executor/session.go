package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
)

var ErrInFlight = errors.New("an invocation is already in progress")

// Session drives a single interactive surface: one submission at a time,
// and the last successful output stays visible until a new one replaces it.
type Session struct {
	executor *Executor
	inFlight atomic.Bool

	mu     sync.RWMutex
	output string
	last   models.PromptResult
}

func NewSession(executor *Executor) *Session {
	return &Session{executor: executor}
}

// Submit runs the prompt unless another submission is still running.
// On failure the previous output is kept.
func (s *Session) Submit(ctx context.Context, prompt string) (models.PromptResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.PromptResult{}, ErrInFlight
	}
	defer s.inFlight.Store(false)

	result, err := s.executor.Execute(ctx, models.PromptRequest{Prompt: prompt})
	if err != nil {
		return result, err
	}

	s.mu.Lock()
	s.output = result.Text
	s.last = result
	s.mu.Unlock()

	return result, nil
}

func (s *Session) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.output
}

func (s *Session) Last() models.PromptResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Session) Busy() bool {
	return s.inFlight.Load()
}
