package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type Writer interface {
	Write(outcome models.PromptOutcome) error
	Close() error
}

func NewWriter(output io.Writer, format string, logger *zerolog.Logger) (Writer, error) {
	switch format {
	case FormatJSONL, "":
		return &jsonlWriter{encoder: json.NewEncoder(output)}, nil
	case FormatSummary:
		return &summaryWriter{output: output, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type jsonlWriter struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func (w *jsonlWriter) Write(outcome models.PromptOutcome) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(outcome)
}

func (w *jsonlWriter) Close() error {
	return nil
}

type Summary struct {
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	Rejected      int           `json:"rejected"`
	TotalAttempts int           `json:"total_attempts"`
	Retried       int           `json:"retried"`
	AvgDuration   time.Duration `json:"avg_duration_ns"`

	totalDuration time.Duration
}

func (s *Summary) add(outcome models.PromptOutcome) {
	s.Total++

	switch outcome.Status {
	case models.StatusSucceeded:
		s.Succeeded++
	case models.StatusRejected:
		s.Rejected++
	default:
		s.Failed++
	}

	if outcome.Result != nil {
		s.TotalAttempts += outcome.Result.Attempts
		if outcome.Result.Attempts > 1 {
			s.Retried++
		}
		s.totalDuration += outcome.Result.Duration
		if s.Succeeded > 0 {
			s.AvgDuration = s.totalDuration / time.Duration(s.Succeeded)
		}
	}
}

// summaryWriter only aggregates; the summary is written on Close.
type summaryWriter struct {
	mu      sync.Mutex
	output  io.Writer
	summary Summary
	logger  *zerolog.Logger
}

func (w *summaryWriter) Write(outcome models.PromptOutcome) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.summary.add(outcome)
	return nil
}

func (w *summaryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.MarshalIndent(w.summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if _, err := w.output.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	w.logger.Info().
		Int("total", w.summary.Total).
		Int("succeeded", w.summary.Succeeded).
		Int("failed", w.summary.Failed).
		Int("rejected", w.summary.Rejected).
		Msg("Summary written")
	return nil
}

type multiWriter []Writer

// NewMultiWriter writes every outcome to each writer in turn.
func NewMultiWriter(writers ...Writer) Writer {
	return multiWriter(writers)
}

func (m multiWriter) Write(outcome models.PromptOutcome) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(outcome); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiWriter) Close() error {
	var errs []error
	for _, w := range m {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
