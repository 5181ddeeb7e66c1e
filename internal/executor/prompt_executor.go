package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=prompt_executor.go -destination=mocks/mock_executor.go -package=mocks

// PrecheckRunner validates the prompt before any remote call
type PrecheckRunner interface {
	Run(prompt string) error
}

// ModelCatalog lists the foundation models available to the account
type ModelCatalog interface {
	ListFoundationModels(ctx context.Context, filter models.ModelFilter) ([]models.FoundationModel, error)
}

// Recorder persists finished invocations
type Recorder interface {
	Record(ctx context.Context, entry models.HistoryEntry) error
}

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoCatalog      = errors.New("model catalog not configured")
)

type Settings struct {
	ModelID        string
	System         string
	Variant        llm.Variant
	PayloadOptions llm.PayloadOptions
}

type Executor struct {
	invoker   llm.Invoker
	catalog   ModelCatalog
	prechecks PrecheckRunner
	retrier   *retry.Retrier
	recorder  Recorder
	settings  Settings
	logger    *zerolog.Logger
}

func NewExecutor(
	invoker llm.Invoker,
	catalog ModelCatalog,
	prechecks PrecheckRunner,
	retrier *retry.Retrier,
	settings Settings,
	logger *zerolog.Logger,
) *Executor {
	if settings.Variant == "" {
		settings.Variant = llm.VariantMessages
	}

	return &Executor{
		invoker:   invoker,
		catalog:   catalog,
		prechecks: prechecks,
		retrier:   retrier,
		settings:  settings,
		logger:    logger,
	}
}

// WithRecorder enables history recording. A nil recorder disables it.
func (e *Executor) WithRecorder(recorder Recorder) *Executor {
	e.recorder = recorder
	return e
}

func (e *Executor) Settings() Settings {
	return e.settings
}

// Execute runs one invocation. Calls may overlap; every call owns its own retry state.
func (e *Executor) Execute(ctx context.Context, req models.PromptRequest) (models.PromptResult, error) {
	now := time.Now()

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	result := models.PromptResult{
		ID:      id,
		ModelID: e.settings.ModelID,
		Variant: string(e.settings.Variant),
	}

	variant := e.settings.Variant
	if req.Variant != "" {
		parsed, err := llm.ParseVariant(req.Variant)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		variant = parsed
	}
	result.Variant = string(variant)

	if err := e.prechecks.Run(req.Prompt); err != nil {
		e.logger.Warn().Err(err).Str("request_id", id).Msg("prompt rejected")
		metrics.InvocationCount.WithLabelValues(string(variant), string(models.StatusRejected)).Inc()
		return result, err
	}

	system := req.System
	if system == "" {
		system = e.settings.System
	}

	request, err := llm.BuildRequest(e.settings.ModelID, variant, system, req.Prompt, e.settings.PayloadOptions)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	e.logger.Info().
		Str("request_id", id).
		Str("model_id", e.settings.ModelID).
		Str("variant", string(variant)).
		Msg("invoking model")

	inference, err := retry.Do(ctx, e.retrier, func(ctx context.Context, attempt int) (llm.InferenceResult, error) {
		result.Attempts = attempt
		metrics.AttemptCount.WithLabelValues(string(variant)).Inc()

		body, err := e.invoker.Invoke(ctx, request)
		if err != nil {
			return llm.InferenceResult{}, err
		}
		return llm.DecodeResponse(variant, body)
	})

	result.Duration = time.Since(now)
	metrics.InvocationDuration.WithLabelValues(string(variant)).Observe(result.Duration.Seconds())

	if err != nil {
		if errors.Is(err, retry.ErrAttemptsExhausted) {
			metrics.ExhaustedCount.WithLabelValues(string(variant)).Inc()
		}
		metrics.InvocationCount.WithLabelValues(string(variant), string(models.StatusFailed)).Inc()

		e.logger.Error().
			Err(err).
			Str("request_id", id).
			Int("attempts", result.Attempts).
			Dur("duration", result.Duration).
			Msg("invocation failed")

		e.record(ctx, req.Prompt, result, err)
		return result, err
	}

	result.Text = inference.Text
	result.StopReason = inference.StopReason
	metrics.InvocationCount.WithLabelValues(string(variant), string(models.StatusSucceeded)).Inc()

	e.logger.Info().
		Str("request_id", id).
		Int("attempts", result.Attempts).
		Str("stop_reason", result.StopReason).
		Dur("duration", result.Duration).
		Msg("invocation complete")

	e.record(ctx, req.Prompt, result, nil)
	return result, nil
}

func (e *Executor) ListModels(ctx context.Context, filter models.ModelFilter) ([]models.FoundationModel, error) {
	if e.catalog == nil {
		return nil, ErrNoCatalog
	}
	return e.catalog.ListFoundationModels(ctx, filter)
}

func (e *Executor) record(ctx context.Context, prompt string, result models.PromptResult, invokeErr error) {
	if e.recorder == nil {
		return
	}

	entry := models.HistoryEntry{
		RequestID: result.ID,
		ModelID:   result.ModelID,
		Variant:   result.Variant,
		Prompt:    prompt,
		Text:      result.Text,
		Status:    models.StatusSucceeded,
		Attempts:  result.Attempts,
		Duration:  result.Duration,
		CreatedAt: time.Now(),
	}
	if invokeErr != nil {
		entry.Status = models.StatusFailed
		entry.Error = invokeErr.Error()
	}

	// a cancelled request still gets its history row
	if err := e.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		e.logger.Error().Err(err).Str("request_id", result.ID).Msg("failed to record history")
	}
}
