package executor

import (
	"errors"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/prechecks"
)

// Outcome converts the return values of Execute into the message written by the stream and batch runners.
func Outcome(requestID string, result models.PromptResult, err error) models.PromptOutcome {
	if result.ID != "" {
		requestID = result.ID
	}

	if err == nil {
		return models.PromptOutcome{
			RequestID: requestID,
			Status:    models.StatusSucceeded,
			Result:    &result,
		}
	}

	return models.PromptOutcome{
		RequestID: requestID,
		Status:    StatusOf(err),
		Error:     err.Error(),
	}
}

// StatusOf tells local rejections apart from failed remote calls.
func StatusOf(err error) models.Status {
	switch {
	case err == nil:
		return models.StatusSucceeded
	case errors.Is(err, prechecks.ErrEmptyPrompt),
		errors.Is(err, prechecks.ErrPromptTooLong),
		errors.Is(err, prechecks.ErrInvalidEncoding),
		errors.Is(err, ErrInvalidRequest):
		return models.StatusRejected
	default:
		return models.StatusFailed
	}
}
