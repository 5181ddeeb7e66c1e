package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/history"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

type PromptService interface {
	Execute(ctx context.Context, req models.PromptRequest) (models.PromptResult, error)
	ListModels(ctx context.Context, filter models.ModelFilter) ([]models.FoundationModel, error)
}

type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}

type Handler struct {
	service PromptService
	history HistoryReader
	modelID string
	logger  *zerolog.Logger
}

// NewHandler builds the handler. history may be nil when no database is configured.
func NewHandler(service PromptService, history HistoryReader, modelID string, logger *zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		history: history,
		modelID: modelID,
		logger:  logger,
	}
}

// POST /api/v1/prompt
// Body: PromptRequest
// Returns: PromptResult
func (h *Handler) Prompt(req *restful.Request, resp *restful.Response) {
	var promptRequest models.PromptRequest
	if err := req.ReadEntity(&promptRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", promptRequest.ID).
		Str("variant", promptRequest.Variant).
		Int("prompt_length", len(promptRequest.Prompt)).
		Msg("Start prompt")

	result, err := h.service.Execute(req.Request.Context(), promptRequest)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/models?provider=&output_modality=
func (h *Handler) ListModels(req *restful.Request, resp *restful.Response) {
	filter := models.ModelFilter{
		Provider:       req.QueryParameter("provider"),
		OutputModality: req.QueryParameter("output_modality"),
	}

	list, err := h.service.ListModels(req.Request.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list foundation models")
		middleware.HandleError(resp, err, http.StatusBadGateway)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, list)
}

// GET /api/v1/history?limit=
func (h *Handler) History(req *restful.Request, resp *restful.Response) {
	if h.history == nil {
		middleware.HandleError(resp, errors.New("history is not configured"), http.StatusNotFound)
		return
	}

	limit := history.DefaultLimit
	if limitStr := req.QueryParameter("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			middleware.HandleError(resp, errors.New("limit must be a positive integer"), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.history.Recent(req.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read history")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	resp.WriteHeaderAndEntity(http.StatusOK, entries)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: Version,
		ModelID: h.modelID,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, prechecks.ErrEmptyPrompt),
		errors.Is(err, prechecks.ErrPromptTooLong),
		errors.Is(err, prechecks.ErrInvalidEncoding),
		errors.Is(err, executor.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, retry.ErrAttemptsExhausted):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
