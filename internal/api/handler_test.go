package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/retry"
	"github.com/rs/zerolog"
)

type fakeService struct {
	result models.PromptResult
	err    error
	got    models.PromptRequest

	models    []models.FoundationModel
	modelsErr error
	filter    models.ModelFilter
}

func (f *fakeService) Execute(ctx context.Context, req models.PromptRequest) (models.PromptResult, error) {
	f.got = req
	return f.result, f.err
}

func (f *fakeService) ListModels(ctx context.Context, filter models.ModelFilter) ([]models.FoundationModel, error) {
	f.filter = filter
	return f.models, f.modelsErr
}

type fakeHistory struct {
	entries []models.HistoryEntry
	limit   int
}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	f.limit = limit
	return f.entries, nil
}

func newTestServer(service PromptService, history HistoryReader) http.Handler {
	logger := zerolog.Nop()
	return NewContainer(NewHandler(service, history, "anthropic.claude-v2", &logger))
}

func postPrompt(t *testing.T, server http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prompt", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	server := newTestServer(&fakeService{}, nil)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" || response.ModelID != "anthropic.claude-v2" {
		t.Errorf("unexpected response: %+v", response)
	}
}

func TestAPI_Prompt_Success(t *testing.T) {
	service := &fakeService{result: models.PromptResult{ID: "req-1", Text: "open a window", Attempts: 1}}
	server := newTestServer(service, nil)

	recorder := postPrompt(t, server, `{"id":"req-1","prompt":"room is hot","variant":"completion"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var result models.PromptResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.Text != "open a window" {
		t.Errorf("unexpected result: %+v", result)
	}
	if service.got.Prompt != "room is hot" || service.got.Variant != "completion" {
		t.Errorf("unexpected request passed through: %+v", service.got)
	}
}

func TestAPI_Prompt_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty prompt", fmt.Errorf("format: %w", prechecks.ErrEmptyPrompt), http.StatusBadRequest},
		{"too long", fmt.Errorf("length: %w", prechecks.ErrPromptTooLong), http.StatusBadRequest},
		{"bad variant", fmt.Errorf("%w: unknown", executor.ErrInvalidRequest), http.StatusBadRequest},
		{"exhausted", fmt.Errorf("%w (3): %w", retry.ErrAttemptsExhausted, errors.New("throttled")), http.StatusBadGateway},
		{"deadline", fmt.Errorf("retry aborted: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(&fakeService{err: tt.err}, nil)

			recorder := postPrompt(t, server, `{"prompt":"room is hot"}`)
			if recorder.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, recorder.Code)
			}

			var response middleware.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if response.Details != tt.err.Error() {
				t.Errorf("Expected details %q, got %q", tt.err.Error(), response.Details)
			}
		})
	}
}

func TestAPI_Prompt_InvalidBody(t *testing.T) {
	server := newTestServer(&fakeService{}, nil)

	recorder := postPrompt(t, server, `{"prompt":`)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestAPI_ListModels(t *testing.T) {
	service := &fakeService{models: []models.FoundationModel{{ID: "anthropic.claude-v2", Provider: "Anthropic"}}}
	server := newTestServer(service, nil)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/models?provider=Anthropic&output_modality=TEXT", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if service.filter.Provider != "Anthropic" || service.filter.OutputModality != "TEXT" {
		t.Errorf("unexpected filter: %+v", service.filter)
	}

	var list []models.FoundationModel
	if err := json.Unmarshal(recorder.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(list) != 1 || list[0].ID != "anthropic.claude-v2" {
		t.Errorf("unexpected models: %+v", list)
	}
}

func TestAPI_ListModels_Error(t *testing.T) {
	server := newTestServer(&fakeService{modelsErr: errors.New("AccessDeniedException")}, nil)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/models", nil))

	if recorder.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", recorder.Code)
	}
}

func TestAPI_History(t *testing.T) {
	history := &fakeHistory{entries: []models.HistoryEntry{{RequestID: "req-1", Status: models.StatusSucceeded}}}
	server := newTestServer(&fakeService{}, history)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=5", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if history.limit != 5 {
		t.Errorf("Expected limit 5, got %d", history.limit)
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(recorder.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(entries) != 1 || entries[0].RequestID != "req-1" || entries[0].Status != models.StatusSucceeded {
		t.Errorf("unexpected history: %+v", entries)
	}
}

func TestAPI_History_NotConfigured(t *testing.T) {
	server := newTestServer(&fakeService{}, nil)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", recorder.Code)
	}
}

func TestAPI_History_InvalidLimit(t *testing.T) {
	server := newTestServer(&fakeService{}, &fakeHistory{})

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=-1", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestAPI_OpenAPIDocument(t *testing.T) {
	server := newTestServer(&fakeService{}, nil)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, OpenAPIPath, nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Prompt Agent API") || !strings.Contains(body, "/api/v1/prompt") {
		t.Errorf("unexpected OpenAPI document: %s", body)
	}
}
