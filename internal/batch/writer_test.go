package batch

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
)

func sampleOutcomes() []models.PromptOutcome {
	return []models.PromptOutcome{
		{RequestID: "a", Status: models.StatusSucceeded, Result: &models.PromptResult{ID: "a", Text: "ok", Attempts: 1, Duration: time.Second}},
		{RequestID: "b", Status: models.StatusSucceeded, Result: &models.PromptResult{ID: "b", Text: "ok", Attempts: 3, Duration: 3 * time.Second}},
		{RequestID: "c", Status: models.StatusFailed, Error: "max attempts exceeded (3): throttled"},
		{RequestID: "d", Status: models.StatusRejected, Error: "format: prompt is empty"},
	}
}

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatJSONL, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	for _, outcome := range sampleOutcomes() {
		if err := writer.Write(outcome); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}

	var first models.PromptOutcome
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSONL line: %v", err)
	}
	if first.RequestID != "a" || first.Result == nil || first.Result.Text != "ok" {
		t.Errorf("unexpected first line: %+v", first)
	}
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatSummary, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	for _, outcome := range sampleOutcomes() {
		_ = writer.Write(outcome)
	}
	if buf.Len() != 0 {
		t.Errorf("summary should only be written on Close")
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("invalid summary: %v", err)
	}
	if summary.Total != 4 || summary.Succeeded != 2 || summary.Failed != 1 || summary.Rejected != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.TotalAttempts != 4 || summary.Retried != 1 {
		t.Errorf("unexpected attempt stats: %+v", summary)
	}
	if summary.AvgDuration != 2*time.Second {
		t.Errorf("Expected avg duration 2s, got %s", summary.AvgDuration)
	}
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "csv", newTestLogger()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestMultiWriter(t *testing.T) {
	var jsonl, summary bytes.Buffer
	first, _ := NewWriter(&jsonl, FormatJSONL, newTestLogger())
	second, _ := NewWriter(&summary, FormatSummary, newTestLogger())

	writer := NewMultiWriter(first, second)
	for _, outcome := range sampleOutcomes() {
		if err := writer.Write(outcome); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if strings.Count(jsonl.String(), "\n") != 4 {
		t.Errorf("unexpected jsonl output: %s", jsonl.String())
	}
	if !strings.Contains(summary.String(), `"total": 4`) {
		t.Errorf("unexpected summary output: %s", summary.String())
	}
}
