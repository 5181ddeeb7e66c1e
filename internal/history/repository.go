package history

import (
	"context"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
)

const DefaultLimit = 20

func (s *Store) Record(ctx context.Context, entry models.HistoryEntry) error {
	query := `
	INSERT INTO prompt_history
	  (request_id, model_id, variant, prompt, text, status, attempts, error, duration_ms, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(ctx, query,
		entry.RequestID,
		entry.ModelID,
		entry.Variant,
		entry.Prompt,
		entry.Text,
		string(entry.Status),
		entry.Attempts,
		entry.Error,
		entry.Duration.Milliseconds(),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record request %s: %w", entry.RequestID, err)
	}

	s.logger.Debug().Str("request_id", entry.RequestID).Str("status", string(entry.Status)).Msg("history recorded")
	return nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
	SELECT request_id, model_id, variant, prompt, text, status, attempts, error, duration_ms, created_at
	FROM prompt_history
	ORDER BY created_at DESC
	LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to query prompt history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		var status string
		var durationMs int64

		if err := rows.Scan(
			&entry.RequestID,
			&entry.ModelID,
			&entry.Variant,
			&entry.Prompt,
			&entry.Text,
			&status,
			&entry.Attempts,
			&entry.Error,
			&durationMs,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		entry.Status = models.Status(status)
		entry.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}
