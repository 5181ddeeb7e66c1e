package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/rs/zerolog"
)

type fakeQuerier struct {
	execSQL  []string
	execArgs [][]any
	execErr  error

	queryArgs []any
	queryErr  error
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queryArgs = args
	return nil, f.queryErr
}

func newTestStore(db querier) *Store {
	logger := zerolog.Nop()
	return &Store{db: db, logger: &logger}
}

func TestStore_Record(t *testing.T) {
	db := &fakeQuerier{}
	store := newTestStore(db)

	createdAt := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	err := store.Record(context.Background(), models.HistoryEntry{
		RequestID: "req-1",
		ModelID:   "anthropic.claude-v2",
		Variant:   "completion",
		Prompt:    "room is hot",
		Text:      "open a window",
		Status:    models.StatusSucceeded,
		Attempts:  2,
		Duration:  1500 * time.Millisecond,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "INSERT INTO prompt_history") {
		t.Fatalf("unexpected statements: %v", db.execSQL)
	}

	args := db.execArgs[0]
	if len(args) != 10 {
		t.Fatalf("Expected 10 args, got %d", len(args))
	}
	if args[0] != "req-1" || args[5] != "succeeded" || args[6] != 2 {
		t.Errorf("unexpected args: %v", args)
	}
	if args[8] != int64(1500) {
		t.Errorf("Expected duration in ms, got %v", args[8])
	}
	if args[9] != createdAt {
		t.Errorf("Expected created_at to be kept, got %v", args[9])
	}
}

func TestStore_Record_DefaultsCreatedAt(t *testing.T) {
	db := &fakeQuerier{}
	store := newTestStore(db)

	if err := store.Record(context.Background(), models.HistoryEntry{RequestID: "req-2"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	createdAt, ok := db.execArgs[0][9].(time.Time)
	if !ok || createdAt.IsZero() {
		t.Errorf("Expected created_at to be set, got %v", db.execArgs[0][9])
	}
}

func TestStore_Record_Error(t *testing.T) {
	dbErr := errors.New("connection refused")
	store := newTestStore(&fakeQuerier{execErr: dbErr})

	err := store.Record(context.Background(), models.HistoryEntry{RequestID: "req-3"})
	if !errors.Is(err, dbErr) {
		t.Errorf("Expected wrapped db error, got %v", err)
	}
}

func TestStore_Recent_DefaultLimit(t *testing.T) {
	queryErr := errors.New("relation does not exist")
	db := &fakeQuerier{queryErr: queryErr}
	store := newTestStore(db)

	_, err := store.Recent(context.Background(), 0)
	if !errors.Is(err, queryErr) {
		t.Errorf("Expected wrapped query error, got %v", err)
	}
	if len(db.queryArgs) != 1 || db.queryArgs[0] != DefaultLimit {
		t.Errorf("Expected default limit %d, got %v", DefaultLimit, db.queryArgs)
	}
}

func TestStore_Migrate(t *testing.T) {
	db := &fakeQuerier{}
	store := newTestStore(db)

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS prompt_history") {
		t.Errorf("unexpected migration statements: %v", db.execSQL)
	}
}
