package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// querier is satisfied by *pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	db     querier
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func New(ctx context.Context, databaseURL string, logger *zerolog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		db:     pool,
		pool:   pool,
		logger: logger,
	}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const createTable = `
CREATE TABLE IF NOT EXISTS prompt_history (
	id          BIGSERIAL PRIMARY KEY,
	request_id  TEXT        NOT NULL,
	model_id    TEXT        NOT NULL,
	variant     TEXT        NOT NULL,
	prompt      TEXT        NOT NULL,
	text        TEXT        NOT NULL DEFAULT '',
	status      TEXT        NOT NULL,
	attempts    INTEGER     NOT NULL,
	error       TEXT        NOT NULL DEFAULT '',
	duration_ms BIGINT      NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create prompt_history table: %w", err)
	}
	return nil
}
