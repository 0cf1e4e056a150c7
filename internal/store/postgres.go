package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/eternal-quest/internal/goals"
	"go.uber.org/zap"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS quest_goals (
	tracker_id UUID NOT NULL,
	position INTEGER NOT NULL,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	value INTEGER NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	completed_count INTEGER NOT NULL DEFAULT 0,
	target_count INTEGER NOT NULL DEFAULT 0,
	bonus_value INTEGER NOT NULL DEFAULT 0,
	progress INTEGER NOT NULL DEFAULT 0,
	target_progress INTEGER NOT NULL DEFAULT 0,
	progress_value INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (tracker_id, position)
)`

// PostgresStore keeps the goals of one tracker in PostgreSQL
type PostgresStore struct {
	pool      *pgxpool.Pool
	trackerID uuid.UUID
	logger    *zap.Logger
}

// ConnectPostgres establishes a connection pool and makes sure the goal table exists.
func ConnectPostgres(ctx context.Context, databaseURL string, trackerID uuid.UUID, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %w", goals.ErrSourceUnavailable, err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", goals.ErrSourceUnavailable, err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to create schema: %w", goals.ErrSourceUnavailable, err)
	}

	logger.Debug("connected to postgres store", zap.String("tracker_id", trackerID.String()))
	return &PostgresStore{pool: pool, trackerID: trackerID, logger: logger}, nil
}

// SaveGoals replaces the tracker's rows in one transaction, sending the inserts as a batch.
func (s *PostgresStore) SaveGoals(ctx context.Context, gs []goals.Goal) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", goals.ErrDestinationUnwritable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM quest_goals WHERE tracker_id = $1`, s.trackerID); err != nil {
		return fmt.Errorf("%w: failed to clear goals: %w", goals.ErrDestinationUnwritable, err)
	}

	batch := &pgx.Batch{}
	for i, g := range gs {
		args := append([]any{s.trackerID, i}, goalArgs(g)...)
		batch.Queue(
			`INSERT INTO quest_goals (tracker_id, position, `+goalColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			args...,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for _, g := range gs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("%w: failed to insert goal %q: %w", goals.ErrDestinationUnwritable, g.Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%w: failed to insert goals: %w", goals.ErrDestinationUnwritable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit goals: %w", goals.ErrDestinationUnwritable, err)
	}
	s.logger.Debug("saved goals to postgres", zap.Int("count", len(gs)))
	return nil
}

// LoadGoals returns the tracker's goals in insertion order.
func (s *PostgresStore) LoadGoals(ctx context.Context) ([]goals.Goal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+goalColumns+` FROM quest_goals WHERE tracker_id = $1 ORDER BY position`,
		s.trackerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query goals: %w", goals.ErrSourceUnavailable, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (goals.Goal, error) {
		return scanGoal(row)
	})
	if err != nil {
		if errors.Is(err, goals.ErrMalformedRecord) || errors.Is(err, goals.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", goals.ErrSourceUnavailable, err)
	}

	s.logger.Debug("loaded goals from postgres", zap.Int("count", len(out)))
	return out, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
