package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/eternal-quest/internal/goals"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS quest_goals (
	tracker_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	value INTEGER NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_count INTEGER NOT NULL DEFAULT 0,
	target_count INTEGER NOT NULL DEFAULT 0,
	bonus_value INTEGER NOT NULL DEFAULT 0,
	progress INTEGER NOT NULL DEFAULT 0,
	target_progress INTEGER NOT NULL DEFAULT 0,
	progress_value INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (tracker_id, position)
);`

// SQLiteStore keeps the goals of one tracker in a SQLite database
type SQLiteStore struct {
	db        *sql.DB
	trackerID uuid.UUID
	logger    *zap.Logger
}

// OpenSQLite opens the database at path, creating the file and schema if needed.
func OpenSQLite(ctx context.Context, path string, trackerID uuid.UUID, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open sqlite database: %w", goals.ErrSourceUnavailable, err)
	}
	// One connection: ":memory:" databases are per connection and SQLite has a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", goals.ErrSourceUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to create schema: %w", goals.ErrSourceUnavailable, err)
	}

	logger.Debug("opened sqlite store", zap.String("path", path), zap.String("tracker_id", trackerID.String()))
	return &SQLiteStore{db: db, trackerID: trackerID, logger: logger}, nil
}

// SaveGoals replaces the tracker's rows in a single transaction.
func (s *SQLiteStore) SaveGoals(ctx context.Context, gs []goals.Goal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", goals.ErrDestinationUnwritable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM quest_goals WHERE tracker_id = ?`, s.trackerID.String()); err != nil {
		return fmt.Errorf("%w: failed to clear goals: %w", goals.ErrDestinationUnwritable, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO quest_goals (tracker_id, position, `+goalColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare insert: %w", goals.ErrDestinationUnwritable, err)
	}
	defer func() { _ = stmt.Close() }()

	for i, g := range gs {
		args := append([]any{s.trackerID.String(), i}, goalArgs(g)...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%w: failed to insert goal %q: %w", goals.ErrDestinationUnwritable, g.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit goals: %w", goals.ErrDestinationUnwritable, err)
	}
	s.logger.Debug("saved goals to sqlite", zap.Int("count", len(gs)))
	return nil
}

// LoadGoals returns the tracker's goals in insertion order.
func (s *SQLiteStore) LoadGoals(ctx context.Context) ([]goals.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM quest_goals WHERE tracker_id = ? ORDER BY position`,
		s.trackerID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query goals: %w", goals.ErrSourceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var out []goals.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", goals.ErrSourceUnavailable, err)
	}

	s.logger.Debug("loaded goals from sqlite", zap.Int("count", len(out)))
	return out, nil
}

// Close closes the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
