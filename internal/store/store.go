// Package store persists goal collections to line files, JSON documents, SQLite and PostgreSQL.
package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/eternal-quest/internal/goals"
	"go.uber.org/zap"
)

// ErrEmptyDestination is returned by Open when no store destination is given.
var ErrEmptyDestination = errors.New("store destination is empty")

// Store saves and loads the goals of one tracker
type Store interface {
	SaveGoals(ctx context.Context, gs []goals.Goal) error
	LoadGoals(ctx context.Context) ([]goals.Goal, error)
	Close() error
}

// Backend identifies a storage implementation
type Backend string

const (
	BackendFile     Backend = "file"
	BackendJSON     Backend = "json"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// DefaultTracker names the tracker used when none is configured.
const DefaultTracker = "default"

// trackerNamespace scopes tracker UUIDs to this application.
var trackerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jonathan/eternal-quest/tracker"))

// TrackerID derives the stable database key of a named tracker.
func TrackerID(name string) uuid.UUID {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTracker
	}
	return uuid.NewSHA1(trackerNamespace, []byte(name))
}

// DetectBackend picks the backend a destination string refers to.
func DetectBackend(dsn string) Backend {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(lower, "sqlite:"):
		return BackendSQLite
	}

	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	case ".json":
		return BackendJSON
	}
	return BackendFile
}

// Options configures Open
type Options struct {
	// Tracker names the goal collection inside a shared database. Ignored by file backends.
	Tracker string
	Logger  *zap.Logger
}

// Open returns the store for dsn. Database backends connect and create their schema immediately.
func Open(ctx context.Context, dsn string, opts Options) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrEmptyDestination
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := DetectBackend(dsn)
	logger.Debug("opening store", zap.String("backend", string(backend)), zap.String("tracker", opts.Tracker))

	switch backend {
	case BackendPostgres:
		return ConnectPostgres(ctx, dsn, TrackerID(opts.Tracker), logger)
	case BackendSQLite:
		path := dsn
		if len(path) >= len("sqlite:") && strings.EqualFold(path[:len("sqlite:")], "sqlite:") {
			path = path[len("sqlite:"):]
		}
		return OpenSQLite(ctx, path, TrackerID(opts.Tracker), logger)
	case BackendJSON:
		return NewJSONStore(dsn, logger), nil
	default:
		return NewFileStore(dsn, logger), nil
	}
}
