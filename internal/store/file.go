package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/eternal-quest/internal/goals"
	"go.uber.org/zap"
)

// FileStore keeps goals in the line format, one record per line.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore returns a store for the line file at path. Nothing is touched until a save or load.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// SaveGoals replaces the file with one record per goal. The previous file is kept when the write fails.
func (s *FileStore) SaveGoals(_ context.Context, gs []goals.Goal) error {
	err := writeAtomic(s.path, func(w io.Writer) error {
		return goals.Encode(w, gs)
	})
	if err != nil {
		return err
	}
	s.logger.Debug("wrote goal file", zap.String("path", s.path), zap.Int("count", len(gs)))
	return nil
}

// LoadGoals reads every record of the file.
func (s *FileStore) LoadGoals(_ context.Context) ([]goals.Goal, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", goals.ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	gs, err := goals.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Debug("read goal file", zap.String("path", s.path), zap.Int("count", len(gs)))
	return gs, nil
}

// Close is a no-op; the file is opened per call.
func (s *FileStore) Close() error { return nil }

// writeAtomic writes through a temp file in the destination directory and renames it into place.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", goals.ErrDestinationUnwritable, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", goals.ErrDestinationUnwritable, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", goals.ErrDestinationUnwritable, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: %w", goals.ErrDestinationUnwritable, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %w", goals.ErrDestinationUnwritable, err)
	}
	tmpName = ""
	return nil
}
