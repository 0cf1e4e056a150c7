package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/eternal-quest/internal/goals"
	"github.com/jonathan/eternal-quest/internal/schemas"
	"github.com/jonathan/eternal-quest/internal/types"
	"go.uber.org/zap"
)

// JSONStore keeps goals in a versioned JSON document. Unlike the line format it
// preserves checklist counts and accumulated progress.
type JSONStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONStore returns a store for the JSON document at path
func NewJSONStore(path string, logger *zap.Logger) *JSONStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStore{path: path, logger: logger}
}

// SaveGoals writes every goal into one versioned document, replacing the file atomically.
func (s *JSONStore) SaveGoals(_ context.Context, gs []goals.Goal) error {
	doc := types.GoalDocument{Version: types.GoalDocumentVersion, Goals: gs}
	if doc.Goals == nil {
		doc.Goals = []goals.Goal{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal goal document: %w", err)
	}
	data = append(data, '\n')

	err = writeAtomic(s.path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Debug("wrote goal document", zap.String("path", s.path), zap.Int("count", len(gs)))
	return nil
}

// LoadGoals validates the document against the goal document schema before decoding it.
func (s *JSONStore) LoadGoals(_ context.Context) ([]goals.Goal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", goals.ErrSourceUnavailable, err)
	}

	if err := schemas.ValidateGoalDocument(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", goals.ErrMalformedRecord, s.path, err)
	}

	var doc types.GoalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", goals.ErrMalformedRecord, s.path, err)
	}

	s.logger.Debug("read goal document", zap.String("path", s.path), zap.Int("count", len(doc.Goals)))
	return doc.Goals, nil
}

// Close is a no-op; the file is opened per call.
func (s *JSONStore) Close() error { return nil }
