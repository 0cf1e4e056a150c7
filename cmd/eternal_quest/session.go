package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/eternal-quest/internal/goals"
	"github.com/jonathan/eternal-quest/internal/quest"
	"github.com/jonathan/eternal-quest/internal/store"
	"go.uber.org/zap"
)

// openStore opens the store for dsn under the configured tracker name.
func openStore(ctx context.Context, dsn string) (store.Store, error) {
	s, err := store.Open(ctx, dsn, store.Options{Tracker: settings.Tracker, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", dsn, err)
	}
	return s, nil
}

// newTracker returns an empty tracker with the configured level step.
func newTracker() *quest.Tracker {
	return quest.NewTracker(logger, quest.WithXPPerLevel(settings.XPPerLevel))
}

// loadSession opens the configured store and loads its goals into a new tracker.
// A store with nothing saved yet yields an empty tracker.
func loadSession(ctx context.Context) (*quest.Tracker, store.Store, error) {
	dsn := settings.StoreDSN()
	s, err := openStore(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	tr := newTracker()
	if err := tr.Load(ctx, s); err != nil {
		if !errors.Is(err, goals.ErrSourceUnavailable) {
			_ = s.Close()
			return nil, nil, fmt.Errorf("failed to load goals from %s: %w", dsn, err)
		}
		logger.Info("no saved goals, starting empty", zap.String("store", dsn), zap.Error(err))
	}
	return tr, s, nil
}
