// Package quest owns a player's goals and turns recorded events into score, experience and levels.
package quest

import (
	"context"
	"fmt"
	"iter"

	"github.com/jonathan/eternal-quest/internal/goals"
	"go.uber.org/zap"
)

// DefaultXPPerLevel is the experience needed per level: level n ends at n*100 XP.
const DefaultXPPerLevel = 100

// GoalStore persists the goal collection of a tracker
type GoalStore interface {
	SaveGoals(ctx context.Context, goals []goals.Goal) error
	LoadGoals(ctx context.Context) ([]goals.Goal, error)
}

// Tracker is the aggregate that owns the goals and the counters derived from them.
// It is not safe for concurrent use.
type Tracker struct {
	goals      []*goals.Goal
	score      int
	xp         int
	level      int
	xpPerLevel int
	logger     *zap.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithXPPerLevel sets the experience step between levels. Non-positive values keep the default.
func WithXPPerLevel(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.xpPerLevel = n
		}
	}
}

// NewTracker returns an empty tracker at level 1. A nil logger discards log output.
func NewTracker(logger *zap.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		level:      1,
		xpPerLevel: DefaultXPPerLevel,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Outcome describes what a RecordEvent call did
type Outcome struct {
	Matched   bool
	Goal      string
	Kind      goals.Kind
	Points    int
	Completed bool
	LeveledUp bool
	Level     int
}

// CreateGoal builds a goal of the given kind and appends it.
func (t *Tracker) CreateGoal(kind, name string, value int, opts goals.Options) (*goals.Goal, error) {
	g, err := goals.New(kind, name, value, opts)
	if err != nil {
		return nil, fmt.Errorf("create goal %q: %w", name, err)
	}
	t.AddGoal(g)
	return g, nil
}

// AddGoal appends g. Names are not deduplicated; the first eligible match wins when recording.
func (t *Tracker) AddGoal(g *goals.Goal) {
	t.goals = append(t.goals, g)
	t.logger.Debug("goal added",
		zap.String("name", g.Name),
		zap.String("kind", string(g.Kind)),
		zap.Int("value", g.Value))
}

// RecordEvent records progress on the first goal named name that is not yet completed.
// Nothing changes when no such goal exists.
func (t *Tracker) RecordEvent(name string) Outcome {
	for _, g := range t.goals {
		if g.Name != name || g.Completed {
			continue
		}

		points := g.RecordProgress()
		t.score += points
		t.xp += g.Value

		out := Outcome{
			Matched:   true,
			Goal:      g.Name,
			Kind:      g.Kind,
			Points:    points,
			Completed: g.Completed,
			Level:     t.level,
		}

		// At most one level per event, even when the XP jump spans several thresholds.
		if t.xp >= t.xpPerLevel*t.level {
			t.level++
			out.LeveledUp = true
			out.Level = t.level
			t.logger.Info("leveled up", zap.Int("level", t.level), zap.Int("xp", t.xp))
		}

		t.logger.Debug("event recorded",
			zap.String("goal", g.Name),
			zap.Int("points", points),
			zap.Int("score", t.score),
			zap.Int("xp", t.xp))
		return out
	}

	t.logger.Debug("no eligible goal for event", zap.String("goal", name))
	return Outcome{Level: t.level}
}

// ListGoals yields a summary per goal in insertion order. Each range over the
// sequence reads the goals as they are at that moment.
func (t *Tracker) ListGoals() iter.Seq[goals.Summary] {
	return func(yield func(goals.Summary) bool) {
		for _, g := range t.goals {
			if !yield(g.Summary()) {
				return
			}
		}
	}
}

// Goals returns a copy of the goal collection.
func (t *Tracker) Goals() []goals.Goal {
	out := make([]goals.Goal, 0, len(t.goals))
	for _, g := range t.goals {
		out = append(out, *g)
	}
	return out
}

// Len is the number of goals.
func (t *Tracker) Len() int { return len(t.goals) }

// Score is the point total of the session.
func (t *Tracker) Score() int { return t.score }

// XP is the experience total of the session.
func (t *Tracker) XP() int { return t.xp }

// Level starts at 1 and rises each time XP reaches NextLevelAt.
func (t *Tracker) Level() int { return t.level }

// NextLevelAt is the XP total that triggers the next level-up.
func (t *Tracker) NextLevelAt() int {
	return t.xpPerLevel * t.level
}

// Save externalizes the goals. Score, XP and level are not persisted.
func (t *Tracker) Save(ctx context.Context, store GoalStore) error {
	if err := store.SaveGoals(ctx, t.Goals()); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	t.logger.Debug("goals saved", zap.Int("count", len(t.goals)))
	return nil
}

// Load clears the goals and then reads them from store. When loading fails the
// tracker is left empty.
func (t *Tracker) Load(ctx context.Context, store GoalStore) error {
	t.goals = nil

	loaded, err := store.LoadGoals(ctx)
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}

	t.goals = make([]*goals.Goal, 0, len(loaded))
	for i := range loaded {
		t.goals = append(t.goals, &loaded[i])
	}
	t.logger.Debug("goals loaded", zap.Int("count", len(t.goals)))
	return nil
}
