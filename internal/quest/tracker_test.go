package quest

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/eternal-quest/internal/goals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// memoryStore keeps goals in a slice for tests
type memoryStore struct {
	goals   []goals.Goal
	loadErr error
	saveErr error
}

func (m *memoryStore) SaveGoals(_ context.Context, gs []goals.Goal) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.goals = append([]goals.Goal(nil), gs...)
	return nil
}

func (m *memoryStore) LoadGoals(_ context.Context) ([]goals.Goal, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]goals.Goal(nil), m.goals...), nil
}

func TestNewTracker_StartsEmpty(t *testing.T) {
	tr := NewTracker(nil)

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.Score())
	assert.Equal(t, 0, tr.XP())
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 100, tr.NextLevelAt())
}

func TestCreateGoal_InvalidKind(t *testing.T) {
	tr := NewTracker(nil)

	g, err := tr.CreateGoal("weekly", "Read", 100, goals.Options{})
	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, goals.ErrInvalidGoalKind)
	assert.Equal(t, 0, tr.Len())
}

func TestRecordEvent_SimpleCompletesOnce(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("simple", "Read", 100, goals.Options{})
	require.NoError(t, err)

	out := tr.RecordEvent("Read")
	assert.True(t, out.Matched)
	assert.Equal(t, 100, out.Points)
	assert.True(t, out.Completed)
	assert.Equal(t, 100, tr.Score())
	assert.Equal(t, 100, tr.XP())
	assert.True(t, tr.Goals()[0].Completed)

	again := tr.RecordEvent("Read")
	assert.False(t, again.Matched)
	assert.Equal(t, 100, tr.Score())
	assert.Equal(t, 100, tr.XP())
}

func TestRecordEvent_ChecklistScenario(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("checklist", "Exercise", 20, goals.Options{TargetCount: 5, BonusValue: 100})
	require.NoError(t, err)

	var points []int
	for i := 0; i < 5; i++ {
		points = append(points, tr.RecordEvent("Exercise").Points)
	}

	assert.Equal(t, []int{20, 20, 20, 20, 120}, points)
	g := tr.Goals()[0]
	assert.Equal(t, 5, g.CompletedCount)
	assert.True(t, g.Completed)
	assert.Equal(t, 200, tr.Score())
	assert.Equal(t, 100, tr.XP())

	// completed checklists are skipped like any other completed goal
	assert.False(t, tr.RecordEvent("Exercise").Matched)
	assert.Equal(t, 5, tr.Goals()[0].CompletedCount)
}

func TestRecordEvent_NegativeDeductsScoreButAddsXP(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("negative", "Junk Food", 50, goals.Options{})
	require.NoError(t, err)

	out := tr.RecordEvent("Junk Food")
	assert.Equal(t, -50, out.Points)
	assert.Equal(t, -50, tr.Score())
	assert.Equal(t, 50, tr.XP())
	assert.False(t, tr.RecordEvent("Junk Food").Matched)
}

func TestRecordEvent_UnknownNameChangesNothing(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("eternal", "Temple", 50, goals.Options{})
	require.NoError(t, err)
	tr.RecordEvent("Temple")
	before := tr.Goals()

	out := tr.RecordEvent("unknown")
	assert.False(t, out.Matched)
	assert.Equal(t, 50, tr.Score())
	assert.Equal(t, 50, tr.XP())
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, before, tr.Goals())
}

func TestRecordEvent_FirstEligibleGoalWins(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("simple", "Run a Marathon", 1000, goals.Options{})
	require.NoError(t, err)
	_, err = tr.CreateGoal("progress", "Run a Marathon", 500, goals.Options{TargetProgress: 1000, ProgressValue: 50})
	require.NoError(t, err)

	first := tr.RecordEvent("Run a Marathon")
	assert.Equal(t, goals.KindSimple, first.Kind)
	assert.Equal(t, 1000, first.Points)

	second := tr.RecordEvent("Run a Marathon")
	assert.Equal(t, goals.KindProgress, second.Kind)
	assert.Equal(t, 0, second.Points)
	assert.Equal(t, 50, tr.Goals()[1].Progress)
}

func TestRecordEvent_LevelsUpOncePerEvent(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("simple", "Marathon", 1000, goals.Options{})
	require.NoError(t, err)
	_, err = tr.CreateGoal("eternal", "Temple", 10, goals.Options{})
	require.NoError(t, err)

	out := tr.RecordEvent("Marathon")
	assert.True(t, out.LeveledUp)
	assert.Equal(t, 2, out.Level)
	assert.Equal(t, 2, tr.Level())

	// still far above the level 2 threshold: one more level per event
	out = tr.RecordEvent("Temple")
	assert.True(t, out.LeveledUp)
	assert.Equal(t, 3, tr.Level())
	assert.Equal(t, 300, tr.NextLevelAt())
}

func TestRecordEvent_LevelThresholds(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("eternal", "Temple", 50, goals.Options{})
	require.NoError(t, err)

	var levels []int
	for i := 0; i < 6; i++ {
		levels = append(levels, tr.RecordEvent("Temple").Level)
	}

	// xp: 50, 100 (>=100 -> 2), 150, 200 (>=200 -> 3), 250, 300 (>=300 -> 4)
	assert.Equal(t, []int{1, 2, 2, 3, 3, 4}, levels)
}

func TestWithXPPerLevel(t *testing.T) {
	tr := NewTracker(nil, WithXPPerLevel(40))
	_, err := tr.CreateGoal("eternal", "Temple", 50, goals.Options{})
	require.NoError(t, err)

	assert.True(t, tr.RecordEvent("Temple").LeveledUp)
	assert.Equal(t, 80, tr.NextLevelAt())

	assert.Equal(t, 100, NewTracker(nil, WithXPPerLevel(0)).NextLevelAt())
}

func TestRecordEvent_LogsLevelUp(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tr := NewTracker(zap.New(core))
	_, err := tr.CreateGoal("simple", "Read", 100, goals.Options{})
	require.NoError(t, err)

	tr.RecordEvent("Read")

	entries := logs.FilterMessage("leveled up").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["level"])
}

func TestListGoals_IsLazyAndRestartable(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.CreateGoal("simple", "Read", 100, goals.Options{})
	require.NoError(t, err)
	_, err = tr.CreateGoal("checklist", "Exercise", 20, goals.Options{TargetCount: 5, BonusValue: 100})
	require.NoError(t, err)

	seq := tr.ListGoals()

	var first []string
	for s := range seq {
		first = append(first, s.String())
	}
	assert.Equal(t, []string{"Read - [ ]", "Exercise - [ ]\n  Completed 0/5 times"}, first)

	tr.RecordEvent("Read")
	tr.RecordEvent("Exercise")
	_, err = tr.CreateGoal("eternal", "Temple", 50, goals.Options{})
	require.NoError(t, err)

	var second []string
	for s := range seq {
		second = append(second, s.String())
	}
	assert.Equal(t, []string{"Read - [X]", "Exercise - [ ]\n  Completed 1/5 times", "Temple - [ ]"}, second)

	var names []string
	for s := range seq {
		names = append(names, s.Name)
		break
	}
	assert.Equal(t, []string{"Read"}, names)
}

func TestSaveLoad_RoundTripKeepsCounters(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}

	tr := NewTracker(nil)
	_, err := tr.CreateGoal("simple", "Read", 100, goals.Options{})
	require.NoError(t, err)
	_, err = tr.CreateGoal("progress", "Marathon", 500, goals.Options{TargetProgress: 1000, ProgressValue: 50})
	require.NoError(t, err)
	tr.RecordEvent("Read")
	require.NoError(t, tr.Save(ctx, store))

	fresh := NewTracker(nil)
	_, err = fresh.CreateGoal("eternal", "Stale", 1, goals.Options{})
	require.NoError(t, err)
	require.NoError(t, fresh.Load(ctx, store))

	assert.Equal(t, tr.Goals(), fresh.Goals())
	assert.Equal(t, 0, fresh.Score())
	assert.Equal(t, 0, fresh.XP())
	assert.Equal(t, 1, fresh.Level())
}

func TestLoad_FailureLeavesTrackerEmpty(t *testing.T) {
	for _, loadErr := range []error{goals.ErrSourceUnavailable, goals.ErrMalformedRecord} {
		t.Run(loadErr.Error(), func(t *testing.T) {
			tr := NewTracker(nil)
			_, err := tr.CreateGoal("simple", "Stale", 100, goals.Options{})
			require.NoError(t, err)

			err = tr.Load(context.Background(), &memoryStore{loadErr: loadErr})
			require.Error(t, err)
			assert.ErrorIs(t, err, loadErr)
			assert.Equal(t, 0, tr.Len())
			assert.Empty(t, tr.Goals())
		})
	}
}

func TestSave_WrapsStoreError(t *testing.T) {
	tr := NewTracker(nil)
	boom := errors.New("disk full")

	err := tr.Save(context.Background(), &memoryStore{saveErr: boom})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "save goals")
}
