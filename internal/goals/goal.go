// Package goals defines the goal variants tracked by a quest and their line codec.
package goals

import (
	"fmt"
	"strings"
)

// Kind tags a goal variant
type Kind string

const (
	KindSimple    Kind = "Simple"
	KindEternal   Kind = "Eternal"
	KindChecklist Kind = "Checklist"
	KindProgress  Kind = "Progress"
	KindNegative  Kind = "Negative"
)

// Kinds lists every variant in menu order.
var Kinds = []Kind{KindSimple, KindEternal, KindChecklist, KindProgress, KindNegative}

// ParseKind matches s against the known kinds, ignoring case and surrounding space.
// The "<Kind>Goal" spelling of older save files is accepted as well.
func ParseKind(s string) (Kind, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	tag = strings.TrimSuffix(tag, "goal")
	for _, k := range Kinds {
		if tag == strings.ToLower(string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGoalKind, s)
}

// HasExtras reports whether records of this kind carry two extra fields.
func (k Kind) HasExtras() bool {
	return k == KindChecklist || k == KindProgress
}

// Goal is a trackable objective. Kind selects which of the variant fields apply.
type Goal struct {
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	Value     int    `json:"value"`
	Completed bool   `json:"completed"`

	// Checklist
	CompletedCount int `json:"completed_count,omitempty"`
	TargetCount    int `json:"target_count,omitempty"`
	BonusValue     int `json:"bonus_value,omitempty"`

	// Progress
	Progress       int `json:"progress,omitempty"`
	TargetProgress int `json:"target_progress,omitempty"`
	ProgressValue  int `json:"progress_value,omitempty"`
}

// Options holds the variant-specific constructor arguments
type Options struct {
	TargetCount    int
	BonusValue     int
	TargetProgress int
	ProgressValue  int
}

// New builds a goal of the named kind. Options that do not apply to the kind are ignored.
func New(kind, name string, value int, opts Options) (*Goal, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindSimple:
		return NewSimple(name, value), nil
	case KindEternal:
		return NewEternal(name, value), nil
	case KindChecklist:
		return NewChecklist(name, value, opts.TargetCount, opts.BonusValue), nil
	case KindProgress:
		return NewProgress(name, value, opts.TargetProgress, opts.ProgressValue), nil
	default:
		return NewNegative(name, value), nil
	}
}

// NewSimple builds a goal that completes on its first event.
func NewSimple(name string, value int) *Goal {
	return &Goal{Kind: KindSimple, Name: name, Value: value}
}

// NewEternal builds a goal that never completes.
func NewEternal(name string, value int) *Goal {
	return &Goal{Kind: KindEternal, Name: name, Value: value}
}

// NewChecklist builds a goal that completes after targetCount events and then pays bonusValue.
func NewChecklist(name string, value, targetCount, bonusValue int) *Goal {
	return &Goal{
		Kind:        KindChecklist,
		Name:        name,
		Value:       value,
		TargetCount: targetCount,
		BonusValue:  bonusValue,
	}
}

// NewProgress builds a goal that adds progressValue per event until it reaches targetProgress.
func NewProgress(name string, value, targetProgress, progressValue int) *Goal {
	return &Goal{
		Kind:           KindProgress,
		Name:           name,
		Value:          value,
		TargetProgress: targetProgress,
		ProgressValue:  progressValue,
	}
}

// NewNegative builds a goal whose completion deducts its value from the score.
func NewNegative(name string, value int) *Goal {
	return &Goal{Kind: KindNegative, Name: name, Value: value}
}

// RecordProgress applies one recorded event to the goal and returns the points it awards.
func (g *Goal) RecordProgress() int {
	wasCompleted := g.Completed

	switch g.Kind {
	case KindSimple:
		g.Completed = true
		return g.Value
	case KindEternal:
		return g.Value
	case KindChecklist:
		g.CompletedCount++
		g.Completed = g.CompletedCount == g.TargetCount
		if g.Completed && !wasCompleted {
			return g.Value + g.BonusValue
		}
		return g.Value
	case KindProgress:
		g.Progress += g.ProgressValue
		g.Completed = g.Progress >= g.TargetProgress
		if g.Completed && !wasCompleted {
			return g.Value
		}
		return 0
	case KindNegative:
		g.Completed = true
		return -g.Value
	default:
		return 0
	}
}

// Summary is the listing view of a goal
type Summary struct {
	Name      string
	Kind      Kind
	Completed bool
	// Detail is the progress line of checklist and progress goals, empty otherwise.
	Detail string
}

// Summary describes the goal for a listing.
func (g *Goal) Summary() Summary {
	s := Summary{Name: g.Name, Kind: g.Kind, Completed: g.Completed}
	switch g.Kind {
	case KindChecklist:
		s.Detail = fmt.Sprintf("Completed %d/%d times", g.CompletedCount, g.TargetCount)
	case KindProgress:
		s.Detail = fmt.Sprintf("Progress: %d/%d", g.Progress, g.TargetProgress)
	}
	return s
}

// Mark is "[X]" for completed goals and "[ ]" otherwise.
func (s Summary) Mark() string {
	if s.Completed {
		return "[X]"
	}
	return "[ ]"
}

func (s Summary) String() string {
	line := fmt.Sprintf("%s - %s", s.Name, s.Mark())
	if s.Detail != "" {
		line += "\n  " + s.Detail
	}
	return line
}
