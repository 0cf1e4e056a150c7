package types

import "github.com/jonathan/eternal-quest/internal/goals"

// GoalDocumentVersion is the only document version this build reads and writes.
const GoalDocumentVersion = 1

// GoalDocument is the JSON form of a goal collection. Unlike the line format it
// keeps checklist counts and accumulated progress.
type GoalDocument struct {
	Version int          `json:"version"`
	Goals   []goals.Goal `json:"goals"`
}
