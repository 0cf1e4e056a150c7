// Package types provides the request and document types exchanged by the CLI and the stores.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/eternal-quest/internal/goals"
)

// CreateGoalRequest carries the arguments of a goal creation from the command line or the menu.
type CreateGoalRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=simple eternal checklist progress negative"`
	Name  string `json:"name" validate:"required,excludesall=0x2C:"` // ',' and ':' break the line format
	Value int    `json:"value"`

	TargetCount    int `json:"target_count,omitempty" validate:"required_if=Kind checklist"`
	BonusValue     int `json:"bonus_value,omitempty"`
	TargetProgress int `json:"target_progress,omitempty" validate:"required_if=Kind progress"`
	ProgressValue  int `json:"progress_value,omitempty" validate:"required_if=Kind progress"`
}

// Validate normalizes the kind tag and validates the request using the validator.
func (r *CreateGoalRequest) Validate() error {
	if k, err := goals.ParseKind(r.Kind); err == nil {
		r.Kind = strings.ToLower(string(k))
	}
	validate := validator.New()
	return validate.Struct(r)
}

// Options returns the variant-specific constructor arguments.
func (r *CreateGoalRequest) Options() goals.Options {
	return goals.Options{
		TargetCount:    r.TargetCount,
		BonusValue:     r.BonusValue,
		TargetProgress: r.TargetProgress,
		ProgressValue:  r.ProgressValue,
	}
}
