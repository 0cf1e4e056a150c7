package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/eternal-quest/internal/goals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoalRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateGoalRequest
		wantError bool
		wantField string
	}{
		{
			name: "valid simple",
			req:  CreateGoalRequest{Kind: "simple", Name: "Read Scriptures", Value: 100},
		},
		{
			name: "kind is case-insensitive",
			req:  CreateGoalRequest{Kind: "Eternal", Name: "Attend Temple", Value: 50},
		},
		{
			name: "legacy kind spelling",
			req:  CreateGoalRequest{Kind: "NegativeGoal", Name: "Junk Food", Value: 50},
		},
		{
			name: "valid checklist",
			req:  CreateGoalRequest{Kind: "checklist", Name: "Exercise", Value: 20, TargetCount: 5, BonusValue: 100},
		},
		{
			name: "valid progress",
			req:  CreateGoalRequest{Kind: "progress", Name: "Marathon", Value: 500, TargetProgress: 1000, ProgressValue: 50},
		},
		{
			name:      "unknown kind",
			req:       CreateGoalRequest{Kind: "weekly", Name: "Read", Value: 100},
			wantError: true,
			wantField: "Kind",
		},
		{
			name:      "missing name",
			req:       CreateGoalRequest{Kind: "simple", Value: 100},
			wantError: true,
			wantField: "Name",
		},
		{
			name:      "name with comma",
			req:       CreateGoalRequest{Kind: "simple", Name: "Read, pray", Value: 100},
			wantError: true,
			wantField: "Name",
		},
		{
			name:      "name with colon",
			req:       CreateGoalRequest{Kind: "simple", Name: "Goal: read", Value: 100},
			wantError: true,
			wantField: "Name",
		},
		{
			name:      "checklist without target",
			req:       CreateGoalRequest{Kind: "checklist", Name: "Exercise", Value: 20, BonusValue: 100},
			wantError: true,
			wantField: "TargetCount",
		},
		{
			name:      "progress without step",
			req:       CreateGoalRequest{Kind: "progress", Name: "Marathon", Value: 500, TargetProgress: 1000},
			wantError: true,
			wantField: "ProgressValue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestCreateGoalRequest_ValidateNormalizesKind(t *testing.T) {
	req := CreateGoalRequest{Kind: " ChecklistGoal ", Name: "Exercise", Value: 20, TargetCount: 5}

	require.NoError(t, req.Validate())
	assert.Equal(t, "checklist", req.Kind)
}

func TestCreateGoalRequest_Options(t *testing.T) {
	req := CreateGoalRequest{TargetCount: 5, BonusValue: 100, TargetProgress: 1000, ProgressValue: 50}

	assert.Equal(t, goals.Options{TargetCount: 5, BonusValue: 100, TargetProgress: 1000, ProgressValue: 50}, req.Options())
}
