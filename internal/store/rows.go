package store

import (
	"fmt"

	"github.com/jonathan/eternal-quest/internal/goals"
)

// goalColumns is the column order shared by the SQL backends.
const goalColumns = `kind, name, value, completed, completed_count, target_count, bonus_value,
	progress, target_progress, progress_value`

// scanner is satisfied by *sql.Row, *sql.Rows and pgx rows
type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (goals.Goal, error) {
	var (
		g    goals.Goal
		kind string
	)
	err := row.Scan(&kind, &g.Name, &g.Value, &g.Completed, &g.CompletedCount, &g.TargetCount,
		&g.BonusValue, &g.Progress, &g.TargetProgress, &g.ProgressValue)
	if err != nil {
		return goals.Goal{}, fmt.Errorf("%w: %w", goals.ErrSourceUnavailable, err)
	}

	g.Kind, err = goals.ParseKind(kind)
	if err != nil {
		return goals.Goal{}, fmt.Errorf("%w: %w", goals.ErrMalformedRecord, err)
	}
	return g, nil
}

// goalArgs returns the values for goalColumns in order.
func goalArgs(g goals.Goal) []any {
	return []any{string(g.Kind), g.Name, g.Value, g.Completed, g.CompletedCount, g.TargetCount,
		g.BonusValue, g.Progress, g.TargetProgress, g.ProgressValue}
}
