// Package observability provides formatted output for the CLI and the menu.
package observability

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/jonathan/eternal-quest/internal/goals"
	"github.com/jonathan/eternal-quest/internal/quest"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted, user-facing output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintGoals lists every goal with its completion mark and, for checklist and
// progress goals, the progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintGoals(summaries iter.Seq[goals.Summary]) {
	fmt.Fprintln(p.out, "Current Goals:")
	for s := range summaries {
		fmt.Fprintln(p.out, s.String())
	}
	fmt.Fprintln(p.out)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScore(score int) {
	fmt.Fprintf(p.out, "Current Score: %d points\n", score)
}

// PrintLevel shows the level and how far the experience is from the next one.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLevel(level, xp, nextLevelAt int) {
	fmt.Fprintf(p.out, "Current Level: %d\n", level)
	fmt.Fprintf(p.out, "Experience: %d/%d XP\n", xp, nextLevelAt)
}

// PrintOutcome reports a recorded event, including the level-up notice.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutcome(name string, out quest.Outcome) {
	if !out.Matched {
		fmt.Fprintf(p.out, "No open goal named %q.\n", name)
		return
	}

	switch {
	case out.Points > 0:
		fmt.Fprintf(p.out, "Recorded %q: +%d points\n", out.Goal, out.Points)
	case out.Points < 0:
		fmt.Fprintf(p.out, "Recorded %q: %d points\n", out.Goal, out.Points)
	default:
		fmt.Fprintf(p.out, "Recorded %q: progress made\n", out.Goal)
	}
	if out.Completed {
		fmt.Fprintf(p.out, "Goal %q is complete.\n", out.Goal)
	}
	if out.LeveledUp {
		fmt.Fprintf(p.out, "Congratulations! You leveled up to Level %d!\n", out.Level)
	}
}

// CheckResult is the outcome of loading one store
type CheckResult struct {
	Store   string
	Backend string
	Goals   int
	Err     error
}

// PrintCheck outputs one line per checked store.
func (p *Printer) PrintCheck(results []CheckResult) {
	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s (%s)\n", r.Store, r.Backend))
			sb.WriteString(fmt.Sprintf("  %s\n", r.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s (%s): %d goals\n", r.Store, r.Backend, r.Goals))
	}
	sb.WriteString(fmt.Sprintf("\n%d checked, %d failed", len(results), failed))

	p.printBox("STORE CHECK", sb.String())
}
