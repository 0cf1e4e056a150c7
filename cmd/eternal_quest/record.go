package main

import (
	"github.com/jonathan/eternal-quest/internal/observability"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record NAME...",
	Short: "Record events on goals and save the result",
	Long: `Records one event per NAME, in order, on the first goal with that name that
is not yet completed. Score, experience and level start from zero for every
invocation; they are printed at the end of the session.

The default line-format store (goals.txt) keeps only each goal's completed
flag, so checklist counts and accumulated progress restart at zero on the next
run. Use a *.json, SQLite or Postgres store to complete those goals across
several invocations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, s, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	p := observability.NewPrinter(cmd.OutOrStdout())
	for _, name := range args {
		p.PrintOutcome(name, tr.RecordEvent(name))
	}

	if err := tr.Save(ctx, s); err != nil {
		return err
	}

	p.PrintScore(tr.Score())
	p.PrintLevel(tr.Level(), tr.XP(), tr.NextLevelAt())
	return nil
}
