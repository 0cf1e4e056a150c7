package main

import (
	"github.com/jonathan/eternal-quest/internal/observability"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the goals in the store",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	tr, s, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	observability.NewPrinter(cmd.OutOrStdout()).PrintGoals(tr.ListGoals())
	return nil
}
