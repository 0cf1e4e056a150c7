package main

import (
	"github.com/jonathan/eternal-quest/internal/quest"
	"github.com/jonathan/eternal-quest/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive goal menu",
	Long: `Starts an interactive menu to create goals, record events, list goals, show
the score and level, and save or load goals. The session starts empty; use
"Load goals" to read the configured store.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	// log lines would tear the screen; only keep them when asked for
	menuLogger := zap.NewNop()
	if verbose {
		menuLogger = logger
	}

	tr := quest.NewTracker(menuLogger, quest.WithXPPerLevel(settings.XPPerLevel))
	m := tui.NewModel(cmd.Context(), tr, openStore, settings.StoreDSN(), menuLogger)
	return tui.Run(cmd.Context(), m)
}
