package main

import (
	"fmt"

	"github.com/jonathan/eternal-quest/internal/types"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a goal and save it to the store",
	Long: `Creates a goal of the given kind and appends it to the goals in the store.

Kinds: simple, eternal, checklist (needs --target-count, optional --bonus)
progress (needs --target-progress and --progress-value), negative.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var createReq types.CreateGoalRequest

func init() {
	createCmd.Flags().StringVarP(&createReq.Kind, "kind", "k", "", "Goal kind (required)")
	createCmd.Flags().StringVarP(&createReq.Name, "name", "n", "", "Goal name (required)")
	createCmd.Flags().IntVar(&createReq.Value, "value", 0, "Points per event (deducted for negative goals)")
	createCmd.Flags().IntVar(&createReq.TargetCount, "target-count", 0, "Checklist: completions needed")
	createCmd.Flags().IntVar(&createReq.BonusValue, "bonus", 0, "Checklist: bonus points on the final completion")
	createCmd.Flags().IntVar(&createReq.TargetProgress, "target-progress", 0, "Progress: total progress needed")
	createCmd.Flags().IntVar(&createReq.ProgressValue, "progress-value", 0, "Progress: progress added per event")

	if err := createCmd.MarkFlagRequired("kind"); err != nil {
		panic(fmt.Sprintf("failed to mark kind flag as required: %v", err))
	}
	if err := createCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	req := createReq
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}

	ctx := cmd.Context()
	tr, s, err := loadSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	g, err := tr.CreateGoal(req.Kind, req.Name, req.Value, req.Options())
	if err != nil {
		return err
	}
	if err := tr.Save(ctx, s); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s goal %q (%d goals in %s)\n", g.Kind, g.Name, tr.Len(), settings.StoreDSN())
	return nil
}
