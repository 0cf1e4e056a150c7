package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Copy goals from one store to another",
	Long: `Loads the goals of --from and saves them to --to, replacing what --to held.
The backends are picked from the destinations, so this also converts between
the line format, JSON, SQLite and PostgreSQL. The line format does not keep
checklist counts or accumulated progress.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

var (
	convertFrom string
	convertTo   string
)

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source store (required)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Destination store (required)")

	if err := convertCmd.MarkFlagRequired("from"); err != nil {
		panic(fmt.Sprintf("failed to mark from flag as required: %v", err))
	}
	if err := convertCmd.MarkFlagRequired("to"); err != nil {
		panic(fmt.Sprintf("failed to mark to flag as required: %v", err))
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	src, err := openStore(ctx, convertFrom)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	tr := newTracker()
	if err := tr.Load(ctx, src); err != nil {
		return fmt.Errorf("failed to load goals from %s: %w", convertFrom, err)
	}

	dst, err := openStore(ctx, convertTo)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	if err := tr.Save(ctx, dst); err != nil {
		return fmt.Errorf("failed to save goals to %s: %w", convertTo, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Converted %d goals from %s to %s\n", tr.Len(), convertFrom, convertTo)
	return nil
}
