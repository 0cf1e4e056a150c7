package main

import (
	"context"
	"fmt"

	"github.com/jonathan/eternal-quest/internal/observability"
	"github.com/jonathan/eternal-quest/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var checkCmd = &cobra.Command{
	Use:   "check [STORE...]",
	Short: "Load stores and report whether they are readable",
	Long: `Loads every given store concurrently and reports its goal count or the
load error. Without arguments the configured store is checked. Exits non-zero
when any store fails to load.`,
	RunE: runCheck,
}

var checkConcurrency int

func init() {
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", 4, "Maximum stores loaded at once")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	dsns := args
	if len(dsns) == 0 {
		dsns = []string{settings.StoreDSN()}
	}

	results := checkStores(cmd.Context(), dsns, checkConcurrency)
	observability.NewPrinter(cmd.OutOrStdout()).PrintCheck(results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d stores failed to load", failed, len(results))
	}
	return nil
}

// checkStores loads every store, at most limit at a time. A failing store does
// not stop the others; its error is kept in its result.
func checkStores(ctx context.Context, dsns []string, limit int) []observability.CheckResult {
	results := make([]observability.CheckResult, len(dsns))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, dsn := range dsns {
		g.Go(func() error {
			results[i] = checkStore(gctx, dsn)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func checkStore(ctx context.Context, dsn string) observability.CheckResult {
	result := observability.CheckResult{Store: dsn, Backend: string(store.DetectBackend(dsn))}

	s, err := openStore(ctx, dsn)
	if err != nil {
		result.Err = err
		return result
	}
	defer func() { _ = s.Close() }()

	gs, err := s.LoadGoals(ctx)
	if err != nil {
		logger.Debug("store check failed", zap.String("store", dsn), zap.Error(err))
		result.Err = err
		return result
	}
	result.Goals = len(gs)
	return result
}
