// Package main provides the entry point for the eternal_quest goal tracker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/eternal-quest/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath     string
	storeFlag      string
	trackerFlag    string
	xpPerLevelFlag int
	verbose        bool

	// settings is the resolved configuration of the running command
	settings = config.Defaults()

	// Logger
	logger = zap.NewNop()
)

// newLogger builds the process logger; tests replace it.
var newLogger = func(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

var rootCmd = &cobra.Command{
	Use:   "eternal_quest",
	Short: "Eternal Quest goal tracker",
	Long: `Eternal Quest tracks simple, eternal, checklist, progress and negative goals.

Recording an event on a goal earns (or costs) points and experience; every
100 experience points (configurable) raises the level by one. Goals are kept in
a line file by default, or in a JSON document, SQLite or PostgreSQL database.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	flags.StringVarP(&storeFlag, "store", "s", "", `Goal store: file path, *.json, *.db, sqlite:<path>, postgres URL or "postgres" (default "goals.txt")`)
	flags.StringVar(&trackerFlag, "tracker", "", `Tracker name inside a shared database (default "default")`)
	flags.IntVar(&xpPerLevelFlag, "xp-per-level", 0, "Experience needed per level (default 100)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup resolves the configuration (flags over config file over environment
// over defaults) and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	envCfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	resolved := envCfg.MergeWithDefaults(config.Defaults())

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		resolved = fileCfg.MergeWithDefaults(resolved)
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		resolved.Store = storeFlag
	}
	if flags.Changed("tracker") {
		resolved.Tracker = trackerFlag
	}
	if flags.Changed("xp-per-level") {
		resolved.XPPerLevel = xpPerLevelFlag
	}
	if verbose {
		resolved.LogLevel = "debug"
	}

	if err := resolved.Validate(); err != nil {
		return err
	}
	settings = resolved

	logger, err = newLogger(settings.Level())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration resolved",
		zap.String("store", settings.Store),
		zap.String("tracker", settings.Tracker),
		zap.Int("xp_per_level", settings.XPPerLevel))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
