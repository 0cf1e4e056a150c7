package main

import (
	"bytes"
	"testing"

	"github.com/jonathan/eternal-quest/internal/config"
	"github.com/jonathan/eternal-quest/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resetCommandState puts every flag and package variable back to its default.
// cobra keeps flag values between Execute calls on the same command tree.
func resetCommandState(t *testing.T) {
	t.Helper()

	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)

	createReq = types.CreateGoalRequest{}
	settings = config.Defaults()
	logger = zap.NewNop()

	for _, key := range []string{config.EnvStore, config.EnvTracker, config.EnvXPPerLevel, config.EnvLogLevel, config.EnvDatabaseURL} {
		t.Setenv(key, "")
	}

	original := newLogger
	newLogger = func(zapcore.Level) (*zap.Logger, error) { return zap.NewNop(), nil }
	t.Cleanup(func() { newLogger = original })
}

// executeCommand runs the root command in-process with args and returns what it printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommandState(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}
