// Package runcmd implements the booklens subcommands: the full pipeline
// run, cache priming, and cache inspection.
package runcmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// setupLogging installs the process-wide text logger; verbose switches
// the level to debug.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// envOr returns the environment value for key when set, else fallback.
// Called at execute time so values loaded from .env are visible.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// applyEnvDefault overrides an unchanged flag value with the
// environment's, when set. Explicit flags always win.
func applyEnvDefault(cmd *cobra.Command, flag, envKey string, value *string) {
	if !cmd.Flags().Changed(flag) {
		*value = envOr(envKey, *value)
	}
}
