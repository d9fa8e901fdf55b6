package main

import (
	"log/slog"
	"os"

	"repolens/internal/slogutil"
)

// newLogger builds the CLI logger from the global verbosity flags.
// Logs go to stderr so stdout stays clean for summary output.
func newLogger() *slog.Logger {
	level := slogutil.LevelFromVerbosity(verbosity, quiet)
	return slogutil.NewLogger(os.Stderr, level)
}
