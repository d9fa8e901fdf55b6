package main

import (
	"github.com/spf13/cobra"

	"repolens/internal/version"
)

var (
	// verbosity is the CLI -v flag count
	verbosity int
	// quiet suppresses all log output
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "repolens - codebase introspection and summarization",
	Long: `repolens turns a source tree into a structured, language-agnostic
description of its public surface: exported symbols with signatures, an
import graph, file roles, a hierarchical file tree, and change-frequency
signals mined from version control. No raw source text ever leaves the
summary boundary.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("repolens version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
}
