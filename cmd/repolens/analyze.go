package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repolens/internal/config"
	"repolens/internal/export"
	"repolens/internal/store"
	"repolens/internal/summary"
)

var (
	analyzeBaseline string
	analyzeOnly     []string
	analyzeOut      string
	analyzeCompress bool
	analyzeCache    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [root]",
	Short: "Analyze a source tree and emit its summary document",
	Long: `Analyze walks the tree, parses every recognized source file, mines
version-control history, detects package ecosystems, and merges the results
into one JSON summary.

Incremental mode restricts scanning and parsing to an explicit file subset,
typically the changed-file list against a baseline revision.

Examples:
  repolens analyze
  repolens analyze ./service --out=summary.json
  repolens analyze --baseline=origin/main
  repolens analyze --only=src/app.py --only=src/util.py
  repolens analyze --out=summary.json.gz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBaseline, "baseline", "", "Baseline revision for the changed-file diff")
	analyzeCmd.Flags().StringSliceVar(&analyzeOnly, "only", nil, "Restrict scan and parse to these paths (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write the summary to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeCompress, "compress", false, "Gzip the output document")
	analyzeCmd.Flags().BoolVar(&analyzeCache, "cache", false, "Store the summary in the local cache")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	logger := newLogger()

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	analyzer := summary.NewAnalyzer(cfg, logger)
	sum, err := analyzer.Analyze(cmd.Context(), root, summary.Options{
		OnlyFiles:        analyzeOnly,
		BaselineRevision: analyzeBaseline,
	})
	if err != nil {
		return err
	}

	if analyzeCache {
		cache, err := store.Open(store.DefaultPath(root))
		if err != nil {
			return err
		}
		defer cache.Close()
		if err := cache.Put(sum); err != nil {
			return err
		}
		logger.Info("summary cached", "analysisId", sum.AnalysisID)
	}

	if analyzeOut != "" {
		return export.WriteFile(analyzeOut, sum, analyzeCompress)
	}
	return export.Write(os.Stdout, sum, analyzeCompress)
}
