package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repolens/internal/config"
	"repolens/internal/export"
	"repolens/internal/filetree"
	"repolens/internal/summary"
)

var (
	treeFrom  string
	treeStats bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [root]",
	Short: "Print the hierarchical file tree of a summary",
	Long: `Tree renders the sorted file hierarchy for human display.

Reads an exported summary with --from, or analyzes the root in place.

Examples:
  repolens tree
  repolens tree ./service --stats
  repolens tree --from=summary.json.gz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeFrom, "from", "", "Read an exported summary document instead of analyzing")
	treeCmd.Flags().BoolVar(&treeStats, "stats", false, "Print directory/file/language/role counts")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	sum, err := loadOrAnalyze(cmd, args, treeFrom)
	if err != nil {
		return err
	}
	if sum.FileTree == nil {
		return fmt.Errorf("summary has no file tree")
	}

	fmt.Print(filetree.ToString(sum.FileTree))

	if treeStats {
		stats := filetree.GetStats(sum.FileTree)
		fmt.Printf("\n%d directories, %d files\n", stats.Directories, stats.Files)
		for lang, n := range stats.ByLanguage {
			fmt.Printf("  %s: %d\n", lang, n)
		}
	}
	return nil
}

// loadOrAnalyze reads an exported summary when from is set, otherwise runs
// a fresh analysis over the positional root.
func loadOrAnalyze(cmd *cobra.Command, args []string, from string) (*summary.RepoSummary, error) {
	if from != "" {
		return export.ReadFile(from)
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	analyzer := summary.NewAnalyzer(cfg, newLogger())
	return analyzer.Analyze(cmd.Context(), root, summary.Options{})
}
