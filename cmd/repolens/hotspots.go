package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	hotspotsFrom  string
	hotspotsLimit int
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots [root]",
	Short: "List the most frequently modified source files",
	Long: `Hotspots ranks source files by commit frequency, with contributor
lists and last-modified dates, for downstream prioritization.

Examples:
  repolens hotspots
  repolens hotspots --limit=10
  repolens hotspots --from=summary.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHotspots,
}

func init() {
	hotspotsCmd.Flags().StringVar(&hotspotsFrom, "from", "", "Read an exported summary document instead of analyzing")
	hotspotsCmd.Flags().IntVar(&hotspotsLimit, "limit", 20, "Maximum files to list")
	rootCmd.AddCommand(hotspotsCmd)
}

func runHotspots(cmd *cobra.Command, args []string) error {
	sum, err := loadOrAnalyze(cmd, args, hotspotsFrom)
	if err != nil {
		return err
	}
	if sum.RevisionInfo == nil {
		return fmt.Errorf("no version-control history available")
	}

	records := sum.RevisionInfo.FileHistory
	if hotspotsLimit > 0 && len(records) > hotspotsLimit {
		records = records[:hotspotsLimit]
	}

	for _, r := range records {
		contributors := strings.Join(r.Contributors, ", ")
		fmt.Printf("%4d  %-50s %s  [%s]\n", r.CommitCount, r.Path, r.LastModified, contributors)
	}
	return nil
}
