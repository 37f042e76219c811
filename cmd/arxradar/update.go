package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/arxradar/arxradar/internal/pipeline"
)

// DefaultLookbackDays covers a week of submissions plus merge idempotence
// soaking up the overlap with the previous run.
const DefaultLookbackDays = 7

var updateDays int

func init() {
	updateCmd.Flags().IntVar(&updateDays, "days", DefaultLookbackDays, "Lookback window in days")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run an incremental collection over a lookback window",
	Long: `Run an incremental collection covering [today - days, today].
Re-fetched papers merge idempotently into the existing partitions, so
overlapping windows are safe.

Examples:
  arxradar update
  arxradar update --days 14`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateDays <= 0 {
		exitWithError(ExitError, "--days must be positive, got %d", updateDays)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -updateDays)

	cfg := mustLoadConfig()
	pl := mustBuildPipeline(cfg)
	queries := mustLoadQueries(cfg)

	summary, err := pl.Run(context.Background(), pipeline.RunOptions{
		Queries:     queries,
		StartDate:   start,
		EndDate:     end,
		MaxPerQuery: cfg.MaxResultsPerQuery,
		PageSize:    cfg.PageSize,
	})
	if err != nil {
		exitWithError(runExitCode(err), "update failed: %v", err)
	}

	printSummary(summary)
	return nil
}
