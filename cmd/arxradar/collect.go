package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/arxradar/arxradar/internal/pipeline"
)

// Test-mode limits: a quick smoke harvest without hammering the API.
const (
	testModeQueryLimit = 2
	testModeResultCap  = 10
)

var (
	collectFrom string
	collectTo   string
	collectTest bool
)

func init() {
	collectCmd.Flags().StringVar(&collectFrom, "from", "", "Start date (YYYY-MM-DD)")
	collectCmd.Flags().StringVar(&collectTo, "to", "", "End date (YYYY-MM-DD, default today)")
	collectCmd.Flags().BoolVar(&collectTest, "test", false, "Test mode: first 2 queries, 10 results each")
	collectCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a full collection over a date range",
	Long: `Run a full collection: every configured topic query over the given
submission date range, merged into the year partitions, then an index
rebuild.

Examples:
  arxradar collect --from 2024-01-01
  arxradar collect --from 2024-01-01 --to 2024-06-30
  arxradar collect --from 2024-01-01 --test`,
	RunE: runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	start, err := time.Parse("2006-01-02", collectFrom)
	if err != nil {
		exitWithError(ExitError, "invalid --from date %q: %v", collectFrom, err)
	}

	end := time.Now()
	if collectTo != "" {
		end, err = time.Parse("2006-01-02", collectTo)
		if err != nil {
			exitWithError(ExitError, "invalid --to date %q: %v", collectTo, err)
		}
	}

	cfg := mustLoadConfig()
	pl := mustBuildPipeline(cfg)
	queries := mustLoadQueries(cfg)

	opts := pipeline.RunOptions{
		Queries:     queries,
		StartDate:   start,
		EndDate:     end,
		MaxPerQuery: cfg.MaxResultsPerQuery,
		PageSize:    cfg.PageSize,
	}
	if collectTest {
		if len(opts.Queries) > testModeQueryLimit {
			opts.Queries = opts.Queries[:testModeQueryLimit]
		}
		opts.MaxPerQuery = testModeResultCap
		log.Info().Msg("test mode: limited queries and result cap")
	}

	summary, err := pl.Run(context.Background(), opts)
	if err != nil {
		exitWithError(runExitCode(err), "collection failed: %v", err)
	}

	printSummary(summary)
	return nil
}
