package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reindexCmd)
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the index from the year partitions",
	Long: `Rebuild the cross-year index from all partitions, excluding papers on
the block-list. The index is derived and disposable; reindex never touches
the partitions. When no partitions exist the previous index is kept.`,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	pl := mustBuildPipeline(cfg)

	indexed, err := pl.RebuildIndex()
	if err != nil {
		exitWithError(ExitDataError, "reindex failed: %v", err)
	}

	fmt.Printf("Indexed:  %d\n", indexed)
	return nil
}
