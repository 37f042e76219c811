package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recategorizeCmd)
}

var recategorizeCmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Reapply keyword labels to all stored papers",
	Long: `Reapply automatic keyword labels across every partition using the
current category definitions, then rebuild the index. Records with manual
tags keep their curated categories. Run this after editing categories.yaml.`,
	RunE: runRecategorize,
}

func runRecategorize(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	pl := mustBuildPipeline(cfg)

	total, err := pl.Recategorize()
	if err != nil {
		exitWithError(ExitDataError, "recategorize failed: %v", err)
	}

	indexed, err := pl.RebuildIndex()
	if err != nil {
		exitWithError(ExitDataError, "reindex failed: %v", err)
	}

	fmt.Printf("Relabeled: %d\n", total)
	fmt.Printf("Indexed:   %d\n", indexed)
	return nil
}
