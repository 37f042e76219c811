package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-year and per-category totals",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	cache := mustOpenCache(cfg)
	defer cache.Close()

	stats, err := cache.GetStats()
	if err != nil {
		exitWithError(ExitDataError, "computing stats: %v", err)
	}

	fmt.Printf("Total papers: %d\n", stats.TotalPapers)
	if len(stats.ByYear) > 0 {
		fmt.Println("\nBy year:")
		for _, yc := range stats.ByYear {
			fmt.Printf("  %d  %d\n", yc.Year, yc.Count)
		}
	}
	if len(stats.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, cc := range stats.ByCategory {
			fmt.Printf("  %-16s %d\n", cc.Category, cc.Count)
		}
	}
	return nil
}
