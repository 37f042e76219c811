package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arxradar/arxradar/internal/config"
	"github.com/arxradar/arxradar/internal/store"
)

// ListTitleMaxLen truncates titles in list output.
const ListTitleMaxLen = 70

var (
	listYear     int
	listCategory string
	listLimit    int
)

func init() {
	listCmd.Flags().IntVar(&listYear, "year", 0, "Filter by publication year")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category ID")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum papers to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List harvested papers from the query cache",
	Long: `List harvested papers, newest first, from the SQLite query cache.
The cache is rebuilt from the year partitions on every invocation; the
partitions stay the source of truth.

Examples:
  arxradar list --year 2024
  arxradar list --category agents --limit 20`,
	RunE: runList,
}

// mustOpenCache rebuilds and opens the query cache from the partitions.
func mustOpenCache(cfg *config.Config) *store.Cache {
	years, err := store.NewYearStore(cfg.PapersPath())
	if err != nil {
		exitWithError(ExitDataError, "opening year store: %v", err)
	}
	partitions, err := years.LoadAll()
	if err != nil {
		exitWithError(ExitDataError, "loading partitions: %v", err)
	}

	path, err := cfg.CachePath()
	if err != nil {
		exitWithError(ExitDataError, "resolving cache path: %v", err)
	}
	cache, err := store.OpenCache(path)
	if err != nil {
		exitWithError(ExitDataError, "opening cache: %v", err)
	}
	if err := cache.Rebuild(partitions); err != nil {
		cache.Close()
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}
	return cache
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	cache := mustOpenCache(cfg)
	defer cache.Close()

	papers, err := cache.List(store.Filter{
		Year:     listYear,
		Category: listCategory,
		Limit:    listLimit,
	})
	if err != nil {
		exitWithError(ExitDataError, "listing papers: %v", err)
	}

	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	for _, p := range papers {
		names := p.AuthorNames()
		authors := strings.Join(names, ", ")
		if len(names) > 3 {
			authors = strings.Join(names[:3], ", ") + " et al."
		}
		fmt.Printf("%s  %s\n", p.ID, truncate(p.Title, ListTitleMaxLen))
		fmt.Printf("    %s (%d)\n", authors, p.Year)
	}
	return nil
}
