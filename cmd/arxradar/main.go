// Package main provides the arxradar CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arxradar/arxradar/internal/config"
	"github.com/arxradar/arxradar/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	dataDir  string
	logLevel string
	log      zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arxradar",
	Short: "Offline arXiv paper harvester and categorizer",
	Long: `arxradar harvests arXiv paper metadata, labels it by keyword, and
persists it into year-partitioned JSON files plus a compact index for the
browsing UI.

Data layout (under --data):
  papers/<year>.json   year partitions (durable source of truth)
  index.json           derived, rebuildable cross-year index
  categories.yaml      user category definitions (merged with builtins)
  queries.yaml         user harvest query list
  blocklist.json       user-curated exclusions (read-only here)
  cache/papers.db      ephemeral SQLite mirror for list/stats`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; it only supplies optional overrides.
		_ = godotenv.Load()
		if v := os.Getenv("ARXRADAR_LOG_LEVEL"); v != "" && !cmd.Flags().Changed("log-level") {
			logLevel = v
		}
		log = logging.New(os.Stderr, logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "Data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Version = Version
}

func defaultDataDir() string {
	if v := os.Getenv("ARXRADAR_DATA"); v != "" {
		return v
	}
	return "data"
}

// mustLoadConfig loads configuration for the data directory, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(dataDir)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
