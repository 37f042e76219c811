package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arxradar/arxradar/internal/arxiv"
	"github.com/arxradar/arxradar/internal/pipeline"
)

// runExitCode maps a pipeline failure to an exit code: transient upstream
// failures and storage failures are reported differently.
func runExitCode(err error) int {
	if arxiv.IsTransient(err) {
		return ExitFetchError
	}
	return ExitDataError
}

// exitWithError prints an error to stderr and exits with the given code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// printSummary reports the outcome of a harvest run.
func printSummary(s pipeline.Summary) {
	fmt.Printf("Fetched:  %d\n", s.Fetched)
	fmt.Printf("Unique:   %d\n", s.Unique)
	fmt.Printf("Added:    %d\n", s.Added)
	fmt.Printf("Updated:  %d\n", s.Updated)
	fmt.Printf("Indexed:  %d\n", s.IndexedPapers)
	if len(s.Duplicates) > 0 {
		fmt.Printf("In-batch duplicates dropped: %d\n", len(s.Duplicates))
		for _, d := range s.Duplicates {
			fmt.Printf("  %s %q (duplicate of %q)\n", d.ID, truncate(d.Title, 60), truncate(d.DuplicateOf, 60))
		}
	}
	if len(s.FailedQueries) > 0 {
		fmt.Printf("Failed queries (skipped): %s\n", strings.Join(s.FailedQueries, "; "))
	}
	if s.Added == 0 && s.Updated == 0 {
		fmt.Println("Nothing new to fetch.")
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
