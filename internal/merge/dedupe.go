// Package merge removes duplicate paper records within a batch and merges
// incoming batches into existing year partitions.
package merge

import "github.com/arxradar/arxradar/internal/paper"

// Duplicate describes one dropped record for diagnostic reporting.
type Duplicate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DuplicateOf string `json:"duplicate_of"` // title of the record it duplicates
}

// Deduplicate removes duplicate IDs within a batch, first occurrence wins.
func Deduplicate(papers []paper.Paper) (unique []paper.Paper, duplicates []Duplicate) {
	firstTitle := make(map[string]string, len(papers))
	for _, p := range papers {
		if title, seen := firstTitle[p.ID]; seen {
			duplicates = append(duplicates, Duplicate{
				ID:          p.ID,
				Title:       p.Title,
				DuplicateOf: title,
			})
			continue
		}
		firstTitle[p.ID] = p.Title
		unique = append(unique, p)
	}
	return unique, duplicates
}
