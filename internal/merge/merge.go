package merge

import "github.com/arxradar/arxradar/internal/paper"

// Result reports the outcome of merging an incoming batch into an existing
// partition.
type Result struct {
	Merged  []paper.Paper
	Added   []string // IDs present only in the incoming batch
	Updated []string // IDs replaced by a newer incoming revision
}

// Merge combines an existing partition with an incoming batch, keyed by ID.
//
// Records present on only one side are kept unconditionally. When both sides
// have an ID, the incoming record replaces the existing one only if its
// revision is strictly newer; the replacement carries forward the existing
// record's manual curation: Tags.Manual always, and the Categories array
// wholesale whenever the existing record has any categories. Tags.Auto comes
// from the incoming record's fresh automatic labels.
//
// Merging the same incoming batch twice yields the same end state as once:
// the second pass sees equal revision times and keeps everything unchanged.
func Merge(existing, incoming []paper.Paper) Result {
	var result Result

	incomingByID := make(map[string]paper.Paper, len(incoming))
	for _, p := range incoming {
		incomingByID[p.ID] = p
	}

	existingIDs := make(map[string]bool, len(existing))
	for _, old := range existing {
		existingIDs[old.ID] = true

		in, ok := incomingByID[old.ID]
		if !ok || !in.RevisionTime().After(old.RevisionTime()) {
			result.Merged = append(result.Merged, old)
			continue
		}

		// Newer revision replaces the record, but curation is sticky.
		in.Tags.Manual = old.Tags.Manual
		if len(old.Categories) > 0 {
			in.Categories = old.Categories
		}
		result.Merged = append(result.Merged, in)
		result.Updated = append(result.Updated, in.ID)
	}

	for _, p := range incoming {
		if existingIDs[p.ID] {
			continue
		}
		result.Merged = append(result.Merged, p)
		result.Added = append(result.Added, p.ID)
	}

	return result
}

// GroupByYear splits a batch into per-year sub-batches, preserving order
// within each year.
func GroupByYear(papers []paper.Paper) map[int][]paper.Paper {
	byYear := make(map[int][]paper.Paper)
	for _, p := range papers {
		byYear[p.Year] = append(byYear[p.Year], p)
	}
	return byYear
}
