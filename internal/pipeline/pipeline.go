// Package pipeline orchestrates a harvest run: multi-query collection,
// categorization, deduplication, per-year merge and persistence, and the
// final index rebuild.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/arxradar/arxradar/internal/category"
	"github.com/arxradar/arxradar/internal/fetch"
	"github.com/arxradar/arxradar/internal/merge"
	"github.com/arxradar/arxradar/internal/paper"
	"github.com/arxradar/arxradar/internal/store"
)

// Stores groups the persistence dependencies of a run. Tests substitute a
// temp-dir YearStore and in-memory curation data.
type Stores struct {
	Years         *store.YearStore
	IndexPath     string
	BlockListPath string
}

// Pipeline wires the collector, categorizer and stores into one batch job.
// There is exactly one writer process per invocation; overlapping runs need
// an external guard such as a lock file.
type Pipeline struct {
	collector   *fetch.Collector
	categorizer *category.Categorizer
	stores      Stores
	log         zerolog.Logger
	now         func() time.Time
}

// New creates a pipeline from its collaborators.
func New(collector *fetch.Collector, categorizer *category.Categorizer, stores Stores, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		collector:   collector,
		categorizer: categorizer,
		stores:      stores,
		log:         log,
		now:         time.Now,
	}
}

// RunOptions configures one harvest run.
type RunOptions struct {
	Queries   []fetch.TopicQuery
	StartDate time.Time
	EndDate   time.Time

	// MaxPerQuery caps each query's results. Zero means unlimited.
	MaxPerQuery int

	// PageSize overrides the fetch default when positive.
	PageSize int
}

// Summary reports the outcome of a run for the CLI.
type Summary struct {
	Fetched       int               `json:"fetched"`
	Unique        int               `json:"unique"`
	Duplicates    []merge.Duplicate `json:"duplicates,omitempty"`
	Added         int               `json:"added"`
	Updated       int               `json:"updated"`
	Years         []int             `json:"years,omitempty"`
	FailedQueries []string          `json:"failed_queries,omitempty"`
	IndexedPapers int               `json:"indexed_papers"`
}

// Run executes a full harvest: collect, categorize, dedupe, merge into the
// per-year partitions, then rebuild the index. The index rebuild happens
// only after every partition write for the batch has succeeded; each
// partition write is independent and the merge step is idempotent, so a run
// killed between partitions heals on the next invocation.
func (pl *Pipeline) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	var summary Summary

	collected, stats, err := pl.collector.Collect(ctx, opts.Queries, fetch.Options{
		MaxResults: opts.MaxPerQuery,
		StartDate:  opts.StartDate,
		EndDate:    opts.EndDate,
		PageSize:   opts.PageSize,
	})
	if err != nil {
		return summary, fmt.Errorf("collecting: %w", err)
	}
	summary.Fetched = stats.Fetched
	summary.FailedQueries = stats.FailedQueries

	labeled := pl.categorizer.Apply(collected)
	unique, duplicates := merge.Deduplicate(labeled)
	summary.Unique = len(unique)
	summary.Duplicates = duplicates

	byYear := merge.GroupByYear(unique)
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	summary.Years = years

	for _, year := range years {
		existing, err := pl.stores.Years.Load(year)
		if err != nil {
			return summary, err
		}
		result := merge.Merge(existing, byYear[year])
		if err := pl.stores.Years.Save(year, result.Merged); err != nil {
			return summary, err
		}
		summary.Added += len(result.Added)
		summary.Updated += len(result.Updated)
		pl.log.Info().Int("year", year).
			Int("added", len(result.Added)).Int("updated", len(result.Updated)).
			Int("total", len(result.Merged)).Msg("partition merged")
	}

	indexed, err := pl.RebuildIndex()
	if err != nil {
		return summary, err
	}
	summary.IndexedPapers = indexed

	return summary, nil
}

// RebuildIndex regenerates the cross-year index from all partitions minus
// the block-list. When no source data exists the previous index file is
// left untouched and the call still succeeds.
func (pl *Pipeline) RebuildIndex() (int, error) {
	partitions, err := pl.stores.Years.LoadAll()
	if err != nil {
		return 0, err
	}

	blockList, err := store.LoadBlockList(pl.stores.BlockListPath)
	if err != nil {
		return 0, err
	}

	idx, err := store.BuildIndex(partitions, blockList.IDs(), pl.now())
	if err == store.ErrNoSourceData {
		pl.log.Warn().Msg("no source partitions found, keeping previous index")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if err := store.WriteIndex(pl.stores.IndexPath, idx); err != nil {
		return 0, err
	}
	pl.log.Info().Int("papers", idx.Meta.TotalPapers).
		Ints("years", idx.Meta.Years).Msg("index rebuilt")
	return idx.Meta.TotalPapers, nil
}

// Recategorize reloads every partition, reapplies automatic labels with the
// current category definitions, and persists the result. Manual curation is
// preserved by the same stickiness rule the merger uses: records whose
// Categories were set by hand keep them.
func (pl *Pipeline) Recategorize() (int, error) {
	years, err := pl.stores.Years.Years()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, year := range years {
		papers, err := pl.stores.Years.Load(year)
		if err != nil {
			return total, err
		}
		for i := range papers {
			relabeled := relabel(pl.categorizer, &papers[i])
			papers[i] = relabeled
		}
		if err := pl.stores.Years.Save(year, papers); err != nil {
			return total, err
		}
		total += len(papers)
	}
	return total, nil
}

// relabel refreshes a record's automatic labels. Categories follow the new
// auto labels only when the record carries no manual tags.
func relabel(c *category.Categorizer, p *paper.Paper) paper.Paper {
	out := *p
	labels := c.Labels(p)
	out.Tags.Auto = labels
	if len(out.Tags.Manual) == 0 {
		out.Categories = append([]string(nil), labels...)
	}
	return out
}
