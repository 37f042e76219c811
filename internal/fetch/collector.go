package fetch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arxradar/arxradar/internal/paper"
)

// TopicQuery is one entry in the ordered harvest query list.
type TopicQuery struct {
	Query       string `yaml:"query" json:"query"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
}

// CollectStats summarizes a multi-query run.
type CollectStats struct {
	Fetched       int      // records returned across all queries, pre-dedup
	Deduped       int      // records dropped because an earlier query produced the same ID
	FailedQueries []string // queries whose fetch errored out entirely
}

// Collector runs an ordered list of topic queries through a fetcher,
// deduplicating across queries by ID as it goes.
type Collector struct {
	fetcher *Fetcher
	log     zerolog.Logger
}

// NewCollector creates a collector over the given fetcher.
func NewCollector(fetcher *Fetcher, log zerolog.Logger) *Collector {
	return &Collector{fetcher: fetcher, log: log}
}

// Collect runs the queries strictly in order against the shared rate-limited
// fetcher. The first query to return an ID wins; later duplicates are
// dropped. A failed query is logged and skipped, so partial multi-query
// results are the expected degraded behavior rather than a hard failure.
func (c *Collector) Collect(ctx context.Context, queries []TopicQuery, opts Options) ([]paper.Paper, CollectStats, error) {
	var (
		collected []paper.Paper
		stats     CollectStats
		seen      = make(map[string]bool)
	)

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return collected, stats, err
		}

		papers, err := c.fetcher.Fetch(ctx, q.Query, opts)
		if err != nil {
			stats.FailedQueries = append(stats.FailedQueries, q.Query)
			c.log.Error().Err(err).Str("query", q.Query).Str("topic", q.Description).
				Msg("query failed, continuing with remaining queries")
			continue
		}

		stats.Fetched += len(papers)
		for _, p := range papers {
			if seen[p.ID] {
				stats.Deduped++
				continue
			}
			seen[p.ID] = true
			collected = append(collected, p)
		}

		c.log.Info().Str("query", q.Query).Str("topic", q.Description).
			Int("fetched", len(papers)).Int("total", len(collected)).Msg("query complete")
	}

	return collected, stats, nil
}
