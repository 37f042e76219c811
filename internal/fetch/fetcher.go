// Package fetch paginates arXiv queries into normalized paper records and
// runs ordered multi-query harvests with cross-query deduplication.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arxradar/arxradar/internal/arxiv"
	"github.com/arxradar/arxradar/internal/paper"
)

const (
	// DefaultPageSize is the number of results requested per API call.
	DefaultPageSize = 100
)

// earliestSubmission is the start of archival coverage, used when no start
// date is given.
var earliestSubmission = time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC)

// Searcher is the upstream query contract the fetcher depends on.
type Searcher interface {
	Search(ctx context.Context, req arxiv.SearchRequest) (*arxiv.SearchResult, error)
}

// Waiter gates outbound requests. A zero-delay limiter satisfies it in tests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Options controls one query's pagination.
type Options struct {
	// MaxResults caps the number of records accumulated for the query.
	// Zero means unlimited.
	MaxResults int

	// StartDate and EndDate bound the submittedDate clause. Zero values
	// default to the earliest supported date and now respectively.
	StartDate time.Time
	EndDate   time.Time

	// PageSize overrides DefaultPageSize when positive.
	PageSize int
}

// Fetcher pages through arXiv queries, waiting on the limiter before every
// request and normalizing entries as they arrive.
type Fetcher struct {
	src     Searcher
	limiter Waiter
	log     zerolog.Logger
	now     func() time.Time
}

// NewFetcher creates a fetcher over the given upstream and rate limiter.
func NewFetcher(src Searcher, limiter Waiter, log zerolog.Logger) *Fetcher {
	return &Fetcher{src: src, limiter: limiter, log: log, now: time.Now}
}

// Fetch collects up to opts.MaxResults normalized records for the query.
//
// A transient error on the first page is returned; on any later page it
// terminates pagination early and the records collected so far are returned
// with a nil error. Entries whose identifier cannot be extracted are logged
// and skipped without aborting the page.
func (f *Fetcher) Fetch(ctx context.Context, query string, opts Options) ([]paper.Paper, error) {
	start := opts.StartDate
	if start.IsZero() {
		start = earliestSubmission
	}
	end := opts.EndDate
	if end.IsZero() {
		end = f.now()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	fullQuery := arxiv.DateRangeQuery(query, start, end)

	var papers []paper.Paper
	offset := 0
	for {
		size := pageSize
		if opts.MaxResults > 0 && opts.MaxResults-len(papers) < size {
			size = opts.MaxResults - len(papers)
		}
		if size <= 0 {
			break
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return papers, fmt.Errorf("waiting on rate limiter: %w", err)
		}

		result, err := f.src.Search(ctx, arxiv.SearchRequest{
			Query:      fullQuery,
			Start:      offset,
			MaxResults: size,
		})
		if err != nil {
			if offset == 0 {
				return nil, fmt.Errorf("fetching first page for %q: %w", query, err)
			}
			f.log.Warn().Err(err).Str("query", query).Int("offset", offset).
				Int("collected", len(papers)).Msg("pagination aborted, keeping partial results")
			return papers, nil
		}

		if len(result.Entries) == 0 {
			break
		}

		fetchedAt := f.now()
		for i := range result.Entries {
			p, err := arxiv.EntryToPaper(&result.Entries[i], fetchedAt)
			if err != nil {
				f.log.Warn().Err(err).Str("query", query).Msg("skipping malformed entry")
				continue
			}
			papers = append(papers, p)
			if opts.MaxResults > 0 && len(papers) >= opts.MaxResults {
				return papers, nil
			}
		}

		offset += len(result.Entries)
		if offset >= result.TotalResults {
			break
		}
		if len(result.Entries) < size {
			// Short page signals the end of results.
			break
		}
	}

	return papers, nil
}
