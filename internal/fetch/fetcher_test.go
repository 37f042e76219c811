package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arxradar/arxradar/internal/arxiv"
)

// fakeSource serves canned pages keyed by start offset.
type fakeSource struct {
	total   int
	pages   map[int][]arxiv.Entry
	errAt   map[int]error
	queries []arxiv.SearchRequest
}

func (f *fakeSource) Search(ctx context.Context, req arxiv.SearchRequest) (*arxiv.SearchResult, error) {
	f.queries = append(f.queries, req)
	if err, ok := f.errAt[req.Start]; ok {
		return nil, err
	}
	return &arxiv.SearchResult{TotalResults: f.total, Entries: f.pages[req.Start]}, nil
}

func entry(id string) arxiv.Entry {
	return arxiv.Entry{
		ID:        "http://arxiv.org/abs/" + id + "v1",
		Title:     "Paper " + id,
		Summary:   "Abstract for " + id,
		Published: "2024-03-01T00:00:00Z",
	}
}

func entries(ids ...string) []arxiv.Entry {
	out := make([]arxiv.Entry, len(ids))
	for i, id := range ids {
		out[i] = entry(id)
	}
	return out
}

func newTestFetcher(src Searcher) *Fetcher {
	return NewFetcher(src, arxiv.NewLimiter(0), zerolog.Nop())
}

func TestFetch_Paginates(t *testing.T) {
	src := &fakeSource{
		total: 4,
		pages: map[int][]arxiv.Entry{
			0: entries("2403.00001", "2403.00002"),
			2: entries("2403.00003", "2403.00004"),
		},
	}
	f := newTestFetcher(src)

	papers, err := f.Fetch(context.Background(), "cat:cs.AI", Options{PageSize: 2})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(papers) != 4 {
		t.Fatalf("len(papers) = %d, want 4", len(papers))
	}
	if papers[0].ID != "2403.00001" || papers[3].ID != "2403.00004" {
		t.Errorf("unexpected order: %s ... %s", papers[0].ID, papers[3].ID)
	}
	if len(src.queries) != 2 {
		t.Errorf("made %d requests, want 2", len(src.queries))
	}
}

func TestFetch_DateClauseAndDefaults(t *testing.T) {
	src := &fakeSource{total: 0}
	f := newTestFetcher(src)
	f.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := f.Fetch(context.Background(), "abs:agents", Options{StartDate: start}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := "(abs:agents) AND submittedDate:[202401010000 TO 202506152359]"
	if src.queries[0].Query != want {
		t.Errorf("query = %q, want %q", src.queries[0].Query, want)
	}
}

func TestFetch_StopsOnMaxResults(t *testing.T) {
	src := &fakeSource{
		total: 100,
		pages: map[int][]arxiv.Entry{
			0: entries("2403.00001", "2403.00002", "2403.00003"),
		},
	}
	f := newTestFetcher(src)

	papers, err := f.Fetch(context.Background(), "q", Options{MaxResults: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(papers) != 3 {
		t.Errorf("len(papers) = %d, want 3", len(papers))
	}
	if got := src.queries[0].MaxResults; got != 3 {
		t.Errorf("requested page size = %d, want 3 (capped by remaining)", got)
	}
	if len(src.queries) != 1 {
		t.Errorf("made %d requests, want 1", len(src.queries))
	}
}

func TestFetch_StopsOnShortPage(t *testing.T) {
	src := &fakeSource{
		total: 50, // upstream overreports; short page ends pagination
		pages: map[int][]arxiv.Entry{
			0: entries("2403.00001"),
		},
	}
	f := newTestFetcher(src)

	papers, err := f.Fetch(context.Background(), "q", Options{PageSize: 10})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(papers) != 1 {
		t.Errorf("len(papers) = %d, want 1", len(papers))
	}
	if len(src.queries) != 1 {
		t.Errorf("made %d requests, want 1", len(src.queries))
	}
}

func TestFetch_FirstPageErrorIsFatal(t *testing.T) {
	wantErr := fmt.Errorf("boom: %w", arxiv.ErrTransient)
	src := &fakeSource{errAt: map[int]error{0: wantErr}}
	f := newTestFetcher(src)

	_, err := f.Fetch(context.Background(), "q", Options{})
	if err == nil {
		t.Fatal("Fetch() expected error on first-page failure")
	}
	if !errors.Is(err, arxiv.ErrTransient) {
		t.Errorf("Fetch() error = %v, want transient", err)
	}
}

func TestFetch_LaterPageErrorReturnsPartial(t *testing.T) {
	src := &fakeSource{
		total: 4,
		pages: map[int][]arxiv.Entry{
			0: entries("2403.00001", "2403.00002"),
		},
		errAt: map[int]error{2: arxiv.ErrTransient},
	}
	f := newTestFetcher(src)

	papers, err := f.Fetch(context.Background(), "q", Options{PageSize: 2})
	if err != nil {
		t.Fatalf("Fetch() error = %v, want partial results with nil error", err)
	}
	if len(papers) != 2 {
		t.Errorf("len(papers) = %d, want 2 partial results", len(papers))
	}
}

func TestFetch_SkipsMalformedEntries(t *testing.T) {
	bad := arxiv.Entry{ID: "http://arxiv.org/abs/bad-id", Title: "Bad", Published: "2024-03-01T00:00:00Z"}
	src := &fakeSource{
		total: 2,
		pages: map[int][]arxiv.Entry{
			0: {bad, entry("2403.00002")},
		},
	}
	f := newTestFetcher(src)

	papers, err := f.Fetch(context.Background(), "q", Options{PageSize: 10})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(papers) != 1 || papers[0].ID != "2403.00002" {
		t.Errorf("papers = %v, want just 2403.00002", papers)
	}
}
