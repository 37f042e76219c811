package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arxradar/arxradar/internal/arxiv"
	"github.com/arxradar/arxradar/internal/category"
	"github.com/arxradar/arxradar/internal/fetch"
	"github.com/arxradar/arxradar/internal/paper"
	"github.com/arxradar/arxradar/internal/store"
)

// fakeSearch serves a fixed entry set for every query.
type fakeSearch struct {
	entries []arxiv.Entry
}

func (f *fakeSearch) Search(ctx context.Context, req arxiv.SearchRequest) (*arxiv.SearchResult, error) {
	start := req.Start
	if start > len(f.entries) {
		start = len(f.entries)
	}
	end := start + req.MaxResults
	if end > len(f.entries) {
		end = len(f.entries)
	}
	return &arxiv.SearchResult{
		TotalResults: len(f.entries),
		Entries:      f.entries[start:end],
	}, nil
}

func feedEntry(id, title, summary, published, updated string) arxiv.Entry {
	return arxiv.Entry{
		ID:        "http://arxiv.org/abs/" + id + "v1",
		Title:     title,
		Summary:   summary,
		Published: published,
		Updated:   updated,
		Authors:   []arxiv.Author{{Name: "Test Author"}},
	}
}

func testCategories() []category.Category {
	return []category.Category{
		{ID: "llm", Name: "LLMs", Keywords: []string{"language model"}},
		{ID: "agents", Name: "Agents", Keywords: []string{"agent"}},
	}
}

type testEnv struct {
	pipeline  *Pipeline
	dataDir   string
	indexPath string
	years     *store.YearStore
}

func newTestEnv(t *testing.T, src fetch.Searcher) testEnv {
	t.Helper()
	dir := t.TempDir()

	years, err := store.NewYearStore(filepath.Join(dir, "papers"))
	if err != nil {
		t.Fatalf("NewYearStore: %v", err)
	}

	log := zerolog.Nop()
	fetcher := fetch.NewFetcher(src, arxiv.NewLimiter(0), log)
	collector := fetch.NewCollector(fetcher, log)
	categorizer := category.NewCategorizer(testCategories(), 1)

	indexPath := filepath.Join(dir, "index.json")
	pl := New(collector, categorizer, Stores{
		Years:         years,
		IndexPath:     indexPath,
		BlockListPath: filepath.Join(dir, "blocklist.json"),
	}, log)

	return testEnv{pipeline: pl, dataDir: dir, indexPath: indexPath, years: years}
}

func TestRun_EndToEnd(t *testing.T) {
	src := &fakeSearch{entries: []arxiv.Entry{
		feedEntry("2401.00001", "A language model survey", "We survey language model scaling.",
			"2024-01-10T00:00:00Z", ""),
		feedEntry("2301.00001", "Tool-using agent benchmarks", "Benchmarks for agent evaluation.",
			"2023-05-01T00:00:00Z", ""),
	}}
	env := newTestEnv(t, src)

	queries := []fetch.TopicQuery{{Query: `all:"language model"`, Description: "LLMs"}}
	summary, err := env.pipeline.Run(context.Background(), RunOptions{Queries: queries})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Fetched != 2 || summary.Unique != 2 {
		t.Errorf("fetched = %d, unique = %d, want 2 each", summary.Fetched, summary.Unique)
	}
	if summary.Added != 2 || summary.Updated != 0 {
		t.Errorf("added = %d, updated = %d, want 2 and 0", summary.Added, summary.Updated)
	}
	if !reflect.DeepEqual(summary.Years, []int{2023, 2024}) {
		t.Errorf("years = %v, want [2023 2024]", summary.Years)
	}
	if summary.IndexedPapers != 2 {
		t.Errorf("indexedPapers = %d, want 2", summary.IndexedPapers)
	}

	// Partitions landed per year with automatic labels applied.
	papers2024, err := env.years.Load(2024)
	if err != nil {
		t.Fatalf("Load(2024): %v", err)
	}
	if len(papers2024) != 1 || papers2024[0].ID != "2401.00001" {
		t.Fatalf("papers2024 = %+v", papers2024)
	}
	if !reflect.DeepEqual(papers2024[0].Categories, []string{"llm"}) {
		t.Errorf("Categories = %v, want [llm]", papers2024[0].Categories)
	}
	if !reflect.DeepEqual(papers2024[0].Tags.Auto, []string{"llm"}) {
		t.Errorf("Tags.Auto = %v, want [llm]", papers2024[0].Tags.Auto)
	}

	idx, err := store.ReadIndex(env.indexPath)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if idx.Meta.TotalPapers != 2 {
		t.Errorf("index totalPapers = %d, want 2", idx.Meta.TotalPapers)
	}
	if idx.Papers[0].ID != "2401.00001" {
		t.Errorf("index order: first paper = %s, want newest first", idx.Papers[0].ID)
	}
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	src := &fakeSearch{entries: []arxiv.Entry{
		feedEntry("2401.00001", "A language model survey", "Scaling language model studies.",
			"2024-01-10T00:00:00Z", "2024-02-01T00:00:00Z"),
	}}
	env := newTestEnv(t, src)
	queries := []fetch.TopicQuery{{Query: `all:"language model"`}}

	if _, err := env.pipeline.Run(context.Background(), RunOptions{Queries: queries}); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before, err := env.years.Load(2024)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	summary, err := env.pipeline.Run(context.Background(), RunOptions{Queries: queries})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Added != 0 || summary.Updated != 0 {
		t.Errorf("second run added = %d, updated = %d, want 0 and 0", summary.Added, summary.Updated)
	}

	after, err := env.years.Load(2024)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// FetchedAt differs between runs; the stored record must not.
	if len(after) != len(before) || after[0].ID != before[0].ID ||
		after[0].UpdatedDate != before[0].UpdatedDate {
		t.Errorf("second run changed the partition:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRun_BlockedPaperExcludedFromIndex(t *testing.T) {
	src := &fakeSearch{entries: []arxiv.Entry{
		feedEntry("2401.00001", "A language model survey", "Language model notes.",
			"2024-01-10T00:00:00Z", ""),
		feedEntry("2401.00002", "Agent planning", "An agent that plans.",
			"2024-03-10T00:00:00Z", ""),
	}}
	env := newTestEnv(t, src)

	blockList, _ := json.Marshal(store.BlockList{Blocked: []store.BlockedPaper{{ID: "2401.00002"}}})
	if err := os.WriteFile(filepath.Join(env.dataDir, "blocklist.json"), blockList, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	summary, err := env.pipeline.Run(context.Background(), RunOptions{
		Queries: []fetch.TopicQuery{{Query: "all:agent"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The blocked paper is still persisted, just invisible in the index.
	if summary.Added != 2 {
		t.Errorf("added = %d, want 2", summary.Added)
	}
	if summary.IndexedPapers != 1 {
		t.Errorf("indexedPapers = %d, want 1", summary.IndexedPapers)
	}

	idx, err := store.ReadIndex(env.indexPath)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if len(idx.Papers) != 1 || idx.Papers[0].ID != "2401.00001" {
		t.Errorf("index papers = %+v, want only 2401.00001", idx.Papers)
	}
}

func TestRebuildIndex_NoSourceDataKeepsPreviousIndex(t *testing.T) {
	env := newTestEnv(t, &fakeSearch{})

	previous := []byte(`{"meta":{"totalPapers":5},"papers":[]}`)
	if err := os.WriteFile(env.indexPath, previous, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	indexed, err := env.pipeline.RebuildIndex()
	if err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	if indexed != 0 {
		t.Errorf("indexed = %d, want 0", indexed)
	}

	data, err := os.ReadFile(env.indexPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != string(previous) {
		t.Errorf("previous index overwritten:\n%s", data)
	}
}

func TestRecategorize(t *testing.T) {
	env := newTestEnv(t, &fakeSearch{})

	auto := paper.Paper{
		ID:            "2401.00001",
		Title:         "An agent framework",
		Abstract:      "We build an agent.",
		PublishedDate: "2024-01-10T00:00:00Z",
		Year:          2024,
		Categories:    []string{"llm"},
		Tags:          paper.Tags{Auto: []string{"llm"}},
	}
	curated := paper.Paper{
		ID:            "2401.00002",
		Title:         "An agent benchmark",
		Abstract:      "Benchmarking agent behavior.",
		PublishedDate: "2024-02-10T00:00:00Z",
		Year:          2024,
		Categories:    []string{"evaluation"},
		Tags:          paper.Tags{Auto: []string{"llm"}, Manual: []string{"evaluation"}},
	}
	if err := env.years.Save(2024, []paper.Paper{auto, curated}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	total, err := env.pipeline.Recategorize()
	if err != nil {
		t.Fatalf("Recategorize: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}

	papers, err := env.years.Load(2024)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Uncurated record follows the fresh auto labels.
	if !reflect.DeepEqual(papers[0].Categories, []string{"agents"}) {
		t.Errorf("papers[0].Categories = %v, want [agents]", papers[0].Categories)
	}
	if !reflect.DeepEqual(papers[0].Tags.Auto, []string{"agents"}) {
		t.Errorf("papers[0].Tags.Auto = %v, want [agents]", papers[0].Tags.Auto)
	}

	// Curated record refreshes auto labels but keeps its categories.
	if !reflect.DeepEqual(papers[1].Categories, []string{"evaluation"}) {
		t.Errorf("papers[1].Categories = %v, curation must survive", papers[1].Categories)
	}
	if !reflect.DeepEqual(papers[1].Tags.Auto, []string{"agents"}) {
		t.Errorf("papers[1].Tags.Auto = %v, want [agents]", papers[1].Tags.Auto)
	}
	if !reflect.DeepEqual(papers[1].Tags.Manual, []string{"evaluation"}) {
		t.Errorf("papers[1].Tags.Manual = %v, must survive", papers[1].Tags.Manual)
	}
}
