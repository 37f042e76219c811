package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/arxradar/arxradar/internal/paper"
)

// ErrNoSourceData signals that no partitions contained any papers, so the
// caller may choose to keep a previously written index instead of
// overwriting it with an empty one.
var ErrNoSourceData = errors.New("no source partitions found")

// IndexedPaper is the trimmed per-paper projection served to the browsing UI.
type IndexedPaper struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	PublishedDate   string   `json:"publishedDate"`
	UpdatedDate     string   `json:"updatedDate,omitempty"`
	Year            int      `json:"year"`
	AbsURL          string   `json:"absUrl"`
	PDFURL          string   `json:"pdfUrl,omitempty"`
	PrimaryCategory string   `json:"primaryCategory,omitempty"`
	Categories      []string `json:"categories,omitempty"`
}

// IndexMeta carries aggregate information about the index contents.
type IndexMeta struct {
	LastUpdated string   `json:"lastUpdated"`
	TotalPapers int      `json:"totalPapers"`
	Categories  []string `json:"categories"` // distinct category IDs in use, sorted
	Years       []int    `json:"years"`      // distinct years present, descending
}

// Index is the derived, disposable cross-year projection. It is rebuildable
// at any time from the partitions plus the block-list.
type Index struct {
	Meta   IndexMeta      `json:"meta"`
	Papers []IndexedPaper `json:"papers"`
}

// BuildIndex derives an index from all partitions, excluding blocked IDs.
// Papers are sorted by published date descending with original relative
// order preserved on ties. Zero surviving source data yields an empty index
// together with ErrNoSourceData.
func BuildIndex(partitions []Partition, blocked map[string]bool, now time.Time) (Index, error) {
	var projected []IndexedPaper
	haveSource := false
	for _, part := range partitions {
		if len(part.Papers) > 0 {
			haveSource = true
		}
		for i := range part.Papers {
			p := &part.Papers[i]
			if blocked[p.ID] {
				continue
			}
			projected = append(projected, projectPaper(p))
		}
	}

	sort.SliceStable(projected, func(a, b int) bool {
		return projected[a].PublishedDate > projected[b].PublishedDate
	})

	categorySet := make(map[string]bool)
	yearSet := make(map[int]bool)
	for _, p := range projected {
		yearSet[p.Year] = true
		for _, c := range p.Categories {
			categorySet[c] = true
		}
	}

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	if projected == nil {
		projected = []IndexedPaper{}
	}
	idx := Index{
		Meta: IndexMeta{
			LastUpdated: now.UTC().Format(time.RFC3339),
			TotalPapers: len(projected),
			Categories:  categories,
			Years:       years,
		},
		Papers: projected,
	}

	if !haveSource {
		return idx, ErrNoSourceData
	}
	return idx, nil
}

func projectPaper(p *paper.Paper) IndexedPaper {
	return IndexedPaper{
		ID:              p.ID,
		Title:           p.Title,
		Authors:         p.AuthorNames(),
		Abstract:        p.Abstract,
		PublishedDate:   p.PublishedDate,
		UpdatedDate:     p.UpdatedDate,
		Year:            p.Year,
		AbsURL:          p.AbsURL,
		PDFURL:          p.PDFURL,
		PrimaryCategory: p.PrimaryCategory,
		Categories:      p.Categories,
	}
}

// WriteIndex persists the index atomically.
func WriteIndex(path string, idx Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// ReadIndex loads a previously written index file.
func ReadIndex(path string) (Index, error) {
	var idx Index
	data, err := os.ReadFile(path)
	if err != nil {
		return idx, fmt.Errorf("reading index: %w", err)
	}
	if err := json.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("parsing index: %w", err)
	}
	return idx, nil
}
