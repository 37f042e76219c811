package category

import (
	"sort"
	"strings"

	"github.com/arxradar/arxradar/internal/paper"
)

// DefaultThreshold is the minimum keyword matches required to assign a
// category label.
const DefaultThreshold = 1

// Categorizer assigns topic labels by counting keyword occurrences over a
// record's title and abstract. It is a pure function of its inputs:
// identical (record, categories) input yields identical output regardless
// of call order, so repeated recategorization is safe.
type Categorizer struct {
	categories []Category
	threshold  int
}

// NewCategorizer creates a categorizer over the given definitions.
// A threshold below 1 falls back to DefaultThreshold.
func NewCategorizer(categories []Category, threshold int) *Categorizer {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Categorizer{categories: categories, threshold: threshold}
}

// Labels returns the category IDs matching the given paper, ordered by
// descending match count with ties broken by definition order.
func (c *Categorizer) Labels(p *paper.Paper) []string {
	text := strings.ToLower(p.Title + " " + p.Abstract)

	type match struct {
		id    string
		count int
		order int
	}
	var matches []match
	for i, cat := range c.categories {
		count := 0
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				count++
			}
		}
		if count >= c.threshold {
			matches = append(matches, match{id: cat.ID, count: count, order: i})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].count != matches[b].count {
			return matches[a].count > matches[b].count
		}
		return matches[a].order < matches[b].order
	})

	if len(matches) == 0 {
		return nil
	}
	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = m.id
	}
	return labels
}

// Apply returns a copy of the records with Categories and Tags.Auto set
// from keyword matching. Manual tags are left untouched.
func (c *Categorizer) Apply(papers []paper.Paper) []paper.Paper {
	out := make([]paper.Paper, len(papers))
	for i, p := range papers {
		labels := c.Labels(&p)
		p.Categories = labels
		p.Tags.Auto = append([]string(nil), labels...)
		out[i] = p
	}
	return out
}
