// Package paper defines the core domain types for harvested arXiv papers.
package paper

import (
	"strings"
	"time"
)

// Paper represents one bibliographic record ingested from arXiv.
type Paper struct {
	// Identity
	ID string `json:"id"` // Canonical arXiv identifier, version suffix stripped

	// Metadata
	Title    string   `json:"title"`
	Abstract string   `json:"abstract"`
	Authors  []Author `json:"authors"`

	// Dates (RFC 3339 as reported upstream)
	PublishedDate string `json:"publishedDate"`
	UpdatedDate   string `json:"updatedDate,omitempty"`
	Year          int    `json:"year"`

	// Upstream classification
	SourceCategories []string `json:"sourceCategories,omitempty"`
	PrimaryCategory  string   `json:"primaryCategory,omitempty"`

	// Derived document URLs
	AbsURL string `json:"absUrl"`
	PDFURL string `json:"pdfUrl,omitempty"`

	// Internal classification
	Categories []string `json:"categories,omitempty"`
	Tags       Tags     `json:"tags"`

	FetchedAt string `json:"fetchedAt,omitempty"`
}

// Author is one paper author in listing order.
type Author struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

// Tags separates machine-assigned labels from human-curated ones.
// Manual labels survive merges; auto labels are replaced on every
// recategorization.
type Tags struct {
	Auto   []string `json:"auto,omitempty"`
	Manual []string `json:"manual,omitempty"`
}

// RevisionTime returns the timestamp used for revision-recency comparison:
// UpdatedDate when present, otherwise PublishedDate. Unparseable dates
// yield the zero time, which compares as oldest.
func (p *Paper) RevisionTime() time.Time {
	for _, s := range []string{p.UpdatedDate, p.PublishedDate} {
		if s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AuthorNames returns the author names in order, without affiliations.
func (p *Paper) AuthorNames() []string {
	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		names[i] = a.Name
	}
	return names
}

// NormalizeSpace collapses all whitespace runs (including newlines from the
// Atom feed's folded text) to single spaces and trims the result.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// YearOf derives the publication year from a date string by parsing its
// 4-digit prefix. Returns 0 if the prefix is not a year.
func YearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	return year
}
