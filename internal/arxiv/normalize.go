package arxiv

import (
	"regexp"
	"time"

	"github.com/arxradar/arxradar/internal/paper"
)

// idRe extracts a modern arXiv identifier (NNNN.NNNNN, optional version
// suffix) from the tail of an entry's canonical URL.
var idRe = regexp.MustCompile(`(\d{4}\.\d{4,5})(v\d+)?$`)

// ExtractID parses the arXiv identifier out of an abs URL, discarding any
// version suffix. Returns a MalformedRecordError if no identifier is found.
func ExtractID(rawURL string) (string, error) {
	m := idRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", &MalformedRecordError{URL: rawURL}
	}
	return m[1], nil
}

// EntryToPaper normalizes one raw Atom entry into a canonical paper record.
// fetchedAt stamps the record with the ingestion time.
func EntryToPaper(e *Entry, fetchedAt time.Time) (paper.Paper, error) {
	id, err := ExtractID(e.ID)
	if err != nil {
		return paper.Paper{}, err
	}

	authors := make([]paper.Author, 0, len(e.Authors))
	for _, a := range e.Authors {
		authors = append(authors, paper.Author{
			Name:        paper.NormalizeSpace(a.Name),
			Affiliation: paper.NormalizeSpace(a.Affiliation),
		})
	}

	categories := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c.Term != "" {
			categories = append(categories, c.Term)
		}
	}
	primary := ""
	if e.PrimaryCategory != nil {
		primary = e.PrimaryCategory.Term
	}
	if primary == "" && len(categories) > 0 {
		primary = categories[0]
	}

	pdfURL := ""
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			pdfURL = l.Href
			break
		}
	}

	return paper.Paper{
		ID:               id,
		Title:            paper.NormalizeSpace(e.Title),
		Abstract:         paper.NormalizeSpace(e.Summary),
		Authors:          authors,
		PublishedDate:    e.Published,
		UpdatedDate:      e.Updated,
		Year:             paper.YearOf(e.Published),
		SourceCategories: categories,
		PrimaryCategory:  primary,
		AbsURL:           "https://arxiv.org/abs/" + id,
		PDFURL:           pdfURL,
		FetchedAt:        fetchedAt.UTC().Format(time.RFC3339),
	}, nil
}
