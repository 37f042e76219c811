package arxiv

import "encoding/xml"

// Feed is the Atom envelope returned by the arXiv query API.
type Feed struct {
	XMLName      xml.Name `xml:"feed"`
	TotalResults int      `xml:"totalResults"`
	StartIndex   int      `xml:"startIndex"`
	ItemsPerPage int      `xml:"itemsPerPage"`
	Entries      []Entry  `xml:"entry"`
}

// Entry is one raw paper record in the upstream's native shape.
type Entry struct {
	ID              string     `xml:"id"`
	Title           string     `xml:"title"`
	Summary         string     `xml:"summary"`
	Published       string     `xml:"published"`
	Updated         string     `xml:"updated"`
	Authors         []Author   `xml:"author"`
	Links           []Link     `xml:"link"`
	Categories      []Category `xml:"category"`
	PrimaryCategory *Category  `xml:"primary_category"`
}

// Author is an author element of an entry.
type Author struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"affiliation"`
}

// Link is a link element of an entry. The PDF variant is marked with
// title="pdf"; the abstract page carries rel="alternate".
type Link struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// Category is a subject classification term assigned upstream.
type Category struct {
	Term string `xml:"term,attr"`
}

// SearchRequest describes one page request against the query API.
type SearchRequest struct {
	Query      string
	Start      int // zero-based result offset
	MaxResults int // page size for this call
}

// SearchResult is the parsed response for one page.
type SearchResult struct {
	TotalResults int
	Entries      []Entry
}
