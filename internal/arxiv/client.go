// Package arxiv provides a rate-limited client for the arXiv query API
// and normalization of its Atom entries into domain paper records.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// BaseURL is the arXiv query API endpoint.
	BaseURL = "https://export.arxiv.org/api/query"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps the Atom response body (10MB).
	maxResponseBytes = 10 << 20

	// userAgent identifies the harvester to arXiv.
	userAgent = "arxradar/1.0"
)

// Client is an HTTP client for the arXiv query API. Results are sorted by
// submission date descending so incremental harvests see new papers first.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new arXiv API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of results for the given request.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	params := url.Values{}
	params.Set("search_query", req.Query)
	params.Set("start", strconv.Itoa(req.Start))
	params.Set("max_results", strconv.Itoa(req.MaxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("querying arXiv: %w: %w", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var feed Feed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return &SearchResult{
		TotalResults: feed.TotalResults,
		Entries:      feed.Entries,
	}, nil
}

// DateRangeQuery combines a base query with a submittedDate clause covering
// [start 00:00, end 23:59].
func DateRangeQuery(query string, start, end time.Time) string {
	return fmt.Sprintf("(%s) AND submittedDate:[%s0000 TO %s2359]",
		query, start.Format("20060102"), end.Format("20060102"))
}
