package arxiv

import (
	"errors"
	"fmt"
)

// Common errors returned by the arXiv client.
var (
	// ErrTransient indicates a network or HTTP failure that may succeed
	// on a later run. The fetcher treats it as fatal only on the first
	// page of a query.
	ErrTransient = errors.New("transient arXiv fetch error")

	// ErrInvalidResponse indicates the upstream returned something that
	// is not a parseable Atom feed.
	ErrInvalidResponse = errors.New("invalid response from arXiv")
)

// APIError represents a non-200 response from the arXiv API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("arXiv API error (status %d): %s", e.StatusCode, e.Body)
}

// Unwrap classifies every API error as transient: arXiv returns 5xx and
// 429-style responses during maintenance windows and abuse throttling,
// and a later incremental run re-covers the same date range.
func (e *APIError) Unwrap() error {
	return ErrTransient
}

// MalformedRecordError indicates an individual entry whose canonical URL
// does not contain an extractable arXiv identifier. It is fatal for that
// entry only and signals upstream format drift, so it is never retried.
type MalformedRecordError struct {
	URL string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed arXiv record: no identifier in %q", e.URL)
}

// IsTransient returns true if the error can be attributed to a temporary
// upstream or network condition.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsMalformed returns true if the error is a per-entry normalization failure.
func IsMalformed(err error) bool {
	var m *MalformedRecordError
	return errors.As(err, &m)
}
