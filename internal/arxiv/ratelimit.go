package arxiv

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestDelay is the minimum spacing between requests to the
// arXiv API, per their usage guidelines.
const DefaultRequestDelay = 3 * time.Second

// Limiter enforces a minimum delay between outbound requests. The first
// Wait never blocks; each subsequent Wait blocks until the delay has
// elapsed since the previous Wait completed, so slow requests do not
// compound the spacing.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter with the given inter-request delay.
// A non-positive delay disables waiting entirely (useful in tests).
func NewLimiter(delay time.Duration) *Limiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Limiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a request is allowed or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
