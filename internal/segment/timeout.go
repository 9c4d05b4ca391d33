package segment

import (
	"context"
	"time"

	"cart-offer/internal/offer"
)

// DefaultTimeout bounds a segment lookup when no timeout is configured.
const DefaultTimeout = 2 * time.Second

type timeoutResolver struct {
	next    Resolver
	timeout time.Duration
}

// WithTimeout bounds every lookup on next by timeout. The call returns once
// the deadline passes even if next ignores its context.
func WithTimeout(next Resolver, timeout time.Duration) Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &timeoutResolver{next: next, timeout: timeout}
}

type result struct {
	segment offer.Segment
	err     error
}

// Resolve runs the wrapped lookup under a deadline.
func (r *timeoutResolver) Resolve(ctx context.Context, userID int) (offer.Segment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Buffered so the lookup goroutine never blocks after a timeout.
	done := make(chan result, 1)
	go func() {
		s, err := r.next.Resolve(ctx, userID)
		done <- result{segment: s, err: err}
	}()

	select {
	case res := <-done:
		return res.segment, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
