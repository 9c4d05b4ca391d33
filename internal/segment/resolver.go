package segment

import (
	"context"
	"errors"

	"cart-offer/internal/offer"
)

// ErrUnresolved is returned when a user has no resolvable segment.
var ErrUnresolved = errors.New("segment unresolved")

// Resolver looks up the customer segment of a user.
type Resolver interface {
	// Resolve returns the user's segment tag. Any failure, including a
	// missing user, is reported as an error.
	Resolve(ctx context.Context, userID int) (offer.Segment, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, userID int) (offer.Segment, error)

// Resolve calls f(ctx, userID).
func (f ResolverFunc) Resolve(ctx context.Context, userID int) (offer.Segment, error) {
	return f(ctx, userID)
}
