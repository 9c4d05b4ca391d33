package segment

import (
	"context"
	"errors"
	"testing"
	"time"

	"cart-offer/internal/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTimeout_PassesThrough(t *testing.T) {
	inner := ResolverFunc(func(ctx context.Context, userID int) (offer.Segment, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return "p3", nil
	})

	segment, err := WithTimeout(inner, time.Second).Resolve(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, offer.Segment("p3"), segment)
}

func TestWithTimeout_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	inner := ResolverFunc(func(ctx context.Context, userID int) (offer.Segment, error) {
		return "", boom
	})

	_, err := WithTimeout(inner, time.Second).Resolve(context.Background(), 3)

	assert.ErrorIs(t, err, boom)
}

func TestWithTimeout_ReturnsWhenInnerIgnoresContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	inner := ResolverFunc(func(ctx context.Context, userID int) (offer.Segment, error) {
		<-release
		return "p1", nil
	})

	start := time.Now()
	segment, err := WithTimeout(inner, 50*time.Millisecond).Resolve(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, segment)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithTimeout_DefaultTimeout(t *testing.T) {
	r := WithTimeout(ResolverFunc(func(ctx context.Context, userID int) (offer.Segment, error) {
		return "p1", nil
	}), 0).(*timeoutResolver)

	assert.Equal(t, DefaultTimeout, r.timeout)
}
