package segment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cart-offer/internal/model"
	"cart-offer/internal/offer"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// SegmentPath is the lookup endpoint on the segment service.
const SegmentPath = "/api/v1/user_segment"

// maxResponseBytes bounds the segment response body.
const maxResponseBytes = 64 * 1024

// httpResolver implements Resolver against the user segment HTTP service.
type httpResolver struct {
	client  *http.Client
	baseURL string
	group   singleflight.Group
	logger  zerolog.Logger
}

// NewHTTPResolver creates a resolver calling GET {baseURL}/api/v1/user_segment?user_id=N.
// A nil client gets a default client bounded by timeout.
func NewHTTPResolver(baseURL string, client *http.Client, timeout time.Duration, logger zerolog.Logger) Resolver {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &httpResolver{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "segment-http-resolver").Logger(),
	}
}

// Resolve fetches the user's segment. Concurrent lookups for the same user
// share one request, which is bounded by the client timeout rather than by
// any single caller's context.
func (r *httpResolver) Resolve(ctx context.Context, userID int) (offer.Segment, error) {
	key := strconv.Itoa(userID)
	shared := context.WithoutCancel(ctx)

	ch := r.group.DoChan(key, func() (interface{}, error) {
		return r.fetch(shared, userID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(offer.Segment), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *httpResolver) fetch(ctx context.Context, userID int) (offer.Segment, error) {
	query := url.Values{}
	query.Set("user_id", strconv.Itoa(userID))
	endpoint := r.baseURL + SegmentPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create segment request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get segment for user %d: %w", userID, err)
	}
	defer resp.Body.Close()

	r.logger.Debug().
		Int("user_id", userID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("segment service responded")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("segment service returned status %d: %w", resp.StatusCode, ErrUnresolved)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read segment response: %w", err)
	}

	var payload model.SegmentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse segment response: %w", err)
	}

	if payload.Segment == "" {
		return "", ErrUnresolved
	}

	return offer.Segment(payload.Segment), nil
}
