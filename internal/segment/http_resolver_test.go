package segment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cart-offer/internal/offer"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResolver_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectSegment offer.Segment
		expectErr     bool
	}{
		{
			name:          "Success",
			status:        http.StatusOK,
			body:          `{"segment":"p1"}`,
			expectSegment: "p1",
		},
		{
			name:          "Unknown segment is passed through",
			status:        http.StatusOK,
			body:          `{"segment":"p9"}`,
			expectSegment: "p9",
		},
		{
			name:      "Empty segment",
			status:    http.StatusOK,
			body:      `{"segment":""}`,
			expectErr: true,
		},
		{
			name:      "Malformed body",
			status:    http.StatusOK,
			body:      `{"segment":`,
			expectErr: true,
		},
		{
			name:      "User not found",
			status:    http.StatusNotFound,
			body:      `{}`,
			expectErr: true,
		},
		{
			name:      "Server error",
			status:    http.StatusInternalServerError,
			body:      `oops`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, SegmentPath, r.URL.Path)
				assert.Equal(t, "42", r.URL.Query().Get("user_id"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resolver := NewHTTPResolver(server.URL+"/", nil, time.Second, zerolog.Nop())

			segment, err := resolver.Resolve(context.Background(), 42)

			if tt.expectErr {
				require.Error(t, err)
				assert.Empty(t, segment)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectSegment, segment)
			}
		})
	}
}

func TestHTTPResolver_NegativeUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-1", r.URL.Query().Get("user_id"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, nil, time.Second, zerolog.Nop())

	_, err := resolver.Resolve(context.Background(), -1)
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestHTTPResolver_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	resolver := NewHTTPResolver(url, nil, time.Second, zerolog.Nop())

	_, err := resolver.Resolve(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get segment for user 1")
}

func TestHTTPResolver_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	resolver := NewHTTPResolver(server.URL, nil, 5*time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := resolver.Resolve(ctx, 1)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPResolver_CoalescesConcurrentLookups(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"segment":"p2"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, nil, 5*time.Second, zerolog.Nop())

	const callers = 10
	var wg sync.WaitGroup
	results := make([]offer.Segment, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s, err := resolver.Resolve(context.Background(), 7)
			assert.NoError(t, err)
			results[idx] = s
		}(i)
	}

	// Give every caller time to join the in-flight lookup.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, s := range results {
		assert.Equal(t, offer.Segment("p2"), s)
	}
}
