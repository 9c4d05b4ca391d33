package router

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cart-offer/internal/handler"
	"cart-offer/internal/metrics"
	"cart-offer/internal/offer"
	"cart-offer/internal/segment"
	"cart-offer/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, withMetrics bool) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	resolver := segment.ResolverFunc(func(ctx context.Context, userID int) (offer.Segment, error) {
		return "p1", nil
	})

	var opts Options
	if withMetrics {
		reg := prometheus.NewRegistry()
		opts = Options{Metrics: metrics.New(reg), Gatherer: reg}
	}

	engine := service.NewOfferEngine(
		offer.NewStore(),
		offer.NewValidator(nil, logger),
		resolver,
		time.Second,
		nil,
		opts.Metrics,
		logger,
	)

	return New(handler.NewOfferHandler(engine, logger), handler.NewCartHandler(engine, logger), opts, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func TestRouter_Routes(t *testing.T) {
	h := newTestRouter(t, true)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/api/v1/offer",
		`{"restaurant_id":1,"offer_type":"FLATX","offer_value":10,"customer_segment":["p1"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response_msg":"success"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/cart/apply_offer", `{"restaurant_id":1,"user_id":1,"cart_value":200}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cart_value":190}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/offers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"offer_type":"FLATX"`)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "offers_created_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_MethodAndPathErrors(t *testing.T) {
	h := newTestRouter(t, false)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/v1/offer", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/unknown", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodOptions, "/api/v1/offer", "").Code)
}
