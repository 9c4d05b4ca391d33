package router

import (
	"net/http"

	"cart-offer/internal/handler"
	"cart-offer/internal/metrics"
	"cart-offer/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures optional endpoints.
type Options struct {
	// Metrics is exposed on /metrics when Gatherer is non-nil.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	offerHandler *handler.OfferHandler,
	cartHandler *handler.CartHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> Instrument -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Instrument(opts.Metrics))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/offer", offerHandler.Create)
		r.Get("/offers", offerHandler.List)
		r.Post("/cart/apply_offer", cartHandler.ApplyOffer)
	})

	return r
}
