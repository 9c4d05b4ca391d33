package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for an apply_offer call.
const (
	OutcomeMatched    = "matched"
	OutcomeUnmatched  = "unmatched"
	OutcomeUnresolved = "unresolved"
)

// Metrics holds the collectors for the offer service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	OffersCreatedTotal        *prometheus.CounterVec
	OffersRejectedTotal       *prometheus.CounterVec
	OfferApplicationsTotal    *prometheus.CounterVec
	SegmentResolutionDuration prometheus.Histogram
	HTTPRequestsTotal         *prometheus.CounterVec
	HTTPRequestDuration       *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OffersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offers_created_total",
				Help: "Number of offers accepted into the store",
			},
			[]string{"offer_type"},
		),

		OffersRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offers_rejected_total",
				Help: "Number of offers rejected by validation",
			},
			[]string{"code"},
		),

		OfferApplicationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_applications_total",
				Help: "Number of apply_offer calls by outcome",
			},
			[]string{"outcome"},
		),

		SegmentResolutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "segment_resolution_duration_seconds",
				Help:    "Latency of user segment lookups",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// OfferCreated counts an accepted offer.
func (m *Metrics) OfferCreated(offerType string) {
	if m == nil {
		return
	}
	m.OffersCreatedTotal.WithLabelValues(offerType).Inc()
}

// OfferRejected counts a rejected offer by validation code.
func (m *Metrics) OfferRejected(code string) {
	if m == nil {
		return
	}
	m.OffersRejectedTotal.WithLabelValues(code).Inc()
}

// OfferApplied counts an apply_offer call by outcome.
func (m *Metrics) OfferApplied(outcome string) {
	if m == nil {
		return
	}
	m.OfferApplicationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSegmentResolution records a segment lookup latency.
func (m *Metrics) ObserveSegmentResolution(d time.Duration) {
	if m == nil {
		return
	}
	m.SegmentResolutionDuration.Observe(d.Seconds())
}

// ObserveHTTPRequest records a served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
