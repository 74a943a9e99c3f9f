// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishdash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dishdash_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dishdash_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	PanicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dishdash_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)

	// Recipe generator metrics, labelled by kind (list, details) and outcome
	// (ok, error, empty).
	GeneratorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishdash_generator_calls_total",
			Help: "Total number of recipe generator calls",
		},
		[]string{"kind", "outcome"},
	)

	GeneratorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dishdash_generator_call_duration_seconds",
			Help:    "Recipe generator call latency in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"kind"},
	)

	SuggestionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishdash_suggestion_cache_lookups_total",
			Help: "Suggestion cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
)
