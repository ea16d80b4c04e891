// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecurator_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinecurator_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecurator_search_total",
			Help: "Movie searches by outcome (ok, error, cancelled, skipped)",
		},
		[]string{"outcome"},
	)

	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecurator_tmdb_requests_total",
			Help: "Outbound TMDB requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecurator_cache_lookups_total",
			Help: "Metadata cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinecurator_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	Jobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecurator_jobs_total",
			Help: "Background jobs processed by task type and outcome",
		},
		[]string{"task", "outcome"},
	)

	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinecurator_ws_clients",
			Help: "Connected live-search websocket clients",
		},
	)
)

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
