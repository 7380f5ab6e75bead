package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics (UI bridge surface)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barinsta_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barinsta_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	SharesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barinsta_direct_shares_total",
			Help: "Total media shares dispatched",
		},
		[]string{"result"}, // "success", "error" or "invalid"
	)

	ThreadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barinsta_direct_threads_created_total",
			Help: "Total threads created on demand",
		},
	)

	PendingMigrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barinsta_direct_pending_migrations_total",
			Help: "Total threads moved from the pending inbox",
		},
	)

	InboxRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barinsta_direct_inbox_refreshes_total",
			Help: "Total inbox refreshes",
		},
		[]string{"box", "result"}, // box: "accepted" or "pending"
	)

	// Infrastructure metrics
	TransportLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barinsta_transport_latency_seconds",
			Help:    "Direct API request latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)
)
