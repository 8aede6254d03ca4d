// Package metrics defines Prometheus metrics for kindred.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kindred_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kindred_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kindred_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kindred_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	// ExploreDuration covers a single engine traversal, excluding the fetch.
	ExploreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kindred_explore_duration_seconds",
			Help:    "Relationship graph traversal duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"feature"},
	)

	ExploredNodes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kindred_explored_nodes",
			Help:    "Persons visited per traversal",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"feature"},
	)

	MissingPersons = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kindred_missing_person_edges_total",
			Help: "Edges skipped because the target person has no attributes",
		},
	)

	LayoutFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kindred_layout_fallbacks_total",
			Help: "Responses returned without a layout because generations were inconsistent",
		},
	)

	SnapshotCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kindred_snapshot_cache_total",
			Help: "Snapshot cache lookups by result",
		},
		[]string{"result"},
	)

	SupersededRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kindred_ws_superseded_requests_total",
			Help: "Interactive requests dropped because a newer one arrived",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal, WSConnections,
		ExploreDuration, ExploredNodes, MissingPersons, LayoutFallbacks,
		SnapshotCache, SupersededRequests,
	)
}
