// Package metrics registers the Prometheus collectors served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courtside"

// HTTP metrics. The route label is the chi pattern, never the raw path, so
// ids do not explode cardinality.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		},
	)
)

// Operational metrics, bumped by the handlers that record pipeline activity.
var (
	DataLoadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_loads_created_total",
			Help:      "Data loads registered, by load type.",
		},
		[]string{"load_type"},
	)

	DataLoadConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_load_conflicts_total",
			Help:      "Data load registrations rejected because one was already active.",
		},
	)

	ErrorLogsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "error_logs_recorded_total",
			Help:      "Error log entries recorded, by severity.",
		},
		[]string{"severity"},
	)

	ValidationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_runs_total",
			Help:      "Validation reports recorded, by table and outcome.",
		},
		[]string{"table", "status"},
	)

	RowsPurged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_purged_total",
			Help:      "Operational rows removed by purge endpoints.",
		},
		[]string{"table"},
	)
)
