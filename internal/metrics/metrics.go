package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, path and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "debtmates_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "debtmates_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// DebtsRecordedTotal counts settled debt rounds.
	DebtsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "debtmates_debts_recorded_total",
			Help: "Total number of debt rounds recorded",
		},
	)

	// SlipsSubmittedTotal counts rotational payment slip uploads.
	SlipsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "debtmates_slips_submitted_total",
			Help: "Total number of payment slips submitted",
		},
	)
)
