package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ContributionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contributions_recorded_total",
			Help: "Member transactions recorded, by type",
		},
		[]string{"type"},
	)

	TransfersDeclared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_transfers_declared_total",
			Help: "Custody transfers declared, by boundary",
		},
		[]string{"boundary"},
	)

	ReceiptsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_receipts_confirmed_total",
			Help: "Custody receipts confirmed, by boundary",
		},
		[]string{"boundary"},
	)

	SolvencyRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_movement_solvency_rejections_total",
			Help: "Bank movements rejected by the solvency check",
		},
	)

	SerializationRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_movement_serialization_conflicts_total",
			Help: "Bank movement transactions aborted by serialization conflicts",
		},
	)
)
