package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Dispatch metrics track outbound platform calls
var (
	// DispatchTotal counts dispatch attempts by operation, first message kind and result
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "line_dispatch_total",
			Help: "Total number of LINE dispatch attempts",
		},
		[]string{"operation", "kind", "result"},
	)

	// DispatchDuration measures the platform round trip per operation
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "line_dispatch_duration_seconds",
			Help:    "LINE dispatch duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// DispatchRecipients observes the recipient count of multicast sends
	DispatchRecipients = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "line_dispatch_recipients",
			Help:    "Number of explicit recipients per multicast",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 500},
		},
	)

	// PlatformClientInitTotal counts lazy platform client constructions by result
	PlatformClientInitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "line_platform_client_init_total",
			Help: "Total number of LINE platform client initializations",
		},
		[]string{"result"},
	)
)

// Staging and history metrics
var (
	// FileStagedBytes measures staged file payload sizes
	FileStagedBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "line_file_staged_bytes",
			Help:    "Size of staged file payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"result"},
	)

	// HistoryWritesTotal counts history ledger writes by result
	HistoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "line_history_writes_total",
			Help: "Total number of message history writes",
		},
		[]string{"result"},
	)
)
