package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// ETLRowsLoaded counts plant records loaded per source file
	ETLRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon4c_etl_rows_loaded_total",
			Help: "Plant-level indicator records loaded from source databases",
		},
		[]string{"plant"},
	)

	// ETLSourceFailures counts source files whose batch was rejected
	ETLSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon4c_etl_source_failures_total",
			Help: "Source databases whose batch was rejected",
		},
		[]string{"plant"},
	)

	// ETLDuration measures a full consolidation run
	ETLDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carbon4c_etl_duration_seconds",
			Help:    "Duration of an ETL consolidation run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// Classifications counts classification results by product and class
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon4c_classifications_total",
			Help: "Classification results by product type and class label",
		},
		[]string{"product", "class"},
	)

	// AggregationFailures counts failed aggregation hops by level and error kind
	AggregationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon4c_aggregation_failures_total",
			Help: "Aggregation hops aborted, by input level and error kind",
		},
		[]string{"level", "kind"},
	)
)
