// Package metrics exposes Prometheus collectors for the sync pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics tracks catalog sync pipeline activity.
type PipelineMetrics struct {
	PagesFetched     prometheus.Counter
	PageFailures     prometheus.Counter
	RecordsExcluded  prometheus.Counter
	RecordsDropped   prometheus.Counter
	DocumentsIndexed prometheus.Counter
	SinkFailures     prometheus.Counter
	RunDuration      prometheus.Histogram
}

// NewPipelineMetrics creates and registers the pipeline collectors.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)
	return &PipelineMetrics{
		PagesFetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourindex_pages_fetched_total",
			Help: "Catalog source pages fetched successfully.",
		}),
		PageFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourindex_page_failures_total",
			Help: "Catalog source page requests that failed and were skipped.",
		}),
		RecordsExcluded: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourindex_records_excluded_total",
			Help: "Records discarded by the exclusion filter.",
		}),
		RecordsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourindex_records_dropped_total",
			Help: "Records dropped for malformed timestamps or coordinates.",
		}),
		DocumentsIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourindex_documents_indexed_total",
			Help: "Documents written to the search index.",
		}),
		SinkFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tourindex_sink_failures_total",
			Help: "Documents the search index rejected.",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourindex_run_duration_seconds",
			Help:    "Duration of sync runs.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

// NewNopPipelineMetrics creates unregistered collectors. Use it in tests or
// when no registry is wired.
func NewNopPipelineMetrics() *PipelineMetrics {
	return NewPipelineMetrics(prometheus.NewRegistry())
}
