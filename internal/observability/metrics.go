package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "metoffice_stac"

// Metrics holds the Prometheus counters, histograms, and gauges for the catalog pipeline.
type Metrics struct {
	ObjectsListed   prometheus.Counter
	ItemsProduced   *prometheus.CounterVec // labels: collection
	ItemsSkipped    prometheus.Counter
	ParseErrors     *prometheus.CounterVec // labels: field
	UnknownVars     *prometheus.CounterVec // labels: model
	AssemblyErrors  prometheus.Counter
	PipelineRunning prometheus.Gauge

	// S3 listing.
	ListRequests *prometheus.CounterVec // labels: outcome={success,error}
	ListDuration prometheus.Histogram

	CycleDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting registers the metrics on a throwaway registry so
// tests can build as many sets as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics(prometheus.NewRegistry())
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ObjectsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objects_listed_total",
			Help:      "Total object keys returned by the source listing.",
		}),
		ItemsProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_produced_total",
			Help:      "Total STAC items written to the sink, by collection.",
		}, []string{"collection"}),
		ItemsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_skipped_total",
			Help:      "Items not republished because they are unchanged since the last cycle.",
		}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Object keys that could not be decoded, by offending field.",
		}, []string{"field"}),
		UnknownVars: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_variables_total",
			Help:      "Assets whose variable has no table entry, by model.",
		}, []string{"model"}),
		AssemblyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assembly_errors_total",
			Help:      "Items dropped because their metadata could not be assembled.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the poller is active, 0 when shut down.",
		}),
		ListRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_requests_total",
			Help:      "ListObjectsV2 page requests by outcome.",
		}, []string{"outcome"}),
		ListDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "list_duration_seconds",
			Help:      "Duration of listing one model run prefix.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete poll cycle across all models.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}),
	}

	reg.MustRegister(
		m.ObjectsListed,
		m.ItemsProduced,
		m.ItemsSkipped,
		m.ParseErrors,
		m.UnknownVars,
		m.AssemblyErrors,
		m.PipelineRunning,
		m.ListRequests,
		m.ListDuration,
		m.CycleDuration,
	)

	return m
}
