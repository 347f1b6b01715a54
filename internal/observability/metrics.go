package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// trust-scoring pipeline.
type Metrics struct {
	ReportsConsumed  prometheus.Counter
	ReportsProduced  prometheus.Counter
	ProcessingErrors prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Engine metrics.
	DuplicatesDetected prometheus.Counter
	RegistrySize       prometheus.Gauge
	TrustScore         prometheus.Histogram
	ReportsByPriority  *prometheus.CounterVec // label: priority={low,medium,high,critical}

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Inference adapter metrics.
	InferenceRequests *prometheus.CounterVec // labels: outcome={success,error}
	InferenceCache    *prometheus.CounterVec // labels: result={hit,miss}
	InferenceEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsConsumed,
		m.ReportsProduced,
		m.ProcessingErrors,
		m.PipelineRunning,
		m.DuplicatesDetected,
		m.RegistrySize,
		m.TrustScore,
		m.ReportsByPriority,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.InferenceRequests,
		m.InferenceCache,
		m.InferenceEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "reports_consumed_total",
			Help:      "Total reports read from the source topic.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "reports_produced_total",
			Help:      "Total processed reports written to the sink topic.",
		}),
		ProcessingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "processing_errors_total",
			Help:      "Total reports that failed feature extraction or scoring.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "trust_engine",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		DuplicatesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "duplicates_detected_total",
			Help:      "Total reports flagged as near-duplicates.",
		}),
		RegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "trust_engine",
			Name:      "registry_size",
			Help:      "Number of composite embeddings recorded in the duplicate registry.",
		}),
		TrustScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trust_engine",
			Name:      "trust_score",
			Help:      "Distribution of overall trust scores.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
		ReportsByPriority: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "reports_by_priority_total",
			Help:      "Processed reports by assigned priority.",
		}, []string{"priority"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trust_engine",
			Name:      "batch_size",
			Help:      "Number of reports per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trust_engine",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch consume-score-produce cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		InferenceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "inference_requests_total",
			Help:      "Model inference API requests by outcome.",
		}, []string{"outcome"}),
		InferenceCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trust_engine",
			Name:      "inference_cache_total",
			Help:      "Inference cache lookups by result.",
		}, []string{"result"}),
		InferenceEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "trust_engine",
			Name:      "inference_enabled",
			Help:      "1 when the model-backed image scorer is enabled, 0 otherwise.",
		}),
	}
}
