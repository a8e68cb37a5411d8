package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the forecast pipeline.
type Metrics struct {
	ReadingsConsumed     prometheus.Counter
	AssessmentsProduced  prometheus.Counter
	TransformErrors      prometheus.Counter
	PipelineRunning      prometheus.Gauge
	HistoriesSynthesized prometheus.Counter

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Alerting metrics.
	Alerts        *prometheus.CounterVec // labels: tier={normal,preventive,emergency}
	ZoneAlertTier *prometheus.GaugeVec   // labels: zone, bounded by the zone cache; value is the tier ordinal 0-2

	// Reporting metrics.
	ReportExports *prometheus.CounterVec // labels: outcome={success,error}
	ZoneCache     *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReadingsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "readings_consumed_total",
			Help:      "Total zone readings read from the source topic.",
		}),
		AssessmentsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "assessments_produced_total",
			Help:      "Total zone assessments written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "transform_errors_total",
			Help:      "Total readings rejected during parsing, validation or assessment.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airq",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		HistoriesSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "histories_synthesized_total",
			Help:      "Readings that arrived without history and were given a synthesized one.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airq",
			Name:      "batch_size",
			Help:      "Number of readings per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airq",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "alerts_total",
			Help:      "Zone assessments by resulting alert tier.",
		}, []string{"tier"}),
		ZoneAlertTier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "airq",
			Name:      "zone_alert_tier",
			Help:      "Latest alert tier per zone: 0 normal, 1 preventive, 2 emergency.",
		}, []string{"zone"}),
		ReportExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "report_exports_total",
			Help:      "Text report exports by outcome.",
		}, []string{"outcome"}),
		ZoneCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airq",
			Name:      "zone_cache_total",
			Help:      "Latest-assessment cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.ReadingsConsumed,
		m.AssessmentsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.HistoriesSynthesized,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Alerts,
		m.ZoneAlertTier,
		m.ReportExports,
		m.ZoneCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReadingsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "airq", Name: "readings_consumed_total"}),
		AssessmentsProduced:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "airq", Name: "assessments_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "airq", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "airq", Name: "pipeline_running"}),
		HistoriesSynthesized:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "airq", Name: "histories_synthesized_total"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "airq", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "airq", Name: "batch_processing_duration_seconds"}),
		Alerts:                  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "airq", Name: "alerts_total"}, []string{"tier"}),
		ZoneAlertTier:           prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "airq", Name: "zone_alert_tier"}, []string{"zone"}),
		ReportExports:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "airq", Name: "report_exports_total"}, []string{"outcome"}),
		ZoneCache:               prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "airq", Name: "zone_cache_total"}, []string{"result"}),
	}
}
