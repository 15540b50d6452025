// Package metrics provides the centralized Prometheus registry for the edge
// engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EdgeScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "edge_scans_total",
		Help:      "Total number of aggregator edge scans",
	})
	EdgesFoundTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "edges_found_total",
		Help:      "Total number of edges emitted per strategy",
	}, []string{"strategy"})
	StrategyFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "strategy_failures_total",
		Help:      "Total number of calculator failures isolated by the aggregator",
	}, []string{"strategy"})
	PredictionsRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "predictions_recorded_total",
		Help:      "Total number of predictions logged for calibration",
	})
	OutcomesRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "outcomes_recorded_total",
		Help:      "Total number of realized outcomes recorded",
	})
)

// Gauge metrics
var (
	ExplanationCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "explanation_cache_hit_ratio",
		Help:      "Hit ratio of the explanation memoization cache",
	})
	CalibrationBrierScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_brier_score",
		Help:      "Latest Brier score per model version",
	}, []string{"model_version"})
	CalibrationROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "calibration_roi_percent",
		Help:      "Latest realized ROI percentage per model version",
	}, []string{"model_version"})
)

// Histogram metrics
var (
	EdgeScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "edge_scan_duration_seconds",
		Help:      "Duration of aggregator edge scans in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	CalculatorDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "calculator_duration_seconds",
		Help:      "Duration of individual calculator runs in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"strategy"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EdgeScansTotal)
		registry.MustRegister(EdgesFoundTotal)
		registry.MustRegister(StrategyFailuresTotal)
		registry.MustRegister(PredictionsRecordedTotal)
		registry.MustRegister(OutcomesRecordedTotal)

		registry.MustRegister(ExplanationCacheHitRatio)
		registry.MustRegister(CalibrationBrierScore)
		registry.MustRegister(CalibrationROI)

		registry.MustRegister(EdgeScanDuration)
		registry.MustRegister(CalculatorDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEdgeScan records one aggregator scan.
func RecordEdgeScan(durationSeconds float64) {
	EdgeScansTotal.Inc()
	EdgeScanDuration.Observe(durationSeconds)
}

// RecordEdgesFound records edges emitted by a strategy.
func RecordEdgesFound(strategy string, count int) {
	EdgesFoundTotal.WithLabelValues(strategy).Add(float64(count))
}

// RecordStrategyFailure records an isolated calculator failure.
func RecordStrategyFailure(strategy string) {
	StrategyFailuresTotal.WithLabelValues(strategy).Inc()
}
