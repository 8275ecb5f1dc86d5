// Package prometheus exports ingestion metrics in Prometheus format.
package prometheus

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

const namespace = "newsagg"

// Exporter records ingestion metrics in a Prometheus registry.
type Exporter struct {
	registry *prometheus.Registry

	fetched       *prometheus.CounterVec
	upserted      *prometheus.CounterVec
	failures      *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	lastRun       prometheus.Gauge
}

var _ driven.IngestionMetrics = (*Exporter)(nil)

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for duration histograms (in seconds)
	DurationBuckets []float64
}

// DefaultConfig returns the default exporter configuration.
func DefaultConfig() Config {
	return Config{
		DurationBuckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewExporter creates an exporter and registers its collectors.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = DefaultConfig().DurationBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.fetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "items_fetched_total",
			Help:      "Raw items fetched from each provider",
		},
		[]string{"provider"},
	)

	e.upserted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "articles_upserted_total",
			Help:      "Articles written to the store per provider",
		},
		[]string{"provider"},
	)

	e.failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "provider_failures_total",
			Help:      "Provider batches aborted, by failure reason",
		},
		[]string{"provider", "reason"},
	)

	e.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "provider_duration_seconds",
			Help:      "Time spent fetching and storing one provider batch",
			Buckets:   cfg.DurationBuckets,
		},
		[]string{"provider"},
	)

	e.runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "runs_total",
			Help:      "Ingestion runs by outcome",
		},
		[]string{"status"},
	)

	e.runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "run_duration_seconds",
			Help:      "Duration of complete ingestion runs",
			Buckets:   cfg.DurationBuckets,
		},
	)

	e.lastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last ingestion run finished",
		},
	)

	registry.MustRegister(
		e.fetched,
		e.upserted,
		e.failures,
		e.fetchDuration,
		e.runs,
		e.runDuration,
		e.lastRun,
	)

	return e
}

// ObserveProvider records one provider batch.
func (e *Exporter) ObserveProvider(provider string, fetched, upserted int, duration time.Duration, err error) {
	e.fetched.WithLabelValues(provider).Add(float64(fetched))
	e.upserted.WithLabelValues(provider).Add(float64(upserted))
	e.fetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		e.failures.WithLabelValues(provider, reason(err)).Inc()
	}
}

// ObserveRun records a complete run.
func (e *Exporter) ObserveRun(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	e.runs.WithLabelValues(status).Inc()
	e.runDuration.Observe(duration.Seconds())
	e.lastRun.SetToCurrentTime()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// reason maps a provider error to a low-cardinality label.
func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrProviderTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrProviderTransport):
		return "transport"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed"
	default:
		return "store"
	}
}
