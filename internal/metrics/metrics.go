// Package metrics exposes Prometheus collectors for the extraction engines
// and point-in-time runtime memory snapshots.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the application's Prometheus collectors on a dedicated
// registry, so tests and the optional metrics server never collide with the
// global default registry.
type Metrics struct {
	registry *prometheus.Registry

	chunksDispatched  prometheus.Counter
	termsEvaluated    prometheus.Counter
	extractionSeconds prometheus.Histogram
	activeExtractions prometheus.Gauge
}

// New creates and registers the application collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		chunksDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bbpcalc_chunks_dispatched_total",
			Help: "Total number of chunks handed to parallel lanes.",
		}),
		termsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bbpcalc_terms_evaluated_total",
			Help: "Total number of series terms evaluated by parallel lanes.",
		}),
		extractionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bbpcalc_extraction_duration_seconds",
			Help:    "Wall-clock duration of complete digit extractions.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		activeExtractions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bbpcalc_active_extractions",
			Help: "Number of digit extractions currently running.",
		}),
	}
	m.registry.MustRegister(m.chunksDispatched, m.termsEvaluated, m.extractionSeconds, m.activeExtractions)
	return m
}

// Registry returns the registry holding the application collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveDispatch records one completed dispatch round. It has the signature
// of bbp.InstrumentFunc so it can be handed directly to the dispatchers.
func (m *Metrics) ObserveDispatch(lanes int, terms uint64) {
	m.chunksDispatched.Add(float64(lanes))
	m.termsEvaluated.Add(float64(terms))
}

// ObserveExtraction records the duration of one finished extraction.
func (m *Metrics) ObserveExtraction(d time.Duration) {
	m.extractionSeconds.Observe(d.Seconds())
}

// ExtractionStarted increments the active extraction gauge.
func (m *Metrics) ExtractionStarted() { m.activeExtractions.Inc() }

// ExtractionFinished decrements the active extraction gauge.
func (m *Metrics) ExtractionFinished() { m.activeExtractions.Dec() }
