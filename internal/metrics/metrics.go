package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nmapview/internal/extract"
)

// Document sources
const (
	SourceFile   = "file"
	SourceUpload = "upload"
)

// Metrics holds the pipeline counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	documentsTotal     *prometheus.CounterVec
	recordsTotal       prometheus.Counter
	skippedTotal       *prometheus.CounterVec
	processingDuration prometheus.Histogram
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nmapview_documents_total",
				Help: "Scan documents processed, by source and result",
			},
			[]string{"source", "result"},
		),
		recordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nmapview_records_total",
			Help: "Host records extracted",
		}),
		skippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nmapview_skipped_entries_total",
				Help: "Malformed entries skipped during extraction",
			},
			[]string{"kind"},
		),
		processingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nmapview_processing_seconds",
			Help:    "Time spent decoding and normalizing one document",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	m.registry.MustRegister(m.documentsTotal, m.recordsTotal, m.skippedTotal, m.processingDuration)
	return m
}

// ObserveSuccess records one fully processed document.
func (m *Metrics) ObserveSuccess(source string, stats extract.Stats, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(source, "ok").Inc()
	m.recordsTotal.Add(float64(stats.Records))
	m.skippedTotal.WithLabelValues("host").Add(float64(stats.SkippedHosts))
	m.skippedTotal.WithLabelValues("ports").Add(float64(stats.SkippedPortBlocks))
	m.skippedTotal.WithLabelValues("port").Add(float64(stats.SkippedPorts))
	m.processingDuration.Observe(elapsed.Seconds())
}

// ObserveFailure records a document that could not be read or decoded.
func (m *Metrics) ObserveFailure(source string) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(source, "error").Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
