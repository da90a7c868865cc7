// Package metrics exposes driver activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnema/veil/internal/application/port"
)

const namespace = "veil"

// StylesheetMetrics holds Prometheus metrics for compilations and sink writes.
type StylesheetMetrics struct {
	compileTotal     prometheus.Counter
	compileDuration  prometheus.Histogram
	stylesheetBytes  prometheus.Gauge
	activeSelectors  prometheus.Gauge
	sinkWritesTotal  *prometheus.CounterVec
	sinkSkippedTotal *prometheus.CounterVec
}

var _ port.StylesheetMetrics = (*StylesheetMetrics)(nil)

// NewStylesheetMetrics creates unregistered metrics.
func NewStylesheetMetrics() *StylesheetMetrics {
	return &StylesheetMetrics{
		compileTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compiler",
			Name:      "compilations_total",
			Help:      "Total number of stylesheet compilations",
		}),
		compileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "compiler",
			Name:      "compile_duration_seconds",
			Help:      "Time taken to compile the rule set",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		stylesheetBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "compiler",
			Name:      "stylesheet_bytes",
			Help:      "Size of the last compiled stylesheet",
		}),
		activeSelectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "compiler",
			Name:      "active_selectors",
			Help:      "Active selector rules in the last compilation",
		}),
		sinkWritesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sink",
			Name:      "writes_total",
			Help:      "Stylesheet writes by sink and result",
		}, []string{"sink", "result"}),
		sinkSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sink",
			Name:      "skipped_writes_total",
			Help:      "Writes skipped because the sink already held identical text",
		}, []string{"sink"}),
	}
}

func (m *StylesheetMetrics) ObserveCompile(elapsed time.Duration, size int, activeSelectors int) {
	m.compileTotal.Inc()
	m.compileDuration.Observe(elapsed.Seconds())
	m.stylesheetBytes.Set(float64(size))
	m.activeSelectors.Set(float64(activeSelectors))
}

func (m *StylesheetMetrics) ObserveSinkWrite(sink string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sinkWritesTotal.WithLabelValues(sink, result).Inc()
}

func (m *StylesheetMetrics) ObserveSkippedWrite(sink string) {
	m.sinkSkippedTotal.WithLabelValues(sink).Inc()
}

// Describe implements prometheus.Collector
func (m *StylesheetMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.compileTotal.Describe(ch)
	m.compileDuration.Describe(ch)
	m.stylesheetBytes.Describe(ch)
	m.activeSelectors.Describe(ch)
	m.sinkWritesTotal.Describe(ch)
	m.sinkSkippedTotal.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *StylesheetMetrics) Collect(ch chan<- prometheus.Metric) {
	m.compileTotal.Collect(ch)
	m.compileDuration.Collect(ch)
	m.stylesheetBytes.Collect(ch)
	m.activeSelectors.Collect(ch)
	m.sinkWritesTotal.Collect(ch)
	m.sinkSkippedTotal.Collect(ch)
}

// NewRegistry returns a registry holding m plus the Go and process collectors.
func NewRegistry(m *StylesheetMetrics) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		m,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves reg in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
