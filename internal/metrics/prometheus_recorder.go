package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "typstbuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	stageDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	documentResults *prom.CounterVec
	nodes           *prom.CounterVec
	diagnostics     *prom.CounterVec
	outputWrites    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual document stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_results_total",
			Help:      "Documents built by outcome",
		}, []string{"result"}),
		nodes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "translated_nodes_total",
			Help:      "Translated document tree nodes by kind",
		}, []string{"kind"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Translation diagnostics by code",
		}, []string{"code"}),
		outputWrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "output_writes_total",
			Help:      "Output files by whether their content changed",
		}, []string{"changed"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.documentResults, pr.nodes, pr.diagnostics, pr.outputWrites)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncNodes(kind string, n int) {
	p.nodes.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) IncDiagnostic(code string) {
	p.diagnostics.WithLabelValues(code).Inc()
}

func (p *PrometheusRecorder) IncOutputWrite(changed bool) {
	label := "false"
	if changed {
		label = "true"
	}
	p.outputWrites.WithLabelValues(label).Inc()
}

// WriteTextfile writes the recorder's metrics to path in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
