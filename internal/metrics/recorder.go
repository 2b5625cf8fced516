package metrics

import "time"

// ResultLabel enumerates document result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// Recorder defines observability hooks for build, document and translation metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncDocumentResult(result ResultLabel)
	// IncNodes counts translated nodes; kind is a node kind name (bounded set).
	IncNodes(kind string, n int)
	IncDiagnostic(code string)
	IncOutputWrite(changed bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncDocumentResult(ResultLabel)              {}
func (NoopRecorder) IncNodes(string, int)                       {}
func (NoopRecorder) IncDiagnostic(string)                       {}
func (NoopRecorder) IncOutputWrite(bool)                        {}
