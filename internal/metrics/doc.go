// Package metrics provides the build metrics hooks for typstbuilder.
//
// Components receive a Recorder through their options and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	tr := translator.New(translator.Options{Recorder: metrics.NoopRecorder{}})
//
// When a metrics textfile is configured the CLI injects a PrometheusRecorder
// and writes the gathered families with WriteTextfile after the run, in the
// node_exporter textfile collector format.
package metrics
