// Package metrics provides observability hooks for navigation generation passes.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks:
//
//	svc := generate.NewService(provider, opts) // NoopRecorder
//	svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the given registry. The CLI
// exports that registry with WriteTextfile so that a node_exporter textfile
// collector can pick up the numbers of the last pass.
package metrics
