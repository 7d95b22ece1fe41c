package metrics

import "time"

// ResultLabel enumerates render result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
)

// Node kinds reported by SetTreeNodes.
const (
	NodeKindDirectory = "directory"
	NodeKindDocument  = "document"
	NodeKindVersion   = "version"
)

// Recorder defines observability hooks for generation passes.
type Recorder interface {
	ObservePassDuration(d time.Duration)
	SetTreeNodes(kind string, n int)
	IncHiddenDocuments(n int)
	IncRenderResult(entry string, result ResultLabel)
	IncCanonicalMarked()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(time.Duration)   {}
func (NoopRecorder) SetTreeNodes(string, int)            {}
func (NoopRecorder) IncHiddenDocuments(int)              {}
func (NoopRecorder) IncRenderResult(string, ResultLabel) {}
func (NoopRecorder) IncCanonicalMarked()                 {}
