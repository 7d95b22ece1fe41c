package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

var _ Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	passDuration    prom.Histogram
	treeNodes       *prom.GaugeVec
	hiddenDocuments prom.Counter
	renderResults   *prom.CounterVec
	canonicalMarked prom.Counter
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a navigation generation pass",
			Buckets:   prom.DefBuckets,
		}),
		treeNodes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "tree_nodes",
			Help:      "Nodes in the navigation tree of the last pass by kind",
		}, []string{"kind"}),
		hiddenDocuments: prom.NewCounter(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "hidden_documents_total",
			Help:      "Documents excluded from the tree because they are hidden",
		}),
		renderResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "render_results_total",
			Help:      "Render entry point invocations by entry and result",
		}, []string{"entry", "result"}),
		canonicalMarked: prom.NewCounter(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "canonical_marked_total",
			Help:      "Versioned documents marked with a canonical URL",
		}),
	}
	reg.MustRegister(pr.passDuration, pr.treeNodes, pr.hiddenDocuments, pr.renderResults, pr.canonicalMarked)
	return pr
}

func (p *PrometheusRecorder) ObservePassDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.passDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetTreeNodes(kind string, n int) {
	if p == nil {
		return
	}
	p.treeNodes.WithLabelValues(kind).Set(float64(n))
}

func (p *PrometheusRecorder) IncHiddenDocuments(n int) {
	if p == nil {
		return
	}
	p.hiddenDocuments.Add(float64(n))
}

func (p *PrometheusRecorder) IncRenderResult(entry string, result ResultLabel) {
	if p == nil {
		return
	}
	p.renderResults.WithLabelValues(entry, string(result)).Inc()
}

func (p *PrometheusRecorder) IncCanonicalMarked() {
	if p == nil {
		return
	}
	p.canonicalMarked.Inc()
}

// WriteTextfile writes everything gathered from g to path in the Prometheus
// text exposition format.
func WriteTextfile(path string, g prom.Gatherer) error {
	return prom.WriteToTextfile(path, g)
}
