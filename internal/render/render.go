// Package render implements the two per-document render entry points: the
// breadcrumb trail and the section menu, both emitted as HTML fragments.
package render

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docset"
	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// Entry point names used in logs and metrics.
const (
	EntryBreadcrumb  = "breadcrumb"
	EntrySectionMenu = "section_menu"
)

// Options configures URL rewriting for the alternate wrappers namespace.
type Options struct {
	// WrapperFrom is replaced by WrapperTo in every emitted URL when a
	// render call asks for the wrappers namespace.
	WrapperFrom string
	WrapperTo   string
}

// Renderer turns tree derivations into HTML. It only reads the tree and is
// safe for concurrent use.
type Renderer struct {
	opts     Options
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New creates a Renderer with a no-op recorder and the default logger.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts, recorder: metrics.NoopRecorder{}, logger: slog.Default()}
}

// WithRecorder sets the metrics recorder.
func (r *Renderer) WithRecorder(rec metrics.Recorder) *Renderer {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithLogger sets the logger.
func (r *Renderer) WithLogger(logger *slog.Logger) *Renderer {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Breadcrumb renders the trail of doc as anchors separated by " / ".
func (r *Renderer) Breadcrumb(doc *docset.Document, baseURL string, wrappers bool) (string, error) {
	node, err := r.nodeOf(doc, EntryBreadcrumb)
	if err != nil {
		return "", err
	}

	crumbs := node.Breadcrumb()
	for i := range crumbs {
		crumbs[i].URL = joinURL(baseURL, r.rewrite(crumbs[i].URL, wrappers))
	}
	out, err := renderNodes(breadcrumbNodes(crumbs)...)
	if err != nil {
		return "", r.failed(EntryBreadcrumb, err)
	}
	r.recorder.IncRenderResult(EntryBreadcrumb, metrics.ResultSuccess)
	return out, nil
}

// SectionMenu renders the section menu of doc as nested lists. Items
// matching currentURL get the active class.
func (r *Renderer) SectionMenu(doc *docset.Document, baseURL, currentURL string, wrappers bool) (string, error) {
	node, err := r.nodeOf(doc, EntrySectionMenu)
	if err != nil {
		return "", err
	}

	m := menuRenderer{
		base:    baseURL,
		current: currentURL,
		rewrite: func(u string) string { return r.rewrite(u, wrappers) },
		logger:  r.logger,
	}
	out, err := renderNodes(m.list(node.SectionMenu()))
	if err != nil {
		return "", r.failed(EntrySectionMenu, err)
	}
	r.recorder.IncRenderResult(EntrySectionMenu, metrics.ResultSuccess)
	return out, nil
}

// nodeOf resolves the tree node of doc. A missing node is reported as a
// navigation warning.
func (r *Renderer) nodeOf(doc *docset.Document, entry string) (*navtree.Document, error) {
	if node, ok := navtree.NodeOf(doc); ok {
		return node, nil
	}

	var docPath, url string
	if doc != nil {
		docPath, url = doc.Path, doc.URL
	}
	r.logger.Warn("Document has no navigation node",
		logfields.Entry(entry),
		logfields.Path(docPath),
		logfields.URL(url))
	r.recorder.IncRenderResult(entry, metrics.ResultWarning)
	return nil, dberrors.NavigationError("document has no navigation node").
		WithContext("path", docPath).
		WithContext("url", url).
		WithContext("entry", entry).
		Build()
}

// failed records a rendering failure of entry and classifies err as internal.
func (r *Renderer) failed(entry string, err error) error {
	r.logger.Error("Rendering failed", logfields.Entry(entry), logfields.Error(err))
	r.recorder.IncRenderResult(entry, metrics.ResultFailed)
	return dberrors.InternalError("rendering "+entry+" failed").
		WithCause(err).
		WithContext("entry", entry).
		Build()
}

// rewrite swaps the first whole path segment equal to WrapperFrom for WrapperTo.
func (r *Renderer) rewrite(u string, wrappers bool) string {
	from := strings.Trim(r.opts.WrapperFrom, "/")
	if !wrappers || from == "" {
		return u
	}
	to := strings.Trim(r.opts.WrapperTo, "/")
	return strings.Replace(u, "/"+from+"/", "/"+to+"/", 1)
}

// joinURL joins base and u with exactly one slash between them.
func joinURL(base, u string) string {
	switch {
	case base == "":
		return u
	case u == "":
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(u, "/")
}
