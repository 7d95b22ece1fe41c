// Package generate runs one navigation generation pass: build and sort the
// tree, mark canonical URLs, and render breadcrumb and menu for every document.
package generate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/docset"
	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/meta"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// Options configures a generation pass.
type Options struct {
	BaseURL  string
	Wrappers bool
	Tree     navtree.Options
	Render   render.Options
}

// Service runs generation passes.
type Service struct {
	provider meta.Provider
	opts     Options
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewService creates a Service reading directory metadata from provider.
func NewService(provider meta.Provider, opts Options) *Service {
	return &Service{
		provider: provider,
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(rec metrics.Recorder) *Service {
	if rec != nil {
		s.recorder = rec
	}
	return s
}

// WithLogger sets the logger.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// BuildTree builds the sorted navigation tree of set.
func (s *Service) BuildTree(set *docset.Set) (*navtree.Root, error) {
	return navtree.NewBuilder(s.provider, s.opts.Tree).WithLogger(s.logger).Build(set)
}

// Renderer returns a renderer sharing the service's logger and recorder.
func (s *Service) Renderer() *render.Renderer {
	return render.New(s.opts.Render).WithRecorder(s.recorder).WithLogger(s.logger)
}

// Run performs one generation pass over set. Ordering failures abort the
// pass; documents that cannot be rendered are reported as warnings.
func (s *Service) Run(ctx context.Context, set *docset.Set) (*Result, error) {
	passID := uuid.NewString()
	logger := s.logger.With(logfields.PassID(passID))
	start := time.Now()
	logger.Info("Generation pass started", logfields.Count(set.Len()))

	root, err := navtree.NewBuilder(s.provider, s.opts.Tree).WithLogger(logger).Build(set)
	if err != nil {
		logger.Error("Navigation tree construction failed", logfields.Error(err))
		return nil, err
	}
	s.recordTree(root, set)

	for _, d := range navtree.Canonicalize(root, set) {
		s.recorder.IncCanonicalMarked()
		logger.Debug("Marked canonical URL",
			logfields.Path(d.Path()),
			logfields.URL(d.Doc().String(docset.KeyCanonicalURL)))
	}

	renderer := render.New(s.opts.Render).WithRecorder(s.recorder).WithLogger(logger)
	result := &Result{PassID: passID, GeneratedAt: start.UTC(), Documents: []Entry{}}
	for _, doc := range set.Documents() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if doc.Hidden() {
			continue
		}
		entry, err := s.entry(renderer, doc)
		if err != nil {
			if dberrors.IsWarning(err) {
				result.Warnings = append(result.Warnings, err.Error())
				continue
			}
			return nil, err
		}
		result.Documents = append(result.Documents, entry)
	}

	result.Duration = time.Since(start)
	s.recorder.ObservePassDuration(result.Duration)
	logger.Info("Generation pass finished",
		logfields.Count(len(result.Documents)),
		slog.Int("warnings", len(result.Warnings)),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	return result, nil
}

func (s *Service) entry(renderer *render.Renderer, doc *docset.Document) (Entry, error) {
	breadcrumb, err := renderer.Breadcrumb(doc, s.opts.BaseURL, s.opts.Wrappers)
	if err != nil {
		return Entry{}, err
	}
	menu, err := renderer.SectionMenu(doc, s.opts.BaseURL, doc.URL, s.opts.Wrappers)
	if err != nil {
		return Entry{}, err
	}

	node, _ := navtree.NodeOf(doc)
	entry := Entry{
		Path:        doc.Path,
		URL:         doc.URL,
		Title:       node.Title(),
		Fingerprint: doc.Fingerprint,
		Breadcrumb:  breadcrumb,
		Menu:        menu,
		IsIndex:     doc.Data[docset.KeyIsIndex] == true,
		Package:     doc.String(docset.KeyPackage),
		Component:   doc.String(docset.KeyComponent),
		Subsection:  doc.String(docset.KeySubsection),
	}
	if prev := node.Prev(); prev != nil {
		entry.Prev = prev.URL()
	}
	if next := node.Next(); next != nil {
		entry.Next = next.URL()
	}
	if doc.Data[docset.KeyNeedsCanonical] == true {
		entry.NeedsCanonical = true
		entry.CanonicalURL = doc.String(docset.KeyCanonicalURL)
	}
	return entry, nil
}

func (s *Service) recordTree(root *navtree.Root, set *docset.Set) {
	counts := map[string]int{
		metrics.NodeKindDirectory: 0,
		metrics.NodeKindDocument:  0,
		metrics.NodeKindVersion:   0,
	}
	navtree.Walk(root, func(n navtree.Node) {
		switch {
		case n.Level() == 0:
		case n.IsDocument():
			counts[metrics.NodeKindDocument]++
		case n.IsVersion():
			counts[metrics.NodeKindVersion]++
		default:
			counts[metrics.NodeKindDirectory]++
		}
	})
	for kind, n := range counts {
		s.recorder.SetTreeNodes(kind, n)
	}

	hidden := 0
	for _, doc := range set.Documents() {
		if doc.Hidden() {
			hidden++
		}
	}
	s.recorder.IncHiddenDocuments(hidden)
}
