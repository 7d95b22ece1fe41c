package navtree

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docnav/internal/docset"
	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/meta"
)

// ErrEmptyPath is returned for a document whose path has no segments.
var ErrEmptyPath = errors.New("document path has no segments")

// Builder constructs navigation trees.
type Builder struct {
	provider meta.Provider
	opts     Options
	logger   *slog.Logger
}

// NewBuilder creates a Builder. A nil provider means no directory metadata.
func NewBuilder(provider meta.Provider, opts Options) *Builder {
	if provider == nil {
		provider = meta.None{}
	}
	return &Builder{provider: provider, opts: opts, logger: slog.Default()}
}

// WithLogger sets the logger used during construction.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build inserts every non-hidden document of set at the position implied by
// its path and sorts the result. Each inserted document gets its node stored
// under docset.KeyNode.
func (b *Builder) Build(set *docset.Set) (*Root, error) {
	root := newRoot(b.opts)
	for _, doc := range set.Documents() {
		if doc.Hidden() {
			b.logger.Debug("Skipping hidden document", logfields.Path(doc.Path))
			continue
		}
		if err := b.insert(root, doc); err != nil {
			return nil, err
		}
	}
	if err := root.Sort(); err != nil {
		b.logOrderingFailure(err)
		return nil, err
	}
	return root, nil
}

func (b *Builder) logOrderingFailure(err error) {
	attrs := []any{logfields.Error(err)}
	if ce, ok := dberrors.AsClassified(err); ok {
		p, _ := ce.Context().GetString("path")
		other, _ := ce.Context().GetString("other_path")
		attrs = append(attrs, logfields.Path(p), logfields.OtherPath(other))
	}
	b.logger.Error("Navigation tree ordering failed", attrs...)
}

func (b *Builder) insert(root *Root, doc *docset.Document) error {
	segments := doc.Segments()
	if len(segments) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyPath, doc.Path)
	}

	var parent container = root
	for _, segment := range segments[:len(segments)-1] {
		parent = b.findOrCreate(parent, segment)
	}
	attachDocument(parent, doc, segments[len(segments)-1])
	return nil
}

// findOrCreate returns the directory child named segment, creating it on first use.
func (b *Builder) findOrCreate(parent container, segment string) *Directory {
	for _, child := range parent.Children() {
		if dir, ok := child.(*Directory); ok && dir.segment == segment {
			return dir
		}
	}
	dir := newDirectory(segment, parent, b.provider)
	parent.base().children = append(parent.base().children, dir)
	b.logger.Debug("Created directory node",
		logfields.Path(dir.Path()),
		logfields.Segment(segment),
		slog.String("title", dir.Title()))
	return dir
}

func attachDocument(parent container, doc *docset.Document, segment string) *Document {
	d := &Document{
		nodeBase: nodeBase{segment: segment, parent: parent, opts: parent.base().opts},
		doc:      doc,
	}
	parent.base().children = append(parent.base().children, d)
	doc.Set(docset.KeyNode, d)
	d.deriveFields()
	return d
}

// deriveFields writes is_index, package and component/subsection onto the document.
func (d *Document) deriveFields() {
	segments := d.doc.Segments()
	root := d.opts.PackageRoot

	isIndex := len(segments) == 3 && segments[0] == root &&
		strings.TrimSuffix(segments[2], extension(segments[2])) == "index"
	d.doc.Set(docset.KeyIsIndex, isIndex)

	if root != "" && len(segments) >= 3 && segments[0] == root {
		d.doc.SetDefault(docset.KeyPackage, capitalize(segments[1]))
	}

	title := d.parent.Title()
	if title == "" {
		return
	}
	if hasTag(d.parent.Tags(), d.opts.ComponentTag) {
		d.doc.SetDefault(docset.KeyComponent, title)
	} else {
		d.doc.SetDefault(docset.KeySubsection, title)
	}
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	head := cases.Upper(language.Und).String(string(runes[0]))
	return head + cases.Lower(language.Und).String(string(runes[1:]))
}

func extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}

func hasTag(tags []string, tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
