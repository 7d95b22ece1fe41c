package navtree

import (
	"git.home.luguber.info/inful/docnav/internal/docset"
	"git.home.luguber.info/inful/docnav/internal/meta"
)

// Node is implemented by the three node variants: *Root, *Directory and *Document.
type Node interface {
	// Segment is the path component the node represents ("" for the root).
	Segment() string
	// Parent returns nil for the root.
	Parent() Node
	Children() []Node
	Title() string
	Position() int
	Tags() []string
	// Level is the distance from the root.
	Level() int
	Path() string
	URL() string
	IsDocument() bool
	IsVersion() bool
	// InVersionTree reports whether the node or one of its ancestors is a version node.
	InVersionTree() bool
	Prev() Node
	Next() Node

	base() *nodeBase
	orderPosition() (int, error)
}

// container is a node that can own children: the root or a directory.
type container interface {
	Node
	sectionMenu(child Node, childMenu []*MenuItem) []*MenuItem
	crumbs(tail []Crumb) []Crumb
}

// nodeBase holds the state shared by all variants. The parent owns the
// children slice; parent is a plain back-reference.
type nodeBase struct {
	segment  string
	parent   container
	children []Node
	opts     *Options
}

func (b *nodeBase) Segment() string  { return b.segment }
func (b *nodeBase) Children() []Node { return b.children }
func (b *nodeBase) base() *nodeBase  { return b }

func (b *nodeBase) Parent() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Root is the unique top of the tree.
type Root struct {
	nodeBase
}

func newRoot(opts Options) *Root {
	return &Root{nodeBase: nodeBase{opts: &opts}}
}

func (r *Root) Title() string               { return "" }
func (r *Root) Position() int               { return DefaultPosition }
func (r *Root) Tags() []string              { return nil }
func (r *Root) Level() int                  { return 0 }
func (r *Root) Path() string                { return "" }
func (r *Root) URL() string                 { return firstChildURL(r) }
func (r *Root) IsDocument() bool            { return false }
func (r *Root) IsVersion() bool             { return false }
func (r *Root) InVersionTree() bool         { return false }
func (r *Root) Prev() Node                  { return nil }
func (r *Root) Next() Node                  { return nil }
func (r *Root) orderPosition() (int, error) { return DefaultPosition, nil }

// Options returns the conventions the tree was built with.
func (r *Root) Options() Options { return *r.opts }

// Directory is an inner node for one path prefix.
type Directory struct {
	nodeBase
	meta meta.Meta
}

func newDirectory(segment string, parent container, provider meta.Provider) *Directory {
	d := &Directory{nodeBase: nodeBase{segment: segment, parent: parent, opts: parent.base().opts}}
	if md, ok := provider.Lookup(d.Path()); ok {
		d.meta = md
	}
	return d
}

func (d *Directory) Title() string {
	if d.meta.Title != "" {
		return d.meta.Title
	}
	return d.segment
}

func (d *Directory) Position() int {
	if d.meta.HasPosition {
		return d.meta.Position
	}
	return DefaultPosition
}

func (d *Directory) Tags() []string              { return d.meta.Tags }
func (d *Directory) Level() int                  { return d.parent.Level() + 1 }
func (d *Directory) Path() string                { return d.parent.Path() + "/" + d.segment }
func (d *Directory) URL() string                 { return firstChildURL(d) }
func (d *Directory) IsDocument() bool            { return false }
func (d *Directory) IsVersion() bool             { return IsVersionSegment(d.segment) }
func (d *Directory) InVersionTree() bool         { return d.IsVersion() || d.parent.InVersionTree() }
func (d *Directory) Prev() Node                  { return prevOf(d) }
func (d *Directory) Next() Node                  { return nextOf(d) }
func (d *Directory) orderPosition() (int, error) { return d.Position(), nil }

// Document is the leaf wrapping one site document.
type Document struct {
	nodeBase
	doc *docset.Document
}

// Doc returns the wrapped document.
func (d *Document) Doc() *docset.Document { return d.doc }

func (d *Document) Title() string {
	if t := d.doc.Title(); t != "" {
		return t
	}
	return d.doc.BaseName()
}

func (d *Document) Position() int {
	if pos, ok, err := d.doc.Position(); ok && err == nil {
		return pos
	}
	return DefaultPosition
}

func (d *Document) orderPosition() (int, error) {
	pos, ok, err := d.doc.Position()
	if err != nil {
		return 0, err
	}
	if !ok {
		return DefaultPosition, nil
	}
	return pos, nil
}

func (d *Document) Tags() []string      { return nil }
func (d *Document) Level() int          { return d.parent.Level() + 1 }
func (d *Document) Path() string        { return d.doc.Path }
func (d *Document) URL() string         { return d.doc.URL }
func (d *Document) IsDocument() bool    { return true }
func (d *Document) IsVersion() bool     { return false }
func (d *Document) InVersionTree() bool { return d.parent.InVersionTree() }
func (d *Document) Prev() Node          { return prevOf(d) }
func (d *Document) Next() Node          { return nextOf(d) }

// NodeOf returns the tree node stored on doc during construction.
func NodeOf(doc *docset.Document) (*Document, bool) {
	if doc == nil {
		return nil, false
	}
	v, ok := doc.Get(docset.KeyNode)
	if !ok {
		return nil, false
	}
	n, ok := v.(*Document)
	return n, ok && n != nil
}

// firstChildURL is the URL of a container: the URL of its first non-version child.
func firstChildURL(n Node) string {
	for _, c := range navigable(n) {
		return c.URL()
	}
	return ""
}
