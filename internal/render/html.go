package render

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

const crumbSeparator = " / "

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func renderNodes(nodes ...*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func breadcrumbNodes(crumbs []navtree.Crumb) []*html.Node {
	nodes := make([]*html.Node, 0, 2*len(crumbs))
	for i, c := range crumbs {
		if i > 0 {
			nodes = append(nodes, text(crumbSeparator))
		}
		a := element(atom.A, attr("href", c.URL))
		a.AppendChild(text(c.Title))
		nodes = append(nodes, a)
	}
	return nodes
}

type menuRenderer struct {
	base    string
	current string
	rewrite func(string) string
	logger  *slog.Logger
}

// list renders items as <ul>, descending only into expanded items.
func (m menuRenderer) list(items []*navtree.MenuItem) *html.Node {
	ul := element(atom.Ul)
	for _, item := range items {
		ul.AppendChild(m.item(item))
	}
	return ul
}

func (m menuRenderer) item(item *navtree.MenuItem) *html.Node {
	classes := make([]string, 0, len(item.Tags)+1)
	for _, t := range item.Tags {
		if t = strings.TrimSpace(t); t != "" {
			classes = append(classes, "tag-"+t)
		}
	}
	expanded := item.HasChildren()
	if expanded {
		classes = append(classes, "expanded")
	}

	li := element(atom.Li)
	if len(classes) > 0 {
		li.Attr = append(li.Attr, attr("class", strings.Join(classes, " ")))
	}
	li.AppendChild(m.link(item))
	if expanded {
		li.AppendChild(m.list(item.Children))
	}
	return li
}

func (m menuRenderer) link(item *navtree.MenuItem) *html.Node {
	if item.Title == "" {
		m.logger.Warn("Menu item has no title", logfields.URL(item.URL))
	}

	a := element(atom.A)
	if item.Active(m.current) {
		a.Attr = append(a.Attr, attr("class", "active"))
	}
	a.Attr = append(a.Attr, attr("href", joinURL(m.base, m.rewrite(item.URL))))

	switch item.Marker() {
	case navtree.MarkerExpanded:
		a.AppendChild(element(atom.Span, attr("class", "item-expanded")))
		a.AppendChild(text(" " + item.Title))
	case navtree.MarkerCollapsed:
		a.AppendChild(element(atom.Span, attr("class", "item-collapsed")))
		a.AppendChild(text(" " + item.Title))
	default:
		a.AppendChild(text(item.Title))
	}
	return a
}
