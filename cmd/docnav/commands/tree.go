package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Links bool `short:"l" help:"Show prev/next links of every document"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	tree, err := ws.service.BuildTree(ws.set)
	if err != nil {
		return err
	}
	return PrintTree(g.Out, tree, t.Links)
}

// PrintTree writes one line per node, indented by level. Directories are
// marked "+", version directories "@" and documents "-".
func PrintTree(w io.Writer, tree *navtree.Root, links bool) error {
	var err error
	navtree.Walk(tree, func(n navtree.Node) {
		if err != nil || n.Level() == 0 {
			return
		}
		_, err = fmt.Fprintln(w, treeLine(n, links))
	})
	return err
}

func treeLine(n navtree.Node, links bool) string {
	marker := "+"
	switch {
	case n.IsDocument():
		marker = "-"
	case n.IsVersion():
		marker = "@"
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", n.Level()-1))
	fmt.Fprintf(&sb, "%s %s  %s", marker, n.Title(), n.URL())
	if n.Position() != navtree.DefaultPosition {
		fmt.Fprintf(&sb, "  [%d]", n.Position())
	}
	if links && n.IsDocument() {
		fmt.Fprintf(&sb, "  prev=%s next=%s", urlOf(n.Prev()), urlOf(n.Next()))
	}
	return sb.String()
}

func urlOf(n navtree.Node) string {
	if n == nil {
		return "-"
	}
	return n.URL()
}
