package commands

import (
	"fmt"

	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Path     string `arg:"" help:"Document path relative to the content directory (e.g. guides/install.md)"`
	Current  string `help:"URL treated as the current page (defaults to the document URL)"`
	Wrappers bool   `help:"Emit links in the wrappers namespace"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	doc, ok := ws.set.Lookup(n.Path)
	if !ok {
		return dberrors.NewError(dberrors.CategoryNotFound, "document not found").
			WithContext("path", n.Path).
			Build()
	}
	if _, err := ws.service.BuildTree(ws.set); err != nil {
		return err
	}

	current := n.Current
	if current == "" {
		current = doc.URL
	}
	wrappers := n.Wrappers || cfg.Wrappers.Enabled
	renderer := ws.service.Renderer()
	breadcrumb, err := renderer.Breadcrumb(doc, cfg.BaseURL, wrappers)
	if err != nil {
		return err
	}
	menu, err := renderer.SectionMenu(doc, cfg.BaseURL, current, wrappers)
	if err != nil {
		return err
	}

	node, _ := navtree.NodeOf(doc)
	_, err = fmt.Fprintf(g.Out, "Breadcrumb:\n%s\n\nMenu:\n%s\n\nPrev: %s\nNext: %s\n",
		breadcrumb, menu, urlOf(node.Prev()), urlOf(node.Next()))
	return err
}
