package navtree

import "git.home.luguber.info/inful/docnav/internal/docset"

// Canonicalize marks every document inside a version subtree whose
// version-stripped URL also belongs to set. It returns the marked documents.
func Canonicalize(root *Root, set *docset.Set) []*Document {
	var marked []*Document
	Walk(root, func(n Node) {
		d, ok := n.(*Document)
		if !ok || !d.parent.InVersionTree() {
			return
		}
		target := StripVersion(d.URL())
		if target == d.URL() || !set.HasURL(target) {
			return
		}
		d.doc.Set(docset.KeyNeedsCanonical, true)
		d.doc.Set(docset.KeyCanonicalURL, target)
		marked = append(marked, d)
	})
	return marked
}

// Walk visits n and its descendants depth first in child order.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
