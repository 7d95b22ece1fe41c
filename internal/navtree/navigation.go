package navtree

// navigable returns the non-version children of n in sorted order.
func navigable(n Node) []Node {
	children := n.Children()
	out := make([]Node, 0, len(children))
	for _, c := range children {
		if !c.IsVersion() {
			out = append(out, c)
		}
	}
	return out
}

// Navigable is the exported view of a node's non-version children.
func Navigable(n Node) []Node {
	if n == nil {
		return nil
	}
	return navigable(n)
}

func indexOf(siblings []Node, n Node) int {
	for i, s := range siblings {
		if s == n {
			return i
		}
	}
	return -1
}

// prevOf walks back to the last navigable document before n. The first
// child of a section continues from the tail of the section before its parent.
func prevOf(n Node) Node {
	if n.IsVersion() {
		return nil
	}
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	siblings := navigable(parent)
	i := indexOf(siblings, n)
	if i < 0 {
		return nil
	}
	if i == 0 {
		return lastNavigable(parent.Prev())
	}
	return lastNavigable(siblings[i-1])
}

// nextOf walks forward to the first navigable document after n. Top-level
// nodes only continue through their parent, which is the root, so
// top-level sections never chain into each other.
func nextOf(n Node) Node {
	if n.IsVersion() {
		return nil
	}
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	siblings := navigable(parent)
	i := indexOf(siblings, n)
	if i < 0 {
		return nil
	}
	if i == len(siblings)-1 {
		return firstNavigable(parent.Next())
	}
	if n.Level() == 1 {
		return nil
	}
	return firstNavigable(siblings[i+1])
}

// firstNavigable descends through first non-version children until it
// reaches a document. Empty directories yield nil.
func firstNavigable(n Node) Node {
	for n != nil && !n.IsDocument() {
		if n.IsVersion() {
			return nil
		}
		children := navigable(n)
		if len(children) == 0 {
			return nil
		}
		n = children[0]
	}
	return n
}

// lastNavigable descends through last non-version children until it
// reaches a document.
func lastNavigable(n Node) Node {
	for n != nil && !n.IsDocument() {
		if n.IsVersion() {
			return nil
		}
		children := navigable(n)
		if len(children) == 0 {
			return nil
		}
		n = children[len(children)-1]
	}
	return n
}
