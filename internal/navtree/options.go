package navtree

// DefaultPosition is the position of nodes without explicit ordering; it sorts them last.
const DefaultPosition = 10000

// Options holds the site-specific conventions the tree honours.
type Options struct {
	// UnsortedSection is the top-level segment whose subtree keeps its
	// authored order.
	UnsortedSection string
	// CollapsedTitle is the menu title whose children stay hidden and which is
	// active for every URL below its own.
	CollapsedTitle string
	// PackageRoot is the top-level segment whose children name packages.
	PackageRoot string
	// ComponentTag marks directories whose documents belong to a component.
	ComponentTag string
}

// DefaultOptions returns the conventions of the component documentation site.
func DefaultOptions() Options {
	return Options{
		UnsortedSection: "npm",
		CollapsedTitle:  "API",
		PackageRoot:     "components",
		ComponentTag:    "component",
	}
}
