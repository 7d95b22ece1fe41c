// Package navtree builds the navigation tree of a documentation site and
// derives prev/next links, breadcrumb trails and section menus from it.
//
// The hierarchy is inferred from slash-delimited document paths. Every path
// prefix becomes a Directory, every non-hidden document a Document leaf, and
// the Root sits on top. Directories take their title, position and tags from a
// meta.Provider.
//
// Directories whose segment looks like a semantic version ("v1.2.3", "2.0.X")
// are version nodes. They never take part in sibling navigation; their content
// is transcluded into the parent's menu and breadcrumb instead.
//
// The tree is built and sorted once per generation pass and is read-only
// afterwards, so all derivations are plain walks over parent and sibling links
// and are safe to call concurrently.
package navtree
