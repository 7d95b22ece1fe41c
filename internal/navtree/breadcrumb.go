package navtree

import "strings"

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Title string
	URL   string
}

// Breadcrumb returns the trail from the top-level section down to the
// document itself. Version directories contribute no crumb of their own; the
// entry for their parent links to the version instead.
func (d *Document) Breadcrumb() []Crumb {
	return d.parent.crumbs([]Crumb{{Title: d.Title(), URL: d.URL()}})
}

func (r *Root) crumbs(tail []Crumb) []Crumb { return tail }

func (d *Directory) crumbs(tail []Crumb) []Crumb {
	if !d.IsVersion() {
		return d.parent.crumbs(prepend(Crumb{Title: d.Title(), URL: d.URL()}, tail))
	}

	parent := d.parent
	grand, ok := parent.Parent().(container)
	if !ok {
		// version directly below the root
		return prepend(Crumb{Title: d.segment, URL: d.versionURL("/")}, tail)
	}
	crumb := Crumb{Title: parent.Title(), URL: d.versionURL(parent.URL())}
	return grand.crumbs(prepend(crumb, tail))
}

// versionURL addresses the version directory itself: its own URL cut after
// the version segment. When the segment does not occur in that URL, the
// version is placed in the directory of fallback.
func (d *Directory) versionURL(fallback string) string {
	marker := "/" + d.segment + "/"
	if own := d.URL(); own != "" {
		if i := strings.Index(own, marker); i >= 0 {
			return own[:i+len(marker)]
		}
	}
	dir := fallback[:strings.LastIndex(fallback, "/")+1]
	if dir == "" {
		dir = "/"
	}
	return dir + d.segment + "/"
}

func prepend(c Crumb, tail []Crumb) []Crumb {
	out := make([]Crumb, 0, len(tail)+1)
	out = append(out, c)
	return append(out, tail...)
}
