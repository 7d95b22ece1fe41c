package navtree

import "strings"

// Marker is the visual prefix shown before a menu title.
type Marker int

const (
	// MarkerNone is used for documents.
	MarkerNone Marker = iota
	// MarkerCollapsed is used for sections whose children are not shown.
	MarkerCollapsed
	// MarkerExpanded is used for sections showing their children.
	MarkerExpanded
)

func (m Marker) String() string {
	switch m {
	case MarkerCollapsed:
		return "collapsed"
	case MarkerExpanded:
		return "expanded"
	default:
		return "none"
	}
}

// MenuItem is a read-only view of a node together with its already derived
// child menu.
type MenuItem struct {
	Title      string
	URL        string
	IsDocument bool
	Tags       []string
	Children   []*MenuItem

	collapsedTitle string
}

func newMenuItem(n Node, children []*MenuItem) *MenuItem {
	if children == nil {
		children = []*MenuItem{}
	}
	tags := n.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &MenuItem{
		Title:          n.Title(),
		URL:            n.URL(),
		IsDocument:     n.IsDocument(),
		Tags:           tags,
		Children:       children,
		collapsedTitle: n.base().opts.CollapsedTitle,
	}
}

// Collapsed reports whether the item is the umbrella entry whose children stay hidden.
func (m *MenuItem) Collapsed() bool {
	return m.collapsedTitle != "" && m.Title == m.collapsedTitle
}

// HasChildren reports whether the item shows a nested menu.
func (m *MenuItem) HasChildren() bool {
	return len(m.Children) > 0 && !m.Collapsed()
}

func (m *MenuItem) Marker() Marker {
	switch {
	case m.IsDocument:
		return MarkerNone
	case m.HasChildren():
		return MarkerExpanded
	default:
		return MarkerCollapsed
	}
}

// Active reports whether the item matches the URL being rendered. A collapsed
// item matches every URL below its own.
func (m *MenuItem) Active(current string) bool {
	if m.IsDocument && m.URL == current {
		return true
	}
	return m.Collapsed() && m.URL != "" && strings.HasPrefix(current, m.URL)
}

// SectionMenu returns the menu of the section containing the document,
// expanded along the path to it.
func (d *Document) SectionMenu() []*MenuItem {
	return d.parent.sectionMenu(d, nil)
}

func (r *Root) sectionMenu(_ Node, childMenu []*MenuItem) []*MenuItem { return childMenu }

func (d *Directory) sectionMenu(child Node, childMenu []*MenuItem) []*MenuItem {
	if child.IsVersion() {
		return d.parent.sectionMenu(d, childMenu)
	}

	items := navigable(d)
	if d.Level() == 1 && len(items) > 0 {
		items = items[1:]
	}
	menu := make([]*MenuItem, 0, len(items))
	for _, n := range items {
		var children []*MenuItem
		if n == child {
			children = childMenu
		}
		menu = append(menu, newMenuItem(n, children))
	}
	return d.parent.sectionMenu(d, menu)
}
