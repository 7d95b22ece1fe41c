package navtree

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/docset"
	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/meta"
)

func page(p string, data map[string]any) *docset.Document {
	return docset.New(p, docset.DeriveURL(p), data)
}

func pos(n int) map[string]any { return map[string]any{docset.KeyPosition: n} }

func build(t *testing.T, provider meta.Provider, docs ...*docset.Document) (*Root, *docset.Set) {
	t.Helper()
	set := docset.NewSet(docs...)
	root, err := NewBuilder(provider, DefaultOptions()).Build(set)
	require.NoError(t, err)
	return root, set
}

func nodeFor(t *testing.T, set *docset.Set, p string) *Document {
	t.Helper()
	doc, ok := set.Lookup(p)
	require.True(t, ok, "document %s not in set", p)
	n, ok := NodeOf(doc)
	require.True(t, ok, "document %s has no node", p)
	return n
}

func titles(items []*MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func paths(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path())
	}
	return out
}

func TestBuild_SharesDirectoriesAndStoresNode(t *testing.T) {
	root, set := build(t, nil,
		page("a/x.md", nil),
		page("a/y.md", nil),
		page("b/z.md", nil),
	)

	require.Len(t, root.Children(), 2)
	a := root.Children()[0]
	assert.Equal(t, "/a", a.Path())
	assert.Equal(t, 1, a.Level())
	assert.Len(t, a.Children(), 2)

	x := nodeFor(t, set, "a/x.md")
	assert.Same(t, a, x.Parent())
	assert.Equal(t, 2, x.Level())
	assert.True(t, x.IsDocument())
}

func TestBuild_HiddenDocumentsContributeNoNodes(t *testing.T) {
	hidden := map[string]any{docset.KeyHidden: true}
	root, set := build(t, nil,
		page("a/x.md", hidden),
		page("a/y.md", nil),
		page("b/only.md", hidden),
	)

	require.Len(t, root.Children(), 1)
	assert.Equal(t, []string{"a/y.md"}, paths(root.Children()[0].Children()))

	doc, _ := set.Lookup("a/x.md")
	_, ok := NodeOf(doc)
	assert.False(t, ok)
}

func TestBuild_EmptyPathRejected(t *testing.T) {
	set := docset.NewSet(docset.New("/", "/", nil))
	_, err := NewBuilder(nil, DefaultOptions()).Build(set)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyPath))
}

func TestBuild_DirectoryMetadata(t *testing.T) {
	provider := meta.MapProvider{
		"/guides": {Title: "Guides", Position: 1, HasPosition: true},
		"/api":    {Title: "Reference"},
	}
	root, _ := build(t, provider,
		page("api/index.md", nil),
		page("guides/index.md", nil),
	)

	require.Len(t, root.Children(), 2)
	assert.Equal(t, "Guides", root.Children()[0].Title())
	assert.Equal(t, 1, root.Children()[0].Position())
	assert.Equal(t, "Reference", root.Children()[1].Title())
	assert.Equal(t, DefaultPosition, root.Children()[1].Position())
}

func TestBuild_DerivedFields(t *testing.T) {
	provider := meta.MapProvider{
		"/components/button":     {Title: "Button", Tags: []string{"component"}},
		"/components/button/api": {Title: "API"},
	}
	_, set := build(t, provider,
		page("components/button/index.md", nil),
		page("components/button/api/props.md", nil),
		page("components/grid/index.md", map[string]any{docset.KeyPackage: "Layout"}),
		page("guides/start.md", nil),
	)

	index, _ := set.Lookup("components/button/index.md")
	assert.Equal(t, true, index.Data[docset.KeyIsIndex])
	assert.Equal(t, "Button", index.Data[docset.KeyPackage])
	assert.Equal(t, "Button", index.Data[docset.KeyComponent])
	assert.NotContains(t, index.Data, docset.KeySubsection)

	props, _ := set.Lookup("components/button/api/props.md")
	assert.Equal(t, false, props.Data[docset.KeyIsIndex])
	assert.Equal(t, "Button", props.Data[docset.KeyPackage])
	assert.Equal(t, "API", props.Data[docset.KeySubsection])

	grid, _ := set.Lookup("components/grid/index.md")
	assert.Equal(t, "Layout", grid.Data[docset.KeyPackage], "explicit package is kept")
	assert.Equal(t, "grid", grid.Data[docset.KeySubsection])

	start, _ := set.Lookup("guides/start.md")
	assert.NotContains(t, start.Data, docset.KeyPackage)
	assert.Equal(t, "guides", start.Data[docset.KeySubsection])
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Button", capitalize("button"))
	assert.Equal(t, "Datepicker", capitalize("DatePicker"))
	assert.Equal(t, "", capitalize(""))
}

func TestCompare(t *testing.T) {
	root, set := build(t, nil,
		page("a/first.md", pos(1)),
		page("a/alpha.md", nil),
		page("a/beta.md", nil),
	)
	first := nodeFor(t, set, "a/first.md")
	alpha := nodeFor(t, set, "a/alpha.md")
	beta := nodeFor(t, set, "a/beta.md")

	tests := []struct {
		name string
		a, b Node
		want int
	}{
		{"position wins", first, alpha, -1},
		{"title breaks position tie", alpha, beta, -1},
		{"reversed", beta, alpha, 1},
		{"self", alpha, alpha, 0},
		{"nil other sorts first", alpha, nil, -1},
		{"nil self sorts last", nil, alpha, 1},
		{"directory against document", root.Children()[0], alpha, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCompare_PathBreaksTitleTie(t *testing.T) {
	_, set := build(t, nil,
		page("a/one.md", map[string]any{docset.KeyTitle: "Same"}),
		page("a/two.md", map[string]any{docset.KeyTitle: "Same"}),
	)
	one := nodeFor(t, set, "a/one.md")
	two := nodeFor(t, set, "a/two.md")

	c, err := Compare(one, two)
	require.NoError(t, err)
	assert.Equal(t, -1, c)
	assert.Equal(t, []string{"a/one.md", "a/two.md"}, paths(one.Parent().Children()))
}

func TestSort_DuplicatePathsFail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	set := docset.NewSet(page("a/x.md", nil), page("a/x.md", nil))
	_, err := NewBuilder(nil, DefaultOptions()).WithLogger(logger).Build(set)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "Navigation tree ordering failed")
	assert.Contains(t, buf.String(), "path=a/x.md other_path=a/x.md")

	ce, ok := dberrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, dberrors.CategoryOrdering, ce.Category())
	assert.True(t, ce.IsFatal())
	got, _ := ce.Context().GetString("path")
	assert.Equal(t, "a/x.md", got)
	got, _ = ce.Context().GetString("other_path")
	assert.Equal(t, "a/x.md", got)
}

func TestSort_MalformedPositionFails(t *testing.T) {
	set := docset.NewSet(
		page("a/x.md", map[string]any{docset.KeyPosition: "first"}),
		page("a/y.md", nil),
	)
	_, err := NewBuilder(nil, DefaultOptions()).Build(set)
	require.Error(t, err)
	assert.True(t, dberrors.HasCategory(err, dberrors.CategoryOrdering))
	assert.Contains(t, err.Error(), "a/x.md")
	assert.Contains(t, err.Error(), "a/y.md")
}

func TestSort_TotalOrderAndIdempotent(t *testing.T) {
	root, _ := build(t, nil,
		page("a/z.md", nil),
		page("a/m.md", pos(5)),
		page("a/b.md", map[string]any{docset.KeyTitle: "Zed"}),
		page("a/c.md", map[string]any{docset.KeyTitle: "Zed"}),
		page("a/k.md", pos(5)),
		page("a/sub/q.md", nil),
	)
	a := root.Children()[0]
	// titles compare bytewise, so "Zed" sorts before "sub" and "z"
	want := []string{"a/k.md", "a/m.md", "a/b.md", "a/c.md", "/a/sub", "a/z.md"}
	assert.Equal(t, want, paths(a.Children()))

	children := a.Children()
	for i := range children {
		for j := range children {
			if i == j {
				continue
			}
			c, err := Compare(children[i], children[j])
			require.NoError(t, err)
			assert.NotZero(t, c)
		}
	}

	require.NoError(t, root.Sort())
	assert.Equal(t, want, paths(a.Children()))
}

func TestSort_UnsortedSectionKeepsInsertionOrder(t *testing.T) {
	root, _ := build(t, nil,
		page("npm/zeta.md", pos(3)),
		page("npm/beta.md", pos(2)),
		page("npm/deep/z.md", pos(2)),
		page("npm/deep/a.md", pos(1)),
		page("npm/alpha.md", pos(1)),
		page("other/zeta.md", pos(3)),
		page("other/alpha.md", pos(1)),
	)

	var npm, other Node
	for _, c := range root.Children() {
		switch c.Segment() {
		case "npm":
			npm = c
		case "other":
			other = c
		}
	}
	require.NotNil(t, npm)
	require.NotNil(t, other)

	assert.Equal(t, []string{"npm/zeta.md", "npm/beta.md", "/npm/deep", "npm/alpha.md"}, paths(npm.Children()))
	assert.Equal(t, []string{"npm/deep/z.md", "npm/deep/a.md"}, paths(npm.Children()[2].Children()))
	assert.Equal(t, []string{"other/alpha.md", "other/zeta.md"}, paths(other.Children()))
}

// threadSite has two top-level sections; a has a nested directory.
func threadSite(t *testing.T) *docset.Set {
	t.Helper()
	_, set := build(t, nil,
		page("a/index.md", pos(1)),
		page("a/x.md", pos(2)),
		page("a/sub/one.md", pos(1)),
		page("a/sub/two.md", pos(2)),
		page("a/v2.0.0/x.md", nil),
		page("b/index.md", pos(1)),
		page("b/z.md", pos(2)),
	)
	return set
}

func TestPrevNext_Thread(t *testing.T) {
	set := threadSite(t)

	tests := []struct {
		path string
		prev string
		next string
	}{
		{"a/index.md", "", "a/x.md"},
		{"a/x.md", "a/index.md", "a/sub/one.md"},
		{"a/sub/one.md", "a/x.md", "a/sub/two.md"},
		{"a/sub/two.md", "a/sub/one.md", ""},
		{"b/index.md", "a/sub/two.md", "b/z.md"},
		{"b/z.md", "b/index.md", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n := nodeFor(t, set, tt.path)
			if tt.prev == "" {
				assert.Nil(t, n.Prev())
			} else {
				require.NotNil(t, n.Prev())
				assert.Equal(t, tt.prev, n.Prev().Path())
			}
			if tt.next == "" {
				assert.Nil(t, n.Next())
			} else {
				require.NotNil(t, n.Next())
				assert.Equal(t, tt.next, n.Next().Path())
			}
		})
	}
}

func TestPrevNext_Symmetry(t *testing.T) {
	set := threadSite(t)

	for _, doc := range set.Documents() {
		n, ok := NodeOf(doc)
		require.True(t, ok)
		if n.InVersionTree() {
			continue
		}
		if next := n.Next(); next != nil {
			assert.Same(t, n, next.Prev(), "next.prev of %s", doc.Path)
		}
	}
}

func TestPrevNext_TopLevelBoundaryIsAsymmetric(t *testing.T) {
	set := threadSite(t)
	last := nodeFor(t, set, "a/sub/two.md")
	first := nodeFor(t, set, "b/index.md")

	assert.Nil(t, last.Next(), "next does not cross into the following top-level section")
	require.NotNil(t, first.Prev())
	assert.Same(t, last, first.Prev(), "prev still climbs back into the preceding section")

	a := last.Parent().Parent()
	assert.Equal(t, 1, a.Level())
	assert.Nil(t, a.Next())
}

func TestPrevNext_VersionNodes(t *testing.T) {
	set := threadSite(t)
	versioned := nodeFor(t, set, "a/v2.0.0/x.md")
	version := versioned.Parent()

	assert.True(t, version.IsVersion())
	assert.Nil(t, version.Prev())
	assert.Nil(t, version.Next())
	assert.Nil(t, versioned.Prev())
	assert.Nil(t, versioned.Next())

	a := version.Parent()
	assert.NotContains(t, paths(Navigable(a)), version.Path())
	assert.Equal(t, []string{"a/index.md", "a/x.md", "/a/sub"}, paths(Navigable(a)))
}

func TestRoot_Boundaries(t *testing.T) {
	root, _ := build(t, nil, page("a/index.md", nil))

	assert.Nil(t, root.Parent())
	assert.Nil(t, root.Prev())
	assert.Nil(t, root.Next())
	assert.Equal(t, 0, root.Level())
	assert.Equal(t, "", root.Path())
	assert.False(t, root.InVersionTree())
	assert.Equal(t, "/a/", root.URL())
}

func TestSectionMenu_LevelOneSkipsIndex(t *testing.T) {
	_, set := build(t, nil,
		page("a/index.md", pos(1)),
		page("a/x.md", pos(2)),
		page("a/y.md", pos(3)),
	)

	menu := nodeFor(t, set, "a/x.md").SectionMenu()
	assert.Equal(t, []string{"x", "y"}, titles(menu))
	for _, it := range menu {
		assert.True(t, it.IsDocument)
		assert.Empty(t, it.Children)
		assert.Equal(t, MarkerNone, it.Marker())
	}
	assert.Equal(t, "/a/x.html", menu[0].URL)
}

func TestSectionMenu_ExpandsOnlyActivePath(t *testing.T) {
	provider := meta.MapProvider{
		"/a/guide": {Title: "Guide", Position: 2, HasPosition: true},
		"/a/other": {Title: "Other", Position: 3, HasPosition: true},
	}
	_, set := build(t, provider,
		page("a/index.md", pos(1)),
		page("a/guide/intro.md", pos(1)),
		page("a/guide/setup.md", pos(2)),
		page("a/other/misc.md", nil),
	)

	menu := nodeFor(t, set, "a/guide/setup.md").SectionMenu()
	require.Equal(t, []string{"Guide", "Other"}, titles(menu))

	guide := menu[0]
	assert.Equal(t, []string{"intro", "setup"}, titles(guide.Children))
	assert.True(t, guide.HasChildren())
	assert.Equal(t, MarkerExpanded, guide.Marker())
	assert.Equal(t, "/a/guide/intro.html", guide.URL)

	other := menu[1]
	assert.Empty(t, other.Children)
	assert.Equal(t, MarkerCollapsed, other.Marker())
}

func TestSectionMenu_VersionIsTranscluded(t *testing.T) {
	_, set := build(t, nil,
		page("a/index.md", pos(1)),
		page("a/guide/intro.md", nil),
		page("a/guide/v1.2.3/intro.md", nil),
		page("a/guide/v1.2.3/setup.md", nil),
	)

	menu := nodeFor(t, set, "a/guide/v1.2.3/setup.md").SectionMenu()
	require.Equal(t, []string{"guide"}, titles(menu))
	assert.Equal(t, []string{"intro", "setup"}, titles(menu[0].Children))
	assert.Equal(t, "/a/guide/v1.2.3/setup.html", menu[0].Children[1].URL)
}

func TestMenuItem_CollapsedTitle(t *testing.T) {
	provider := meta.MapProvider{"/a/api": {Title: "API"}}
	_, set := build(t, provider,
		page("a/index.md", pos(1)),
		page("a/api/index.md", pos(1)),
		page("a/api/button.md", pos(2)),
	)

	menu := nodeFor(t, set, "a/api/button.md").SectionMenu()
	require.Len(t, menu, 1)
	api := menu[0]
	assert.True(t, api.Collapsed())
	assert.NotEmpty(t, api.Children)
	assert.False(t, api.HasChildren())
	assert.Equal(t, MarkerCollapsed, api.Marker())
	assert.Equal(t, "/a/api/", api.URL)

	assert.True(t, api.Active("/a/api/button.html"))
	assert.False(t, api.Active("/a/other.html"))
}

func TestMenuItem_Active(t *testing.T) {
	item := &MenuItem{Title: "x", URL: "/a/x.html", IsDocument: true}
	assert.True(t, item.Active("/a/x.html"))
	assert.False(t, item.Active("/a/x.html/more"))

	dir := &MenuItem{Title: "Guide", URL: "/a/guide/"}
	assert.False(t, dir.Active("/a/guide/"))
}

func TestBreadcrumb(t *testing.T) {
	_, set := build(t, nil,
		page("a/index.md", pos(1)),
		page("a/x.md", pos(2)),
		page("a/y.md", pos(3)),
		page("a/deep/z.md", map[string]any{docset.KeyTitle: "Zed"}),
	)

	crumbs := nodeFor(t, set, "a/y.md").Breadcrumb()
	assert.Equal(t, []Crumb{{Title: "a", URL: "/a/"}, {Title: "y", URL: "/a/y.html"}}, crumbs)

	crumbs = nodeFor(t, set, "a/deep/z.md").Breadcrumb()
	assert.Equal(t, []Crumb{
		{Title: "a", URL: "/a/"},
		{Title: "deep", URL: "/a/deep/z.html"},
		{Title: "Zed", URL: "/a/deep/z.html"},
	}, crumbs)
}

func TestBreadcrumb_VersionElided(t *testing.T) {
	_, set := build(t, nil,
		page("a/index.md", nil),
		page("a/page.md", nil),
		page("a/v1.2.3/page.md", nil),
	)

	crumbs := nodeFor(t, set, "a/v1.2.3/page.md").Breadcrumb()
	assert.Equal(t, []Crumb{
		{Title: "a", URL: "/a/v1.2.3/"},
		{Title: "page", URL: "/a/v1.2.3/page.html"},
	}, crumbs)

	t.Run("parent starts with a subdirectory", func(t *testing.T) {
		provider := meta.MapProvider{"/a/guide": {Position: 1, HasPosition: true}}
		_, set := build(t, provider,
			page("a/guide/intro.md", nil),
			page("a/page.md", nil),
			page("a/v1.2.3/page.md", nil),
		)
		crumbs := nodeFor(t, set, "a/v1.2.3/page.md").Breadcrumb()
		require.Len(t, crumbs, 2)
		assert.Equal(t, Crumb{Title: "a", URL: "/a/v1.2.3/"}, crumbs[0])
	})

	t.Run("parent index has a permalink", func(t *testing.T) {
		_, set := build(t, nil,
			docset.New("a/index.md", "/docs-a.html", pos(1)),
			page("a/v1.2.3/page.md", nil),
		)
		crumbs := nodeFor(t, set, "a/v1.2.3/page.md").Breadcrumb()
		require.Len(t, crumbs, 2)
		assert.Equal(t, Crumb{Title: "a", URL: "/a/v1.2.3/"}, crumbs[0])
	})

	t.Run("version URL without the segment falls back to the parent directory", func(t *testing.T) {
		_, set := build(t, nil,
			page("a/index.md", pos(1)),
			docset.New("a/v1.2.3/page.md", "/legacy/page.html", nil),
		)
		crumbs := nodeFor(t, set, "a/v1.2.3/page.md").Breadcrumb()
		require.Len(t, crumbs, 2)
		assert.Equal(t, Crumb{Title: "a", URL: "/a/v1.2.3/"}, crumbs[0])
	})
}

func TestCanonicalize(t *testing.T) {
	root, set := build(t, nil,
		page("a/index.md", nil),
		page("a/page.md", nil),
		page("a/v1.2.3/page.md", nil),
		page("a/v1.2.3/only.md", nil),
	)

	marked := Canonicalize(root, set)
	require.Len(t, marked, 1)

	versioned, _ := set.Lookup("a/v1.2.3/page.md")
	assert.Equal(t, true, versioned.Data[docset.KeyNeedsCanonical])
	assert.Equal(t, "/a/page.html", versioned.Data[docset.KeyCanonicalURL])

	only, _ := set.Lookup("a/v1.2.3/only.md")
	assert.NotContains(t, only.Data, docset.KeyNeedsCanonical)

	plain, _ := set.Lookup("a/page.md")
	assert.NotContains(t, plain.Data, docset.KeyNeedsCanonical)
}

func TestVersionPattern(t *testing.T) {
	tests := []struct {
		segment string
		want    bool
	}{
		{"v1.2.3", true},
		{"1.0.0", true},
		{"2.0.X", true},
		{"V3.1.4-beta.1", true},
		{"1.2", false},
		{"guides", false},
		{"01.2.3", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVersionSegment(tt.segment))
		})
	}

	assert.Equal(t, "/a/page.html", StripVersion("/a/v1.2.3/page.html"))
	assert.Equal(t, "/a/page.html", StripVersion("/a/page.html"))
}
