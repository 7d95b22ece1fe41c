package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docnav/internal/docset/errors"
	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/generate"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func page(title string, position int) string {
	return "---\ntitle: " + title + "\nposition: " + strconv.Itoa(position) + "\n---\nBody of " + title + "\n"
}

// setupSite creates a content tree and a config file in a temp directory and
// changes into it.
func setupSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, "content/guides/_meta.yml", "title: User Guides\nposition: 1\n")
	writeFile(t, "content/guides/index.md", page("Guides", 1))
	writeFile(t, "content/guides/install.md", page("Install", 2))
	writeFile(t, "content/api/overview.md", page("Overview", 1))
	writeFile(t, "content/api/v1.0.0/overview.md", page("Overview", 1))
	writeFile(t, "docnav.yaml", "content_dir: content\noutput: out/navigation.json\nbase_url: /docs\n")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docnav"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = ctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

func TestBuild(t *testing.T) {
	setupSite(t)

	out, err := run(t, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote navigation for 4 documents to out/navigation.json")

	result, err := generate.ReadManifest("out/navigation.json")
	require.NoError(t, err)
	assert.NotEmpty(t, result.PassID)
	assert.Empty(t, result.Revision, "temp dir is not a git repository")
	require.Len(t, result.Documents, 4)

	byPath := map[string]generate.Entry{}
	for _, e := range result.Documents {
		byPath[e.Path] = e
	}
	install := byPath["guides/install.md"]
	assert.Equal(t, "/guides/", install.Prev)
	assert.Empty(t, install.Next)
	assert.NotEmpty(t, install.Fingerprint)
	assert.Equal(t, `<a href="/docs/guides/">User Guides</a> / <a href="/docs/guides/install.html">Install</a>`,
		install.Breadcrumb)

	versioned := byPath["api/v1.0.0/overview.md"]
	assert.True(t, versioned.NeedsCanonical)
	assert.Equal(t, "/api/overview.html", versioned.CanonicalURL)
}

func TestBuild_Overrides(t *testing.T) {
	setupSite(t)

	_, err := run(t, "build", "--output", "alt.json", "--base-url", "https://example.com")
	require.NoError(t, err)

	result, err := generate.ReadManifest("alt.json")
	require.NoError(t, err)
	for _, e := range result.Documents {
		if e.Path == "guides/index.md" {
			assert.Contains(t, e.Breadcrumb, `href="https://example.com/guides/"`)
		}
	}
}

func TestBuild_MetricsTextfile(t *testing.T) {
	setupSite(t)
	writeFile(t, "docnav.yaml", "content_dir: content\nmetrics:\n  textfile: docnav.prom\n")

	_, err := run(t, "build")
	require.NoError(t, err)

	data, err := os.ReadFile("docnav.prom")
	require.NoError(t, err)
	assert.Contains(t, string(data), "docnav_")
}

func TestBuild_MissingContentDir(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "docnav.yaml", "content_dir: nowhere\n")

	_, err := run(t, "build")
	require.Error(t, err)
	assert.True(t, dberrors.HasCategory(err, dberrors.CategoryNotFound))
	assert.Equal(t, 3, dberrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuild_OrderingErrorAborts(t *testing.T) {
	setupSite(t)
	writeFile(t, "content/guides/broken.md", "---\ntitle: Broken\nposition: first\n---\n")

	_, err := run(t, "build")
	require.Error(t, err)
	assert.True(t, dberrors.HasCategory(err, dberrors.CategoryOrdering))
	_, statErr := os.Stat("out/navigation.json")
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no manifest on failure")
}

func TestTree(t *testing.T) {
	setupSite(t)

	out, err := run(t, "tree", "--links")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "+ User Guides  /guides/  [1]", lines[0])
	assert.Equal(t, "  - Guides  /guides/  [1]  prev=- next=/guides/install.html", lines[1])
	assert.Equal(t, "  - Install  /guides/install.html  [2]  prev=/guides/ next=-", lines[2])
	assert.Equal(t, "+ api  /api/overview.html", lines[3])
	assert.Equal(t, "  @ v1.0.0  /api/v1.0.0/overview.html", lines[5])
	assert.Equal(t, "    - Overview  /api/v1.0.0/overview.html  [1]  prev=- next=-", lines[6])
}

func TestNav(t *testing.T) {
	setupSite(t)

	out, err := run(t, "nav", "guides/install.md")
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="/docs/guides/">User Guides</a> / <a href="/docs/guides/install.html">Install</a>`)
	assert.Contains(t, out, `<a class="active" href="/docs/guides/install.html">Install</a>`)
	assert.Contains(t, out, "Prev: /guides/\nNext: -")
}

func TestNav_UnknownDocument(t *testing.T) {
	setupSite(t)

	_, err := run(t, "nav", "guides/missing.md")
	require.Error(t, err)
	assert.True(t, dberrors.HasCategory(err, dberrors.CategoryNotFound))
}

func TestInit(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, "docnav.yaml")

	_, err = run(t, "init")
	require.Error(t, err)
	assert.True(t, dberrors.HasCategory(err, dberrors.CategoryConfig))

	_, err = run(t, "init", "--force")
	require.NoError(t, err)
}

func TestRunWatch_StopsOnCancel(t *testing.T) {
	setupSite(t)
	cfg, err := loadConfig(&CLI{Config: "docnav.yaml"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, runWatch(ctx, &Global{Out: &bytes.Buffer{}}, cfg))
}

func TestClassifyLoadError(t *testing.T) {
	tests := []struct {
		err  error
		want dberrors.ErrorCategory
	}{
		{derrors.ErrContentRootNotFound, dberrors.CategoryNotFound},
		{derrors.ErrFrontmatterInvalid, dberrors.CategoryMetadata},
		{derrors.ErrFileReadFailed, dberrors.CategoryFileSystem},
	}
	for _, tt := range tests {
		err := classifyLoadError(tt.err, "content")
		assert.Equal(t, tt.want, dberrors.GetCategory(err), tt.err.Error())
	}
}
