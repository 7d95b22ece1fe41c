package meta

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// FileOptions configures a FileProvider.
type FileOptions struct {
	// MetaFile is the per-directory metadata file name (default "_meta.yml").
	MetaFile string
	// FallbackFile is the site configuration holding the fallback section
	// (default "_config.yml"). Relative paths resolve against the content root.
	FallbackFile string
	// FallbackKey is the top-level key of the fallback section (default "navigation").
	FallbackKey string
	// RewriteFrom/RewriteTo rewrite the directory path once before the
	// fallback lookup, e.g. "/components/" -> "controls/".
	RewriteFrom string
	RewriteTo   string

	Logger *slog.Logger
}

// DefaultFileOptions returns the file names and path rewrite of the component
// documentation site.
func DefaultFileOptions() FileOptions {
	o := FileOptions{RewriteFrom: "/components/", RewriteTo: "controls/"}
	o.applyDefaults()
	return o
}

func (o *FileOptions) applyDefaults() {
	if o.MetaFile == "" {
		o.MetaFile = "_meta.yml"
	}
	if o.FallbackFile == "" {
		o.FallbackFile = "_config.yml"
	}
	if o.FallbackKey == "" {
		o.FallbackKey = "navigation"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

type pattern struct {
	key string
	re  *regexp.Regexp
	rec record
}

// FileProvider reads `_meta.yml` from the directory itself and otherwise
// consults the fallback section, whose keys may contain `*` wildcards.
type FileProvider struct {
	root     string
	opts     FileOptions
	exact    map[string]record
	patterns []pattern
}

// NewFileProvider loads the fallback section once. A missing fallback file is
// not an error; a malformed one is.
func NewFileProvider(root string, opts FileOptions) (*FileProvider, error) {
	opts.applyDefaults()
	p := &FileProvider{root: root, opts: opts, exact: map[string]record{}}

	fallback := opts.FallbackFile
	if !filepath.IsAbs(fallback) {
		fallback = filepath.Join(root, fallback)
	}
	if err := p.loadFallback(fallback); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FileProvider) loadFallback(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p.opts.Logger.Debug("No fallback navigation config", logfields.File(path))
		return nil
	}
	if err != nil {
		return dberrors.WrapError(err, dberrors.CategoryMetadata, "read fallback navigation config").
			WithContext("file", path).Build()
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return dberrors.WrapError(err, dberrors.CategoryMetadata, "parse fallback navigation config").
			WithContext("file", path).Build()
	}
	section, ok := doc[p.opts.FallbackKey]
	if !ok {
		return nil
	}
	var entries map[string]record
	if err := section.Decode(&entries); err != nil {
		return dberrors.WrapError(err, dberrors.CategoryMetadata, "decode fallback navigation section").
			WithContext("file", path).
			WithContext("key", p.opts.FallbackKey).Build()
	}

	for key, rec := range entries {
		key = strings.TrimPrefix(key, "/")
		if !strings.Contains(key, "*") {
			p.exact[key] = rec
			continue
		}
		expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(key), `\*`, ".*") + "$"
		p.patterns = append(p.patterns, pattern{key: key, re: regexp.MustCompile(expr), rec: rec})
	}
	// Most literal characters first so that "controls/*" beats "*".
	sort.Slice(p.patterns, func(i, j int) bool {
		li := len(p.patterns[i].key) - strings.Count(p.patterns[i].key, "*")
		lj := len(p.patterns[j].key) - strings.Count(p.patterns[j].key, "*")
		if li != lj {
			return li > lj
		}
		return p.patterns[i].key < p.patterns[j].key
	})
	p.opts.Logger.Debug("Loaded fallback navigation config",
		logfields.File(path),
		logfields.Count(len(entries)))
	return nil
}

// Lookup implements Provider.
func (p *FileProvider) Lookup(dir string) (Meta, bool) {
	file := filepath.Join(p.root, filepath.FromSlash(strings.TrimPrefix(dir, "/")), p.opts.MetaFile)
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		var rec record
		if err := yaml.Unmarshal(data, &rec); err != nil {
			p.opts.Logger.Warn("Ignoring malformed metadata file", logfields.File(file), logfields.Error(err))
			return Meta{}, false
		}
		return rec.meta(), true
	case !errors.Is(err, fs.ErrNotExist):
		p.opts.Logger.Warn("Failed to read metadata file", logfields.File(file), logfields.Error(err))
	}

	key := p.fallbackKey(dir)
	if rec, ok := p.exact[key]; ok {
		return rec.meta(), true
	}
	for _, pat := range p.patterns {
		if pat.re.MatchString(key) {
			return pat.rec.meta(), true
		}
	}
	return Meta{}, false
}

func (p *FileProvider) fallbackKey(dir string) string {
	if p.opts.RewriteFrom != "" {
		dir = strings.Replace(dir, p.opts.RewriteFrom, p.opts.RewriteTo, 1)
	}
	return strings.TrimPrefix(dir, "/")
}
