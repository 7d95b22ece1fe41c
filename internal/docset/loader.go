package docset

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/docset/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// LoadOptions controls which files under the content root become documents.
type LoadOptions struct {
	// Extensions lists document file extensions (default .md, .markdown, .html).
	Extensions []string
	Logger     *slog.Logger
}

func (o *LoadOptions) applyDefaults() {
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".md", ".markdown", ".html"}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Load walks root and returns every document with its frontmatter as metadata.
// Entries starting with "_" or "." are skipped, so metadata and config files
// never become documents.
func Load(root string, opts LoadOptions) (*Set, error) {
	opts.applyDefaults()
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrContentRootNotFound, root, err)
	}

	var docs []*Document
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if p != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !hasExtension(name, opts.Extensions) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, rel, err)
		}
		data, fingerprint, err := frontmatter.ReadWithFingerprint(content)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", derrors.ErrFrontmatterInvalid, rel, err)
		}

		docPath := filepath.ToSlash(rel)
		url := DeriveURL(docPath)
		if permalink, ok := data[KeyPermalink].(string); ok && permalink != "" {
			url = permalink
		}
		doc := New(docPath, url, data)
		doc.Fingerprint = fingerprint
		docs = append(docs, doc)
		opts.Logger.Debug("Loaded document", logfields.Path(docPath), logfields.URL(url))
		return nil
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("Documents loaded", slog.String("root", root), logfields.Count(len(docs)))
	return NewSet(docs...), nil
}

// DeriveURL maps a document path to its published URL: index pages publish
// at their directory, everything else as .html.
func DeriveURL(docPath string) string {
	dir, file := path.Split(docPath)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if stem == "index" {
		return "/" + dir
	}
	return "/" + dir + stem + ".html"
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
