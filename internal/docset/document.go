// Package docset models the documents of one site generation pass.
//
// A Document is identified by its slash-delimited path, has a URL and carries
// a free-form metadata mapping (usually its frontmatter). Navigation code reads
// title, position and hidden from the mapping and writes derived keys back.
package docset

import (
	"fmt"
	"math"
	"path"
	"strings"
)

// Well-known metadata keys.
const (
	KeyTitle          = "title"
	KeyPosition       = "position"
	KeyHidden         = "hidden"
	KeyPermalink      = "permalink"
	KeyNode           = "node"
	KeyIsIndex        = "is_index"
	KeyPackage        = "package"
	KeyComponent      = "component"
	KeySubsection     = "subsection"
	KeyNeedsCanonical = "needs_canonical"
	KeyCanonicalURL   = "canonical_url"
)

// Document is one page of the site.
type Document struct {
	Path string
	URL  string
	Data map[string]any
	// Fingerprint identifies the source content; empty for documents not read from disk.
	Fingerprint string
}

// New creates a document. A nil data map is replaced by an empty one.
func New(docPath, url string, data map[string]any) *Document {
	if data == nil {
		data = map[string]any{}
	}
	return &Document{Path: docPath, URL: url, Data: data}
}

// Get returns a metadata value.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.Data[key]
	return v, ok
}

// Set stores a metadata value.
func (d *Document) Set(key string, value any) {
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	d.Data[key] = value
}

// SetDefault stores value unless the key already holds a non-empty value.
func (d *Document) SetDefault(key string, value any) {
	if v, ok := d.Data[key]; ok && !isEmpty(v) {
		return
	}
	d.Set(key, value)
}

// String returns the metadata value for key formatted as a string.
func (d *Document) String(key string) string {
	v, ok := d.Data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Title returns the title from metadata, or "" when unset.
func (d *Document) Title() string {
	return d.String(KeyTitle)
}

// Position returns the explicit position. ok is false when none is set; err
// is non-nil when the value is present but not an integer.
func (d *Document) Position() (pos int, ok bool, err error) {
	v, present := d.Data[KeyPosition]
	if !present || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case uint64:
		return int(n), true, nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), true, nil
		}
	}
	return 0, false, fmt.Errorf("position %v (%T) of %s is not an integer", v, v, d.Path)
}

// Hidden reports whether the document is excluded from navigation.
func (d *Document) Hidden() bool {
	switch v := d.Data[KeyHidden].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "yes"
	}
	return false
}

// Segments splits the path into its slash-delimited components.
func (d *Document) Segments() []string {
	trimmed := strings.Trim(d.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// BaseName returns the final path segment without its extension.
func (d *Document) BaseName() string {
	base := path.Base(d.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	}
	return false
}
