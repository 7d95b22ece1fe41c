// Package meta supplies per-directory navigation metadata (title, position, tags).
//
// The navigation tree only depends on the Provider interface. FileProvider is
// the concrete implementation reading `_meta.yml` files next to the content and
// falling back to the `navigation` section of the site configuration.
package meta

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// Meta is the navigation metadata of one directory.
type Meta struct {
	Title       string
	Position    int
	HasPosition bool
	Tags        []string
}

// Provider looks up metadata for a directory tree path such as "/guides/install".
// The boolean is false when no metadata exists, which is a valid state.
type Provider interface {
	Lookup(dir string) (Meta, bool)
}

// MapProvider serves metadata from memory, keyed by tree path.
type MapProvider map[string]Meta

func (m MapProvider) Lookup(dir string) (Meta, bool) {
	md, ok := m[dir]
	return md, ok
}

// None is a Provider without any metadata.
type None struct{}

func (None) Lookup(string) (Meta, bool) { return Meta{}, false }

// record is the YAML shape of a metadata entry.
type record struct {
	Title    string  `yaml:"title"`
	Position *int    `yaml:"position"`
	Tags     TagList `yaml:"tags"`
}

func (r record) meta() Meta {
	md := Meta{Title: r.Title, Tags: []string(r.Tags)}
	if r.Position != nil {
		md.Position = *r.Position
		md.HasPosition = true
	}
	return md
}

// TagList decodes either a comma-separated string or a YAML sequence.
type TagList []string

func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = SplitTags(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*t = SplitTags(strings.Join(items, ","))
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a string or a list", value.Line)
	}
}

// SplitTags splits a comma-separated tag string into trimmed, unique tokens.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return sets.Unique(tags)
}
