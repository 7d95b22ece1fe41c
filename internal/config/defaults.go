package config

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/meta"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

const (
	defaultContentDir = "."
	defaultOutput     = "./navigation.json"
	defaultWrapFrom   = "components"
	defaultWrapTo     = "wrappers"
	defaultDebounce   = 300 * time.Millisecond
)

// applyDefaults fills every unset field. Navigation conventions default to
// navtree.DefaultOptions and metadata file names to meta.DefaultFileOptions.
func applyDefaults(cfg *Config) error {
	if cfg.ContentDir == "" {
		cfg.ContentDir = defaultContentDir
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if cfg.Wrappers.From == "" {
		cfg.Wrappers.From = defaultWrapFrom
	}
	if cfg.Wrappers.To == "" {
		cfg.Wrappers.To = defaultWrapTo
	}

	nav := &cfg.Navigation
	opts := navtree.DefaultOptions()
	setDefault(&nav.UnsortedSection, opts.UnsortedSection)
	setDefault(&nav.CollapsedTitle, opts.CollapsedTitle)
	setDefault(&nav.PackageRoot, opts.PackageRoot)
	setDefault(&nav.ComponentTag, opts.ComponentTag)

	files := meta.DefaultFileOptions()
	setDefault(&nav.MetaFile, files.MetaFile)
	setDefault(&nav.FallbackFile, files.FallbackFile)
	if nav.FallbackRewrite.From == "" && nav.FallbackRewrite.To == "" {
		nav.FallbackRewrite = RewriteConfig{From: files.RewriteFrom, To: files.RewriteTo}
	}
	if len(nav.Extensions) == 0 {
		nav.Extensions = []string{".md", ".markdown", ".html"}
	}

	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return err
	}
	cfg.Logging.Level = level
	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return err
	}
	cfg.Logging.Format = format

	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
