// Package config loads the docnav configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/meta"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// Config represents the application configuration.
type Config struct {
	ContentDir string           `yaml:"content_dir"`
	BaseURL    string           `yaml:"base_url"`
	Output     string           `yaml:"output"`
	Wrappers   WrappersConfig   `yaml:"wrappers"`
	Navigation NavigationConfig `yaml:"navigation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Watch      WatchConfig      `yaml:"watch"`
}

// WrappersConfig controls the alternate URL namespace used by wrapper builds.
type WrappersConfig struct {
	Enabled bool   `yaml:"enabled"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
}

// NavigationConfig holds the site conventions of the navigation tree and the
// locations of directory metadata.
type NavigationConfig struct {
	UnsortedSection string        `yaml:"unsorted_section"`
	CollapsedTitle  string        `yaml:"collapsed_title"`
	PackageRoot     string        `yaml:"package_root"`
	ComponentTag    string        `yaml:"component_tag"`
	MetaFile        string        `yaml:"meta_file"`
	FallbackFile    string        `yaml:"fallback_file"`
	FallbackRewrite RewriteConfig `yaml:"fallback_rewrite"`
	Extensions      []string      `yaml:"extensions,omitempty"`
}

// RewriteConfig is a single substring substitution.
type RewriteConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig represents metrics configuration.
type MetricsConfig struct {
	// Textfile is written in Prometheus text exposition format after each pass.
	Textfile string `yaml:"textfile,omitempty"`
}

// WatchConfig represents watch mode configuration.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration parses Debounce, falling back to the default on error.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}

// Load reads the configuration file at configPath. A missing file yields the
// defaults; environment variables from .env files are loaded first and
// ${VAR} references in the file are expanded.
func Load(configPath string) (*Config, error) {
	if loaded, err := loadEnvFiles(); err != nil {
		slog.Warn("Failed to load environment file", logfields.Error(err))
	} else {
		for _, f := range loaded {
			slog.Debug("Loaded environment variables", logfields.File(f))
		}
	}

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, dberrors.WrapError(err, dberrors.CategoryConfig, "failed to parse config file").
				WithContext("file", configPath).
				Build()
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No config file, using defaults", logfields.File(configPath))
	default:
		return nil, dberrors.WrapError(err, dberrors.CategoryConfig, "failed to read config file").
			WithContext("file", configPath).
			Build()
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, dberrors.WrapError(err, dberrors.CategoryConfig, "failed to apply defaults").
			WithContext("file", configPath).
			Build()
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return dberrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("file", configPath).
			Build()
	}

	example := Config{}
	if err := applyDefaults(&example); err != nil {
		return err
	}
	example.BaseURL = "${DOCNAV_BASE_URL}"
	example.Metrics.Textfile = "./docnav.prom"

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return dberrors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("file", configPath).
			Build()
	}
	return nil
}

// TreeOptions returns the navigation tree conventions.
func (c *Config) TreeOptions() navtree.Options {
	return navtree.Options{
		UnsortedSection: c.Navigation.UnsortedSection,
		CollapsedTitle:  c.Navigation.CollapsedTitle,
		PackageRoot:     c.Navigation.PackageRoot,
		ComponentTag:    c.Navigation.ComponentTag,
	}
}

// MetaOptions returns the directory metadata file options.
func (c *Config) MetaOptions() meta.FileOptions {
	return meta.FileOptions{
		MetaFile:     c.Navigation.MetaFile,
		FallbackFile: c.Navigation.FallbackFile,
		RewriteFrom:  c.Navigation.FallbackRewrite.From,
		RewriteTo:    c.Navigation.FallbackRewrite.To,
	}
}
