package config

import (
	"strings"
	"time"

	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// validateConfig rejects settings that would make a generation pass meaningless.
func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return dberrors.ValidationError("content_dir must not be empty").Build()
	}
	if cfg.Wrappers.Enabled && (strings.TrimSpace(cfg.Wrappers.From) == "" || strings.TrimSpace(cfg.Wrappers.To) == "") {
		return dberrors.ValidationError("wrappers.from and wrappers.to must not be empty when wrappers are enabled").
			WithContext("from", cfg.Wrappers.From).
			WithContext("to", cfg.Wrappers.To).
			Build()
	}
	for _, ext := range cfg.Navigation.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return dberrors.ValidationError("navigation.extensions entries must start with a dot").
				WithContext("extension", ext).
				Build()
		}
	}
	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return dberrors.ValidationError("watch.debounce must be a positive duration").
			WithContext("debounce", cfg.Watch.Debounce).
			Build()
	}
	return nil
}
