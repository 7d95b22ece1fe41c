package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Result is the outcome of one generation pass.
type Result struct {
	PassID      string        `json:"pass_id"`
	Revision    string        `json:"revision,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"-"`
	Documents   []Entry       `json:"documents"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// Entry is the navigation of one rendered document.
type Entry struct {
	Path           string `json:"path"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	Fingerprint    string `json:"fingerprint,omitempty"`
	Breadcrumb     string `json:"breadcrumb"`
	Menu           string `json:"menu"`
	Prev           string `json:"prev,omitempty"`
	Next           string `json:"next,omitempty"`
	IsIndex        bool   `json:"is_index,omitempty"`
	Package        string `json:"package,omitempty"`
	Component      string `json:"component,omitempty"`
	Subsection     string `json:"subsection,omitempty"`
	NeedsCanonical bool   `json:"needs_canonical,omitempty"`
	CanonicalURL   string `json:"canonical_url,omitempty"`
}

// WriteManifest writes r as indented JSON to path, creating parent directories.
func WriteManifest(path string, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create manifest directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &r, nil
}
