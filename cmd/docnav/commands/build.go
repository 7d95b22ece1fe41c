package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	derrors "git.home.luguber.info/inful/docnav/internal/docset/errors"
	dberrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/generate"
	"git.home.luguber.info/inful/docnav/internal/git"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output   string `short:"o" help:"Manifest output path (overrides config output)"`
	BaseURL  string `name:"base-url" help:"Base URL prefixed to every emitted link (overrides config base_url)"`
	Wrappers bool   `help:"Emit links in the wrappers namespace"`
	Watch    bool   `short:"w" help:"Regenerate whenever the content tree changes"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	b.applyOverrides(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RunBuild(ctx, g, cfg); err != nil {
		return err
	}
	if !b.Watch {
		return nil
	}
	return runWatch(ctx, g, cfg)
}

func (b *BuildCmd) applyOverrides(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output = b.Output
	}
	if b.BaseURL != "" {
		cfg.BaseURL = b.BaseURL
	}
	if b.Wrappers {
		cfg.Wrappers.Enabled = true
	}
}

// RunBuild performs one generation pass and writes the manifest and, when
// configured, the metrics textfile.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) error {
	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	ws.service.WithRecorder(metrics.NewPrometheusRecorder(reg))

	result, err := ws.service.Run(ctx, ws.set)
	if err != nil {
		return err
	}
	result.Revision = contentRevision(cfg.ContentDir)

	if err := generate.WriteManifest(cfg.Output, result); err != nil {
		return dberrors.FileSystemError("failed to write navigation manifest").
			WithCause(err).
			WithContext("file", cfg.Output).
			Build()
	}
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.File(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}

	for _, w := range result.Warnings {
		_, _ = fmt.Fprintf(g.Out, "warning: %s\n", w)
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote navigation for %d documents to %s\n", len(result.Documents), cfg.Output)
	return nil
}

func runWatch(ctx context.Context, g *Global, cfg *config.Config) error {
	w, err := watch.New(cfg.ContentDir, cfg.Watch.DebounceDuration(), slog.Default())
	if err != nil {
		return dberrors.FileSystemError("failed to watch content directory").
			WithCause(err).
			WithContext("dir", cfg.ContentDir).
			Build()
	}
	defer func() {
		_ = w.Close()
	}()
	w.Ignore(cfg.Output, cfg.Metrics.Textfile)

	slog.Info("Watching for changes", slog.String("dir", cfg.ContentDir))
	return w.Run(ctx, func(ctx context.Context) error {
		return RunBuild(ctx, g, cfg)
	})
}

// contentRevision returns the HEAD commit of the repository holding dir, or
// "" when there is none.
func contentRevision(dir string) string {
	rev, err := git.HeadRevision(dir)
	switch {
	case err == nil:
		return rev
	case errors.Is(err, git.ErrNotRepository), errors.Is(err, git.ErrNoCommits):
		slog.Debug("Content revision unavailable", slog.String("dir", dir), logfields.Error(err))
	default:
		slog.Warn("Failed to resolve content revision", slog.String("dir", dir), logfields.Error(err))
	}
	return ""
}

func classifyLoadError(err error, dir string) error {
	switch {
	case errors.Is(err, derrors.ErrContentRootNotFound):
		return dberrors.WrapError(err, dberrors.CategoryNotFound, "content directory not found").
			WithContext("dir", dir).
			Build()
	case errors.Is(err, derrors.ErrFrontmatterInvalid):
		return dberrors.WrapError(err, dberrors.CategoryMetadata, "invalid document frontmatter").
			WithContext("dir", dir).
			Build()
	}
	return dberrors.WrapError(err, dberrors.CategoryFileSystem, "failed to load documents").
		WithContext("dir", dir).
		Build()
}
