package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docset"
	"git.home.luguber.info/inful/docnav/internal/generate"
	"git.home.luguber.info/inful/docnav/internal/meta"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// Global carries state shared by every subcommand.
type Global struct {
	// Out receives command output; logs go to stderr.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Generate the navigation manifest for the content tree"`
	Tree  TreeCmd  `cmd:"" help:"Print the sorted navigation tree"`
	Nav   NavCmd   `cmd:"" help:"Render breadcrumb and section menu of one document"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, config.LogFormatText))
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration and reinstalls the default logger with
// its level and format. --verbose always wins over the configured level.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level.SlogLevel()
	if root.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, cfg.Logging.Format))
	return cfg, nil
}

// workspace is the loaded content tree and the services configured for it.
type workspace struct {
	cfg     *config.Config
	set     *docset.Set
	service *generate.Service
}

func openWorkspace(cfg *config.Config) (*workspace, error) {
	logger := slog.Default()
	set, err := docset.Load(cfg.ContentDir, docset.LoadOptions{
		Extensions: cfg.Navigation.Extensions,
		Logger:     logger,
	})
	if err != nil {
		return nil, classifyLoadError(err, cfg.ContentDir)
	}

	metaOpts := cfg.MetaOptions()
	metaOpts.Logger = logger
	provider, err := meta.NewFileProvider(cfg.ContentDir, metaOpts)
	if err != nil {
		return nil, err
	}

	service := generate.NewService(provider, generate.Options{
		BaseURL:  cfg.BaseURL,
		Wrappers: cfg.Wrappers.Enabled,
		Tree:     cfg.TreeOptions(),
		Render:   render.Options{WrapperFrom: cfg.Wrappers.From, WrapperTo: cfg.Wrappers.To},
	}).WithLogger(logger)
	return &workspace{cfg: cfg, set: set, service: service}, nil
}
