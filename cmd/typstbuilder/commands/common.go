// Package commands implements the typstbuilder command line.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/observability"
)

// Global carries what every command shares: standard streams and the logger.
type Global struct {
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns a Global bound to the process streams.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition and global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"typstbuilder.yaml" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	VersionFlag kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build     BuildCmd     `cmd:"" help:"Build the configured documents"`
	Translate TranslateCmd `cmd:"" help:"Translate one document tree and print the Typst source"`
	Init      InitCmd      `cmd:"" help:"Write an example configuration file"`
	Templates TemplatesCmd `cmd:"" help:"List or eject templates"`
	Watch     WatchCmd     `cmd:"" help:"Rebuild whenever sources, templates or the configuration change"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// AfterApply runs after flag parsing; set up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration. A missing file at the default path
// falls back to the built-in defaults rooted at the working directory.
// The process logger is reconfigured from the logging section unless
// --verbose is set.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, res, err := config.Load(root.Config)
	if err != nil {
		if !errors.HasCategory(err, errors.CategoryNotFound) || filepath.Base(root.Config) != config.DefaultFile {
			return nil, err
		}
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, errors.WrapError(cwdErr, errors.CategoryFileSystem, "resolve working directory").Build()
		}
		if cfg, err = config.Default(cwd); err != nil {
			return nil, err
		}
		g.Logger.Info("No configuration file; using defaults", slog.String("dir", cwd))
		return cfg, nil
	}

	if !root.Verbose {
		g.Logger = observability.NewLogger(g.Stderr, cfg.Logging.Level.SlogLevel(), string(cfg.Logging.Format))
		slog.SetDefault(g.Logger)
	}
	for _, f := range res.EnvFiles {
		g.Logger.Debug("Loaded environment file", slog.String("path", f))
	}
	for _, w := range res.Warnings {
		g.Logger.Warn(w)
	}
	return cfg, nil
}

// parseSetFlags parses repeated key=value flags.
func parseSetFlags(values []string) (map[string]any, error) {
	result := make(map[string]any, len(values))
	for _, entry := range values {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.ValidationError(fmt.Sprintf("invalid --set value: %s", entry)).Build()
		}
		result[key] = strings.TrimSpace(value)
	}
	return result, nil
}
