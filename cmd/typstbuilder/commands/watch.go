package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildCmd `embed:""`
	Debounce time.Duration `help:"Quiet period after the last change before rebuilding" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A failed initial build still leaves the watcher running.
	if err := w.run(ctx, g, cfg); err != nil {
		g.Logger.Error("Build failed", slog.String("error", err.Error()))
	}

	watcher := &watch.Watcher{
		Roots:    watchRoots(cfg, root.Config),
		Exclude:  []string{w.outputDir(cfg)},
		Debounce: w.Debounce,
		Logger:   g.Logger,
		Rebuild: func(ctx context.Context) error {
			next, err := loadConfig(g, root)
			if err != nil {
				return err
			}
			return w.run(ctx, g, next)
		},
	}
	g.Logger.Info("Watching for changes", slog.Any("roots", watcher.Roots))
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (w *WatchCmd) outputDir(cfg *config.Config) string {
	if w.Output != "" {
		return w.Output
	}
	return cfg.Output.Directory
}

// watchRoots lists the source directory, template directories and the
// configuration file when it exists.
func watchRoots(cfg *config.Config, configPath string) []string {
	roots := []string{cfg.Source.Directory}
	roots = append(roots, cfg.Template.Paths...)
	if _, err := os.Stat(configPath); err == nil {
		roots = append(roots, configPath)
	}
	return roots
}
