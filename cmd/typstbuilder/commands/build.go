package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/typstbuilder/internal/build"
	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string   `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	DryRun      bool     `name:"dry-run" help:"Show diffs of changed outputs instead of writing them"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics to this file (overrides metrics.textfile)" type:"path"`
	Tag         []string `short:"t" help:"Additional tags for only directives"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return b.run(ctx, g, cfg)
}

func (b *BuildCmd) run(ctx context.Context, g *Global, cfg *config.Config) error {
	metricsFile := cfg.Metrics.Textfile
	if b.MetricsFile != "" {
		metricsFile = b.MetricsFile
	}
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	var diff io.Writer
	if b.DryRun {
		diff = g.Stdout
	}
	svc := build.NewBuildService().WithRecorder(recorder).WithLogger(g.Logger)
	res, err := svc.Run(ctx, build.BuildRequest{
		Config:    cfg,
		OutputDir: b.Output,
		Options:   build.BuildOptions{DryRun: b.DryRun, Diff: diff, Tags: b.Tag},
	})
	if res != nil {
		printSummary(g.Stderr, res, b.DryRun)
	}

	if prom != nil {
		if werr := prom.WriteTextfile(metricsFile); werr != nil {
			g.Logger.Warn("Failed to write metrics", slog.String("path", metricsFile), slog.String("error", werr.Error()))
		}
	}
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return err
		}
		return errors.WrapError(err, errors.CategoryTranslate, "build failed").Build()
	}
	return nil
}
