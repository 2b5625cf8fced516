package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/config"
)

// PreflightContext contains the data preflight rules check.
type PreflightContext struct {
	Config *config.Config
	Logger *slog.Logger
}

// Result indicates whether a rule passed and why not.
type Result struct {
	Passed bool
	Reason string
}

// Success returns a passing result.
func Success() Result {
	return Result{Passed: true}
}

// Failure returns a failing result with a reason.
func Failure(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// PreflightRule is one check run before any document is built.
type PreflightRule interface {
	// Name returns a short identifier of the rule for logging.
	Name() string
	Check(ctx context.Context, pctx PreflightContext) Result
}

// RuleChain runs rules in order, stopping at the first failure.
type RuleChain struct {
	rules []PreflightRule
}

// NewRuleChain creates a chain of rules.
func NewRuleChain(rules ...PreflightRule) *RuleChain {
	return &RuleChain{rules: rules}
}

// DefaultPreflight returns the checks every build runs.
func DefaultPreflight(outputDir string) *RuleChain {
	return NewRuleChain(SourceDirectoryRule{}, OutputDirectoryRule{OutputDir: outputDir})
}

// Check runs the chain. The failing rule's name is returned with its result.
func (rc *RuleChain) Check(ctx context.Context, pctx PreflightContext) (string, Result) {
	for _, rule := range rc.rules {
		result := rule.Check(ctx, pctx)
		if !result.Passed {
			if pctx.Logger != nil {
				pctx.Logger.Warn("Preflight check failed", "rule", rule.Name(), "reason", result.Reason)
			}
			return rule.Name(), result
		}
	}
	return "", Success()
}

// SourceDirectoryRule requires the source directory to exist.
type SourceDirectoryRule struct{}

func (SourceDirectoryRule) Name() string { return "source_directory" }

func (SourceDirectoryRule) Check(_ context.Context, pctx PreflightContext) Result {
	dir := pctx.Config.Source.Directory
	fi, err := os.Stat(dir)
	if err != nil {
		return Failure("source directory %s: %v", dir, err)
	}
	if !fi.IsDir() {
		return Failure("source path %s is not a directory", dir)
	}
	return Success()
}

// OutputDirectoryRule keeps the output away from the sources: the output
// may not be the source directory, and a cleaning build may not contain it.
type OutputDirectoryRule struct {
	// OutputDir is the effective output directory of the build.
	OutputDir string
}

func (OutputDirectoryRule) Name() string { return "output_directory" }

func (r OutputDirectoryRule) Check(_ context.Context, pctx PreflightContext) Result {
	out, err := filepath.Abs(r.OutputDir)
	if err != nil {
		return Failure("output directory %s: %v", r.OutputDir, err)
	}
	src, err := filepath.Abs(pctx.Config.Source.Directory)
	if err != nil {
		return Failure("source directory %s: %v", pctx.Config.Source.Directory, err)
	}
	if out == src {
		return Failure("output directory %s is the source directory", out)
	}
	if rel, err := filepath.Rel(out, src); pctx.Config.Output.Clean && err == nil && !strings.HasPrefix(rel, "..") {
		return Failure("output.clean would remove the source directory %s", src)
	}
	return Success()
}
