package build

import (
	"context"
	"io"
	"time"

	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/translator"
)

// BuildService is the canonical interface for executing builds.
type BuildService interface {
	// Run builds every configured document and applies the outputs.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs of one build.
type BuildRequest struct {
	// Config is the loaded configuration.
	Config *config.Config

	// OutputDir overrides Config.Output.Directory when set.
	OutputDir string

	// Options provides optional build behaviour modifiers.
	Options BuildOptions
}

// BuildOptions provides optional configuration for build behaviour.
type BuildOptions struct {
	// DryRun computes the outputs without writing them.
	DryRun bool

	// Diff receives unified diffs of changed text outputs during a dry run.
	Diff io.Writer

	// Tags are added to Config.Tags for only expressions.
	Tags []string
}

// BuildResult contains the outcome of a build.
type BuildResult struct {
	Status BuildStatus

	// RunID correlates the log records of this build.
	RunID string

	// OutputPath is the output directory that was written.
	OutputPath string

	// Template is the name of the template in use.
	Template string

	Documents []DocumentResult

	// Outputs reports what the executor did per output path.
	Outputs []OutputResult

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Failed returns the number of documents that were not produced.
func (r *BuildResult) Failed() int {
	n := 0
	for _, d := range r.Documents {
		if d.Status == DocumentStatusFailed {
			n++
		}
	}
	return n
}

// Changed returns the number of outputs written or, in a dry run, that
// would be written.
func (r *BuildResult) Changed() int {
	n := 0
	for _, o := range r.Outputs {
		if o.Changed {
			n++
		}
	}
	return n
}

// DocumentResult is the outcome of one configured document.
type DocumentResult struct {
	StartDoc string
	Target   string
	Status   DocumentStatus
	Title    string

	// Diagnostics are the translator's findings, in walk order.
	Diagnostics []translator.Diagnostic

	// Unresolved lists internal link keys with no label in the document.
	Unresolved []string

	// Err is set when Status is DocumentStatusFailed.
	Err error
}

// BuildStatus represents the outcome of a build.
type BuildStatus string

const (
	// BuildStatusSuccess indicates every document was produced.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusPartial indicates some documents failed.
	BuildStatusPartial BuildStatus = "partial"

	// BuildStatusFailed indicates no document was produced.
	BuildStatusFailed BuildStatus = "failed"
)

// IsSuccess reports whether every document was produced.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}

// DocumentStatus represents the outcome of one document.
type DocumentStatus string

const (
	DocumentStatusSuccess DocumentStatus = "success"
	// DocumentStatusWarning means the document was produced with warnings.
	DocumentStatusWarning DocumentStatus = "warning"
	DocumentStatusFailed  DocumentStatus = "failed"
)
