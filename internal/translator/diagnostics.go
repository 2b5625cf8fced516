package translator

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
)

// Diagnostic codes.
const (
	CodeMissingImage        = "missing-image"
	CodeUnsupportedWidth    = "unsupported-width"
	CodeUnsupportedNode     = "unsupported-node"
	CodeUnresolvedReference = "unresolved-reference"
	CodeBadOnlyExpression   = "bad-only-expression"
	CodePendingLabels       = "pending-labels"
)

// Diagnostic is a non-fatal problem found during translation. The output is
// still produced; Subject names the offending value.
type Diagnostic struct {
	Level    slog.Level
	Code     string
	Kind     doctree.Kind
	Document string
	Message  string
	Subject  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s] %s: %q", d.Level, d.Document, d.Code, d.Message, d.Subject)
}

// Warnings returns the diagnostics at warning level or above.
func Warnings(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Level >= slog.LevelWarn {
			out = append(out, d)
		}
	}
	return out
}
