package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/typstbuilder/internal/build"
	"git.home.luguber.info/inful/typstbuilder/internal/translator"
)

// colorEnabled reports whether w is a terminal that should get colour.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	ok, warn, fail, faint *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		ok:    color.New(color.FgGreen, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		faint: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// printSummary writes one line per document and a closing status line.
func printSummary(w io.Writer, res *build.BuildResult, dryRun bool) {
	p := newPalette(colorEnabled(w))
	for _, d := range res.Documents {
		switch d.Status {
		case build.DocumentStatusFailed:
			_, _ = fmt.Fprintf(w, "%s %s.typ  %v\n", p.fail.Sprint("FAIL"), d.Target, d.Err)
		case build.DocumentStatusWarning:
			warnings := len(translator.Warnings(d.Diagnostics))
			_, _ = fmt.Fprintf(w, "%s %s.typ  %q, %d warnings", p.warn.Sprint("WARN"), d.Target, d.Title, warnings)
			if n := len(d.Unresolved); n > 0 {
				_, _ = fmt.Fprintf(w, ", %d unresolved references", n)
			}
			_, _ = fmt.Fprintln(w)
			for _, diag := range translator.Warnings(d.Diagnostics) {
				_, _ = fmt.Fprintf(w, "     %s\n", p.faint.Sprint(diag.String()))
			}
		default:
			_, _ = fmt.Fprintf(w, "%s %s.typ  %q\n", p.ok.Sprint(" OK "), d.Target, d.Title)
		}
	}

	verb := "written"
	if dryRun {
		verb = "would change"
	}
	status := p.ok.Sprint(string(res.Status))
	switch res.Status {
	case build.BuildStatusPartial:
		status = p.warn.Sprint(string(res.Status))
	case build.BuildStatusFailed:
		status = p.fail.Sprint(string(res.Status))
	}
	_, _ = fmt.Fprintf(w, "%s: %d documents, %d failed, %d of %d files %s in %s %s\n",
		status, len(res.Documents), res.Failed(), res.Changed(), len(res.Outputs), verb,
		res.OutputPath, p.faint.Sprintf("(%s)", res.Duration.Round(time.Millisecond)))
}
