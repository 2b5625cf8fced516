package build

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

// UnifiedDiff renders a line diff of before and after in the unified format.
// Long runs of unchanged lines are cut down to diffContext lines on either
// side of a change. It returns "" when the inputs are equal.
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n+++ b/%s\n", name, name)
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writePrefixed(&out, "+", text)
		case diffmatchpatch.DiffDelete:
			writePrefixed(&out, "-", text)
		case diffmatchpatch.DiffEqual:
			first, last := i == 0, i == len(diffs)-1
			switch {
			case first && len(text) > diffContext:
				text = text[len(text)-diffContext:]
				out.WriteString("@@\n")
			case last && len(text) > diffContext:
				writePrefixed(&out, " ", text[:diffContext])
				continue
			case !first && !last && len(text) > 2*diffContext:
				writePrefixed(&out, " ", text[:diffContext])
				out.WriteString("@@\n")
				text = text[len(text)-diffContext:]
			}
			writePrefixed(&out, " ", text)
		}
	}
	return out.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func writePrefixed(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteByte('\n')
	}
}
