package typst

import (
	"fmt"
	"strconv"
	"strings"
)

// Render returns the Typst source of e.
func Render(e Element) string {
	switch e := e.(type) {
	case *Fragment:
		return strings.Join(e.Parts, "")
	case *Call:
		return renderCall(e)
	case *Arg:
		return renderArg(e)
	case *Table:
		return renderTable(e)
	case *Math:
		return renderMath(e)
	default:
		panic(fmt.Sprintf("typst: unknown element %T", e))
	}
}

// Content wraps already rendered markup in a content block.
func Content(markup string) string {
	return "[" + markup + "]"
}

func renderCall(c *Call) string {
	var b strings.Builder
	wrapped := !c.Mode.markup() && len(c.Labels) > 0
	if wrapped {
		b.WriteByte('[')
	}
	if c.Mode.markup() || wrapped {
		b.WriteByte('#')
	}
	b.WriteString(c.Name)

	args := c.arguments()
	body := renderBody(c.Body)
	hasBody := body != "" || c.ForceBody
	if len(args) > 0 || !hasBody {
		b.WriteByte('(')
		b.WriteString(strings.Join(args, ", "))
		b.WriteByte(')')
	}
	if hasBody {
		b.WriteString(Content(body))
	}
	b.WriteString(renderLabels(c.Labels))
	if wrapped {
		b.WriteByte(']')
	}
	if c.Mode.block() {
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Call) arguments() []string {
	args := make([]string, 0, len(c.Named)+len(c.Positional))
	for _, arg := range c.Named {
		if arg.Value == nil {
			continue
		}
		args = append(args, arg.Name+": "+*arg.Value)
	}
	return append(args, c.Positional...)
}

func renderArg(a *Arg) string {
	body := strings.TrimSpace(strings.Join(a.Body, ""))
	if body != "" {
		body += renderLabels(a.Labels)
	}
	return Content(renderBody([]string{body}))
}

func renderTable(t *Table) string {
	table := NewCall("table", InlineMarkup)
	table.Set("columns", t.columns())
	if len(t.Header) > 0 {
		header := NewCall("table.header", InlineCode)
		header.Positional = t.Header
		table.Arg(renderCall(header))
	}
	table.Positional = append(table.Positional, t.Cells...)

	figure := t.Call
	figure.Body = []string{renderCall(table)}
	return renderCall(&figure)
}

func (t *Table) columns() string {
	if t.WidthsGiven && len(t.Widths) > 0 {
		fractions := make([]string, len(t.Widths))
		for i, w := range t.Widths {
			fractions[i] = strconv.Itoa(w) + "fr"
		}
		if len(fractions) == 1 {
			return "(" + fractions[0] + ",)"
		}
		return "(" + strings.Join(fractions, ", ") + ")"
	}
	n := t.Cols
	if n == 0 {
		n = len(t.Widths)
	}
	if n == 0 {
		n = 1
	}
	return strconv.Itoa(n)
}

func renderMath(m *Math) string {
	name := "mi"
	if m.Block {
		name = "mitex"
	}
	s := "#" + name + "(" + EscapeRaw(m.Source) + ")" + renderLabels(m.Labels)
	if m.Block {
		s += "\n"
	}
	return s
}

func renderLabels(labels []string) string {
	var b strings.Builder
	for _, l := range labels {
		b.WriteString(" #label(")
		b.WriteString(EscapeString(l))
		b.WriteByte(')')
	}
	return b.String()
}

// renderBody joins and trims body fragments. Multi-line bodies are moved onto
// their own lines and indented one level.
func renderBody(parts []string) string {
	body := strings.TrimSpace(strings.Join(parts, ""))
	if !strings.Contains(body, "\n") {
		return body
	}
	return "\n" + indent(body, "  ") + "\n"
}

// indent prefixes every line that is not blank.
func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	b.Grow(len(s) + len(lines)*len(prefix))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}
