package translator

import (
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/labels"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

func renderCall(c *typst.Call) string { return typst.Render(c) }

func withBody(c *typst.Call, body string) *typst.Call {
	c.Append(body)
	return c
}

func quoted(s string) string { return typst.EscapeString(s) }

func rawInline(text string) string {
	return renderCall(inlineCall("raw").Arg(typst.EscapeRaw(text)))
}

func renderMath(block bool, source string, lbls []string) string {
	return typst.Render(&typst.Math{Block: block, Source: source, Labels: lbls})
}

func (t *Translator) document(n *doctree.Node, ctx walkContext) {
	docname := t.opts.StartDoc
	if docname == "" {
		docname = n.Attr("docname")
	}
	t.openFile(docname)
	t.pend(n.IDs()...)
	t.children(n, ctx)
	t.closeFile()
}

// startOfFile marks a document inlined into the tree by the host.
func (t *Translator) startOfFile(n *doctree.Node, ctx walkContext) {
	t.openFile(n.Attr("docname"))
	t.children(n, ctx)
	t.closeFile()
}

func (t *Translator) openFile(docname string) {
	t.labels.PushFile(docname)
	t.pend(labels.DocumentLabel(docname))
}

func (t *Translator) closeFile() {
	if err := t.labels.PopFile(); err != nil {
		t.fail(ErrUnbalancedStack.WithContext("cause", err.Error()))
	}
}

func (t *Translator) section(n *doctree.Node, ctx walkContext) {
	// The section holding the document title does not count as a level.
	holdsTitle := t.titlePending && len(n.Children) > 0 && n.Children[0].Kind == doctree.KindTitle
	if !holdsTitle {
		t.sectionDepth++
	}
	t.pend(n.IDs()...)
	t.children(n, ctx)
	if t.sectionDepth > 0 {
		t.sectionDepth--
	}
}

func (t *Translator) titleNode(n *doctree.Node, ctx walkContext) {
	switch ctx.parent {
	case doctree.KindDocument, doctree.KindSection:
		if t.titlePending {
			t.titlePending = false
			t.title = strings.TrimSpace(n.AsText())
			return
		}
		c := t.blockCall("heading", n).Set("level", strconv.Itoa(max(t.sectionDepth, 1)))
		t.wrap(n, ctx, c)
	case doctree.KindTable:
		t.setOnTop("caption", t.contentArg(n, ctx))
	case doctree.KindAdmonition, doctree.KindTopic, doctree.KindSidebar:
		t.setOnTop("title", t.contentArg(n, ctx))
	default:
		t.wrap(n, ctx, inlineCall("strong"))
	}
}

// subheading renders subtitles and rubrics one level below the current
// section. Rubrics are not numbered.
func (t *Translator) subheading(n *doctree.Node, ctx walkContext, rubric bool) {
	c := t.blockCall("heading", n).
		Set("level", strconv.Itoa(t.sectionDepth+1)).
		Set("outlined", "false")
	if rubric {
		c.Set("numbering", "none")
	}
	t.wrap(n, ctx, c)
}

// contentArg renders n's children as a bracketed content argument.
func (t *Translator) contentArg(n *doctree.Node, ctx walkContext) string {
	return t.capture(&typst.Arg{}, func() { t.children(n, ctx) })
}

// namedContent turns captions and attributions into a named argument of
// their parent construct.
func (t *Translator) namedContent(n *doctree.Node, ctx walkContext) {
	name := "caption"
	if n.Kind == doctree.KindAttribution {
		name = "attribution"
	}
	t.setOnTop(name, t.contentArg(n, ctx))
}

// ignoredClasses are added by docutils and Sphinx without carrying meaning
// for the output.
var ignoredClasses = map[string]bool{
	"container": true,
	"docutils":  true,
	"simple":    true,
	"compound":  true,
}

func (t *Translator) container(n *doctree.Node, ctx walkContext) {
	if n.HasClass("literal-block-wrapper") {
		t.wrap(n, ctx, t.blockCall("figure", n).Set("kind", "raw"))
		return
	}
	var classes []string
	for _, c := range n.Classes() {
		if !ignoredClasses[c] {
			classes = append(classes, c)
		}
	}
	if len(classes) == 0 {
		t.pend(n.IDs()...)
		t.children(n, ctx)
		return
	}
	t.wrap(n, ctx, t.blockCall("container", n).Set("classes", typst.StringList(classes)))
}

func (t *Translator) lineBlock(n *doctree.Node, ctx walkContext) {
	if ctx.parent == doctree.KindLineBlock {
		t.wrap(n, ctx, inlineCall("pad").Set("left", "1.5em"))
		return
	}
	t.wrap(n, ctx, t.blockCall("block", n))
}

func (t *Translator) centered(n *doctree.Node, ctx walkContext) {
	align := t.blockCall("align", n).Arg("center")
	out := t.capture(align, func() { t.wrap(n, ctx, inlineCall("strong")) })
	t.emit(out)
}

func (t *Translator) hlist(n *doctree.Node, ctx walkContext) {
	cols := 0
	for _, c := range n.Children {
		if c.Kind == doctree.KindHListCol {
			cols++
		}
	}
	t.wrap(n, ctx, t.blockCall("columns", n).Arg(strconv.Itoa(max(cols, 1))))
}

func (t *Translator) productionList(n *doctree.Node) {
	width := 0
	for _, p := range n.Children {
		width = max(width, len(p.Attr("tokenname")))
	}
	var lines []string
	for _, p := range n.Children {
		if p.Kind != doctree.KindProduction {
			continue
		}
		name := p.Attr("tokenname")
		if name == "" {
			lines = append(lines, fmt.Sprintf("%*s   %s", width, "", p.AsText()))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-*s ::= %s", width, name, p.AsText()))
	}
	c := t.blockCall("raw", n).Set("block", "true").Arg(typst.EscapeRaw(strings.Join(lines, "\n")))
	t.emit(renderCall(c))
}

func (t *Translator) versionModified(n *doctree.Node, ctx walkContext) {
	c := t.blockCall("versionmodified", n).
		Set("kind", quoted(n.Attr("type"))).
		Set("version", quoted(n.Attr("version")))
	t.wrap(n, ctx, c)
}
