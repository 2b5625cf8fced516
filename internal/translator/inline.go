package translator

import (
	"log/slog"
	"slices"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

func (t *Translator) abbreviation(n *doctree.Node, ctx walkContext) {
	t.children(n, ctx)
	if exp := n.Attr("explanation"); exp != "" {
		t.emitText(" (" + exp + ")")
	}
}

func (t *Translator) inline(n *doctree.Node, ctx walkContext) {
	classes := n.Classes()
	if len(classes) == 0 {
		t.children(n, ctx)
		return
	}
	t.wrap(n, ctx, inlineCall("inline-with-classes").Set("classes", typst.StringList(classes)))
}

func (t *Translator) reference(n *doctree.Node, ctx walkContext) {
	refuri := n.Attr("refuri")
	switch {
	case n.Bool("internal") && refuri != "":
		t.internalLink(n, ctx, strings.TrimPrefix(refuri, "#"))
	case n.HasAttr("refid"):
		t.internalLink(n, ctx, n.Attr("refid"))
	case refuri != "":
		t.wrap(n, ctx, inlineCall("link").Arg(quoted(refuri)))
	default:
		t.children(n, ctx)
	}
}

// internalLink renders a link that the output resolves through the label
// alias table.
func (t *Translator) internalLink(n *doctree.Node, ctx walkContext, target string) {
	key := t.labels.Ref(target)
	t.refs.Add(key)
	t.wrap(n, ctx, inlineCall("internal-link").Arg(quoted(key)))
}

func (t *Translator) target(n *doctree.Node, ctx walkContext) {
	if !n.HasAttr("refuri") && !n.HasAttr("refid") {
		t.pend(n.IDs()...)
	}
	t.children(n, ctx)
}

func (t *Translator) footnote(n *doctree.Node, ctx walkContext) {
	ids := n.IDs()
	if len(ids) == 0 {
		t.children(n, ctx)
		return
	}
	key := t.labels.Ref(ids[0])
	t.footnotes.Add(key)
	c := typst.NewCall("footnote-def", typst.BlockMarkup).Arg(quoted(key))
	c.ForceBody = true
	// Footnote bodies are shown wherever they are referenced, so labels
	// waiting for the next block must not end up inside them.
	pending := t.pending
	t.pending = nil
	t.wrap(n, ctx, c)
	t.pending = pending
}

func (t *Translator) footnoteReference(n *doctree.Node) {
	key := t.labels.Ref(n.Attr("refid"))
	t.emit(renderCall(inlineCall("footnote-ref").Arg(quoted(key))))
}

func (t *Translator) citation(n *doctree.Node, ctx walkContext) {
	c := t.blockCall("citation-entry", n)
	if label := n.FirstChild(doctree.KindLabel); label != nil {
		c.Set("label", typst.Content(typst.EscapeMarkup(label.AsText())))
	}
	t.wrap(n, ctx, c)
}

func (t *Translator) downloadReference(n *doctree.Node, ctx walkContext) {
	if filename := n.Attr("filename"); filename != "" && t.attached.Add(filename) {
		t.emit(renderCall(inlineCall("attach-file").Arg(quoted("downloads/" + filename))))
		t.downloads = append(t.downloads, Download{Source: n.Attr("reftarget"), Filename: filename})
	}
	t.wrap(n, ctx, inlineCall("emph"))
}

// raw passes content for this output format through unchanged.
func (t *Translator) raw(n *doctree.Node) {
	if slices.Contains(n.List("format"), "typst") {
		t.emit(n.AsText())
	}
}

func (t *Translator) only(n *doctree.Node, ctx walkContext) {
	expression := n.Attr("expr")
	ok, err := evalOnly(expression, t.tags)
	if err != nil {
		t.diagnose(slog.LevelWarn, CodeBadOnlyExpression, n.Kind, "cannot evaluate only expression: "+err.Error(), expression)
		return
	}
	if ok {
		t.children(n, ctx)
	}
}
