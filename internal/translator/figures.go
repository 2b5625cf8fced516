package translator

import (
	"log/slog"
	"regexp"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

// lengthPattern accepts the docutils length units Typst understands.
var lengthPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d*)?|\.\d+)\s*(pt|mm|cm|in|em|%)\s*$`)

// typstLength converts a docutils length to Typst syntax.
func typstLength(s string) (string, bool) {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}

// noLanguage are highlight languages that mean plain text.
var noLanguage = map[string]bool{"": true, "default": true, "none": true, "text": true}

func (t *Translator) figure(n *doctree.Node, ctx walkContext) {
	c := t.blockCall("figure", n)
	ctx.imageWidth = n.Attr("width")
	t.wrap(n, ctx, c)
}

func (t *Translator) image(n *doctree.Node, ctx walkContext) {
	uri := n.Attr("uri")
	path, ok := t.opts.Images[uri]
	if ok {
		t.images.Add(uri)
	} else {
		t.diagnose(slog.LevelWarn, CodeMissingImage, n.Kind, "image not found, using its URI", uri)
		path = uri
	}

	mode := typst.BlockMarkup
	if inTextFlow(ctx.parent) {
		mode = typst.InlineMarkup
	}
	c := typst.NewCall("image", mode).Arg(quoted(path))
	width := n.Attr("width")
	if width == "" {
		width = ctx.imageWidth
	}
	t.setLength(c, n, "width", width)
	t.setLength(c, n, "height", n.Attr("height"))
	if alt := n.Attr("alt"); alt != "" {
		c.Set("alt", quoted(alt))
	}
	if mode == typst.BlockMarkup {
		c.Labels = t.takeLabels(n.IDs()...)
	}
	t.emit(renderCall(c))
}

func (t *Translator) setLength(c *typst.Call, n *doctree.Node, name, value string) {
	if value == "" {
		return
	}
	length, ok := typstLength(value)
	if !ok {
		t.diagnose(slog.LevelWarn, CodeUnsupportedWidth, n.Kind, "unsupported image "+name+" dropped", value)
		return
	}
	c.Set(name, length)
}

func (t *Translator) literalBlock(n *doctree.Node) {
	c := t.blockCall("raw", n).Set("block", "true")
	lang := n.Attr("language")
	if n.Kind == doctree.KindDoctestBlock {
		lang = "pycon"
	}
	if !noLanguage[lang] {
		c.Set("lang", quoted(lang))
	}
	c.Arg(typst.EscapeRaw(n.AsText()))
	t.emit(renderCall(c))
}

// inTextFlow reports whether children of k are laid out inline.
func inTextFlow(k doctree.Kind) bool {
	switch k {
	case doctree.KindParagraph, doctree.KindLine, doctree.KindCaption, doctree.KindTerm,
		doctree.KindTitle, doctree.KindCompactParagraph:
		return true
	}
	return k.IsInline()
}
