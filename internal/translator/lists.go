package translator

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

var enumPatterns = map[string]string{
	"arabic":     "1",
	"loweralpha": "a",
	"upperalpha": "A",
	"lowerroman": "i",
	"upperroman": "I",
}

func (t *Translator) enumeratedList(n *doctree.Node, ctx walkContext) {
	c := t.blockCall("enum", n)
	if pattern, ok := enumPatterns[n.Attr("enumtype")]; ok {
		suffix := "."
		if n.HasAttr("suffix") {
			suffix = n.Attr("suffix")
		}
		c.Set("numbering", quoted(n.Attr("prefix")+pattern+suffix))
	}
	if n.HasAttr("start") {
		c.Set("start", strconv.Itoa(n.Int("start", 1)))
	}
	t.wrap(n, ctx, c)
}

// termItem renders a definition list item or a field as terms.item(term,
// description). Several terms of one item share the term argument.
func (t *Translator) termItem(n *doctree.Node, ctx walkContext) {
	inner := ctx.enter(n)
	isHead := func(c *doctree.Node) bool {
		return c.Is(doctree.KindTerm, doctree.KindClassifier, doctree.KindFieldName)
	}

	term := t.capture(&typst.Arg{}, func() {
		seen := false
		for _, c := range n.Children {
			if !isHead(c) {
				continue
			}
			if c.Kind != doctree.KindClassifier {
				if seen {
					t.emit("#linebreak()")
				}
				seen = true
			}
			t.visit(c, inner)
		}
	})
	description := t.capture(&typst.Arg{}, func() {
		for _, c := range n.Children {
			if !isHead(c) {
				t.visit(c, inner)
			}
		}
	})
	if t.err != nil {
		return
	}
	item := typst.NewCall("terms.item", typst.InlineCode).Arg(term).Arg(description)
	t.addToTop(renderCall(item))
}

// term translates a term; its ids label the term argument being built.
// An empty term renders no label, so its ids stay unregistered.
func (t *Translator) term(n *doctree.Node, ctx walkContext) {
	t.children(n, ctx)
	arg, ok := t.top().(*typst.Arg)
	if !ok || strings.TrimSpace(strings.Join(arg.Body, "")) == "" {
		return
	}
	arg.Labels = append(arg.Labels, t.labels.Register(n.IDs())...)
}

func (t *Translator) optionListItem(n *doctree.Node, ctx walkContext) {
	inner := ctx.enter(n)
	var group, description string
	for _, c := range n.Children {
		switch c.Kind {
		case doctree.KindOptionGroup:
			group = t.capture(&typst.Arg{}, func() { t.visit(c, inner) })
		case doctree.KindDescription:
			description = t.capture(&typst.Arg{}, func() { t.visit(c, inner) })
		}
	}
	if t.err != nil {
		return
	}
	if group == "" {
		group = typst.Content("")
	}
	if description == "" {
		description = typst.Content("")
	}
	t.addToTop(group)
	t.addToTop(description)
}

func (t *Translator) optionArgument(n *doctree.Node) {
	delimiter := " "
	if n.HasAttr("delimiter") {
		delimiter = n.Attr("delimiter")
	}
	t.emitText(delimiter)
	t.emit(renderCall(withBody(inlineCall("emph"), rawInline(n.AsText()))))
}

// joined translates n's children separated by sep.
func (t *Translator) joined(n *doctree.Node, ctx walkContext, sep string) {
	inner := ctx.enter(n)
	for i, c := range n.Children {
		if i > 0 {
			t.emitText(sep)
		}
		t.visit(c, inner)
	}
}

func (t *Translator) delimited(n *doctree.Node, ctx walkContext, opening, closing string) {
	t.emitText(opening)
	t.joined(n, ctx, ", ")
	t.emitText(closing)
}
