package translator

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func document(children ...*doctree.Node) *doctree.Node {
	return doctree.New(doctree.KindDocument, children...).Set("docname", "index")
}

func para(text string) *doctree.Node {
	return doctree.New(doctree.KindParagraph, doctree.Text(text))
}

func translate(t *testing.T, doc *doctree.Node, opts Options) *Result {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietOptions().Logger
	}
	res, err := New(opts).Translate(doc)
	require.NoError(t, err)
	return res
}

func codes(diags []Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestParagraph(t *testing.T) {
	res := translate(t, document(para("Hello")), Options{})

	require.Equal(t, "#par[#\"Hello\"] #label(\"%index\")\n", res.Body)
	require.Equal(t, map[string]string{"%index": "%index"}, res.LabelAliases)
	require.Empty(t, res.Title)
	require.Equal(t, 1, res.NodeCounts[doctree.KindParagraph])
	require.Equal(t, 1, res.NodeCounts[doctree.KindText])
}

func TestSectionsAndTitle(t *testing.T) {
	inner := doctree.New(doctree.KindSection,
		doctree.New(doctree.KindTitle, doctree.Text("Install")),
		para("b"),
	).SetList("ids", "install")
	outer := doctree.New(doctree.KindSection,
		doctree.New(doctree.KindTitle, doctree.Text("Guide")),
		para("a"),
		inner,
	).SetList("ids", "guide")

	res := translate(t, document(outer), Options{})

	require.Equal(t, "Guide", res.Title)
	require.Equal(t,
		"#par[#\"a\"] #label(\"%index\")\n"+
			"#heading(level: 1)[#\"Install\"] #label(\"%index#install\")\n"+
			"#par[#\"b\"]\n",
		res.Body)
	require.Equal(t, "%index", res.LabelAliases["%index#guide"])
	require.Equal(t, "%index#install", res.LabelAliases["%index#install"])
}

func TestNestedSectionLevels(t *testing.T) {
	deep := doctree.New(doctree.KindSection, doctree.New(doctree.KindTitle, doctree.Text("C")))
	mid := doctree.New(doctree.KindSection, doctree.New(doctree.KindTitle, doctree.Text("B")), deep)
	top := doctree.New(doctree.KindSection, doctree.New(doctree.KindTitle, doctree.Text("A")), mid)
	after := doctree.New(doctree.KindSection, doctree.New(doctree.KindTitle, doctree.Text("D")))

	res := translate(t, document(top, after), Options{})

	require.Equal(t, "A", res.Title)
	require.Contains(t, res.Body, "#heading(level: 1)[#\"B\"]")
	require.Contains(t, res.Body, "#heading(level: 2)[#\"C\"]")
	require.Contains(t, res.Body, "#heading(level: 1)[#\"D\"]")
}

func TestStartOfFileQualifiesIDs(t *testing.T) {
	main := doctree.New(doctree.KindSection,
		doctree.New(doctree.KindTitle, doctree.Text("Main")),
		para("a"),
	).SetList("ids", "top")
	appendix := doctree.New(doctree.KindStartOfFile,
		doctree.New(doctree.KindSection,
			doctree.New(doctree.KindTitle, doctree.Text("App")),
			para("b"),
		).SetList("ids", "top"),
	).Set("docname", "appendix")

	res := translate(t, document(main, appendix), Options{})

	require.Contains(t, res.Body, "#heading(level: 1)[#\"App\"] #label(\"%appendix\")\n")
	require.Equal(t, "%index", res.LabelAliases["%index#top"])
	require.Equal(t, "%appendix", res.LabelAliases["%appendix#top"])
	require.Equal(t, "%appendix", res.LabelAliases["%appendix"])
}

func TestTargetsLabelNextBlock(t *testing.T) {
	target := doctree.New(doctree.KindTarget).SetList("ids", "anchor")
	res := translate(t, document(para("a"), target, para("b")), Options{})

	require.Contains(t, res.Body, "#par[#\"b\"] #label(\"%index#anchor\")\n")
	require.Equal(t, "%index#anchor", res.LabelAliases["%index#anchor"])
}

func TestTrailingTargetIsDropped(t *testing.T) {
	target := doctree.New(doctree.KindTarget).SetList("ids", "late")
	res := translate(t, document(para("a"), target), Options{})

	_, ok := res.LabelAliases["%index#late"]
	require.False(t, ok)
	require.Equal(t, []string{CodePendingLabels}, codes(res.Diagnostics))
	require.Empty(t, Warnings(res.Diagnostics))
}

func TestReferences(t *testing.T) {
	internal := doctree.New(doctree.KindReference, doctree.Text("go")).
		Set("internal", "True").Set("refuri", "%index#s1")
	local := doctree.New(doctree.KindReference, doctree.Text("here")).Set("refid", "s1")
	missing := doctree.New(doctree.KindReference, doctree.Text("gone")).Set("refid", "nowhere")
	external := doctree.New(doctree.KindReference, doctree.Text("site")).Set("refuri", "https://typst.app")
	sec := doctree.New(doctree.KindSection,
		doctree.New(doctree.KindTitle, doctree.Text("T")),
		doctree.New(doctree.KindParagraph, internal, local, missing, external),
	).SetList("ids", "s1")

	res := translate(t, document(sec), Options{})

	require.Contains(t, res.Body, "#internal-link(\"%index#s1\")[#\"go\"]")
	require.Contains(t, res.Body, "#internal-link(\"%index#s1\")[#\"here\"]")
	require.Contains(t, res.Body, "#link(\"https://typst.app\")[#\"site\"]")
	require.Equal(t, []string{"%index#s1", "%index#nowhere"}, res.References)
	require.Equal(t, []string{"%index#nowhere"}, res.Unresolved())
	require.Equal(t, []string{CodeUnresolvedReference}, codes(Warnings(res.Diagnostics)))
}

func TestFootnotes(t *testing.T) {
	ref := doctree.New(doctree.KindFootnoteReference, doctree.Text("1")).Set("refid", "f1")
	note := doctree.New(doctree.KindFootnote,
		doctree.New(doctree.KindLabel, doctree.Text("1")),
		para("Note."),
	).SetList("ids", "f1")

	res := translate(t, document(doctree.New(doctree.KindParagraph, doctree.Text("See"), ref), note), Options{})

	require.Equal(t,
		"#par[#\"See\"#footnote-ref(\"%index#f1\")] #label(\"%index\")\n"+
			"#footnote-def(\"%index#f1\")[#par[#\"Note.\"]]\n",
		res.Body)
	require.Equal(t, []string{"%index#f1"}, res.Footnotes)
}

func TestTables(t *testing.T) {
	entry := func(text string) *doctree.Node { return doctree.New(doctree.KindEntry, para(text)) }
	row := func(cells ...*doctree.Node) *doctree.Node { return doctree.New(doctree.KindRow, cells...) }
	tgroup := func(head, body *doctree.Node) *doctree.Node {
		return doctree.New(doctree.KindTGroup,
			doctree.New(doctree.KindColSpec).Set("colwidth", "1"),
			doctree.New(doctree.KindColSpec).Set("colwidth", "2"),
			head, body,
		).Set("cols", "2")
	}

	t.Run("given widths", func(t *testing.T) {
		tbl := doctree.New(doctree.KindTable,
			doctree.New(doctree.KindTitle, doctree.Text("T")),
			tgroup(
				doctree.New(doctree.KindTHead, row(entry("A"), entry("B"))),
				doctree.New(doctree.KindTBody, row(entry("1"), entry("2"))),
			),
		).SetList("classes", "colwidths-given")

		res := translate(t, document(tbl), Options{})

		require.Equal(t,
			"#figure(caption: [#\"T\"])"+
				"[#table(columns: (1fr, 2fr), table.header([#par[#\"A\"]], [#par[#\"B\"]]), [#par[#\"1\"]], [#par[#\"2\"]])]"+
				" #label(\"%index\")\n",
			res.Body)
		require.Empty(t, res.Title)
	})

	t.Run("automatic widths and spans", func(t *testing.T) {
		wide := doctree.New(doctree.KindEntry, para("wide")).Set("morecols", "1")
		tbl := doctree.New(doctree.KindTable, tgroup(
			doctree.New(doctree.KindTHead, row(entry("A"), entry("B"))),
			doctree.New(doctree.KindTBody, row(wide)),
		))

		res := translate(t, document(para("x"), tbl), Options{})

		require.Contains(t, res.Body, "#table(columns: 2, ")
		require.Contains(t, res.Body, "table.cell(colspan: 2)[#par[#\"wide\"]]")
	})
	t.Run("fractional widths", func(t *testing.T) {
		tbl := doctree.New(doctree.KindTable, doctree.New(doctree.KindTGroup,
			doctree.New(doctree.KindColSpec).Set("colwidth", "25.0"),
			doctree.New(doctree.KindColSpec).Set("colwidth", "74.6"),
			doctree.New(doctree.KindTBody, row(entry("1"), entry("2"))),
		).Set("cols", "2")).SetList("classes", "colwidths-given")

		res := translate(t, document(para("x"), tbl), Options{})

		require.Contains(t, res.Body, "#table(columns: (25fr, 75fr), ")
	})
}

func TestFiguresAndImages(t *testing.T) {
	opts := Options{Images: map[string]string{"img/a.png": "images/a.png"}}

	t.Run("figure width applies to its image", func(t *testing.T) {
		fig := doctree.New(doctree.KindFigure,
			doctree.New(doctree.KindImage).Set("uri", "img/a.png"),
			doctree.New(doctree.KindCaption, doctree.Text("Cap")),
		).Set("width", "50%")

		res := translate(t, document(fig), opts)

		require.Equal(t, "#figure(caption: [#\"Cap\"])[#image(width: 50%, \"images/a.png\")] #label(\"%index\")\n", res.Body)
		require.Equal(t, []string{"img/a.png"}, res.Images)
		require.Empty(t, res.Diagnostics)
	})

	t.Run("missing image and unsupported width", func(t *testing.T) {
		img := doctree.New(doctree.KindImage).Set("uri", "x.png").Set("width", "30px").Set("alt", "X")

		res := translate(t, document(doctree.New(doctree.KindParagraph, img)), opts)

		require.Equal(t, "#par[#image(alt: \"X\", \"x.png\")] #label(\"%index\")\n", res.Body)
		require.Empty(t, res.Images)
		require.Equal(t, []string{CodeMissingImage, CodeUnsupportedWidth}, codes(res.Diagnostics))
	})
}

func TestTypstLength(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"50%", "50%", true},
		{"12.5 pt", "12.5pt", true},
		{"3cm", "3cm", true},
		{".5in", ".5in", true},
		{"30px", "", false},
		{"wide", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := typstLength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("typstLength(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLiteralBlocks(t *testing.T) {
	code := doctree.New(doctree.KindLiteralBlock, doctree.Text("print(\"hi\")\n")).Set("language", "python")
	plain := doctree.New(doctree.KindLiteralBlock, doctree.Text("a\tb")).Set("language", "default")
	doctest := doctree.New(doctree.KindDoctestBlock, doctree.Text(">>> 1"))

	res := translate(t, document(code, plain, doctest), Options{})

	require.Equal(t,
		"#raw(block: true, lang: \"python\", \"print(\\\"hi\\\")\\n\") #label(\"%index\")\n"+
			"#raw(block: true, \"a\\tb\")\n"+
			"#raw(block: true, lang: \"pycon\", \">>> 1\")\n",
		res.Body)
}

func TestAdmonitions(t *testing.T) {
	custom := doctree.New(doctree.KindAdmonition,
		doctree.New(doctree.KindTitle, doctree.Text("Custom")),
		para("x"),
	)
	note := doctree.New(doctree.KindNote, para("y"))

	res := translate(t, document(custom, note), Options{})

	require.Equal(t,
		"#admonition(title: [#\"Custom\"])[#par[#\"x\"]] #label(\"%index\")\n"+
			"#note[#par[#\"y\"]]\n",
		res.Body)
}

func TestLists(t *testing.T) {
	t.Run("bullets", func(t *testing.T) {
		list := doctree.New(doctree.KindBulletList,
			doctree.New(doctree.KindListItem, para("one")),
			doctree.New(doctree.KindListItem, para("two")),
		)
		res := translate(t, document(para("x"), list), Options{})
		require.Contains(t, res.Body, "#list([#par[#\"one\"]], [#par[#\"two\"]])\n")
	})

	t.Run("enumerated", func(t *testing.T) {
		list := doctree.New(doctree.KindEnumeratedList, doctree.New(doctree.KindListItem, para("one"))).
			Set("enumtype", "loweralpha").Set("prefix", "(").Set("suffix", ")").Set("start", "3")
		res := translate(t, document(para("x"), list), Options{})
		require.Contains(t, res.Body, "#enum(numbering: \"(a)\", start: 3, [#par[#\"one\"]])\n")
	})

	t.Run("definitions", func(t *testing.T) {
		item := doctree.New(doctree.KindDefinitionListItem,
			doctree.New(doctree.KindTerm, doctree.Text("Word")).SetList("ids", "t1"),
			doctree.New(doctree.KindDefinition, para("Meaning")),
		)
		res := translate(t, document(doctree.New(doctree.KindDefinitionList, item)), Options{})
		require.Equal(t,
			"#terms(terms.item([#\"Word\" #label(\"%index#t1\")], [#par[#\"Meaning\"]])) #label(\"%index\")\n",
			res.Body)
		require.Equal(t, "%index#t1", res.LabelAliases["%index#t1"])
	})
}

func TestDownloadsAttachOnce(t *testing.T) {
	dl := func() *doctree.Node {
		return doctree.New(doctree.KindDownloadReference, doctree.Text("data")).
			Set("filename", "abc/data.zip").Set("reftarget", "data.zip")
	}
	res := translate(t, document(doctree.New(doctree.KindParagraph, dl(), dl())), Options{})

	require.Equal(t,
		"#par[#attach-file(\"downloads/abc/data.zip\")#emph[#\"data\"]#emph[#\"data\"]] #label(\"%index\")\n",
		res.Body)
	require.Equal(t, []Download{{Source: "data.zip", Filename: "abc/data.zip"}}, res.Downloads)
}

func TestOnly(t *testing.T) {
	in := doctree.New(doctree.KindOnly, para("in")).Set("expr", "typst and not html")
	out := doctree.New(doctree.KindOnly, para("out")).Set("expr", "html")
	tagged := doctree.New(doctree.KindOnly, para("draft")).Set("expr", "draft or html")
	bad := doctree.New(doctree.KindOnly, para("bad")).Set("expr", "typst and (")

	res := translate(t, document(in, out, tagged, bad), Options{Tags: []string{"draft"}})

	require.Contains(t, res.Body, "#\"in\"")
	require.Contains(t, res.Body, "#\"draft\"")
	require.NotContains(t, res.Body, "#\"out\"")
	require.NotContains(t, res.Body, "#\"bad\"")
	require.Equal(t, []string{CodeBadOnlyExpression}, codes(res.Diagnostics))
}

func TestRawPassthrough(t *testing.T) {
	typstRaw := doctree.New(doctree.KindRaw, doctree.Text("#pagebreak()")).Set("format", "typst")
	htmlRaw := doctree.New(doctree.KindRaw, doctree.Text("<br>")).Set("format", "html")

	res := translate(t, document(typstRaw, htmlRaw), Options{})

	require.Equal(t, "#pagebreak()", res.Body)
}

func TestInlineMarkup(t *testing.T) {
	p := doctree.New(doctree.KindParagraph,
		doctree.New(doctree.KindStrong, doctree.Text("bold")),
		doctree.Text(" "),
		doctree.New(doctree.KindLiteral, doctree.Text("x = 1")),
		doctree.New(doctree.KindAbbreviation, doctree.Text("LIFO")).Set("explanation", "last in_first out"),
		doctree.New(doctree.KindMath, doctree.Text(`\alpha`)),
	)
	res := translate(t, document(p), Options{})

	require.Equal(t,
		"#par[#strong[#\"bold\"]#\" \"#raw(\"x = 1\")#\"LIFO\" (last in\\_first out)#mi(\"\\\\alpha\")] #label(\"%index\")\n",
		res.Body)
}

func TestUnknownElementsKeepChildren(t *testing.T) {
	weird := doctree.NewTag("sphinx_tabs_tab")
	weird.AppendChild(para("inside"))

	res := translate(t, document(weird, doctree.NewTag("sphinx_tabs_tab")), Options{})

	require.Contains(t, res.Body, "#\"inside\"")
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, CodeUnsupportedNode, res.Diagnostics[0].Code)
	require.Equal(t, "sphinx_tabs_tab", res.Diagnostics[0].Subject)
}

func TestTranslateErrors(t *testing.T) {
	t.Run("root must be a document", func(t *testing.T) {
		_, err := New(quietOptions()).Translate(para("x"))
		require.Error(t, err)
	})

	t.Run("single use", func(t *testing.T) {
		tr := New(quietOptions())
		_, err := tr.Translate(document())
		require.NoError(t, err)
		_, err = tr.Translate(document())
		require.ErrorIs(t, err, ErrTranslatorReused)
	})

	t.Run("pop checks identity", func(t *testing.T) {
		tr := New(quietOptions())
		tr.stack = []typst.Element{&typst.Fragment{}}
		pushed := &typst.Arg{}
		tr.push(pushed)
		require.False(t, tr.pop(&typst.Arg{}))
		require.True(t, errors.Is(tr.err, ErrStackMismatch))
		require.True(t, tr.pop(pushed))
	})
}

func TestForwardReferencesResolveAfterWalk(t *testing.T) {
	toSection := doctree.New(doctree.KindReference, doctree.Text("later")).Set("refid", "s2")
	toTerm := doctree.New(doctree.KindReference, doctree.Text("word")).Set("refid", "t1")
	sec := doctree.New(doctree.KindSection,
		doctree.New(doctree.KindTitle, doctree.Text("Later")),
		para("Body."),
	).SetList("ids", "s2")
	terms := doctree.New(doctree.KindDefinitionList, doctree.New(doctree.KindDefinitionListItem,
		doctree.New(doctree.KindTerm, doctree.Text("Word")).SetList("ids", "t1"),
		doctree.New(doctree.KindDefinition, para("Meaning")),
	))

	res := translate(t, document(doctree.New(doctree.KindParagraph, toSection, toTerm), terms, sec), Options{})

	require.Contains(t, res.Body, "#internal-link(\"%index#s2\")[#\"later\"]")
	require.Contains(t, res.Body, "#internal-link(\"%index#t1\")[#\"word\"]")
	require.Contains(t, res.LabelAliases, "%index#s2")
	require.Contains(t, res.LabelAliases, "%index#t1")
	require.Empty(t, res.Unresolved())
	require.Empty(t, Warnings(res.Diagnostics))
}

func TestEmptyTermLeavesReferenceUnresolved(t *testing.T) {
	ref := doctree.New(doctree.KindReference, doctree.Text("word")).Set("refid", "t1")
	item := doctree.New(doctree.KindDefinitionListItem,
		doctree.New(doctree.KindTerm).SetList("ids", "t1"),
		doctree.New(doctree.KindDefinition, para("Meaning")),
	)

	res := translate(t, document(doctree.New(doctree.KindParagraph, ref), doctree.New(doctree.KindDefinitionList, item)), Options{})

	require.NotContains(t, res.LabelAliases, "%index#t1")
	require.NotContains(t, res.Body, "#label(\"%index#t1\")")
	require.Equal(t, []string{"%index#t1"}, res.Unresolved())
}

func TestFootnoteBodyDoesNotTakePendingLabels(t *testing.T) {
	note := doctree.New(doctree.KindFootnote,
		doctree.New(doctree.KindLabel, doctree.Text("1")),
		para("Note."),
	).SetList("ids", "f1")

	res := translate(t, document(note, para("After")), Options{})

	require.Equal(t,
		"#footnote-def(\"%index#f1\")[#par[#\"Note.\"]]\n"+
			"#par[#\"After\"] #label(\"%index\")\n",
		res.Body)
}

func TestAbbreviationExplanationIsText(t *testing.T) {
	abbr := doctree.New(doctree.KindAbbreviation, doctree.Text("URL")).
		Set("explanation", "see http://x.org [1] <a> @b")

	res := translate(t, document(doctree.New(doctree.KindParagraph, abbr, doctree.Text(" after"))), Options{})

	require.Equal(t,
		"#par[#\"URL\"#\" (see http://x.org [1] <a> @b)\"#\" after\"] #label(\"%index\")\n",
		res.Body)
}
