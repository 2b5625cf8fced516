package markdown

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
)

// alertPattern matches the first line of a GitHub style alert block quote.
var alertPattern = regexp.MustCompile(`^\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]\s*$`)

var alertKinds = map[string]doctree.Kind{
	"NOTE":      doctree.KindNote,
	"TIP":       doctree.KindTip,
	"IMPORTANT": doctree.KindImportant,
	"WARNING":   doctree.KindWarning,
	"CAUTION":   doctree.KindCaution,
}

type section struct {
	level int
	node  *doctree.Node
}

// converter maps one goldmark AST onto doctree nodes.
type converter struct {
	src      []byte
	docname  string
	doc      *doctree.Node
	sections []section
}

func newConverter(src []byte, docname string) *converter {
	return &converter{src: src, docname: docname}
}

func (c *converter) document(root gmast.Node) *doctree.Node {
	c.doc = doctree.New(doctree.KindDocument)
	if c.docname != "" {
		c.doc.Set("docname", c.docname)
		c.doc.Set("source", c.docname+Extension)
	}
	c.sections = c.sections[:0]
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok {
			c.openSection(h)
			continue
		}
		c.appendBlock(c.current(), n)
	}
	return c.doc
}

// attachLabels places a target before the first element so that its ids
// label that element.
func (c *converter) attachLabels(labels []string) {
	target := doctree.New(doctree.KindTarget).SetList("ids", labels...)
	target.Parent = c.doc
	c.doc.Children = append([]*doctree.Node{target}, c.doc.Children...)
}

func (c *converter) current() *doctree.Node {
	if len(c.sections) == 0 {
		return c.doc
	}
	return c.sections[len(c.sections)-1].node
}

func (c *converter) openSection(h *gmast.Heading) {
	for len(c.sections) > 0 && c.sections[len(c.sections)-1].level >= h.Level {
		c.sections = c.sections[:len(c.sections)-1]
	}
	s := doctree.New(doctree.KindSection)
	if id, ok := h.AttributeString("id"); ok {
		if b, ok := id.([]byte); ok && len(b) > 0 {
			s.SetList("ids", string(b))
		}
	}
	title := doctree.New(doctree.KindTitle)
	c.inlines(title, h)
	s.AppendChild(title)
	c.current().AppendChild(s)
	c.sections = append(c.sections, section{level: h.Level, node: s})
}

func (c *converter) blocks(parent *doctree.Node, n gmast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.appendBlock(parent, child)
	}
}

func (c *converter) appendBlock(parent *doctree.Node, n gmast.Node) {
	if b := c.block(n); b != nil {
		parent.AppendChild(b)
	}
}

func (c *converter) block(n gmast.Node) *doctree.Node {
	switch n := n.(type) {
	case *gmast.Paragraph, *gmast.TextBlock:
		if fig := c.figure(n); fig != nil {
			return fig
		}
		p := doctree.New(doctree.KindParagraph)
		c.inlines(p, n)
		return p
	case *gmast.Heading:
		// Headings nested in lists or quotes cannot open a section.
		r := doctree.New(doctree.KindRubric)
		c.inlines(r, n)
		return r
	case *gmast.ThematicBreak:
		return doctree.New(doctree.KindTransition)
	case *gmast.FencedCodeBlock:
		lang := string(n.Language(c.src))
		if lang == "math" {
			return doctree.New(doctree.KindMathBlock, doctree.Text(c.lines(n)))
		}
		lb := doctree.New(doctree.KindLiteralBlock, doctree.Text(c.lines(n)))
		if lang != "" {
			lb.Set("language", lang)
		}
		return lb
	case *gmast.CodeBlock:
		return doctree.New(doctree.KindLiteralBlock, doctree.Text(c.lines(n)))
	case *gmast.Blockquote:
		return c.blockquote(n)
	case *gmast.List:
		return c.list(n)
	case *gmast.HTMLBlock:
		raw := c.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.src))
		}
		if n.HTMLBlockType == gmast.HTMLBlockType2 {
			return doctree.New(doctree.KindComment, doctree.Text(raw))
		}
		return doctree.New(doctree.KindRaw, doctree.Text(raw)).Set("format", "html")
	case *east.Table:
		return c.table(n)
	case *east.DefinitionList:
		return c.definitionList(n)
	case *east.FootnoteList:
		return c.footnotes(n)
	default:
		if n.Type() == gmast.TypeInline {
			p := doctree.New(doctree.KindParagraph)
			c.inline(p, n)
			return p
		}
		box := doctree.New(doctree.KindContainer)
		c.blocks(box, n)
		return box
	}
}

// figure turns a paragraph holding nothing but a titled image into a figure
// with the title as caption.
func (c *converter) figure(n gmast.Node) *doctree.Node {
	if n.ChildCount() != 1 {
		return nil
	}
	img, ok := n.FirstChild().(*gmast.Image)
	if !ok || len(img.Title) == 0 {
		return nil
	}
	caption := doctree.New(doctree.KindCaption, doctree.Text(string(img.Title)))
	return doctree.New(doctree.KindFigure, c.image(img), caption)
}

func (c *converter) blockquote(n *gmast.Blockquote) *doctree.Node {
	first, ok := n.FirstChild().(*gmast.Paragraph)
	if !ok || first.Lines().Len() == 0 {
		bq := doctree.New(doctree.KindBlockQuote)
		c.blocks(bq, n)
		return bq
	}
	line := first.Lines().At(0)
	m := alertPattern.FindSubmatch(line.Value(c.src))
	if m == nil {
		bq := doctree.New(doctree.KindBlockQuote)
		c.blocks(bq, n)
		return bq
	}

	admonition := doctree.New(alertKinds[string(m[1])])
	p := doctree.New(doctree.KindParagraph)
	for child := first.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*gmast.Text); ok && t.Segment.Stop <= line.Stop {
			continue
		}
		c.inline(p, child)
	}
	if len(p.Children) > 0 {
		admonition.AppendChild(p)
	}
	for child := first.NextSibling(); child != nil; child = child.NextSibling() {
		c.appendBlock(admonition, child)
	}
	return admonition
}

func (c *converter) list(n *gmast.List) *doctree.Node {
	var l *doctree.Node
	if n.IsOrdered() {
		l = doctree.New(doctree.KindEnumeratedList).Set("enumtype", "arabic")
		if n.Start != 1 {
			l.Set("start", strconv.Itoa(n.Start))
		}
	} else {
		l = doctree.New(doctree.KindBulletList).Set("bullet", string(n.Marker))
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li := doctree.New(doctree.KindListItem)
		c.blocks(li, item)
		l.AppendChild(li)
	}
	return l
}

func (c *converter) table(n *east.Table) *doctree.Node {
	cols := len(n.Alignments)
	group := doctree.New(doctree.KindTGroup).Set("cols", strconv.Itoa(cols))
	for i := 0; i < cols; i++ {
		group.AppendChild(doctree.New(doctree.KindColSpec).Set("colwidth", "1"))
	}
	var body *doctree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			group.AppendChild(doctree.New(doctree.KindTHead, c.row(row)))
		case *east.TableRow:
			if body == nil {
				body = doctree.New(doctree.KindTBody)
				group.AppendChild(body)
			}
			body.AppendChild(c.row(row))
		}
	}
	return doctree.New(doctree.KindTable, group)
}

func (c *converter) row(n gmast.Node) *doctree.Node {
	row := doctree.New(doctree.KindRow)
	for cell := n.FirstChild(); cell != nil; cell = cell.NextSibling() {
		entry := doctree.New(doctree.KindEntry)
		if cell.HasChildren() {
			p := doctree.New(doctree.KindParagraph)
			c.inlines(p, cell)
			entry.AppendChild(p)
		}
		row.AppendChild(entry)
	}
	return row
}

func (c *converter) definitionList(n *east.DefinitionList) *doctree.Node {
	dl := doctree.New(doctree.KindDefinitionList)
	var item *doctree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *east.DefinitionTerm:
			term := doctree.New(doctree.KindTerm)
			c.inlines(term, child)
			item = doctree.New(doctree.KindDefinitionListItem, term)
			dl.AppendChild(item)
		case *east.DefinitionDescription:
			if item == nil {
				item = doctree.New(doctree.KindDefinitionListItem)
				dl.AppendChild(item)
			}
			def := doctree.New(doctree.KindDefinition)
			c.blocks(def, child)
			item.AppendChild(def)
		}
	}
	return dl
}

func footnoteID(index int) string {
	return "footnote-" + strconv.Itoa(index)
}

func (c *converter) footnotes(n *east.FootnoteList) *doctree.Node {
	box := doctree.New(doctree.KindContainer).SetList("classes", "footnotes")
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		fn, ok := child.(*east.Footnote)
		if !ok {
			continue
		}
		def := doctree.New(doctree.KindFootnote).SetList("ids", footnoteID(fn.Index))
		def.AppendChild(doctree.New(doctree.KindLabel, doctree.Text(strconv.Itoa(fn.Index))))
		c.blocks(def, fn)
		box.AppendChild(def)
	}
	return box
}

func (c *converter) inlines(parent *doctree.Node, n gmast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.inline(parent, child)
	}
}

func (c *converter) inline(parent *doctree.Node, n gmast.Node) {
	switch n := n.(type) {
	case *gmast.Text:
		appendText(parent, string(n.Segment.Value(c.src)))
		switch {
		case n.HardLineBreak():
			parent.AppendChild(doctree.New(doctree.KindRaw, doctree.Text("\\\n")).Set("format", "typst"))
		case n.SoftLineBreak():
			appendText(parent, " ")
		}
	case *gmast.String:
		appendText(parent, string(n.Value))
	case *gmast.Emphasis:
		kind := doctree.KindEmphasis
		if n.Level >= 2 {
			kind = doctree.KindStrong
		}
		e := doctree.New(kind)
		c.inlines(e, n)
		parent.AppendChild(e)
	case *gmast.CodeSpan:
		parent.AppendChild(doctree.New(doctree.KindLiteral, doctree.Text(c.plain(n))))
	case *gmast.Link:
		ref := c.reference(string(n.Destination))
		c.inlines(ref, n)
		parent.AppendChild(ref)
	case *gmast.AutoLink:
		ref := doctree.New(doctree.KindReference, doctree.Text(string(n.Label(c.src))))
		ref.Set("refuri", string(n.URL(c.src)))
		parent.AppendChild(ref)
	case *gmast.Image:
		parent.AppendChild(c.image(n))
	case *gmast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			s := n.Segments.At(i)
			b.Write(s.Value(c.src))
		}
		parent.AppendChild(doctree.New(doctree.KindRaw, doctree.Text(b.String())).Set("format", "html"))
	case *east.Strikethrough:
		s := doctree.New(doctree.KindInline).SetList("classes", "strike")
		c.inlines(s, n)
		parent.AppendChild(s)
	case *east.TaskCheckBox:
		if n.IsChecked {
			appendText(parent, "☑ ")
		} else {
			appendText(parent, "☐ ")
		}
	case *east.FootnoteLink:
		ref := doctree.New(doctree.KindFootnoteReference, doctree.Text(strconv.Itoa(n.Index)))
		ref.Set("refid", footnoteID(n.Index))
		parent.AppendChild(ref)
	case *east.FootnoteBacklink:
	default:
		c.inlines(parent, n)
	}
}

func (c *converter) reference(dest string) *doctree.Node {
	ref := doctree.New(doctree.KindReference)
	link := ClassifyLink(c.docname, dest)
	switch link.Kind {
	case LinkKindAnchor:
		ref.Set("refid", link.Target)
	case LinkKindDocument:
		ref.Set("refuri", link.Target).Set("internal", "True")
	default:
		ref.Set("refuri", link.Target)
	}
	return ref
}

func (c *converter) image(n *gmast.Image) *doctree.Node {
	img := doctree.New(doctree.KindImage).Set("uri", c.sourcePath(string(n.Destination)))
	if alt := c.plain(n); alt != "" {
		img.Set("alt", alt)
	}
	return img
}

// sourcePath makes a relative file reference relative to the source
// directory, the way Sphinx stores image URIs.
func (c *converter) sourcePath(dest string) string {
	if ClassifyLink(c.docname, dest).Kind != LinkKindFile || dest == "" {
		return dest
	}
	if strings.HasPrefix(dest, "/") {
		return strings.TrimPrefix(path.Clean(dest), "/")
	}
	return path.Join(path.Dir(c.docname), dest)
}

// plain returns the text content of an inline subtree.
func (c *converter) plain(n gmast.Node) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(c.src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// lines joins the raw lines of a block.
func (c *converter) lines(n gmast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(c.src))
	}
	return strings.TrimRight(b.String(), "\n")
}

// appendText extends a trailing text child instead of adding a sibling.
func appendText(parent *doctree.Node, s string) {
	if s == "" {
		return
	}
	if k := len(parent.Children); k > 0 && parent.Children[k-1].Kind == doctree.KindText {
		parent.Children[k-1].Text += s
		return
	}
	parent.AppendChild(doctree.Text(s))
}
