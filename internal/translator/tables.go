package translator

import (
	"math"
	"strconv"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

func (t *Translator) table(n *doctree.Node, ctx walkContext) {
	tbl := typst.NewTable()
	tbl.Labels = t.takeLabels(n.IDs()...)
	tbl.WidthsGiven = n.HasClass("colwidths-given")
	t.wrap(n, ctx, tbl)
}

// currentTable returns the table accumulator receiving content, or nil when
// a table part appears outside a table.
func (t *Translator) currentTable() *typst.Table {
	tbl, _ := t.top().(*typst.Table)
	return tbl
}

func (t *Translator) tgroup(n *doctree.Node, ctx walkContext) {
	if tbl := t.currentTable(); tbl != nil {
		tbl.Cols = n.Int("cols", 0)
	}
	t.children(n, ctx)
}

func (t *Translator) colspec(n *doctree.Node) {
	if tbl := t.currentTable(); tbl != nil {
		tbl.AddColumn(max(int(math.Round(n.Float("colwidth", 1))), 1))
	}
}

func (t *Translator) thead(n *doctree.Node, ctx walkContext) {
	tbl := t.currentTable()
	if tbl == nil {
		t.children(n, ctx)
		return
	}
	tbl.InHeader = true
	t.children(n, ctx)
	tbl.InHeader = false
}

func (t *Translator) entry(n *doctree.Node, ctx walkContext) {
	cell := &typst.Arg{}
	out := t.capture(cell, func() { t.children(n, ctx) })
	if t.err != nil {
		return
	}
	colspan, rowspan := n.Int("morecols", 0), n.Int("morerows", 0)
	if colspan > 0 || rowspan > 0 {
		c := typst.NewCall("table.cell", typst.InlineCode)
		if colspan > 0 {
			c.Set("colspan", strconv.Itoa(colspan+1))
		}
		if rowspan > 0 {
			c.Set("rowspan", strconv.Itoa(rowspan+1))
		}
		c.Body = cell.Body
		c.ForceBody = true
		out = renderCall(c)
	}
	if tbl := t.currentTable(); tbl != nil {
		tbl.AddCell(out)
		return
	}
	t.emit(out)
}
