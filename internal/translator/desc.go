package translator

import (
	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
)

// desc renders an object description (a documented function, class, option
// and so on): signatures followed by the content.
func (t *Translator) desc(n *doctree.Node, ctx walkContext) {
	c := t.blockCall("desc", n)
	if domain := n.Attr("domain"); domain != "" {
		c.Set("domain", quoted(domain))
	}
	objtype := n.Attr("objtype")
	if objtype == "" {
		objtype = n.Attr("desctype")
	}
	if objtype != "" {
		c.Set("objtype", quoted(objtype))
	}
	t.wrap(n, ctx, c)
}
