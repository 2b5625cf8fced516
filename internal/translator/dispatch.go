package translator

import (
	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

// visit dispatches n to its handler.
func (t *Translator) visit(n *doctree.Node, ctx walkContext) {
	if t.err != nil {
		return
	}
	t.counts[n.Kind]++

	switch n.Kind {
	case doctree.KindText:
		t.emitText(n.Text)

	// Structure.
	case doctree.KindDocument:
		t.document(n, ctx)
	case doctree.KindStartOfFile:
		t.startOfFile(n, ctx)
	case doctree.KindSection:
		t.section(n, ctx)
	case doctree.KindTitle:
		t.titleNode(n, ctx)
	case doctree.KindSubtitle:
		t.subheading(n, ctx, false)
	case doctree.KindRubric:
		t.subheading(n, ctx, true)
	case doctree.KindParagraph:
		c := t.blockCall("par", n)
		c.ForceBody = true
		t.wrap(n, ctx, c)
	case doctree.KindContainer:
		t.container(n, ctx)
	case doctree.KindTopic:
		t.wrap(n, ctx, t.blockCall("topic", n))
	case doctree.KindSidebar:
		t.wrap(n, ctx, t.blockCall("sidebar", n))
	case doctree.KindBlockQuote:
		t.wrap(n, ctx, t.blockCall("quote", n).Set("block", "true"))
	case doctree.KindAttribution, doctree.KindCaption:
		t.namedContent(n, ctx)
	case doctree.KindLineBlock:
		t.lineBlock(n, ctx)
	case doctree.KindLine:
		t.children(n, ctx)
		t.emit("#linebreak()")
	case doctree.KindTransition:
		t.emit(renderCall(t.blockCall("horizontalrule", n)))
	case doctree.KindCentered:
		t.centered(n, ctx)
	case doctree.KindHList:
		t.hlist(n, ctx)
	case doctree.KindHListCol:
		t.children(n, ctx)
		if next := nextSibling(n); next != nil && next.Kind == doctree.KindHListCol {
			t.emit("#colbreak()")
		}
	case doctree.KindProductionList:
		t.productionList(n)

	case doctree.KindCompound, doctree.KindCompactParagraph, doctree.KindGenerated,
		doctree.KindGlossary, doctree.KindAcks, doctree.KindLegend, doctree.KindPendingXref,
		doctree.KindSubstitutionReference, doctree.KindProduction:
		t.children(n, ctx)

	// Admonitions.
	case doctree.KindAdmonition, doctree.KindAttention, doctree.KindCaution,
		doctree.KindDanger, doctree.KindError, doctree.KindHint, doctree.KindImportant,
		doctree.KindNote, doctree.KindTip, doctree.KindWarning, doctree.KindSeeAlso:
		t.wrap(n, ctx, t.blockCall(n.Kind.String(), n))
	case doctree.KindVersionModified:
		t.versionModified(n, ctx)

	// Inline markup.
	case doctree.KindEmphasis, doctree.KindTitleReference, doctree.KindManpage:
		t.wrap(n, ctx, inlineCall("emph"))
	case doctree.KindStrong:
		t.wrap(n, ctx, inlineCall("strong"))
	case doctree.KindSubscript:
		t.wrap(n, ctx, inlineCall("sub"))
	case doctree.KindSuperscript:
		t.wrap(n, ctx, inlineCall("super"))
	case doctree.KindLiteral:
		t.emit(rawInline(n.AsText()))
	case doctree.KindLiteralEmphasis:
		t.emit(renderCall(withBody(inlineCall("emph"), rawInline(n.AsText()))))
	case doctree.KindLiteralStrong:
		t.emit(renderCall(withBody(inlineCall("strong"), rawInline(n.AsText()))))
	case doctree.KindAbbreviation, doctree.KindAcronym:
		t.abbreviation(n, ctx)
	case doctree.KindInline:
		t.inline(n, ctx)
	case doctree.KindProblematic:
		t.emit(renderCall(inlineCall("text").Set("fill", "red").Arg(quoted(n.AsText()))))

	// References and targets.
	case doctree.KindReference, doctree.KindNumberReference:
		t.reference(n, ctx)
	case doctree.KindTarget:
		t.target(n, ctx)
	case doctree.KindFootnote:
		t.footnote(n, ctx)
	case doctree.KindFootnoteReference:
		t.footnoteReference(n)
	case doctree.KindCitation:
		t.citation(n, ctx)
	case doctree.KindCitationReference:
		t.internalLink(n, ctx, n.Attr("refid"))
	case doctree.KindDownloadReference:
		t.downloadReference(n, ctx)

	// Lists.
	case doctree.KindBulletList:
		t.wrap(n, ctx, t.blockCall("list", n))
	case doctree.KindEnumeratedList:
		t.enumeratedList(n, ctx)
	case doctree.KindListItem:
		t.addToTop(t.capture(&typst.Arg{}, func() { t.children(n, ctx) }))
	case doctree.KindDefinitionList, doctree.KindFieldList:
		t.wrap(n, ctx, t.blockCall("terms", n))
	case doctree.KindDefinitionListItem, doctree.KindField:
		t.termItem(n, ctx)
	case doctree.KindTerm, doctree.KindFieldName:
		t.term(n, ctx)
	case doctree.KindClassifier:
		t.emitText(" : ")
		t.wrap(n, ctx, inlineCall("emph"))
	case doctree.KindDefinition, doctree.KindFieldBody, doctree.KindDescription:
		t.children(n, ctx)
	case doctree.KindOptionList:
		t.wrap(n, ctx, t.blockCall("table", n).Set("columns", "2").Set("stroke", "none"))
	case doctree.KindOptionListItem:
		t.optionListItem(n, ctx)
	case doctree.KindOptionGroup:
		t.joined(n, ctx, ", ")
	case doctree.KindOption:
		t.children(n, ctx)
	case doctree.KindOptionString:
		t.emit(rawInline(n.AsText()))
	case doctree.KindOptionArgument:
		t.optionArgument(n)

	// Tables.
	case doctree.KindTable:
		t.table(n, ctx)
	case doctree.KindTGroup:
		t.tgroup(n, ctx)
	case doctree.KindColSpec:
		t.colspec(n)
	case doctree.KindTHead:
		t.thead(n, ctx)
	case doctree.KindTBody, doctree.KindRow:
		t.children(n, ctx)
	case doctree.KindEntry:
		t.entry(n, ctx)

	// Figures, code and math.
	case doctree.KindFigure:
		t.figure(n, ctx)
	case doctree.KindImage:
		t.image(n, ctx)
	case doctree.KindLiteralBlock, doctree.KindDoctestBlock:
		t.literalBlock(n)
	case doctree.KindMath:
		t.emit(renderMath(false, n.AsText(), nil))
	case doctree.KindMathBlock:
		t.emit(renderMath(true, n.AsText(), t.takeLabels(n.IDs()...)))

	// Object descriptions.
	case doctree.KindDesc:
		t.desc(n, ctx)
	case doctree.KindDescSignature:
		t.wrap(n, ctx, t.blockCall("desc-signature", n))
	case doctree.KindDescSignatureLine:
		t.children(n, ctx)
		t.emit("#linebreak()")
	case doctree.KindDescName:
		t.wrap(n, ctx, inlineCall("strong"))
	case doctree.KindDescAnnotation, doctree.KindDescSigKeyword, doctree.KindDescParameter,
		doctree.KindDescTypeParameter:
		t.wrap(n, ctx, inlineCall("emph"))
	case doctree.KindDescAddname, doctree.KindDescType, doctree.KindDescSigSpace,
		doctree.KindDescSigName, doctree.KindDescSigOperator, doctree.KindDescSigPunctuation,
		doctree.KindDescSigKeywordType, doctree.KindDescSigLiteralNumber,
		doctree.KindDescSigLiteralString, doctree.KindDescSigLiteralChar:
		t.children(n, ctx)
	case doctree.KindDescParameterList:
		t.delimited(n, ctx, "(", ")")
	case doctree.KindDescTypeParameterList, doctree.KindDescOptional:
		t.delimited(n, ctx, "[", "]")
	case doctree.KindDescReturns:
		t.emitText(" → ")
		t.children(n, ctx)
	case doctree.KindDescContent:
		t.wrap(n, ctx, t.blockCall("desc-content", n))
	case doctree.KindDescInline:
		t.emit(rawInline(n.AsText()))

	// Host-only and invisible nodes.
	case doctree.KindRaw:
		t.raw(n)
	case doctree.KindOnly:
		t.only(n, ctx)
	case doctree.KindLabel, doctree.KindComment, doctree.KindIndex,
		doctree.KindSubstitutionDefinition, doctree.KindSystemMessage, doctree.KindMeta,
		doctree.KindToctree, doctree.KindTabularColSpec:

	default:
		t.unknown.Add(n.Tag)
		t.children(n, ctx)
	}
}

func nextSibling(n *doctree.Node) *doctree.Node {
	i := n.Index()
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}
