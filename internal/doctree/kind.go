package doctree

// Kind identifies the type of a document tree node. The set covers the
// docutils node classes plus the Sphinx additions a resolved doctree contains.
type Kind uint8

const (
	// KindUnknown is any element this package has no constant for; Node.Tag keeps its name.
	KindUnknown Kind = iota
	KindText
	KindDocument
	KindSection
	KindTitle
	KindSubtitle
	KindRubric
	KindParagraph
	KindCompound
	KindCompactParagraph
	KindContainer
	KindTopic
	KindSidebar
	KindBlockQuote
	KindAttribution
	KindLineBlock
	KindLine
	KindTransition
	KindEmphasis
	KindStrong
	KindLiteral
	KindLiteralEmphasis
	KindLiteralStrong
	KindSubscript
	KindSuperscript
	KindTitleReference
	KindAbbreviation
	KindAcronym
	KindInline
	KindManpage
	KindReference
	KindNumberReference
	KindPendingXref
	KindTarget
	KindFootnote
	KindFootnoteReference
	KindCitation
	KindCitationReference
	KindLabel
	KindBulletList
	KindEnumeratedList
	KindListItem
	KindDefinitionList
	KindDefinitionListItem
	KindTerm
	KindClassifier
	KindDefinition
	KindFieldList
	KindField
	KindFieldName
	KindFieldBody
	KindOptionList
	KindOptionListItem
	KindOptionGroup
	KindOption
	KindOptionString
	KindOptionArgument
	KindDescription
	KindTable
	KindTGroup
	KindColSpec
	KindTHead
	KindTBody
	KindRow
	KindEntry
	KindFigure
	KindCaption
	KindLegend
	KindImage
	KindLiteralBlock
	KindDoctestBlock
	KindMath
	KindMathBlock
	KindAdmonition
	KindAttention
	KindCaution
	KindDanger
	KindError
	KindHint
	KindImportant
	KindNote
	KindTip
	KindWarning
	KindSeeAlso
	KindVersionModified
	KindCentered
	KindHList
	KindHListCol
	KindProductionList
	KindProduction
	KindGlossary
	KindAcks
	KindGenerated
	KindDesc
	KindDescSignature
	KindDescSignatureLine
	KindDescName
	KindDescAddname
	KindDescType
	KindDescReturns
	KindDescParameterList
	KindDescParameter
	KindDescTypeParameterList
	KindDescTypeParameter
	KindDescOptional
	KindDescAnnotation
	KindDescContent
	KindDescInline
	KindDescSigSpace
	KindDescSigName
	KindDescSigOperator
	KindDescSigPunctuation
	KindDescSigKeyword
	KindDescSigKeywordType
	KindDescSigLiteralNumber
	KindDescSigLiteralString
	KindDescSigLiteralChar
	KindDownloadReference
	KindProblematic
	KindRaw
	KindComment
	KindIndex
	KindSubstitutionDefinition
	KindSubstitutionReference
	KindSystemMessage
	KindMeta
	KindToctree
	KindTabularColSpec
	KindOnly
	KindStartOfFile
	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:                "unknown",
	KindText:                   "#text",
	KindDocument:               "document",
	KindSection:                "section",
	KindTitle:                  "title",
	KindSubtitle:               "subtitle",
	KindRubric:                 "rubric",
	KindParagraph:              "paragraph",
	KindCompound:               "compound",
	KindCompactParagraph:       "compact_paragraph",
	KindContainer:              "container",
	KindTopic:                  "topic",
	KindSidebar:                "sidebar",
	KindBlockQuote:             "block_quote",
	KindAttribution:            "attribution",
	KindLineBlock:              "line_block",
	KindLine:                   "line",
	KindTransition:             "transition",
	KindEmphasis:               "emphasis",
	KindStrong:                 "strong",
	KindLiteral:                "literal",
	KindLiteralEmphasis:        "literal_emphasis",
	KindLiteralStrong:          "literal_strong",
	KindSubscript:              "subscript",
	KindSuperscript:            "superscript",
	KindTitleReference:         "title_reference",
	KindAbbreviation:           "abbreviation",
	KindAcronym:                "acronym",
	KindInline:                 "inline",
	KindManpage:                "manpage",
	KindReference:              "reference",
	KindNumberReference:        "number_reference",
	KindPendingXref:            "pending_xref",
	KindTarget:                 "target",
	KindFootnote:               "footnote",
	KindFootnoteReference:      "footnote_reference",
	KindCitation:               "citation",
	KindCitationReference:      "citation_reference",
	KindLabel:                  "label",
	KindBulletList:             "bullet_list",
	KindEnumeratedList:         "enumerated_list",
	KindListItem:               "list_item",
	KindDefinitionList:         "definition_list",
	KindDefinitionListItem:     "definition_list_item",
	KindTerm:                   "term",
	KindClassifier:             "classifier",
	KindDefinition:             "definition",
	KindFieldList:              "field_list",
	KindField:                  "field",
	KindFieldName:              "field_name",
	KindFieldBody:              "field_body",
	KindOptionList:             "option_list",
	KindOptionListItem:         "option_list_item",
	KindOptionGroup:            "option_group",
	KindOption:                 "option",
	KindOptionString:           "option_string",
	KindOptionArgument:         "option_argument",
	KindDescription:            "description",
	KindTable:                  "table",
	KindTGroup:                 "tgroup",
	KindColSpec:                "colspec",
	KindTHead:                  "thead",
	KindTBody:                  "tbody",
	KindRow:                    "row",
	KindEntry:                  "entry",
	KindFigure:                 "figure",
	KindCaption:                "caption",
	KindLegend:                 "legend",
	KindImage:                  "image",
	KindLiteralBlock:           "literal_block",
	KindDoctestBlock:           "doctest_block",
	KindMath:                   "math",
	KindMathBlock:              "math_block",
	KindAdmonition:             "admonition",
	KindAttention:              "attention",
	KindCaution:                "caution",
	KindDanger:                 "danger",
	KindError:                  "error",
	KindHint:                   "hint",
	KindImportant:              "important",
	KindNote:                   "note",
	KindTip:                    "tip",
	KindWarning:                "warning",
	KindSeeAlso:                "seealso",
	KindVersionModified:        "versionmodified",
	KindCentered:               "centered",
	KindHList:                  "hlist",
	KindHListCol:               "hlistcol",
	KindProductionList:         "productionlist",
	KindProduction:             "production",
	KindGlossary:               "glossary",
	KindAcks:                   "acks",
	KindGenerated:              "generated",
	KindDesc:                   "desc",
	KindDescSignature:          "desc_signature",
	KindDescSignatureLine:      "desc_signature_line",
	KindDescName:               "desc_name",
	KindDescAddname:            "desc_addname",
	KindDescType:               "desc_type",
	KindDescReturns:            "desc_returns",
	KindDescParameterList:      "desc_parameterlist",
	KindDescParameter:          "desc_parameter",
	KindDescTypeParameterList:  "desc_type_parameter_list",
	KindDescTypeParameter:      "desc_type_parameter",
	KindDescOptional:           "desc_optional",
	KindDescAnnotation:         "desc_annotation",
	KindDescContent:            "desc_content",
	KindDescInline:             "desc_inline",
	KindDescSigSpace:           "desc_sig_space",
	KindDescSigName:            "desc_sig_name",
	KindDescSigOperator:        "desc_sig_operator",
	KindDescSigPunctuation:     "desc_sig_punctuation",
	KindDescSigKeyword:         "desc_sig_keyword",
	KindDescSigKeywordType:     "desc_sig_keyword_type",
	KindDescSigLiteralNumber:   "desc_sig_literal_number",
	KindDescSigLiteralString:   "desc_sig_literal_string",
	KindDescSigLiteralChar:     "desc_sig_literal_char",
	KindDownloadReference:      "download_reference",
	KindProblematic:            "problematic",
	KindRaw:                    "raw",
	KindComment:                "comment",
	KindIndex:                  "index",
	KindSubstitutionDefinition: "substitution_definition",
	KindSubstitutionReference:  "substitution_reference",
	KindSystemMessage:          "system_message",
	KindMeta:                   "meta",
	KindToctree:                "toctree",
	KindTabularColSpec:         "tabular_col_spec",
	KindOnly:                   "only",
	KindStartOfFile:            "start_of_file",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// ParseKind returns the Kind for a docutils element name, or KindUnknown.
func ParseKind(name string) Kind {
	if k, ok := kindByName[name]; ok {
		return k
	}
	return KindUnknown
}

// String returns the docutils element name of k.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Kinds returns every known kind except KindUnknown, in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// IsInline reports whether k is an inline (text-level) element.
func (k Kind) IsInline() bool {
	switch k {
	case KindText, KindEmphasis, KindStrong, KindLiteral, KindLiteralEmphasis, KindLiteralStrong,
		KindSubscript, KindSuperscript, KindTitleReference, KindAbbreviation, KindAcronym,
		KindInline, KindManpage, KindReference, KindNumberReference, KindPendingXref,
		KindDownloadReference, KindFootnoteReference, KindCitationReference, KindMath,
		KindProblematic, KindSubstitutionReference:
		return true
	}
	return false
}
