package doctree

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// preserveSpace lists elements whose whitespace-only text is content, not the
// indentation of a pretty-printed file.
var preserveSpace = map[Kind]bool{
	KindParagraph: true, KindTitle: true, KindSubtitle: true, KindRubric: true,
	KindLiteralBlock: true, KindDoctestBlock: true, KindMathBlock: true, KindMath: true,
	KindRaw: true, KindLine: true, KindTerm: true, KindClassifier: true,
	KindFieldName: true, KindCaption: true, KindAttribution: true, KindLabel: true,
	KindCompactParagraph: true, KindProblematic: true,
}

// LoadXML reads a docutils XML document (as written by the docutils or Sphinx
// XML writers) and returns its document node.
func LoadXML(r io.Reader) (*Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing doctree XML: %w", err)
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			root := convertXML(c)
			if root.Kind != KindDocument {
				return nil, fmt.Errorf("doctree XML root is <%s>, want <document>", root.Tag)
			}
			return root, nil
		}
	}
	return nil, fmt.Errorf("doctree XML has no root element")
}

func convertXML(x *xmlquery.Node) *Node {
	n := NewTag(x.Data)
	for _, a := range x.Attr {
		if a.Name.Space != "" {
			continue
		}
		n.Set(a.Name.Local, a.Value)
	}
	keepSpace := preserveSpace[n.Kind] || n.Kind.IsInline() || hasText(x)
	for c := x.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			n.AppendChild(convertXML(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if !keepSpace && strings.TrimSpace(c.Data) == "" {
				continue
			}
			n.AppendChild(Text(c.Data))
		}
	}
	return n
}

// hasText reports mixed content: an element with a non-blank text child keeps
// all of its text, whitespace between inline children included.
func hasText(x *xmlquery.Node) bool {
	for c := x.FirstChild; c != nil; c = c.NextSibling {
		if (c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode) && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}
