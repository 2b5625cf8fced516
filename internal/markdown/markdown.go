// Package markdown builds document trees from Markdown sources, so projects
// without a Sphinx build can feed the translator directly.
//
// Parsing is done by goldmark with the GFM, footnote and definition list
// extensions. Headings open nested sections; a YAML front matter block sets
// the document title, extra labels and metadata.
package markdown

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/frontmatter"
)

// Options controls how a source is turned into a tree.
type Options struct {
	// Docname is the document name the source is built as, e.g. "guide/install".
	// Relative links between Markdown files resolve against it.
	Docname string
}

// Document is a parsed Markdown source.
type Document struct {
	Tree   *doctree.Node
	Header frontmatter.Header
}

// Extension is the file extension of Markdown sources.
const Extension = ".md"

func newParser() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// Parse converts a Markdown source, front matter included, into a document
// tree rooted at a document node.
func Parse(source []byte, opts Options) (*Document, error) {
	header, body, err := frontmatter.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Docname, err)
	}

	root := newParser().Parser().Parse(text.NewReader(body))
	c := newConverter(body, opts.Docname)
	doc := c.document(root)

	if title := header.Title(); title != "" {
		doc.Set("title", title)
	}
	if labels := header.Labels(); len(labels) > 0 {
		c.attachLabels(labels)
	}
	return &Document{Tree: doc, Header: header}, nil
}

// ParseBody parses a body without front matter.
func ParseBody(body []byte, opts Options) *doctree.Node {
	root := newParser().Parser().Parse(text.NewReader(body))
	return newConverter(body, opts.Docname).document(root)
}
