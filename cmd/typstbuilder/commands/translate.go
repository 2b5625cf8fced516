package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/assemble"
	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/markdown"
	"git.home.luguber.info/inful/typstbuilder/internal/templates"
	"git.home.luguber.info/inful/typstbuilder/internal/translator"
)

// TranslateCmd implements the 'translate' command.
type TranslateCmd struct {
	Tree         string   `arg:"" help:"Document tree file (.xml, .yaml, .json) or Markdown source (.md)" type:"existingfile"`
	Template     string   `help:"Template the preamble imports" default:"default"`
	TemplatePath []string `name:"template-path" help:"Directories searched for templates before the built-ins" type:"path"`
	StartDoc     string   `name:"start-doc" help:"Docname of the tree (defaults to the file name)"`
	Tag          []string `short:"t" help:"Additional tags for only directives"`
	Body         bool     `help:"Print only the body, without preamble"`
}

func (t *TranslateCmd) Run(g *Global, _ *CLI) error {
	docname := t.StartDoc
	if docname == "" {
		docname = strings.TrimSuffix(filepath.Base(t.Tree), filepath.Ext(t.Tree))
	}
	tree, err := loadTree(t.Tree, docname)
	if err != nil {
		return err
	}

	res, err := translator.New(translator.Options{
		StartDoc: docname,
		Tags:     t.Tag,
		Logger:   g.Logger,
	}).Translate(tree)
	if err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		_, _ = fmt.Fprintln(g.Stderr, d.String())
	}

	if t.Body {
		_, _ = fmt.Fprint(g.Stdout, res.Body)
		return nil
	}
	registry, err := templates.Discover(t.TemplatePath)
	if err != nil {
		return err
	}
	tmpl, err := registry.Lookup(t.Template)
	if err != nil {
		return err
	}
	doc, err := assemble.Document(res.Body, assemble.PreambleOptions{
		Template:     tmpl.Name,
		Entry:        tmpl.Entry(),
		MetadataFile: assemble.MetadataFile(docname),
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(g.Stdout, doc)
	return nil
}

func loadTree(path, docname string) (*doctree.Node, error) {
	if strings.EqualFold(filepath.Ext(path), markdown.Extension) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "read source").WithContext("path", path).Build()
		}
		doc, err := markdown.Parse(data, markdown.Options{Docname: docname})
		if err != nil {
			return nil, errors.WrapError(err, errors.CategorySource, "parse markdown").WithContext("path", path).Build()
		}
		return doc.Tree, nil
	}
	tree, err := doctree.LoadFile(path, doctree.FormatAuto)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategorySource, "load document tree").WithContext("path", path).Build()
	}
	return tree, nil
}
