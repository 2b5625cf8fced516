package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/doctree"
	"git.home.luguber.info/inful/typstbuilder/internal/markdown"
)

// ErrSourceNotFound is returned when no file exists for a docname.
var ErrSourceNotFound = errors.New("source document not found")

// Source is a loaded document.
type Source struct {
	Docname string
	// Path is the file the tree was read from.
	Path string
	Tree *doctree.Node
	// Metadata holds front matter keys of Markdown sources.
	Metadata map[string]any
}

// SourceLoader reads document trees by docname.
type SourceLoader interface {
	Load(docname string) (*Source, error)
	// Resolve returns the file a source-relative reference points at.
	Resolve(ref string) string
}

// FileLoader reads documents below a directory. A docname maps onto
// <dir>/<docname><ext>; with SourceFormatAuto every known extension is tried.
type FileLoader struct {
	Dir    string
	Format config.SourceFormat
}

// NewFileLoader returns a loader for dir.
func NewFileLoader(dir string, format config.SourceFormat) *FileLoader {
	if format == "" {
		format = config.SourceFormatAuto
	}
	return &FileLoader{Dir: dir, Format: format}
}

func (l *FileLoader) extensions() []string {
	switch l.Format {
	case config.SourceFormatXML:
		return []string{".xml"}
	case config.SourceFormatYAML:
		return []string{".yaml", ".yml", ".json"}
	case config.SourceFormatMarkdown:
		return []string{markdown.Extension}
	default:
		exts := make([]string, 0, len(doctree.Extensions)+1)
		for _, e := range doctree.Extensions {
			exts = append(exts, e.Ext)
		}
		return append(exts, markdown.Extension)
	}
}

// Locate returns the file holding docname.
func (l *FileLoader) Locate(docname string) (string, error) {
	base := l.Resolve(docname)
	for _, ext := range l.extensions() {
		p := base + ext
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s (looked for %v in %s)", ErrSourceNotFound, docname, l.extensions(), l.Dir)
}

// Load reads and parses docname.
func (l *FileLoader) Load(docname string) (*Source, error) {
	p, err := l.Locate(docname)
	if err != nil {
		return nil, err
	}
	src := &Source{Docname: docname, Path: p}
	if filepath.Ext(p) == markdown.Extension {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		doc, err := markdown.Parse(data, markdown.Options{Docname: docname})
		if err != nil {
			return nil, err
		}
		src.Tree = doc.Tree
		src.Metadata = doc.Header.Extra()
		return src, nil
	}

	tree, err := doctree.LoadFile(p, doctree.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	if !tree.HasAttr("docname") {
		tree.Set("docname", docname)
	}
	src.Tree = tree
	return src, nil
}

// Resolve maps a slash separated, source-relative reference onto a path.
func (l *FileLoader) Resolve(ref string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(ref))
}

// exists reports whether p is a regular file.
func exists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// withAppendices inlines the appendix trees after the start document, each
// wrapped in a start_of_file node naming its document.
func withAppendices(start *doctree.Node, appendices []*Source) *doctree.Node {
	for _, a := range appendices {
		sof := doctree.New(doctree.KindStartOfFile).Set("docname", a.Docname)
		for _, c := range a.Tree.Children {
			sof.AppendChild(c)
		}
		a.Tree.Children = nil
		start.AppendChild(sof)
	}
	return start
}

