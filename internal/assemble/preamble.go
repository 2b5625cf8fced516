package assemble

import (
	"bytes"
	_ "embed"
	"fmt"
	"path"
	"text/template"

	"git.home.luguber.info/inful/typstbuilder/internal/typst"
)

// MitexVersion is the Typst package providing LaTeX math.
const MitexVersion = "0.2.5"

// DefaultEntry is the template function applied to the whole document.
const DefaultEntry = "template"

//go:embed preamble.typ.tmpl
var preambleSource string

var preambleTemplate = template.Must(template.New("preamble").
	Funcs(template.FuncMap{"str": typst.EscapeString}).
	Option("missingkey=error").
	Parse(preambleSource))

// PreambleOptions selects the template and metadata file a document uses.
type PreambleOptions struct {
	// Template is the template directory name below templates/.
	Template string
	// Entry defaults to DefaultEntry.
	Entry string
	// MetadataFile is the sidecar path relative to the output directory.
	MetadataFile string
}

// TemplateFile returns the path the document imports its template from.
func TemplateFile(name string) string {
	return path.Join("templates", name, "template.typ")
}

// MetadataFile returns the sidecar file name for a target.
func MetadataFile(target string) string {
	return target + ".metadata.json"
}

// SourceFile returns the Typst source file name for a target.
func SourceFile(target string) string {
	return target + ".typ"
}

// Preamble renders the fixed document header.
func Preamble(opts PreambleOptions) (string, error) {
	if opts.Template == "" || opts.MetadataFile == "" {
		return "", fmt.Errorf("preamble needs a template and a metadata file")
	}
	entry := opts.Entry
	if entry == "" {
		entry = DefaultEntry
	}
	var buf bytes.Buffer
	err := preambleTemplate.Execute(&buf, map[string]any{
		"MitexVersion": MitexVersion,
		"TemplateFile": TemplateFile(opts.Template),
		"MetadataFile": opts.MetadataFile,
		"Entry":        entry,
	})
	if err != nil {
		return "", fmt.Errorf("render preamble: %w", err)
	}
	return buf.String(), nil
}

// Document returns the complete Typst source: preamble followed by body.
func Document(body string, opts PreambleOptions) (string, error) {
	preamble, err := Preamble(opts)
	if err != nil {
		return "", err
	}
	return preamble + "\n" + body, nil
}
