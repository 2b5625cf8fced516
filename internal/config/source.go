package config

import (
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/normalization"
)

// SourceFormat selects how document trees are read.
type SourceFormat string

const (
	// SourceFormatAuto picks the loader from the file extension.
	SourceFormatAuto     SourceFormat = "auto"
	SourceFormatXML      SourceFormat = "xml"
	SourceFormatYAML     SourceFormat = "yaml"
	SourceFormatMarkdown SourceFormat = "markdown"
)

var sourceFormatNormalizer = normalization.NewNormalizer("source.format", map[string]SourceFormat{
	"auto":     SourceFormatAuto,
	"xml":      SourceFormatXML,
	"yaml":     SourceFormatYAML,
	"yml":      SourceFormatYAML,
	"json":     SourceFormatYAML,
	"markdown": SourceFormatMarkdown,
	"md":       SourceFormatMarkdown,
}, SourceFormatAuto)

// ParseSourceFormat maps raw onto a format; blank input means auto.
func ParseSourceFormat(raw string) (SourceFormat, error) {
	return sourceFormatNormalizer.NormalizeWithError(raw)
}
