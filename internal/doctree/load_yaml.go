package doctree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlNode is the serialized form read by LoadYAML:
//
//	kind: section
//	attrs: {ids: [intro], names: [introduction]}
//	children:
//	  - kind: title
//	    children: [{text: Introduction}]
//
// A node with a text key is a text node. JSON input has the same shape.
type yamlNode struct {
	Kind     string               `yaml:"kind"`
	Text     *string              `yaml:"text"`
	Attrs    map[string]yaml.Node `yaml:"attrs"`
	Children []yamlNode           `yaml:"children"`
}

// LoadYAML reads a YAML or JSON tree dump and returns its document node.
func LoadYAML(r io.Reader) (*Node, error) {
	var raw yamlNode
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding doctree YAML: %w", err)
	}
	root, err := convertYAML(raw, "")
	if err != nil {
		return nil, err
	}
	if root.Kind != KindDocument {
		return nil, fmt.Errorf("doctree root is %q, want document", root.Tag)
	}
	return root, nil
}

func convertYAML(y yamlNode, path string) (*Node, error) {
	if y.Text != nil {
		if y.Kind != "" || len(y.Children) > 0 {
			return nil, fmt.Errorf("doctree node %s: text nodes take no kind or children", pathOrRoot(path))
		}
		return Text(*y.Text), nil
	}
	if y.Kind == "" {
		return nil, fmt.Errorf("doctree node %s: missing kind", pathOrRoot(path))
	}
	n := NewTag(y.Kind)
	for key, value := range y.Attrs {
		switch value.Kind {
		case yaml.ScalarNode:
			n.Set(key, value.Value)
		case yaml.SequenceNode:
			items := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				items = append(items, item.Value)
			}
			n.SetList(key, items...)
		default:
			return nil, fmt.Errorf("doctree node %s: attribute %q must be a scalar or a list", pathOrRoot(path), key)
		}
	}
	for i, c := range y.Children {
		child, err := convertYAML(c, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		n.AppendChild(child)
	}
	return n, nil
}

func pathOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// Format selects a tree loader.
type Format string

const (
	FormatAuto Format = "auto"
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// Extensions maps file extensions to formats, in lookup order.
var Extensions = []struct {
	Ext    string
	Format Format
}{
	{".xml", FormatXML},
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
	{".json", FormatYAML},
}

// FormatFor returns the format of a file by its extension.
func FormatFor(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e.Ext == ext {
			return e.Format, true
		}
	}
	return "", false
}

// LoadFile reads a tree file. With FormatAuto the format follows the extension.
func LoadFile(path string, format Format) (*Node, error) {
	if format == FormatAuto || format == "" {
		f, ok := FormatFor(path)
		if !ok {
			return nil, fmt.Errorf("cannot infer doctree format of %s", path)
		}
		format = f
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatXML:
		return LoadXML(f)
	case FormatYAML:
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported doctree format %q", format)
	}
}
