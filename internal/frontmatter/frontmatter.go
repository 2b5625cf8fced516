// Package frontmatter reads the YAML header of Markdown sources.
//
// A header is delimited by "---" lines at the very start of the file. Known
// keys (title, label, tags) drive the document tree; every other key is handed
// through to the document metadata.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the source started with a header
// delimiter but did not contain a closing one.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Header keys with a meaning of their own.
const (
	KeyTitle = "title"
	KeyLabel = "label"
	KeyTags  = "tags"
)

// Header is a parsed front matter block.
type Header struct {
	Fields map[string]any
}

// Split separates the front matter from the Markdown body. Without a leading
// delimiter, had is false and body is the full input.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its header. A source without front matter
// yields an empty header.
func Parse(content []byte) (Header, []byte, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Header{}, nil, err
	}
	if !had {
		return Header{Fields: map[string]any{}}, body, nil
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return Header{}, nil, err
	}
	return Header{Fields: fields}, body, nil
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(header []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(header)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Title returns the title key, or "" when it is missing or not a string.
func (h Header) Title() string {
	s, _ := h.Fields[KeyTitle].(string)
	return s
}

// Labels returns the label key as a list; a single string is one label.
func (h Header) Labels() []string {
	return stringList(h.Fields[KeyLabel])
}

// Tags returns the tags key as a list.
func (h Header) Tags() []string {
	return stringList(h.Fields[KeyTags])
}

// Extra returns the fields without a meaning of their own.
func (h Header) Extra() map[string]any {
	out := make(map[string]any, len(h.Fields))
	for k, v := range h.Fields {
		switch k {
		case KeyTitle, KeyLabel, KeyTags:
			continue
		}
		out[k] = v
	}
	return out
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
