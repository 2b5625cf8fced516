package templates

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed builtin
var builtinFS embed.FS

// BuiltinOrigin is the origin recorded for embedded templates.
const BuiltinOrigin = "builtin"

// Builtins returns the embedded templates.
func Builtins() ([]*Template, error) {
	root, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("read built-in templates: %w", err)
	}
	out := make([]*Template, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		files, err := fs.Sub(root, e.Name())
		if err != nil {
			return nil, err
		}
		t, err := NewTemplate(e.Name(), BuiltinOrigin, files)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
