package templates

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
)

// ErrUnknownTemplate is the cause of lookups for unregistered names.
var ErrUnknownTemplate = stderrors.New("unknown template")

const (
	// EntryFile is the file the generated source imports.
	EntryFile = "template.typ"
	// ManifestFile optionally describes a template.
	ManifestFile = "template.yaml"
	// DefaultName is used when no template is configured.
	DefaultName = "default"
	// DefaultEntry is the entry function when the manifest names none.
	DefaultEntry = "template"
)

// Template is a named set of Typst files.
type Template struct {
	Name string
	// Origin is BuiltinOrigin or the directory the template was loaded from.
	Origin   string
	Manifest Manifest
	Files    fs.FS
}

// NewTemplate checks that files holds an entry file and reads the manifest.
func NewTemplate(name, origin string, files fs.FS) (*Template, error) {
	if _, err := fs.Stat(files, EntryFile); err != nil {
		return nil, fmt.Errorf("template %s (%s): %w", name, origin, err)
	}
	t := &Template{Name: name, Origin: origin, Files: files}
	data, err := fs.ReadFile(files, ManifestFile)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("template %s: %w", name, err)
	default:
		if t.Manifest, err = ParseManifest(data); err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
	}
	return t, nil
}

// Builtin reports whether t is embedded in the binary.
func (t *Template) Builtin() bool { return t.Origin == BuiltinOrigin }

// Entry returns the entry function name.
func (t *Template) Entry() string {
	if t.Manifest.Entry != "" {
		return t.Manifest.Entry
	}
	return DefaultEntry
}

// Registry holds templates by name.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds t, replacing a template of the same name.
func (r *Registry) Register(t *Template) {
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name] = t
}

// Lookup returns the template called name.
func (r *Registry) Lookup(name string) (*Template, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.WrapError(ErrUnknownTemplate, errors.CategoryTemplate, "unknown template "+name).
			WithContext("template", name).
			WithContext("available", strings.Join(r.Names(), ", ")).
			Build()
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Templates returns the registered templates sorted by name.
func (r *Registry) Templates() []*Template {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Template, len(names))
	for i, name := range names {
		out[i] = r.templates[name]
	}
	return out
}

// Discover registers the built-in templates and every template directory
// found below paths. Earlier paths take precedence over later ones and all
// of them over built-ins. Missing paths are skipped.
func Discover(paths []string) (*Registry, error) {
	r := NewRegistry()
	builtins, err := Builtins()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "load built-in templates").Build()
	}
	for _, t := range builtins {
		r.Register(t)
	}

	fromPaths := make(map[string]bool)
	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "read template path").
				WithContext("path", dir).Build()
		}
		for _, e := range entries {
			if !e.IsDir() || fromPaths[e.Name()] {
				continue
			}
			full := filepath.Join(dir, e.Name())
			if _, err := os.Stat(filepath.Join(full, EntryFile)); err != nil {
				continue
			}
			t, err := NewTemplate(e.Name(), full, os.DirFS(full))
			if err != nil {
				return nil, errors.WrapError(err, errors.CategoryTemplate, "load template").
					WithContext("path", full).Build()
			}
			fromPaths[t.Name] = true
			r.Register(t)
		}
	}
	return r, nil
}
