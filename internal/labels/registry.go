// Package labels maps the identifiers found in a document tree onto the
// labels that are attached in the generated Typst source.
//
// Identifiers are only unique within one source document, so every raw id is
// qualified with the document that is open when it is seen:
//
//	%guide/install#requirements
//
// A whole document is addressed as %guide/install. Several ids of one element
// resolve to the same canonical label, recorded as aliases; the Typst side
// looks references up in that alias table.
package labels

import (
	"errors"
	"maps"
	"strings"
)

// ErrNoOpenFile is returned by PopFile when no document is open.
var ErrNoOpenFile = errors.New("labels: no open document to close")

// Registry tracks open documents and the alias table. It is not safe for
// concurrent use; one translation owns one registry.
type Registry struct {
	files   []string
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{aliases: make(map[string]string)}
}

// DocumentLabel returns the label addressing a whole document.
func DocumentLabel(docname string) string {
	return "%" + docname
}

// PushFile opens docname; ids seen until the matching PopFile belong to it.
func (r *Registry) PushFile(docname string) {
	r.files = append(r.files, docname)
}

// PopFile closes the innermost open document.
func (r *Registry) PopFile() error {
	if len(r.files) == 0 {
		return ErrNoOpenFile
	}
	r.files = r.files[:len(r.files)-1]
	return nil
}

// CurrentFile returns the innermost open document, or "" if none is open.
func (r *Registry) CurrentFile() string {
	if len(r.files) == 0 {
		return ""
	}
	return r.files[len(r.files)-1]
}

// OpenFiles returns the depth of the open-document stack.
func (r *Registry) OpenFiles() int { return len(r.files) }

// Ref qualifies a raw id. Ids starting with '%' are already qualified and are
// returned as is, except that an empty anchor ("%doc#") is trimmed.
func (r *Registry) Ref(raw string) string {
	if strings.HasPrefix(raw, "%") {
		return strings.TrimSuffix(raw, "#")
	}
	return "%" + r.CurrentFile() + "#" + raw
}

// Register resolves ids and records each as an alias of the first one. It
// returns the canonical label as a one-element slice, ready to be attached to
// an element, or nil when ids is empty. Registering an id again overwrites its
// previous mapping.
func (r *Registry) Register(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	canonical := r.Ref(ids[0])
	for _, id := range ids {
		r.aliases[r.Ref(id)] = canonical
	}
	return []string{canonical}
}

// Resolve returns the canonical label for a qualified key.
func (r *Registry) Resolve(key string) (string, bool) {
	canonical, ok := r.aliases[key]
	return canonical, ok
}

// Len returns the number of aliases.
func (r *Registry) Len() int { return len(r.aliases) }

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	return maps.Clone(r.aliases)
}
