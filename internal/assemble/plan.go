package assemble

import (
	"io/fs"
	"path"
	"slices"
)

// EffectKind names what an effect does.
type EffectKind int

const (
	// WriteFile writes Content.
	WriteFile EffectKind = iota
	// CopyTemplate copies the template files in FS.
	CopyTemplate
	// CopyImage copies an image file.
	CopyImage
	// AttachFile copies a file attached with a download role.
	AttachFile
)

var effectKindNames = [...]string{"write", "template", "image", "attachment"}

func (k EffectKind) String() string {
	if int(k) < len(effectKindNames) {
		return effectKindNames[k]
	}
	return "unknown"
}

// Effect is a single filesystem operation of a build.
type Effect struct {
	Kind EffectKind
	// Path is the destination relative to the output directory, slash
	// separated.
	Path string
	// Source is the file to copy, or a description of FS for templates.
	Source  string
	FS      fs.FS
	Content []byte
}

// Plan is the ordered, duplicate free list of effects of a build. Effects are
// keyed by destination: the first effect for a path wins. The zero value is
// ready to use.
type Plan struct {
	effects []Effect
	index   map[string]int
}

func (p *Plan) add(e Effect) bool {
	e.Path = path.Clean(e.Path)
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if _, ok := p.index[e.Path]; ok {
		return false
	}
	p.index[e.Path] = len(p.effects)
	p.effects = append(p.effects, e)
	return true
}

// WriteFile plans writing content to dest.
func (p *Plan) WriteFile(dest string, content []byte) bool {
	return p.add(Effect{Kind: WriteFile, Path: dest, Content: content})
}

// CopyTemplate plans copying the files of a template to templates/<name>.
// origin describes where they come from, for logs and dry runs.
func (p *Plan) CopyTemplate(name, origin string, files fs.FS) bool {
	return p.add(Effect{Kind: CopyTemplate, Path: path.Join("templates", name), Source: origin, FS: files})
}

// CopyImage plans copying src to dest.
func (p *Plan) CopyImage(src, dest string) bool {
	return p.add(Effect{Kind: CopyImage, Path: dest, Source: src})
}

// AttachFile plans copying src to downloads/<filename>.
func (p *Plan) AttachFile(src, filename string) bool {
	return p.add(Effect{Kind: AttachFile, Path: path.Join("downloads", filename), Source: src})
}

// Lookup returns the effect planned for dest.
func (p *Plan) Lookup(dest string) (Effect, bool) {
	i, ok := p.index[path.Clean(dest)]
	if !ok {
		return Effect{}, false
	}
	return p.effects[i], true
}

// Effects returns the planned effects in the order they were added.
func (p *Plan) Effects() []Effect {
	return slices.Clone(p.effects)
}

// Len returns the number of planned effects.
func (p *Plan) Len() int { return len(p.effects) }
