package config

import (
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/typstbuilder/internal/assemble"
)

// Default values.
const (
	DefaultProject   = "Documentation"
	DefaultLanguage  = "en"
	DefaultTemplate  = "default"
	DefaultStartDoc  = "index"
	DefaultTarget    = "main"
	DefaultOutputDir = "_build/typst"
)

// LastModifiedEnv overrides the document date. Its value starts with
// YYYYMMDD, as in reproducible build pipelines.
const LastModifiedEnv = "LAST_MODIFIED"

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ProjectDefaultApplier handles project, language and date.
type ProjectDefaultApplier struct {
	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

func (p *ProjectDefaultApplier) Domain() string { return "project" }

func (p *ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project == "" {
		cfg.Project = DefaultProject
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Date != "" {
		return nil
	}
	if v := os.Getenv(LastModifiedEnv); v != "" {
		d, err := assemble.ParseDate(v)
		if err != nil {
			return err
		}
		cfg.Date = d.String()
		return nil
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	cfg.Date = assemble.DateOf(now().UTC()).String()
	return nil
}

// DocumentDefaultApplier adds the default document and fills per-document
// fields.
type DocumentDefaultApplier struct{}

func (d *DocumentDefaultApplier) Domain() string { return "documents" }

func (d *DocumentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if len(cfg.Documents) == 0 {
		cfg.Documents = []DocumentConfig{{StartDoc: DefaultStartDoc, Target: DefaultTarget}}
	}
	for i := range cfg.Documents {
		doc := &cfg.Documents[i]
		if doc.StartDoc == "" && doc.Target == "" {
			doc.StartDoc, doc.Target = DefaultStartDoc, DefaultTarget
		}
		if doc.Target == "" {
			doc.Target = filepath.Base(doc.StartDoc)
		}
	}
	return nil
}

// PathDefaultApplier fills and anchors the source, template and output paths.
type PathDefaultApplier struct{}

func (p *PathDefaultApplier) Domain() string { return "paths" }

func (p *PathDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source.Directory == "" {
		cfg.Source.Directory = "."
	}
	cfg.Source.Directory = cfg.Resolve(cfg.Source.Directory)
	if cfg.Template.Name == "" {
		cfg.Template.Name = DefaultTemplate
	}
	for i, p := range cfg.Template.Paths {
		cfg.Template.Paths[i] = cfg.Resolve(p)
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	cfg.Output.Directory = cfg.Resolve(cfg.Output.Directory)
	if cfg.Metrics.Textfile != "" {
		cfg.Metrics.Textfile = cfg.Resolve(cfg.Metrics.Textfile)
	}
	return nil
}

// NewDefaultAppliers returns the appliers in the order they run.
func NewDefaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&ProjectDefaultApplier{},
		&DocumentDefaultApplier{},
		&PathDefaultApplier{},
	}
}

// ApplyDefaults runs every default applier on cfg.
func ApplyDefaults(cfg *Config) error {
	for _, a := range NewDefaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
