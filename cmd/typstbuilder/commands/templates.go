package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/templates"
)

// TemplatesCmd groups template commands.
type TemplatesCmd struct {
	List  TemplatesListCmd  `cmd:"" default:"1" help:"List available templates"`
	Eject TemplatesEjectCmd `cmd:"" help:"Copy a template into a directory for customization"`
}

// TemplatesListCmd implements 'typstbuilder templates list'.
type TemplatesListCmd struct{}

func (t *TemplatesListCmd) Run(g *Global, root *CLI) error {
	registry, err := templateRegistry(g, root)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	for _, tmpl := range registry.Templates() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", tmpl.Name, tmpl.Origin, tmpl.Manifest.Description)
	}
	return tw.Flush()
}

// TemplatesEjectCmd implements 'typstbuilder templates eject'.
type TemplatesEjectCmd struct {
	Name  string `arg:"" help:"Template to eject"`
	Dir   string `short:"d" help:"Directory receiving <dir>/<name>" default:"templates" type:"path"`
	Force bool   `help:"Overwrite existing files"`
}

func (t *TemplatesEjectCmd) Run(g *Global, root *CLI) error {
	registry, err := templateRegistry(g, root)
	if err != nil {
		return err
	}
	tmpl, err := registry.Lookup(t.Name)
	if err != nil {
		return err
	}
	written, err := templates.Eject(tmpl, t.Dir, t.Force)
	for _, p := range written {
		_, _ = fmt.Fprintf(g.Stdout, "Wrote %s\n", p)
	}
	return err
}

// templateRegistry discovers the templates visible to the configuration,
// or only the built-ins when there is none.
func templateRegistry(g *Global, root *CLI) (*templates.Registry, error) {
	cfg, err := loadConfig(g, root)
	if err != nil {
		if !errors.HasCategory(err, errors.CategoryNotFound) {
			return nil, err
		}
		g.Logger.Debug("No configuration file; using built-in templates only")
		return templates.Discover(nil)
	}
	return templates.Discover(cfg.Template.Paths)
}
