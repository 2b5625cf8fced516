package commands

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/templates"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force     bool     `help:"Overwrite an existing configuration file"`
	Defaults  bool     `help:"Use template defaults and skip prompts"`
	Set       []string `name:"set" help:"Template fields for the first document (key=value)"`
	Project   string   `help:"Project name" default:"Documentation"`
	Author    string   `help:"Document author"`
	Language  string   `help:"Document language (BCP 47)" default:"en"`
	SourceDir string   `name:"source-dir" help:"Directory holding the document trees" default:"."`
	Template  string   `help:"Template to configure" default:"default"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	registry, err := templates.Discover(nil)
	if err != nil {
		return err
	}
	tmpl, err := registry.Lookup(i.Template)
	if err != nil {
		return err
	}
	overrides, err := parseSetFlags(i.Set)
	if err != nil {
		return err
	}

	var prompter templates.Prompter
	if !i.Defaults {
		prompter = &cliPrompter{reader: bufio.NewReader(g.Stdin), writer: g.Stdout}
	}
	inputs, err := templates.ResolveInputs(tmpl.Manifest.Fields, tmpl.Manifest.Defaults, overrides, prompter)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "resolve template fields").
			WithContext("template", tmpl.Name).Build()
	}

	content, err := templates.RenderConfigScaffold(templates.ScaffoldData{
		Project:   i.Project,
		Author:    i.Author,
		Language:  i.Language,
		SourceDir: i.SourceDir,
		Template:  tmpl.Name,
		Metadata:  inputs,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "render configuration").Build()
	}

	path, err := templates.WriteScaffoldFile(filepath.Dir(root.Config), filepath.Base(root.Config), content, i.Force)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write configuration").
			WithContext("path", root.Config).Build()
	}
	_, _ = fmt.Fprintf(g.Stdout, "Wrote %s\n", path)
	return nil
}

type cliPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func (c *cliPrompter) Prompt(field templates.Field) (string, error) {
	label := field.Key
	if field.Required {
		label += " (required)"
	}
	if field.Type == templates.FieldTypeStringEnum && len(field.Options) > 0 {
		_, _ = fmt.Fprintf(c.writer, "%s [%s]: ", label, strings.Join(field.Options, ", "))
	} else {
		_, _ = fmt.Fprintf(c.writer, "%s: ", label)
	}

	line, err := c.reader.ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
