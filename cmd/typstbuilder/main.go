package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/typstbuilder/cmd/typstbuilder/commands"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("typstbuilder"),
		kong.Description("Translate Sphinx document trees and Markdown into Typst sources."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	global := commands.NewGlobal()
	if err := ctx.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
	}
}
