// Package templates manages the Typst templates a document is laid out with.
//
// A template is a directory holding template.typ, which defines the entry
// function applied to the whole document and the functions the generated
// source calls for admonitions, topics, object descriptions and the like. An
// optional template.yaml manifest describes the template and declares the
// metadata fields it reads.
//
// Built-in templates are embedded in the binary. Directories listed in
// template.paths are searched first; a directory template replaces a built-in
// of the same name.
//
// The package also renders the localized strings templates read from
// locale.json, and the scaffold written by the init command.
package templates
