// Package assemble turns a translated body into the files of an output
// document: the Typst source with its preamble, the metadata sidecar the
// source reads at compile time, and the list of files to copy next to it.
//
// Nothing in this package touches the filesystem. Plan describes the work as
// a list of effects which the build driver executes.
package assemble
