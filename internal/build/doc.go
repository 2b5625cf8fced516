// Package build runs a complete typstbuilder build.
//
// A build loads the configuration's documents from the source directory,
// translates each document tree, assembles the Typst source and metadata
// sidecar and collects every output as an assemble.Plan effect. The Executor
// applies the plan to the output directory, skipping files whose content is
// unchanged. All execution paths (build, watch, tests) route through
// BuildService.
//
// A fatal problem in one document stops only that document; the others are
// still built and the errors are returned joined.
package build
