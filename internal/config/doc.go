// Package config loads the typstbuilder configuration file.
//
// Loading runs in fixed phases: optional .env files are read into the
// environment, ${VAR} references in the raw YAML are expanded, the document is
// decoded strictly, enumerations are normalized, per-domain defaults are
// applied and the result is validated. Relative paths are resolved against the
// directory holding the configuration file.
package config
