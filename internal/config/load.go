package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "typstbuilder.yaml"

// LoadResult reports what Load did besides producing the configuration.
type LoadResult struct {
	// EnvFiles lists the .env files that were read.
	EnvFiles []string
	// Warnings describes values that normalization changed.
	Warnings []string
}

// Load reads, normalizes, defaults and validates the configuration at path.
func Load(path string) (*Config, *LoadResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryConfig, "resolve configuration path").
			WithContext("path", path).Build()
	}
	data, err := os.ReadFile(abs) // #nosec G304 -- path is chosen by the user
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
			WithContext("path", path).Fatal().Build()
	}
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration file").
			WithContext("path", path).Build()
	}

	res := &LoadResult{}
	if res.EnvFiles, err = loadEnvFiles(filepath.Dir(abs)); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryConfig, "load env file").Build()
	}

	cfg, err := Parse(bytes.NewReader(data), filepath.Dir(abs), res)
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

// Parse decodes a configuration document after expanding environment
// references and completes it as Load does. baseDir anchors relative paths.
func Parse(r io.Reader, baseDir string, res *LoadResult) (*Config, error) {
	if res == nil {
		res = &LoadResult{}
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration").Build()
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(raw)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "decode configuration").Build()
	}
	cfg.BaseDir = baseDir

	warnings, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(res.Warnings, warnings...)

	if err := ApplyDefaults(cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "apply defaults").Build()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used without a configuration file,
// rooted at baseDir.
func Default(baseDir string) (*Config, error) {
	cfg := &Config{BaseDir: baseDir}
	if _, err := NormalizeConfig(cfg); err != nil {
		return nil, err
	}
	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, ValidateConfig(cfg)
}

// Resolve returns p anchored at the configuration directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// String renders the configuration as YAML, for debugging.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(out)
}
