package config

// Config is the complete build configuration.
type Config struct {
	Project  string `yaml:"project"`
	Author   string `yaml:"author"`
	Language string `yaml:"language"`
	// Date is YYYY-MM-DD. When empty, $LAST_MODIFIED and then the current
	// date are used.
	Date string `yaml:"date"`

	Source    SourceConfig     `yaml:"source"`
	Template  TemplateConfig   `yaml:"template"`
	Documents []DocumentConfig `yaml:"documents"`
	// Tags are set for only directives in addition to the builder tags.
	Tags             []string          `yaml:"tags"`
	AdmonitionLabels map[string]string `yaml:"admonition_labels"`
	Output           OutputConfig      `yaml:"output"`
	Logging          LoggingConfig     `yaml:"logging"`
	Metrics          MetricsConfig     `yaml:"metrics"`

	// BaseDir is the directory of the loaded file; relative paths are
	// resolved against it.
	BaseDir string `yaml:"-"`
}

// SourceConfig locates the document trees.
type SourceConfig struct {
	Directory string       `yaml:"directory"`
	Format    SourceFormat `yaml:"format"`
}

// TemplateConfig selects the Typst template.
type TemplateConfig struct {
	Name string `yaml:"name"`
	// Paths are searched for template directories before the built-ins.
	Paths []string `yaml:"paths"`
}

// DocumentConfig describes one output document.
type DocumentConfig struct {
	StartDoc string `yaml:"start_doc"`
	// Target names the output files <target>.typ and <target>.metadata.json.
	Target string `yaml:"target"`
	// Title replaces the title found in the document.
	Title string `yaml:"title"`
	// Appendices are documents appended after the start document.
	Appendices []string `yaml:"appendices"`
	// Metadata is merged into the metadata sidecar.
	Metadata map[string]any `yaml:"metadata"`
}

// OutputConfig controls where files are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	// Clean removes the output directory before the build.
	Clean bool `yaml:"clean"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// Textfile receives the metrics in Prometheus text format after a build.
	Textfile string `yaml:"textfile"`
}
