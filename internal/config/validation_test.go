package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
)

func validConfig() *Config {
	return &Config{
		Date:      "2024-01-01",
		Template:  TemplateConfig{Name: "default"},
		Documents: []DocumentConfig{{StartDoc: "index", Target: "main"}},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad date", mutate: func(c *Config) { c.Date = "01/02/2024" }, wantErr: "date"},
		{name: "missing start doc", mutate: func(c *Config) { c.Documents[0].StartDoc = "" }, wantErr: "start_doc"},
		{name: "missing target", mutate: func(c *Config) { c.Documents[0].Target = " " }, wantErr: "target is required"},
		{name: "target with directory", mutate: func(c *Config) { c.Documents[0].Target = "out/main" }, wantErr: "plain file name"},
		{name: "duplicate target", mutate: func(c *Config) {
			c.Documents = append(c.Documents, DocumentConfig{StartDoc: "other", Target: "main"})
		}, wantErr: "already used"},
		{name: "empty appendix", mutate: func(c *Config) { c.Documents[0].Appendices = []string{""} }, wantErr: "appendices[0]"},
		{name: "template path", mutate: func(c *Config) { c.Template.Name = "../x" }, wantErr: "template.name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
			require.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestValidateConfigReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Date = "never"
	cfg.Documents[0].StartDoc = ""
	err := ValidateConfig(cfg)
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	n, _ := classified.Context().Get("problems")
	require.Equal(t, 2, n)
}
