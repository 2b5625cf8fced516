package commands

import (
	"bufio"
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typstbuilder/internal/build"
	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/templates"
)

func testGlobal(stdin string) (*Global, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Global{
		Logger: slog.New(slog.NewTextHandler(&stderr, nil)),
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestParseSetFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", values: nil, want: map[string]any{}},
		{name: "pairs", values: []string{"paper=a5", " subtitle = Draft "}, want: map[string]any{"paper": "a5", "subtitle": "Draft"}},
		{name: "value with equals", values: []string{"note=a=b"}, want: map[string]any{"note": "a=b"}},
		{name: "missing equals", values: []string{"paper"}, wantErr: true},
		{name: "empty key", values: []string{"=a4"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSetFlags(tt.values)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCLIPrompter(t *testing.T) {
	var out bytes.Buffer
	p := &cliPrompter{reader: bufio.NewReader(strings.NewReader("a5\nDraft")), writer: &out}

	got, err := p.Prompt(templates.Field{Key: "paper", Type: templates.FieldTypeStringEnum, Options: []string{"a4", "a5"}})
	require.NoError(t, err)
	require.Equal(t, "a5", got)
	require.Contains(t, out.String(), "paper [a4, a5]: ")

	got, err = p.Prompt(templates.Field{Key: "subtitle", Required: true})
	require.NoError(t, err)
	require.Equal(t, "Draft", got)
	require.Contains(t, out.String(), "subtitle (required): ")

	got, err = p.Prompt(templates.Field{Key: "outline"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPrintSummary(t *testing.T) {
	res := &build.BuildResult{
		Status:     build.BuildStatusPartial,
		OutputPath: "/out",
		Duration:   1500 * time.Microsecond,
		Documents: []build.DocumentResult{
			{Target: "main", Title: "Guide", Status: build.DocumentStatusSuccess},
			{Target: "faq", Status: build.DocumentStatusFailed, Err: errors.New("boom")},
		},
		Outputs: []build.OutputResult{{Path: "main.typ", Changed: true}, {Path: "main.metadata.json"}},
	}
	var buf bytes.Buffer
	printSummary(&buf, res, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, ` OK  main.typ  "Guide"`, lines[0])
	require.Equal(t, "FAIL faq.typ  boom", lines[1])
	require.Equal(t, "partial: 2 documents, 1 failed, 1 of 2 files written in /out (2ms)", lines[2])
}

func TestInitWritesConfiguration(t *testing.T) {
	dir := t.TempDir()
	root := &CLI{Config: filepath.Join(dir, config.DefaultFile)}
	g, stdout, _ := testGlobal("")

	cmd := &InitCmd{Defaults: true, Set: []string{"paper=a5"}, Project: "Handbook", Language: "de", SourceDir: "_build/xml", Template: "default"}
	require.NoError(t, cmd.Run(g, root))
	require.Contains(t, stdout.String(), "Wrote ")

	cfg, _, err := config.Load(root.Config)
	require.NoError(t, err)
	require.Equal(t, "Handbook", cfg.Project)
	require.Equal(t, "de", cfg.Language)
	require.Equal(t, "default", cfg.Template.Name)
	require.Equal(t, filepath.Join(dir, "_build/xml"), cfg.Source.Directory)

	err = cmd.Run(g, root)
	require.ErrorIs(t, err, templates.ErrFileExists)

	cmd.Force = true
	require.NoError(t, cmd.Run(g, root))
}

func TestInitRejectsBadSetValue(t *testing.T) {
	root := &CLI{Config: filepath.Join(t.TempDir(), config.DefaultFile)}
	g, _, _ := testGlobal("")
	err := (&InitCmd{Defaults: true, Set: []string{"paper=b5"}, Template: "default"}).Run(g, root)
	require.Error(t, err)
	_, statErr := os.Stat(root.Config)
	require.True(t, os.IsNotExist(statErr))
}

func TestTranslateBody(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(src, []byte("# Guide\n\nHello *world*.\n"), 0o600))
	g, stdout, _ := testGlobal("")

	require.NoError(t, (&TranslateCmd{Tree: src, Template: "default", Body: true}).Run(g, nil))
	require.Contains(t, stdout.String(), `#"Hello "#emph[#"world"]#"."`)
	require.NotContains(t, stdout.String(), "#import")
}

func TestTranslateDocument(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(src, []byte("# Guide\n\nHello.\n"), 0o600))
	g, stdout, _ := testGlobal("")

	require.NoError(t, (&TranslateCmd{Tree: src, Template: "default"}).Run(g, nil))
	require.Contains(t, stdout.String(), `#import "templates/default/template.typ": *`)
	require.Contains(t, stdout.String(), `json("index.metadata.json")`)
}

func TestTemplatesList(t *testing.T) {
	root := &CLI{Config: filepath.Join(t.TempDir(), config.DefaultFile)}
	g, stdout, _ := testGlobal("")
	require.NoError(t, (&TemplatesListCmd{}).Run(g, root))
	require.Contains(t, stdout.String(), "default")
	require.Contains(t, stdout.String(), "plain")
}

func TestTemplatesEject(t *testing.T) {
	dir := t.TempDir()
	root := &CLI{Config: filepath.Join(dir, config.DefaultFile)}
	g, _, _ := testGlobal("")
	require.NoError(t, (&TemplatesEjectCmd{Name: "plain", Dir: dir}).Run(g, root))
	_, err := os.Stat(filepath.Join(dir, "plain", "template.yaml"))
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	g, stdout, _ := testGlobal("")
	require.NoError(t, (&VersionCmd{}).Run(g, nil))
	require.True(t, strings.HasPrefix(stdout.String(), "typstbuilder "))
}
