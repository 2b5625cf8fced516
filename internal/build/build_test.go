package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typstbuilder/internal/config"
	"git.home.luguber.info/inful/typstbuilder/internal/templates"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg, err := config.Default(dir)
	require.NoError(t, err)
	cfg.Date = "2024-05-06"
	cfg.Author = "Docs Team"
	return cfg
}

func TestRun_MarkdownDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "---\nversion: \"1.2\"\n---\n# Guide\n\nHello ![logo](logo.png).\n")
	writeFile(t, dir, "logo.png", "png")
	cfg := testConfig(t, dir)

	res, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	require.Equal(t, BuildStatusSuccess, res.Status)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, "default", res.Template)
	require.Len(t, res.Documents, 1)
	require.Equal(t, "Guide", res.Documents[0].Title)
	require.Equal(t, DocumentStatusSuccess, res.Documents[0].Status)

	out := cfg.Output.Directory
	typ := readFile(t, out, "main.typ")
	require.Contains(t, typ, `#import "templates/default/template.typ": *`)
	require.Contains(t, typ, `json("main.metadata.json")`)
	require.Contains(t, typ, `"images/logo.png"`)
	require.Contains(t, typ, "Hello")

	sidecar := readFile(t, out, "main.metadata.json")
	require.Contains(t, sidecar, `"title": "Guide"`)
	require.Contains(t, sidecar, `"author": "Docs Team"`)
	require.Contains(t, sidecar, `"version": "1.2"`)
	require.Contains(t, sidecar, `"paper": "a4"`)
	require.Contains(t, sidecar, `"%index"`)

	require.Equal(t, "png", readFile(t, out, "images/logo.png"))
	require.FileExists(t, filepath.Join(out, templates.LocaleFile))
	require.FileExists(t, filepath.Join(out, "templates", "default", "template.typ"))
	require.Positive(t, res.Changed())
}

func TestRun_SecondRunIsUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Guide\n\nText.\n")
	cfg := testConfig(t, dir)
	svc := NewBuildService()

	_, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	res, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	require.NotEmpty(t, res.Outputs)
	require.Zero(t, res.Changed())
	for _, o := range res.Outputs {
		require.Len(t, o.Digest, 64, o.Path)
	}
}

func TestRun_DryRunWritesDiffsOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Guide\n")
	cfg := testConfig(t, dir)

	var diff bytes.Buffer
	res, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{DryRun: true, Diff: &diff},
	})
	require.NoError(t, err)
	require.Positive(t, res.Changed())
	require.NoDirExists(t, cfg.Output.Directory)
	require.Contains(t, diff.String(), "+++ b/main.typ")
	require.Contains(t, diff.String(), "+++ b/main.metadata.json")
}

func TestRun_XMLWithAppendix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.xml", `<document source="index.rst"><section ids="intro" names="intro"><title>Manual</title><paragraph>See <reference internal="True" refuri="%faq">the FAQ</reference>.</paragraph></section></document>`)
	writeFile(t, dir, "faq.xml", `<document source="faq.rst"><section ids="faq"><title>FAQ</title><paragraph>Answers.</paragraph></section></document>`)
	cfg := testConfig(t, dir)
	cfg.Documents = []config.DocumentConfig{{StartDoc: "index", Target: "manual", Appendices: []string{"faq"}, Title: "The Manual"}}

	res, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg, OutputDir: filepath.Join(dir, "out")})
	require.NoError(t, err)
	require.Equal(t, "The Manual", res.Documents[0].Title)
	require.Empty(t, res.Documents[0].Unresolved)

	typ := readFile(t, filepath.Join(dir, "out"), "manual.typ")
	require.Contains(t, typ, `#internal-link("%faq")`)
	require.Contains(t, typ, "Answers.")
	require.Contains(t, readFile(t, filepath.Join(dir, "out"), "manual.metadata.json"), `"%faq#faq"`)
}

func TestRun_FailedDocumentDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Guide\n")
	cfg := testConfig(t, dir)
	cfg.Documents = []config.DocumentConfig{
		{StartDoc: "missing", Target: "missing"},
		{StartDoc: "index", Target: "main"},
	}

	res, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSource))
	require.True(t, errors.Is(err, ErrSourceNotFound))
	require.Equal(t, BuildStatusPartial, res.Status)
	require.Equal(t, 1, res.Failed())
	require.Equal(t, DocumentStatusFailed, res.Documents[0].Status)
	require.FileExists(t, filepath.Join(cfg.Output.Directory, "main.typ"))
	require.NoFileExists(t, filepath.Join(cfg.Output.Directory, "missing.typ"))
}

func TestRun_UnknownTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Guide\n")
	cfg := testConfig(t, dir)
	cfg.Template.Name = "nope"

	res, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	require.True(t, errors.Is(err, templates.ErrUnknownTemplate))
	require.Equal(t, BuildStatusFailed, res.Status)
	require.NoDirExists(t, cfg.Output.Directory)
}

func TestRun_MissingImageIsAWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "# Guide\n\n![gone](gone.png)\n")
	cfg := testConfig(t, dir)

	res, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	require.Equal(t, DocumentStatusWarning, res.Documents[0].Status)
	require.Contains(t, readFile(t, cfg.Output.Directory, "main.typ"), `"gone.png"`)
}

func TestRun_PreflightRejectsOutputInSource(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	_, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg, OutputDir: dir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "is the source directory")
}

func TestFileLoader_Locate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guide/a.yaml", "tag: document\n")
	writeFile(t, dir, "guide/b.md", "# B\n")

	auto := NewFileLoader(dir, config.SourceFormatAuto)
	p, err := auto.Locate("guide/a")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "guide", "a.yaml"), p)
	_, err = auto.Locate("guide/b")
	require.NoError(t, err)

	xmlOnly := NewFileLoader(dir, config.SourceFormatXML)
	_, err = xmlOnly.Locate("guide/a")
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestUnifiedDiff(t *testing.T) {
	require.Empty(t, UnifiedDiff("a.typ", "same\n", "same\n"))

	before := "1\n2\n3\n4\n5\n6\n7\n8\n"
	after := "1\n2\n3\n4\nfive\n6\n7\n8\n"
	got := UnifiedDiff("a.typ", before, after)
	want := strings.Join([]string{
		"--- a/a.typ",
		"+++ b/a.typ",
		"@@",
		" 2",
		" 3",
		" 4",
		"-5",
		"+five",
		" 6",
		" 7",
		" 8",
		"",
	}, "\n")
	require.Equal(t, want, got)
}
