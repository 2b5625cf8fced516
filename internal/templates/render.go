package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"
)

//go:embed scaffold/typstbuilder.yaml.tmpl
var configScaffold string

// ScaffoldData fills the configuration written by init.
type ScaffoldData struct {
	Project   string
	Author    string
	Language  string
	SourceDir string
	Template  string
	// Metadata holds resolved template fields for the first document.
	Metadata map[string]any
	// Date defaults to today.
	Date string
}

// RenderConfigScaffold renders an example configuration file.
func RenderConfigScaffold(data ScaffoldData) ([]byte, error) {
	if data.Date == "" {
		data.Date = time.Now().UTC().Format(time.DateOnly)
	}
	if data.Template == "" {
		data.Template = DefaultName
	}
	if data.Language == "" {
		data.Language = "en"
	}
	funcs := template.FuncMap{
		"quote":     strconv.Quote,
		"yamlValue": yamlValue,
	}
	tpl, err := template.New("config").Funcs(funcs).Option("missingkey=error").Parse(configScaffold)
	if err != nil {
		return nil, fmt.Errorf("parse config scaffold: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render config scaffold: %w", err)
	}
	return buf.Bytes(), nil
}

// yamlValue writes a resolved field value as a YAML flow scalar or sequence.
func yamlValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
