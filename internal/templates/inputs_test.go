package templates

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPrompter struct {
	responses map[string]string
	calls     []string
}

func (s *stubPrompter) Prompt(field Field) (string, error) {
	s.calls = append(s.calls, field.Key)
	if value, ok := s.responses[field.Key]; ok {
		return value, nil
	}
	return "", errors.New("missing response")
}

var reportFields = []Field{
	{Key: "subtitle", Type: FieldTypeString, Required: true},
	{Key: "keywords", Type: FieldTypeStringList},
	{Key: "outline", Type: FieldTypeBool},
	{Key: "paper", Type: FieldTypeStringEnum, Options: []string{"a4", "a5"}},
}

func TestResolveInputs_DefaultsAndValues(t *testing.T) {
	defaults := map[string]any{"paper": "a4", "outline": true}
	values := map[string]any{
		"subtitle": "Draft",
		"keywords": []any{"typst", "docs"},
		"paper":    "a5",
		"custom":   42,
	}

	got, err := ResolveInputs(reportFields, defaults, values, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"subtitle": "Draft",
		"keywords": []string{"typst", "docs"},
		"outline":  true,
		"paper":    "a5",
		"custom":   42,
	}, got)
}

func TestResolveInputs_Prompts(t *testing.T) {
	prompter := &stubPrompter{responses: map[string]string{
		"subtitle": "Asked",
		"keywords": "a, b,,",
		"outline":  "no",
	}}

	got, err := ResolveInputs(reportFields, map[string]any{"paper": "a4"}, nil, prompter)
	require.NoError(t, err)
	require.Equal(t, []string{"subtitle", "keywords", "outline"}, prompter.calls)
	require.Equal(t, "Asked", got["subtitle"])
	require.Equal(t, []string{"a", "b"}, got["keywords"])
	require.Equal(t, false, got["outline"])
}

func TestResolveInputs_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"missing required", map[string]any{}},
		{"enum outside options", map[string]any{"subtitle": "x", "paper": "letter"}},
		{"wrong type", map[string]any{"subtitle": true}},
		{"bad boolean", map[string]any{"subtitle": "x", "outline": "maybe"}},
		{"non-string list item", map[string]any{"subtitle": "x", "keywords": []any{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveInputs(reportFields, nil, tt.values, nil)
			require.Error(t, err)
		})
	}
}

func TestResolveInputs_PromptError(t *testing.T) {
	_, err := ResolveInputs(reportFields, nil, nil, &stubPrompter{})
	require.Error(t, err)
}
