package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`
description: Report layout
entry: report
fields:
  - key: subtitle
    type: string
    required: true
  - key: paper
    type: string_enum
    options: [a4, a5]
defaults:
  paper: a4
`))
	require.NoError(t, err)
	require.Equal(t, "Report layout", m.Description)
	require.Equal(t, "report", m.Entry)
	require.Len(t, m.Fields, 2)
	require.Equal(t, FieldTypeStringEnum, m.Fields[1].Type)
	require.Equal(t, []string{"a4", "a5"}, m.Fields[1].Options)
	require.Equal(t, "a4", m.Defaults["paper"])
}

func TestParseManifest_Empty(t *testing.T) {
	m, err := ParseManifest([]byte("  \n"))
	require.NoError(t, err)
	require.Empty(t, m.Fields)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "descripton: typo\n",
		"missing key":  "fields:\n  - type: string\n",
		"unknown type": "fields:\n  - key: x\n    type: number\n",
		"bad yaml":     "fields: [\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifest([]byte(input))
			require.Error(t, err)
		})
	}
}
