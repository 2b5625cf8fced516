package templates

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldType is the type of a metadata field a template reads.
type FieldType string

const (
	// FieldTypeString is free-form text.
	FieldTypeString FieldType = "string"
	// FieldTypeStringEnum is one of Options.
	FieldTypeStringEnum FieldType = "string_enum"
	// FieldTypeStringList is a list of strings, written comma separated when
	// entered as text.
	FieldTypeStringList FieldType = "string_list"
	FieldTypeBool       FieldType = "bool"
)

// Field is a metadata field declared by a template manifest.
type Field struct {
	Key      string    `yaml:"key"`
	Type     FieldType `yaml:"type"`
	Required bool      `yaml:"required"`
	Options  []string  `yaml:"options,omitempty"`
}

// Manifest is the content of template.yaml.
type Manifest struct {
	Description string `yaml:"description"`
	// Entry names the function applied to the document.
	Entry    string         `yaml:"entry,omitempty"`
	Fields   []Field        `yaml:"fields,omitempty"`
	Defaults map[string]any `yaml:"defaults,omitempty"`
}

// ParseManifest decodes a template manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	for _, f := range m.Fields {
		if f.Key == "" {
			return Manifest{}, fmt.Errorf("parse %s: field without key", ManifestFile)
		}
		switch f.Type {
		case FieldTypeString, FieldTypeStringEnum, FieldTypeStringList, FieldTypeBool:
		default:
			return Manifest{}, fmt.Errorf("parse %s: field %s: unsupported type %q", ManifestFile, f.Key, f.Type)
		}
	}
	return m, nil
}
