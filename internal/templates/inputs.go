package templates

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Prompter asks for a field value interactively. An empty answer skips the
// field.
type Prompter interface {
	Prompt(field Field) (string, error)
}

// ResolveInputs merges the metadata values a template reads.
//
// Values are taken, in increasing precedence, from defaults and from values.
// Values given as text are parsed according to the field type; other values
// are checked against it. Keys the template does not declare pass through
// unchanged. When prompter is non-nil it is asked for every declared field
// still missing. Required fields must end up with a value.
func ResolveInputs(fields []Field, defaults, values map[string]any, prompter Prompter) (map[string]any, error) {
	result := make(map[string]any, len(defaults)+len(values))
	byKey := make(map[string]Field, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}

	assign := func(key string, value any) error {
		if value == nil {
			return nil
		}
		field, ok := byKey[key]
		if !ok {
			result[key] = value
			return nil
		}
		parsed, has, err := coerceValue(field, value)
		if err != nil {
			return err
		}
		if has {
			result[key] = parsed
		}
		return nil
	}
	for key, value := range defaults {
		if err := assign(key, value); err != nil {
			return nil, fmt.Errorf("template default: %w", err)
		}
	}
	for key, value := range values {
		if err := assign(key, value); err != nil {
			return nil, err
		}
	}

	if prompter != nil {
		for _, field := range fields {
			if _, ok := result[field.Key]; ok {
				continue
			}
			answer, err := prompter.Prompt(field)
			if err != nil {
				return nil, err
			}
			if err := assign(field.Key, answer); err != nil {
				return nil, err
			}
		}
	}

	for _, field := range fields {
		if _, ok := result[field.Key]; field.Required && !ok {
			return nil, fmt.Errorf("missing required field: %s", field.Key)
		}
	}
	return result, nil
}

func coerceValue(field Field, value any) (any, bool, error) {
	switch v := value.(type) {
	case string:
		return parseInputValue(field, v)
	case bool:
		if field.Type != FieldTypeBool {
			return nil, false, fmt.Errorf("field %s: want %s, got a boolean", field.Key, field.Type)
		}
		return v, true, nil
	case []string:
		if field.Type != FieldTypeStringList {
			return nil, false, fmt.Errorf("field %s: want %s, got a list", field.Key, field.Type)
		}
		return v, len(v) > 0, nil
	case []any:
		if field.Type != FieldTypeStringList {
			return nil, false, fmt.Errorf("field %s: want %s, got a list", field.Key, field.Type)
		}
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false, fmt.Errorf("field %s: list items must be strings", field.Key)
			}
			items = append(items, s)
		}
		return items, len(items) > 0, nil
	default:
		return nil, false, fmt.Errorf("field %s: unsupported value %v", field.Key, value)
	}
}

// parseInputValue parses text entered for field. The second result is false
// for blank input.
func parseInputValue(field Field, input string) (any, bool, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return nil, false, nil
	}

	switch field.Type {
	case FieldTypeString:
		return value, true, nil
	case FieldTypeStringEnum:
		if len(field.Options) > 0 && !slices.Contains(field.Options, value) {
			return nil, false, fmt.Errorf("invalid value %q for %s, valid options: %s",
				value, field.Key, strings.Join(field.Options, ", "))
		}
		return value, true, nil
	case FieldTypeStringList:
		var items []string
		for _, part := range strings.Split(value, ",") {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
		return items, len(items) > 0, nil
	case FieldTypeBool:
		parsed, err := parseBool(value)
		if err != nil {
			return nil, false, fmt.Errorf("invalid boolean for %s", field.Key)
		}
		return parsed, true, nil
	default:
		return nil, false, errors.New("unsupported field type: " + string(field.Type))
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(s))
}
