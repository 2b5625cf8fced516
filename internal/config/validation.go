package config

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typstbuilder/internal/assemble"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
)

// ValidateConfig checks a defaulted configuration. All problems are reported
// together as one validation error.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	v.validateDate()
	v.validateDocuments()
	v.validateTemplate()
	if len(v.problems) == 0 {
		return nil
	}
	return errors.WrapError(stderrors.Join(v.problems...), errors.CategoryValidation, "configuration validation failed").
		WithContext("problems", len(v.problems)).Build()
}

type configurationValidator struct {
	config   *Config
	problems []error
}

func (v *configurationValidator) fail(format string, args ...any) {
	v.problems = append(v.problems, fmt.Errorf(format, args...))
}

func (v *configurationValidator) validateDate() {
	if _, err := assemble.ParseDate(v.config.Date); err != nil {
		v.fail("date: %w", err)
	}
}

func (v *configurationValidator) validateDocuments() {
	seen := make(map[string]int)
	for i, doc := range v.config.Documents {
		if strings.TrimSpace(doc.StartDoc) == "" {
			v.fail("documents[%d]: start_doc is required", i)
		}
		target := strings.TrimSpace(doc.Target)
		if target == "" {
			v.fail("documents[%d]: target is required", i)
			continue
		}
		if filepath.IsAbs(target) || strings.ContainsAny(target, `/\`) || target == "." || target == ".." {
			v.fail("documents[%d]: target %q must be a plain file name", i, target)
		}
		if prev, ok := seen[target]; ok {
			v.fail("documents[%d]: target %q already used by documents[%d]", i, target, prev)
			continue
		}
		seen[target] = i
		for j, app := range doc.Appendices {
			if strings.TrimSpace(app) == "" {
				v.fail("documents[%d].appendices[%d]: empty document name", i, j)
			}
		}
	}
}

func (v *configurationValidator) validateTemplate() {
	name := v.config.Template.Name
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		v.fail("template.name %q is not a valid template name", name)
	}
}
