package config

import (
	"fmt"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
)

// NormalizeConfig canonicalizes enumerations and the language tag in place
// and returns a warning for every value it changed or replaced.
func NormalizeConfig(c *Config) ([]string, error) {
	if c == nil {
		return nil, errors.InternalError("config nil").Build()
	}
	var warnings []string

	if c.Language != "" {
		tag, err := language.Parse(c.Language)
		if err != nil {
			warnings = append(warnings, warnUnknown("language", c.Language, "en"))
			c.Language = "en"
		} else if canonical := tag.String(); canonical != c.Language {
			warnings = append(warnings, warnChanged("language", c.Language, canonical))
			c.Language = canonical
		}
	}

	format, err := ParseSourceFormat(string(c.Source.Format))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid source format").
			WithContext("format", string(c.Source.Format)).Build()
	}
	if c.Source.Format != "" && format != c.Source.Format {
		warnings = append(warnings, warnChanged("source.format", c.Source.Format, format))
	}
	c.Source.Format = format

	if lvl, err := logLevelNormalizer.NormalizeWithError(string(c.Logging.Level)); err != nil {
		warnings = append(warnings, warnUnknown("logging.level", string(c.Logging.Level), string(LogLevelInfo)))
		c.Logging.Level = LogLevelInfo
	} else {
		c.Logging.Level = lvl
	}
	if f, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format)); err != nil {
		warnings = append(warnings, warnUnknown("logging.format", string(c.Logging.Format), string(LogFormatText)))
		c.Logging.Format = LogFormatText
	} else {
		c.Logging.Format = f
	}
	return warnings, nil
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
