package typst

import "strings"

var (
	stringEscaper = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", " ",
		"\r", " ",
		"\t", " ",
	)
	rawEscaper = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	markupEscaper = strings.NewReplacer(
		`\`, `\\`,
		`*`, `\*`,
		`_`, `\_`,
		"`", "\\`",
		`$`, `\$`,
		`#`, `\#`,
	)
)

// EscapeString returns s as a double-quoted Typst string literal for prose.
// Line breaks and tabs collapse to single spaces, which matches how prose
// whitespace is rendered anyway. The conversion is lossy.
func EscapeString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// EscapeRaw returns s as a double-quoted Typst string literal that preserves
// every character, for code listings and math source.
func EscapeRaw(s string) string {
	return `"` + rawEscaper.Replace(s) + `"`
}

// EscapeMarkup escapes the characters that are active in Typst markup mode.
// It is not idempotent: apply it exactly once to raw text.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

// StringList renders items as a Typst array of strings. A single item keeps
// the trailing comma Typst needs to tell an array from a parenthesized value.
func StringList(items []string) string {
	switch len(items) {
	case 0:
		return "()"
	case 1:
		return "(" + EscapeString(items[0]) + ",)"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = EscapeString(item)
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}
