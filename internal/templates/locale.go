package templates

import (
	"encoding/json"
	"maps"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocaleFile is the output file templates read localized strings from.
const LocaleFile = "locale.json"

// AdmonitionKinds are the admonitions with a localized default title.
var AdmonitionKinds = []string{
	"attention", "caution", "danger", "error", "hint",
	"important", "note", "tip", "warning", "seealso",
}

// Locale holds the localized strings of a build.
type Locale struct {
	Language        string            `json:"language"`
	Admonitions     map[string]string `json:"admonitions"`
	VersionModified map[string]string `json:"versionmodified"`
}

type localeStrings struct {
	admonitions     map[string]string
	versionModified map[string]string
}

var (
	localeTags = []language.Tag{language.English, language.German, language.French}
	matcher    = language.NewMatcher(localeTags)

	translations = []localeStrings{
		{
			admonitions: map[string]string{
				"attention": "Attention", "caution": "Caution", "danger": "Danger",
				"error": "Error", "hint": "Hint", "important": "Important",
				"note": "Note", "tip": "Tip", "warning": "Warning", "seealso": "See also",
			},
			versionModified: map[string]string{
				"versionadded": "New in version", "versionchanged": "Changed in version",
				"deprecated": "Deprecated since version", "versionremoved": "Removed in version",
			},
		},
		{
			admonitions: map[string]string{
				"attention": "Achtung", "caution": "Vorsicht", "danger": "Gefahr",
				"error": "Fehler", "hint": "Hinweis", "important": "Wichtig",
				"note": "Bemerkung", "tip": "Tipp", "warning": "Warnung", "seealso": "Siehe auch",
			},
			versionModified: map[string]string{
				"versionadded": "Neu in Version", "versionchanged": "Geändert in Version",
				"deprecated": "Veraltet ab Version", "versionremoved": "Entfernt in Version",
			},
		},
		{
			admonitions: map[string]string{
				"attention": "Attention", "caution": "Prudence", "danger": "Danger",
				"error": "Erreur", "hint": "Indication", "important": "Important",
				"note": "Note", "tip": "Astuce", "warning": "Avertissement", "seealso": "Voir aussi",
			},
			versionModified: map[string]string{
				"versionadded": "Nouveau dans la version", "versionchanged": "Modifié dans la version",
				"deprecated": "Obsolète depuis la version", "versionremoved": "Supprimé dans la version",
			},
		},
	}
)

// NewLocale returns the strings for lang, a BCP 47 tag, with overrides
// replacing admonition titles. Unsupported languages fall back to the
// closest match, English at worst.
func NewLocale(lang string, overrides map[string]string) Locale {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	_, index, _ := matcher.Match(tag)
	table := translations[index]

	admonitions := maps.Clone(table.admonitions)
	caser := cases.Title(tag)
	for kind, title := range overrides {
		if title == "" {
			title = caser.String(kind)
		}
		admonitions[kind] = title
	}
	return Locale{
		Language:        tag.String(),
		Admonitions:     admonitions,
		VersionModified: maps.Clone(table.versionModified),
	}
}

// Encode returns the content of LocaleFile.
func (l Locale) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
