package releasenotes

import (
	"embed"
	"strings"

	"github.com/grokify/structured-locale/messages"
)

//go:embed locales/*.json
var defaultLocales embed.FS

// defaultBundle holds the embedded default section-title translations.
var defaultBundle *messages.Bundle

func init() {
	defaultBundle = messages.NewBundle("en")

	entries, err := defaultLocales.ReadDir("locales")
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := defaultLocales.ReadFile("locales/" + e.Name())
		if err != nil {
			continue
		}
		loc := strings.TrimSuffix(e.Name(), ".json")
		_ = defaultBundle.AddLocale(loc, data)
	}
}

// sectionMessageIDs maps DefaultSections' built-in titles to translation
// keys; user-defined custom sections have no entry and are left untouched.
var sectionMessageIDs = map[string]string{
	"Breaking changes": "section.breaking",
	"Features":         "section.features",
	"Fixes":            "section.fixes",
	"Notes":            "section.notes",
}

// LocalizeSections returns a copy of sections with built-in titles
// translated into locale, falling back to the configured title for
// anything the bundle has no translation for.
func LocalizeSections(sections []SectionConfig, locale string) []SectionConfig {
	if locale == "" {
		locale = "en"
	}
	l := defaultBundle.Localizer(locale)

	out := make([]SectionConfig, len(sections))
	copy(out, sections)
	for i, sc := range sections {
		id, known := sectionMessageIDs[sc.Title]
		if !known {
			continue
		}
		if translated := l.T(id); translated != "" {
			out[i].Title = translated
		}
	}
	return out
}
