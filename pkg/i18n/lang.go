package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing else is configured.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// Negotiate picks the best supported language for an Accept-Language header.
// It returns def when the header is empty, malformed or matches nothing.
func Negotiate(header string, supported []string, def string) string {
	if header == "" || len(supported) == 0 {
		return def
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return def
	}
	return match(prefs, supported, def)
}

// Normalize maps a single language code onto the supported set.
func Normalize(lang string, supported []string, def string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return def
	}
	return match([]language.Tag{tag}, supported, def)
}

func match(prefs []language.Tag, supported []string, def string) string {
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, s)
	}
	if len(tags) == 0 {
		return def
	}

	_, idx, conf := language.NewMatcher(tags).Match(prefs...)
	if conf == language.No {
		return def
	}
	return names[idx]
}
