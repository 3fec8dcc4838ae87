package localization

import (
	"strings"

	"golang.org/x/text/language"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Romanian,
	language.Russian,
})

// Negotiate picks the locale for a request. A supported path segment wins;
// otherwise the Accept-Language header is matched against the supported
// set, and DefaultLocale is used when nothing matches.
func Negotiate(pathSegment, acceptLanguage string) Locale {
	if loc, ok := ParseLocale(pathSegment); ok {
		return loc
	}
	return FromAcceptLanguage(acceptLanguage)
}

// FromAcceptLanguage matches an Accept-Language header value.
func FromAcceptLanguage(header string) Locale {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supportedLocales) {
		return DefaultLocale
	}
	return supportedLocales[index]
}
