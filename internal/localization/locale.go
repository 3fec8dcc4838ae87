package localization

import "strings"

// Locale identifies one of the languages content can be translated into.
type Locale string

const (
	EN Locale = "en"
	RO Locale = "ro"
	RU Locale = "ru"
)

// DefaultLocale is served when a request carries no usable locale.
const DefaultLocale = EN

var supportedLocales = []Locale{EN, RO, RU}

// fallbackChain is consulted, in order, after the requested locale.
var fallbackChain = []Locale{EN, RO}

// SupportedLocales returns the closed set of recognized locales, default first.
func SupportedLocales() []Locale {
	out := make([]Locale, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// ParseLocale normalizes value and reports whether it names a supported locale.
// Unrecognized values are returned normalized so callers can still resolve
// against them; resolution degrades to the fallback chain.
func ParseLocale(value string) (Locale, bool) {
	loc := Locale(strings.ToLower(strings.TrimSpace(value)))
	return loc, loc.Valid()
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, candidate := range supportedLocales {
		if l == candidate {
			return true
		}
	}
	return false
}

func (l Locale) String() string {
	return string(l)
}

// OrDefault returns l when it is supported and DefaultLocale otherwise.
func (l Locale) OrDefault() Locale {
	if l.Valid() {
		return l
	}
	return DefaultLocale
}
