// Package slugs derives URL-safe identifiers from human-readable text.
package slugs

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify lowercases text, strips diacritics so ă, â, î, ș and ț degrade to
// their base letter, collapses every run of characters outside [a-z0-9]
// into one hyphen, and trims hyphens at both ends. The result is empty iff
// text has no ASCII alphanumerics after normalization.
func Slugify(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(stripMarks(), lowered)
	if err != nil {
		stripped = lowered
	}
	hyphenated := nonAlphanumeric.ReplaceAllString(stripped, "-")
	return strings.Trim(hyphenated, "-")
}

// IsValid reports whether value already has slug form.
func IsValid(value string) bool {
	return validSlug.MatchString(value)
}

// Normalize slugifies value, falling back to fallback when value yields an
// empty slug.
func Normalize(value, fallback string) string {
	if slug := Slugify(value); slug != "" {
		return slug
	}
	return Slugify(fallback)
}

// transform.Chain is stateful, so each call builds its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
