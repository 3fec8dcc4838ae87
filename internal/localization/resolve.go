package localization

// Resolve produces the display string for field in the requested locale.
//
// Absent and invalid fields resolve to "". Plain fields are returned as is,
// even when empty. Localized fields return the first non-empty translation
// among the requested locale, then en, then ro, and "" when none exists.
// An unrecognized locale simply misses and falls through the chain.
func Resolve(field Field, locale Locale) string {
	switch field.kind {
	case KindPlain:
		return field.plain
	case KindLocalized:
		if value := field.values[locale]; value != "" {
			return value
		}
		for _, fallback := range fallbackChain {
			if value := field.values[fallback]; value != "" {
				return value
			}
		}
		return ""
	default:
		return ""
	}
}

// ResolveValue resolves a dynamically typed value read from storage. It has
// the same semantics as Resolve and never panics: nested objects, numbers
// and arrays found under a locale key are skipped as if absent.
func ResolveValue(value any, locale Locale) string {
	return Resolve(FromValue(value), locale)
}

// Resolver binds a locale so templates and projections can resolve many
// fields without threading the locale through every call.
type Resolver struct {
	locale Locale
}

// NewResolver returns a Resolver for locale.
func NewResolver(locale Locale) Resolver {
	return Resolver{locale: locale}
}

// Locale returns the bound locale.
func (r Resolver) Locale() Locale {
	return r.locale
}

// Field resolves field in the bound locale.
func (r Resolver) Field(field Field) string {
	return Resolve(field, r.locale)
}
