package localization

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
)

// Kind discriminates the shapes a localizable field can take.
type Kind uint8

const (
	// KindAbsent is a missing value (NULL in storage).
	KindAbsent Kind = iota
	// KindPlain is a legacy, untranslated string.
	KindPlain
	// KindLocalized is a per-locale mapping.
	KindLocalized
	// KindInvalid is any other stored shape (number, boolean, array). It
	// resolves to the empty string.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindPlain:
		return "plain"
	case KindLocalized:
		return "localized"
	default:
		return "invalid"
	}
}

// Field is a content attribute that may carry per-locale translations, a
// single untranslated string, or nothing at all. The zero value is absent.
//
// Field converts from the storage representation at the repository
// boundary (JSON text in both sqlite and postgres), so services never
// inspect dynamically typed values.
type Field struct {
	kind   Kind
	plain  string
	values map[Locale]string
}

// Absent returns an empty field.
func Absent() Field {
	return Field{}
}

// Plain wraps an untranslated string.
func Plain(value string) Field {
	return Field{kind: KindPlain, plain: value}
}

// Localized wraps a per-locale mapping. Empty translations are kept so a
// round trip through storage preserves what the editor wrote.
func Localized(values map[Locale]string) Field {
	copied := make(map[Locale]string, len(values))
	maps.Copy(copied, values)
	return Field{kind: KindLocalized, values: copied}
}

// FromValue converts a dynamically typed value, as produced by decoding
// untrusted JSON, into a Field. It never fails: unsupported shapes become
// KindInvalid and non-string translations are dropped.
func FromValue(value any) Field {
	switch v := value.(type) {
	case nil:
		return Absent()
	case Field:
		return v
	case *Field:
		if v == nil {
			return Absent()
		}
		return *v
	case string:
		return Plain(v)
	case *string:
		if v == nil {
			return Absent()
		}
		return Plain(*v)
	case map[Locale]string:
		return Localized(v)
	case map[string]string:
		values := make(map[Locale]string, len(v))
		for key, text := range v {
			values[Locale(key)] = text
		}
		return Field{kind: KindLocalized, values: values}
	case map[string]any:
		values := make(map[Locale]string, len(v))
		for key, raw := range v {
			if text, ok := raw.(string); ok {
				values[Locale(key)] = text
			}
		}
		return Field{kind: KindLocalized, values: values}
	default:
		return Field{kind: KindInvalid}
	}
}

// Kind reports the shape of the field.
func (f Field) Kind() Kind {
	return f.kind
}

// IsAbsent reports whether the field carries no value.
func (f Field) IsAbsent() bool {
	return f.kind == KindAbsent
}

// IsEmpty reports whether the field resolves to the empty string for every
// supported locale.
func (f Field) IsEmpty() bool {
	for _, loc := range supportedLocales {
		if Resolve(f, loc) != "" {
			return false
		}
	}
	return true
}

// Lookup returns the translation stored for locale without any fallback.
// Plain fields answer for every locale.
func (f Field) Lookup(locale Locale) (string, bool) {
	switch f.kind {
	case KindPlain:
		return f.plain, true
	case KindLocalized:
		value, ok := f.values[locale]
		return value, ok
	default:
		return "", false
	}
}

// Translations returns a copy of the per-locale mapping. Plain fields are
// reported under DefaultLocale.
func (f Field) Translations() map[Locale]string {
	switch f.kind {
	case KindPlain:
		return map[Locale]string{DefaultLocale: f.plain}
	case KindLocalized:
		out := make(map[Locale]string, len(f.values))
		maps.Copy(out, f.values)
		return out
	default:
		return map[Locale]string{}
	}
}

// With returns a localized copy of f carrying value for locale. A non-empty
// plain field is promoted to the default locale first.
func (f Field) With(locale Locale, value string) Field {
	values := map[Locale]string{}
	switch f.kind {
	case KindPlain:
		if f.plain != "" {
			values[DefaultLocale] = f.plain
		}
	case KindLocalized:
		maps.Copy(values, f.values)
	}
	values[locale] = value
	return Field{kind: KindLocalized, values: values}
}

// MarshalJSON emits the wire shape: null, a string, or a locale object.
func (f Field) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case KindPlain:
		return json.Marshal(f.plain)
	case KindLocalized:
		out := make(map[string]string, len(f.values))
		for key, value := range f.values {
			out[string(key)] = value
		}
		return json.Marshal(out)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts any JSON value and never rejects well-formed input.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("localization: decode field: %w", err)
	}
	*f = FromValue(raw)
	return nil
}

// Value implements driver.Valuer. Absent fields are stored as NULL.
func (f Field) Value() (driver.Value, error) {
	if f.kind == KindAbsent || f.kind == KindInvalid {
		return nil, nil
	}
	encoded, err := f.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner. Stored text is decoded as JSON first, and only
// text that fails to parse is kept as a legacy plain string. Legacy values that
// happen to be JSON literals are therefore read by their JSON shape: 2024 and
// true scan as KindInvalid and resolve to "", null scans as absent. Value always
// writes JSON, so only rows written outside the blog can hit this.
func (f *Field) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*f = Absent()
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*f = FromValue(v)
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		*f = Plain(string(raw))
		return nil
	}
	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		*f = Plain(string(raw))
		return nil
	}
	*f = FromValue(decoded)
	return nil
}
