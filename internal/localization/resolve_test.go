package localization

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/pkg/testsupport"
)

var allLocales = []Locale{EN, RO, RU, Locale("xx"), Locale("")}

func TestResolveIsTotal(t *testing.T) {
	inputs := []any{
		nil,
		"",
		"hello",
		42,
		3.14,
		true,
		[]any{"en", "ro"},
		map[string]any{},
		map[string]any{"en": "Hi"},
		map[string]any{"ro": "Salut", "ru": "Привет"},
		map[string]any{"en": map[string]any{"nested": "x"}, "ro": "Salut"},
		map[string]any{"en": []any{"x"}},
		map[string]any{"en": nil, "ro": nil},
		map[string]string{"ru": "Привет"},
		json.Number("7"),
		struct{}{},
	}

	for _, input := range inputs {
		for _, loc := range allLocales {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("ResolveValue(%#v, %q) panicked: %v", input, loc, r)
					}
				}()
				_ = ResolveValue(input, loc)
			}()
		}
	}
}

func TestResolveStringPassthrough(t *testing.T) {
	for _, loc := range allLocales {
		if got := ResolveValue("hello", loc); got != "hello" {
			t.Fatalf("expected hello for %q, got %q", loc, got)
		}
		if got := ResolveValue("", loc); got != "" {
			t.Fatalf("expected empty for %q, got %q", loc, got)
		}
	}
}

func TestResolveFallbackOrder(t *testing.T) {
	cases := []struct {
		name   string
		field  any
		locale Locale
		want   string
	}{
		{name: "requested locale wins", field: map[string]any{"ro": "Salut", "en": "Hi", "ru": "Привет"}, locale: RU, want: "Привет"},
		{name: "en before ro", field: map[string]any{"ro": "Salut", "en": "Hi"}, locale: RU, want: "Hi"},
		{name: "ro when en missing", field: map[string]any{"ro": "Salut"}, locale: RU, want: "Salut"},
		{name: "empty mapping", field: map[string]any{}, locale: EN, want: ""},
		{name: "empty string skipped", field: map[string]any{"ru": "", "en": "Hi"}, locale: RU, want: "Hi"},
		{name: "unknown locale falls through", field: map[string]any{"en": "Hi"}, locale: Locale("xx"), want: "Hi"},
		{name: "ru is never a fallback", field: map[string]any{"ru": "Привет"}, locale: EN, want: ""},
		{name: "null", field: nil, locale: EN, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveValue(tc.field, tc.locale); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveSkipsNonStringValues(t *testing.T) {
	field := map[string]any{"en": 42, "ro": "Salut"}
	if got := ResolveValue(field, EN); got != "Salut" {
		t.Fatalf("expected Salut, got %q", got)
	}

	nested := map[string]any{"en": map[string]any{"en": "deep"}}
	if got := ResolveValue(nested, EN); got != "" {
		t.Fatalf("expected nested object to be skipped, got %q", got)
	}
}

func TestResolveRejectsOtherShapes(t *testing.T) {
	for _, input := range []any{42, true, []any{"Hi"}, 1.5} {
		if got := ResolveValue(input, EN); got != "" {
			t.Fatalf("expected empty for %#v, got %q", input, got)
		}
	}
}

func TestResolverBindsLocale(t *testing.T) {
	resolver := NewResolver(RO)
	field := Localized(map[Locale]string{EN: "Hi", RO: "Salut"})
	if resolver.Locale() != RO {
		t.Fatalf("expected ro, got %q", resolver.Locale())
	}
	if got := resolver.Field(field); got != "Salut" {
		t.Fatalf("expected Salut, got %q", got)
	}
}

func TestResolveValueMatchesGoldenCases(t *testing.T) {
	var cases []struct {
		Name   string `json:"name"`
		Value  any    `json:"value"`
		Locale string `json:"locale"`
		Want   string `json:"want"`
	}
	if err := testsupport.LoadGolden(filepath.Join("testdata", "resolve_cases.json"), &cases); err != nil {
		t.Fatalf("load cases: %v", err)
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := ResolveValue(tc.Value, Locale(tc.Locale)); got != tc.Want {
				t.Fatalf("ResolveValue(%v, %q) = %q, want %q", tc.Value, tc.Locale, got, tc.Want)
			}
		})
	}
}
