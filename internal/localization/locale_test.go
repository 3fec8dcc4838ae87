package localization

import "testing"

func TestParseLocale(t *testing.T) {
	cases := map[string]struct {
		want Locale
		ok   bool
	}{
		"en":   {want: EN, ok: true},
		" RO ": {want: RO, ok: true},
		"ru":   {want: RU, ok: true},
		"de":   {want: Locale("de"), ok: false},
		"":     {want: Locale(""), ok: false},
	}
	for input, tc := range cases {
		got, ok := ParseLocale(input)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLocale(%q) = %q, %v; want %q, %v", input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSupportedLocalesReturnsCopy(t *testing.T) {
	locales := SupportedLocales()
	if len(locales) != 3 || locales[0] != DefaultLocale {
		t.Fatalf("unexpected locales %v", locales)
	}
	locales[0] = "xx"
	if SupportedLocales()[0] != DefaultLocale {
		t.Fatalf("expected SupportedLocales to return a copy")
	}
}

func TestOrDefault(t *testing.T) {
	if Locale("xx").OrDefault() != DefaultLocale {
		t.Fatalf("expected unknown locale to fall back")
	}
	if RU.OrDefault() != RU {
		t.Fatalf("expected ru to be kept")
	}
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		path   string
		header string
		want   Locale
	}{
		{path: "ro", header: "ru", want: RO},
		{path: "", header: "ru-RU,ru;q=0.9,en;q=0.8", want: RU},
		{path: "blog", header: "ro-RO", want: RO},
		{path: "", header: "ja", want: DefaultLocale},
		{path: "", header: "", want: DefaultLocale},
		{path: "", header: ";;;", want: DefaultLocale},
	}
	for _, tc := range cases {
		if got := Negotiate(tc.path, tc.header); got != tc.want {
			t.Fatalf("Negotiate(%q, %q) = %q, want %q", tc.path, tc.header, got, tc.want)
		}
	}
}
