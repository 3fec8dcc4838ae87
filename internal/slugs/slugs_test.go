package slugs

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Filosofia Orientală!":        "filosofia-orientala",
		"   ":                         "",
		"A--B":                        "a-b",
		"Știință și Tehnologie":       "stiinta-si-tehnologie",
		"Îndrumări în  Ţară":          "indrumari-in-tara",
		"--leading and trailing--":    "leading-and-trailing",
		"Go 1.24 release notes":       "go-1-24-release-notes",
		"Привет мир":                  "",
		"Stream #42: Écoute & Réagis": "stream-42-ecoute-reagis",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSlugifyOutputIsValidOrEmpty(t *testing.T) {
	inputs := []string{"Hello, World", "ăâîșț", "!!!", "a", "x--y--z", "Ünïcödé 2025"}
	for _, input := range inputs {
		got := Slugify(input)
		if got == "" {
			continue
		}
		if !IsValid(got) {
			t.Fatalf("Slugify(%q) produced invalid slug %q", input, got)
		}
		if Slugify(got) != got {
			t.Fatalf("expected Slugify to be idempotent for %q", got)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"a", "abc-123", "filosofia-orientala"}
	invalid := []string{"", "-a", "a-", "a--b", "A", "ă", "a b"}
	for _, value := range valid {
		if !IsValid(value) {
			t.Fatalf("expected %q to be valid", value)
		}
	}
	for _, value := range invalid {
		if IsValid(value) {
			t.Fatalf("expected %q to be invalid", value)
		}
	}
}

func TestNormalizeFallback(t *testing.T) {
	if got := Normalize("Привет", "Hello There"); got != "hello-there" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
	if got := Normalize("Salut", "ignored"); got != "salut" {
		t.Fatalf("expected primary slug, got %q", got)
	}
}
