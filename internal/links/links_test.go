package links_test

import (
	"testing"

	"github.com/goliatone/go-blog/internal/links"
	"github.com/goliatone/go-blog/internal/localization"
)

func newBuilder(t *testing.T) *links.Builder {
	t.Helper()
	builder, err := links.NewBuilder("https://blog.example.com/")
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	return builder
}

func TestBuilderLocalizedURLs(t *testing.T) {
	builder := newBuilder(t)

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"post en", builder.PostURL(localization.EN, "hello-world"), "https://blog.example.com/en/posts/hello-world"},
		{"post ro", builder.PostURL(localization.RO, "salut"), "https://blog.example.com/ro/posts/salut"},
		{"category ru", builder.CategoryURL(localization.RU, "streamuri"), "https://blog.example.com/ru/categories/streamuri"},
		{"privacy", builder.PrivacyURL(localization.RO, "music"), "https://blog.example.com/ro/privacy/music"},
		{"roadmap", builder.RoadmapURL(localization.EN), "https://blog.example.com/en/roadmap"},
		{"unknown locale", builder.PostURL(localization.Locale("xx"), "a"), "https://blog.example.com/en/posts/a"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, tc.got)
		}
	}
}

func TestBuilderAlternates(t *testing.T) {
	builder := newBuilder(t)

	alternates := builder.Alternates(links.RoutePost, map[string]any{"slug": "a"})
	if len(alternates) != len(localization.SupportedLocales()) {
		t.Fatalf("expected one alternate per locale, got %v", alternates)
	}
	if alternates["ru"] != "https://blog.example.com/ru/posts/a" {
		t.Fatalf("unexpected ru alternate %q", alternates["ru"])
	}
}

func TestBuilderUnknownRoute(t *testing.T) {
	builder := newBuilder(t)
	if _, err := builder.URL(localization.EN, "missing", nil); err == nil {
		t.Fatalf("expected error for unknown route")
	}
	if got := builder.Alternates("missing", nil); len(got) != 0 {
		t.Fatalf("expected no alternates for unknown route, got %v", got)
	}
}
