package video

import "testing"

func TestExtractID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{url: "https://youtu.be/abc123", want: "abc123", ok: true},
		{url: "https://www.youtube.com/watch?v=abc123&t=10", want: "abc123", ok: true},
		{url: "https://youtube.com/embed/abc123?autoplay=1", want: "abc123", ok: true},
		{url: "https://youtube.com/v/abc123", want: "abc123", ok: true},
		{url: "https://www.youtube.com/shorts/xyz789", want: "xyz789", ok: true},
		{url: "https://youtu.be/abc123 trailing", want: "abc123", ok: true},
		{url: "https://example.com/abc", ok: false},
		{url: "", ok: false},
		{url: "https://youtu.be/", ok: false},
	}
	for _, tc := range cases {
		got, ok := ExtractID(tc.url)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ExtractID(%q) = %q, %v; want %q, %v", tc.url, got, ok, tc.want, tc.ok)
		}
	}
}

func TestURLs(t *testing.T) {
	if got := EmbedURL("abc123"); got != "https://www.youtube.com/embed/abc123" {
		t.Fatalf("unexpected embed url %q", got)
	}
	if got := ThumbnailURL("abc123"); got != "https://img.youtube.com/vi/abc123/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail url %q", got)
	}
	if EmbedURL(" ") != "" || ThumbnailURL("") != "" {
		t.Fatalf("expected empty urls for empty id")
	}
}
