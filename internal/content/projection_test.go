package content_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/localization"
)

type stubParser struct {
	err error
}

func (p stubParser) Parse(markdown []byte) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []byte("<p>" + string(markdown) + "</p>"), nil
}

func samplePost() *content.Post {
	return &content.Post{
		Slug: "stream-1",
		Title: localization.Localized(map[localization.Locale]string{
			localization.RO: "Despre muzică",
			localization.RU: "О музыке",
		}),
		Content:     localization.Localized(map[localization.Locale]string{localization.EN: "Hello <b>"}),
		Type:        content.PostTypeVideo,
		YouTubeURL:  "https://youtu.be/xyz789",
		Duration:    "1:02:03",
		Tags:        []string{"muzică"},
		PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Category: &content.Category{
			Slug: "streamuri",
			Name: localization.Localized(map[localization.Locale]string{localization.EN: "Streams", localization.RO: "Streamuri"}),
		},
	}
}

func TestProjectorResolvesLocale(t *testing.T) {
	projector := content.NewProjector(stubParser{})
	post := samplePost()

	view, err := projector.Post(post, localization.EN, true)
	if err != nil {
		t.Fatalf("project post: %v", err)
	}
	if view.Title != "Despre muzică" {
		t.Fatalf("expected fallback to ro title, got %q", view.Title)
	}
	if view.HTML != "<p>Hello <b></p>" || view.Body != "Hello <b>" {
		t.Fatalf("unexpected body rendering %q / %q", view.Body, view.HTML)
	}
	if view.VideoID != "xyz789" || view.EmbedURL != "https://www.youtube.com/embed/xyz789" {
		t.Fatalf("unexpected video projection %+v", view)
	}
	if view.ThumbnailURL != "https://img.youtube.com/vi/xyz789/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail %q", view.ThumbnailURL)
	}
	if view.Category == nil || view.Category.Name != "Streams" {
		t.Fatalf("expected resolved category, got %+v", view.Category)
	}

	ru, err := projector.Post(post, localization.RU, false)
	if err != nil {
		t.Fatalf("project post: %v", err)
	}
	if ru.Title != "О музыке" || ru.HTML != "" || ru.Body != "" {
		t.Fatalf("unexpected ru projection %+v", ru)
	}
	if ru.Category.Name != "Streams" {
		t.Fatalf("expected category fallback to en, got %q", ru.Category.Name)
	}
}

func TestProjectorWithoutParserEscapes(t *testing.T) {
	view, err := content.NewProjector(nil).Post(samplePost(), localization.EN, true)
	if err != nil {
		t.Fatalf("project post: %v", err)
	}
	if view.HTML != "Hello &lt;b&gt;" {
		t.Fatalf("expected escaped body, got %q", view.HTML)
	}
}

func TestProjectorParserError(t *testing.T) {
	boom := errors.New("boom")
	_, err := content.NewProjector(stubParser{err: boom}).Post(samplePost(), localization.EN, true)
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "stream-1") {
		t.Fatalf("expected wrapped parser error, got %v", err)
	}
}

func TestProjectorTextPostHasNoVideo(t *testing.T) {
	post := samplePost()
	post.Type = content.PostTypeText
	views := content.NewProjector(nil).Posts([]*content.Post{post, nil}, localization.RO)
	if len(views) != 1 {
		t.Fatalf("expected nil posts to be skipped, got %d", len(views))
	}
	if views[0].VideoID != "" || views[0].YouTubeURL != "" {
		t.Fatalf("expected no video fields for text post, got %+v", views[0])
	}
}

func TestFilterPosts(t *testing.T) {
	video := samplePost()
	text := &content.Post{Slug: "essay", Type: content.PostTypeText, Category: &content.Category{Slug: "blog"}}
	posts := []*content.Post{video, text}

	cases := []struct {
		filter string
		want   []string
	}{
		{"", []string{"stream-1", "essay"}},
		{"all", []string{"stream-1", "essay"}},
		{"video", []string{"stream-1"}},
		{"text", []string{"essay"}},
		{"blog", []string{"essay"}},
		{"streamuri", []string{"stream-1"}},
		{"unknown", []string{}},
	}
	for _, tc := range cases {
		got := slugsOf(content.FilterPosts(posts, tc.filter))
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Fatalf("filter %q: expected %v, got %v", tc.filter, tc.want, got)
		}
	}
}
