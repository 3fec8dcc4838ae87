package content

import (
	"fmt"
	"html"
	"time"

	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/video"
	"github.com/google/uuid"
)

// MarkdownParser renders post bodies to HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
}

// PostView is a post with every localizable field resolved for one locale.
type PostView struct {
	ID           uuid.UUID           `json:"id"`
	Slug         string              `json:"slug"`
	Locale       localization.Locale `json:"locale"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Body         string              `json:"body,omitempty"`
	HTML         string              `json:"html,omitempty"`
	Type         PostType            `json:"type"`
	YouTubeURL   string              `json:"youtube_url,omitempty"`
	VideoID      string              `json:"video_id,omitempty"`
	EmbedURL     string              `json:"embed_url,omitempty"`
	ThumbnailURL string              `json:"thumbnail_url,omitempty"`
	Duration     string              `json:"duration,omitempty"`
	Tags         []string            `json:"tags"`
	Category     *CategoryView       `json:"category,omitempty"`
	PublishedAt  time.Time           `json:"published_at"`
	URL          string              `json:"url,omitempty"`
	Alternates   map[string]string   `json:"alternates,omitempty"`
}

// CategoryView is a category resolved for one locale.
type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	URL         string    `json:"url,omitempty"`
}

// Projector turns stored records into locale-resolved views.
type Projector struct {
	parser MarkdownParser
}

// NewProjector returns a projector. A nil parser escapes bodies instead of
// rendering them.
func NewProjector(parser MarkdownParser) *Projector {
	return &Projector{parser: parser}
}

// Post resolves post for locale. withBody controls whether the body is
// rendered, since listings do not need it.
func (p *Projector) Post(post *Post, locale localization.Locale, withBody bool) (PostView, error) {
	resolver := localization.NewResolver(locale)
	view := PostView{
		ID:          post.ID,
		Slug:        post.Slug,
		Locale:      locale,
		Title:       resolver.Field(post.Title),
		Description: resolver.Field(post.Description),
		Type:        post.Type,
		Duration:    post.Duration,
		Tags:        append([]string{}, post.Tags...),
		PublishedAt: post.PublishedAt,
	}
	if post.Type == PostTypeVideo && post.YouTubeURL != "" {
		view.YouTubeURL = post.YouTubeURL
		if id, ok := video.ExtractID(post.YouTubeURL); ok {
			view.VideoID = id
			view.EmbedURL = video.EmbedURL(id)
			view.ThumbnailURL = video.ThumbnailURL(id)
		}
	}
	if post.Category != nil {
		category := ProjectCategory(post.Category, locale)
		view.Category = &category
	}
	if withBody {
		view.Body = resolver.Field(post.Content)
		rendered, err := p.render(view.Body)
		if err != nil {
			return PostView{}, fmt.Errorf("content: render post %q: %w", post.Slug, err)
		}
		view.HTML = rendered
	}
	return view, nil
}

// Posts resolves a listing without bodies.
func (p *Projector) Posts(posts []*Post, locale localization.Locale) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		// bodies are skipped, so rendering cannot fail
		view, _ := p.Post(post, locale, false)
		out = append(out, view)
	}
	return out
}

func (p *Projector) render(body string) (string, error) {
	if body == "" {
		return "", nil
	}
	if p == nil || p.parser == nil {
		return html.EscapeString(body), nil
	}
	rendered, err := p.parser.Parse([]byte(body))
	if err != nil {
		return "", err
	}
	return string(rendered), nil
}

// ProjectCategory resolves category for locale.
func ProjectCategory(category *Category, locale localization.Locale) CategoryView {
	return CategoryView{
		ID:          category.ID,
		Slug:        category.Slug,
		Name:        localization.Resolve(category.Name, locale),
		Description: localization.Resolve(category.Description, locale),
		SortOrder:   category.SortOrder,
	}
}

// ProjectCategories resolves every category for locale.
func ProjectCategories(categories []*Category, locale localization.Locale) []CategoryView {
	out := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		if category == nil {
			continue
		}
		out = append(out, ProjectCategory(category, locale))
	}
	return out
}

// FilterPosts keeps posts whose type or category slug equals filter. An
// empty filter or "all" keeps everything.
func FilterPosts(posts []*Post, filter string) []*Post {
	if filter == "" || filter == "all" {
		return posts
	}
	out := make([]*Post, 0, len(posts))
	for _, post := range posts {
		if string(post.Type) == filter || (post.Category != nil && post.Category.Slug == filter) {
			out = append(out, post)
		}
	}
	return out
}
