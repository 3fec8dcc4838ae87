package content

import (
	"slices"
	"time"

	"github.com/goliatone/go-blog/internal/localization"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PostType distinguishes written posts from stream recordings.
type PostType string

const (
	PostTypeText  PostType = "text"
	PostTypeVideo PostType = "video"
)

// Valid reports whether t is a known post type.
func (t PostType) Valid() bool {
	return t == PostTypeText || t == PostTypeVideo
}

// Category groups posts and drives the top level navigation.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID          uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	Slug        string             `bun:"slug,notnull" json:"slug"`
	Name        localization.Field `bun:"name,type:jsonb" json:"name"`
	Description localization.Field `bun:"description,type:jsonb" json:"description"`
	SortOrder   int                `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt   time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Tag is a free-form label. Names are stored lowercased and are unique.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:tg"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,notnull" json:"slug"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Post is a blog article or a stream log entry.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	Slug        string             `bun:"slug,notnull" json:"slug"`
	Title       localization.Field `bun:"title,type:jsonb" json:"title"`
	Description localization.Field `bun:"description,type:jsonb" json:"description"`
	Content     localization.Field `bun:"content,type:jsonb" json:"content"`
	Type        PostType           `bun:"type,notnull,default:'text'" json:"type"`
	YouTubeURL  string             `bun:"youtube_url" json:"youtube_url,omitempty"`
	Duration    string             `bun:"duration" json:"duration,omitempty"`
	Tags        []string           `bun:"tags,type:jsonb" json:"tags"`
	CategoryID  *uuid.UUID         `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	Draft       bool               `bun:"draft,notnull" json:"draft"`
	PublishedAt time.Time          `bun:"published_at,nullzero" json:"published_at"`
	CreatedAt   time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Category    *Category          `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

// CategoryPosts is the result of a category lookup. Category is nil when the
// slug matches nothing, in which case Posts is empty.
type CategoryPosts struct {
	Category *Category `json:"category"`
	Posts    []*Post   `json:"posts"`
}

func clonePost(post *Post) *Post {
	if post == nil {
		return nil
	}
	cloned := *post
	if post.Tags != nil {
		cloned.Tags = slices.Clone(post.Tags)
	}
	if post.CategoryID != nil {
		id := *post.CategoryID
		cloned.CategoryID = &id
	}
	cloned.Category = cloneCategory(post.Category)
	return &cloned
}

func cloneCategory(category *Category) *Category {
	if category == nil {
		return nil
	}
	cloned := *category
	return &cloned
}

func cloneTag(tag *Tag) *Tag {
	if tag == nil {
		return nil
	}
	cloned := *tag
	return &cloned
}
