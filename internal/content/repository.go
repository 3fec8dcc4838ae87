package content

import (
	"context"
	"fmt"

	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PostFilter narrows post listings. Listings are always ordered by
// published_at, newest first.
type PostFilter struct {
	CategoryID    *uuid.UUID
	IncludeDrafts bool
}

// PostRepository exposes persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter PostFilter) ([]*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository exposes persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	// List returns categories ordered by sort_order.
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagRepository exposes persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) (*Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	// List returns tags ordered alphabetically by name.
	List(ctx context.Context) ([]*Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a content record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Schema describes the tables and indexes owned by this package.
func Schema() pkgstorage.Schema {
	return pkgstorage.Schema{
		Name:   "content",
		Models: []any{(*Category)(nil), (*Tag)(nil), (*Post)(nil)},
		Indexes: []pkgstorage.Index{
			{Name: "categories_slug_key", Model: (*Category)(nil), Columns: []string{"slug"}, Unique: true},
			{Name: "tags_name_key", Model: (*Tag)(nil), Columns: []string{"name"}, Unique: true},
			{Name: "tags_slug_key", Model: (*Tag)(nil), Columns: []string{"slug"}, Unique: true},
			{Name: "posts_slug_key", Model: (*Post)(nil), Columns: []string{"slug"}, Unique: true},
			{Name: "posts_published_idx", Model: (*Post)(nil), Columns: []string{"draft", "published_at"}},
		},
	}
}

func NewPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.Slug
		},
	})
}

func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Category) string {
			return c.Slug
		},
	})
}

func NewTagRepository(db *bun.DB) repository.Repository[*Tag] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Tag]{
		NewRecord: func() *Tag { return &Tag{} },
		GetID: func(t *Tag) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Tag, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(t *Tag) string {
			return t.Name
		},
	})
}
