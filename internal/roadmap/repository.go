package roadmap

import (
	"context"
	"fmt"

	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TopicRepository exposes persistence operations for roadmap topics.
type TopicRepository interface {
	Create(ctx context.Context, topic *Topic) (*Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Topic, error)
	GetBySlug(ctx context.Context, slug string) (*Topic, error)
	// List returns topics ordered by sort_order.
	List(ctx context.Context) ([]*Topic, error)
	Update(ctx context.Context, topic *Topic) (*Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepository exposes persistence operations for roadmap items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// ListByTopic returns the topic's items ordered by sort_order.
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*Item, error)
	// List returns every item ordered by sort_order.
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) error
}

// NotFoundError is returned when a roadmap record cannot be located.
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

// Schema describes the roadmap tables for storage migrations.
func Schema() pkgstorage.Schema {
	return pkgstorage.Schema{
		Name:   "roadmap",
		Models: []any{(*Topic)(nil), (*Item)(nil)},
		Indexes: []pkgstorage.Index{
			{Name: "roadmap_topics_slug_key", Model: (*Topic)(nil), Columns: []string{"slug"}, Unique: true},
			{Name: "roadmap_items_topic_idx", Model: (*Item)(nil), Columns: []string{"topic_id", "sort_order"}},
		},
	}
}

func NewTopicRepository(db *bun.DB) repository.Repository[*Topic] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Topic]{
		NewRecord: func() *Topic { return &Topic{} },
		GetID: func(t *Topic) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Topic, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(t *Topic) string {
			return t.Slug
		},
	})
}

func NewItemRepository(db *bun.DB) repository.Repository[*Item] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Item]{
		NewRecord: func() *Item { return &Item{} },
		GetID: func(i *Item) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Item, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(i *Item) string {
			if i == nil {
				return ""
			}
			return i.ID.String()
		},
	})
}
