package roadmap

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunTopicRepository implements TopicRepository with optional caching.
type BunTopicRepository struct {
	repo repository.Repository[*Topic]
}

// NewBunTopicRepository creates a topic repository without caching.
func NewBunTopicRepository(db *bun.DB) *BunTopicRepository {
	return NewBunTopicRepositoryWithCache(db, nil, nil)
}

// NewBunTopicRepositoryWithCache creates a topic repository with caching services.
func NewBunTopicRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunTopicRepository {
	return &BunTopicRepository{repo: wrapWithCache(NewTopicRepository(db), cacheService, serializer)}
}

func (r *BunTopicRepository) Create(ctx context.Context, topic *Topic) (*Topic, error) {
	return r.repo.Create(ctx, topic)
}

func (r *BunTopicRepository) GetByID(ctx context.Context, id uuid.UUID) (*Topic, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "roadmap_topic", id.String())
	}
	return record, nil
}

func (r *BunTopicRepository) GetBySlug(ctx context.Context, slug string) (*Topic, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "roadmap_topic", slug)
	}
	return record, nil
}

func (r *BunTopicRepository) List(ctx context.Context) ([]*Topic, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC").OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunTopicRepository) Update(ctx context.Context, topic *Topic) (*Topic, error) {
	record, err := r.repo.Update(ctx, topic)
	if err != nil {
		return nil, mapRepositoryError(err, "roadmap_topic", topic.ID.String())
	}
	return record, nil
}

func (r *BunTopicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Topic{ID: id})
}

// BunItemRepository implements ItemRepository with optional caching.
type BunItemRepository struct {
	db   *bun.DB
	repo repository.Repository[*Item]
}

// NewBunItemRepository creates an item repository without caching.
func NewBunItemRepository(db *bun.DB) *BunItemRepository {
	return NewBunItemRepositoryWithCache(db, nil, nil)
}

// NewBunItemRepositoryWithCache creates an item repository with caching services.
func NewBunItemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunItemRepository {
	return &BunItemRepository{db: db, repo: wrapWithCache(NewItemRepository(db), cacheService, serializer)}
}

func (r *BunItemRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	return r.repo.Create(ctx, item)
}

func (r *BunItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "roadmap_item", id.String())
	}
	return record, nil
}

func (r *BunItemRepository) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*Item, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.topic_id = ?", topicID).
				OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunItemRepository) List(ctx context.Context) ([]*Item, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunItemRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	record, err := r.repo.Update(ctx, item)
	if err != nil {
		return nil, mapRepositoryError(err, "roadmap_item", item.ID.String())
	}
	return record, nil
}

func (r *BunItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Item{ID: id})
}

func (r *BunItemRepository) DeleteByTopic(ctx context.Context, topicID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("roadmap item repository: database not configured")
	}
	_, err := r.db.NewDelete().
		Model((*Item)(nil)).
		Where("topic_id = ?", topicID).
		Exec(ctx)
	return err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
