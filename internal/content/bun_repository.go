package content

import (
	"context"
	"fmt"

	"github.com/goliatone/go-blog/internal/storage"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPostRepository implements PostRepository with optional caching.
type BunPostRepository struct {
	repo repository.Repository[*Post]
}

func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPostRepository {
	return &BunPostRepository{repo: wrapWithCache(NewPostRepository(db), cacheService, keySerializer)}
}

func (r *BunPostRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, post)
	if err != nil {
		return nil, mapWriteError(err, "post", post.Slug)
	}
	return created, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return result, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	return result, nil
}

func (r *BunPostRepository) List(ctx context.Context, filter PostFilter) ([]*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if !filter.IncludeDrafts {
				q = q.Where("?TableAlias.draft = ?", false)
			}
			if filter.CategoryID != nil {
				q = q.Where("?TableAlias.category_id = ?", *filter.CategoryID)
			}
			return q.OrderExpr("?TableAlias.published_at DESC").
				OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	return records, err
}

func (r *BunPostRepository) Update(ctx context.Context, post *Post) (*Post, error) {
	updated, err := r.repo.Update(ctx, post)
	if err != nil {
		return nil, mapWriteError(err, "post", post.Slug)
	}
	return updated, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Post{ID: id})
}

// BunCategoryRepository implements CategoryRepository with optional caching.
type BunCategoryRepository struct {
	repo repository.Repository[*Category]
}

func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryRepository {
	return &BunCategoryRepository{repo: wrapWithCache(NewCategoryRepository(db), cacheService, keySerializer)}
}

func (r *BunCategoryRepository) Create(ctx context.Context, category *Category) (*Category, error) {
	created, err := r.repo.Create(ctx, category)
	if err != nil {
		return nil, mapWriteError(err, "category", category.Slug)
	}
	return created, nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "category", id.String())
	}
	return result, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "category", slug)
	}
	return result, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC").
				OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunCategoryRepository) Update(ctx context.Context, category *Category) (*Category, error) {
	updated, err := r.repo.Update(ctx, category)
	if err != nil {
		return nil, mapWriteError(err, "category", category.Slug)
	}
	return updated, nil
}

func (r *BunCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Category{ID: id})
}

// BunTagRepository implements TagRepository with optional caching.
type BunTagRepository struct {
	repo repository.Repository[*Tag]
}

func NewBunTagRepository(db *bun.DB) *BunTagRepository {
	return NewBunTagRepositoryWithCache(db, nil, nil)
}

func NewBunTagRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTagRepository {
	return &BunTagRepository{repo: wrapWithCache(NewTagRepository(db), cacheService, keySerializer)}
}

func (r *BunTagRepository) Create(ctx context.Context, tag *Tag) (*Tag, error) {
	created, err := r.repo.Create(ctx, tag)
	if err != nil {
		return nil, mapWriteError(err, "tag", tag.Name)
	}
	return created, nil
}

func (r *BunTagRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tag, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "tag", id.String())
	}
	return result, nil
}

func (r *BunTagRepository) GetByName(ctx context.Context, name string) (*Tag, error) {
	result, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, "tag", name)
	}
	return result, nil
}

func (r *BunTagRepository) List(ctx context.Context) ([]*Tag, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.name ASC")
		}),
	)
	return records, err
}

func (r *BunTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Tag{ID: id})
}

// DuplicateError reports a unique constraint violation on write.
type DuplicateError struct {
	Resource string
	Key      string
	Err      error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Key)
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
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

func mapWriteError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if storage.IsUniqueViolation(err) {
		return &DuplicateError{Resource: resource, Key: key, Err: err}
	}
	return mapRepositoryError(err, resource, key)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
