package community

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

// BunCommentRepository implements CommentRepository with optional caching.
type BunCommentRepository struct {
	repo repository.Repository[*Comment]
}

func NewBunCommentRepository(db *bun.DB) *BunCommentRepository {
	return NewBunCommentRepositoryWithCache(db, nil, nil)
}

func NewBunCommentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCommentRepository {
	return &BunCommentRepository{repo: wrapWithCache(NewCommentRepository(db), cacheService, keySerializer)}
}

func (r *BunCommentRepository) Create(ctx context.Context, comment *Comment) (*Comment, error) {
	return r.repo.Create(ctx, comment)
}

func (r *BunCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "comment", id.String())
	}
	return result, nil
}

func (r *BunCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.post_id = ?", postID)
	}), repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.created_at ASC")
	}))
	return records, err
}

func (r *BunCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Comment{ID: id})
}

// BunRatingRepository implements RatingRepository with optional caching.
type BunRatingRepository struct {
	repo repository.Repository[*Rating]
}

func NewBunRatingRepository(db *bun.DB) *BunRatingRepository {
	return NewBunRatingRepositoryWithCache(db, nil, nil)
}

func NewBunRatingRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRatingRepository {
	return &BunRatingRepository{repo: wrapWithCache(NewRatingRepository(db), cacheService, keySerializer)}
}

func (r *BunRatingRepository) Create(ctx context.Context, rating *Rating) (*Rating, error) {
	created, err := r.repo.Create(ctx, rating)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRated, err)
		}
		return nil, err
	}
	return created, nil
}

func (r *BunRatingRepository) GetByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*Rating, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.post_id = ?", postID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.user_id = ?", userID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "rating", Key: postID.String() + "/" + userID.String()}
	}
	return records[0], nil
}

func (r *BunRatingRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*Rating, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.post_id = ?", postID)
	}))
	return records, err
}

func (r *BunRatingRepository) Update(ctx context.Context, rating *Rating) (*Rating, error) {
	updated, err := r.repo.Update(ctx, rating,
		repository.UpdateByID(rating.ID.String()),
		repository.UpdateColumns("value", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "rating", rating.ID.String())
	}
	return updated, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
