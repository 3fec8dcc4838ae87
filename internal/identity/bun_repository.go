package identity

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

// BunProfileRepository implements ProfileRepository with optional caching.
type BunProfileRepository struct {
	repo repository.Repository[*Profile]
}

func NewBunProfileRepository(db *bun.DB) *BunProfileRepository {
	return NewBunProfileRepositoryWithCache(db, nil, nil)
}

func NewBunProfileRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunProfileRepository {
	base := NewProfileRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunProfileRepository{repo: base}
}

func (r *BunProfileRepository) Create(ctx context.Context, profile *Profile) (*Profile, error) {
	created, err := r.repo.Create(ctx, profile)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", ErrEmailTaken, err)
		}
		return nil, err
	}
	return created, nil
}

func (r *BunProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunProfileRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	result, err := r.repo.GetByIdentifier(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err, email)
	}
	return result, nil
}

func (r *BunProfileRepository) List(ctx context.Context) ([]*Profile, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	return records, err
}

func (r *BunProfileRepository) Update(ctx context.Context, profile *Profile) (*Profile, error) {
	updated, err := r.repo.Update(ctx, profile)
	if err != nil {
		return nil, mapRepositoryError(err, profile.ID.String())
	}
	return updated, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "profile", Key: key}
	}
	return fmt.Errorf("profile repository error: %w", err)
}
