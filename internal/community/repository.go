package community

import (
	"context"
	"fmt"

	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CommentRepository exposes persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatingRepository exposes persistence operations for ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *Rating) (*Rating, error)
	GetByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*Rating, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Rating, error)
	Update(ctx context.Context, rating *Rating) (*Rating, error)
}

// NotFoundError is returned when a comment or rating cannot be located.
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

// Schema describes the community tables for storage migrations. A reader
// holds at most one rating per post.
func Schema() pkgstorage.Schema {
	return pkgstorage.Schema{
		Name:   "community",
		Models: []any{(*Comment)(nil), (*Rating)(nil)},
		Indexes: []pkgstorage.Index{
			{Name: "comments_post_idx", Model: (*Comment)(nil), Columns: []string{"post_id", "created_at"}},
			{Name: "ratings_post_user_key", Model: (*Rating)(nil), Columns: []string{"post_id", "user_id"}, Unique: true},
		},
	}
}

func NewCommentRepository(db *bun.DB) repository.Repository[*Comment] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Comment]{
		NewRecord: func() *Comment { return &Comment{} },
		GetID: func(c *Comment) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Comment, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Comment) string {
			return c.ID.String()
		},
	})
}

func NewRatingRepository(db *bun.DB) repository.Repository[*Rating] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Rating]{
		NewRecord: func() *Rating { return &Rating{} },
		GetID: func(r *Rating) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Rating, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Rating) string {
			return r.ID.String()
		},
	})
}
