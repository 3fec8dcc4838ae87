package community

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Comment is a reader comment on a post.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PostID    uuid.UUID `bun:"post_id,notnull,type:uuid" json:"post_id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	Author    *Author   `bun:"-" json:"author,omitempty"`
}

// Author is the public face of a comment's profile.
type Author struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Initial     string `json:"initial"`
}

// Rating is one reader's 1 to 5 score for a post.
type Rating struct {
	bun.BaseModel `bun:"table:ratings,alias:ra"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PostID    uuid.UUID `bun:"post_id,notnull,type:uuid" json:"post_id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Value     int       `bun:"value,notnull" json:"value"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RatingSummary aggregates a post's ratings. UserValue is zero when the
// viewer has not rated.
type RatingSummary struct {
	Average   float64 `json:"average"`
	Total     int     `json:"total"`
	UserValue int     `json:"user_value"`
}

func cloneComment(comment *Comment) *Comment {
	if comment == nil {
		return nil
	}
	cloned := *comment
	if comment.Author != nil {
		author := *comment.Author
		cloned.Author = &author
	}
	return &cloned
}

func cloneRating(rating *Rating) *Rating {
	if rating == nil {
		return nil
	}
	cloned := *rating
	return &cloned
}
