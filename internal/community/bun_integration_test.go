package community_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/storage"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func TestCommunityWithBunStorage(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := storage.Migrate(ctx, db, community.Schema()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := newService(community.NewBunCommentRepository(db), community.NewBunRatingRepository(db))

	first, err := svc.AddComment(ctx, postID, alice, "one")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := svc.AddComment(ctx, postID, bob, "two"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	comments, err := svc.ListComments(ctx, postID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 || comments[0].ID != first.ID || comments[1].Content != "two" {
		t.Fatalf("expected comments oldest first, got %d", len(comments))
	}
	if err := svc.DeleteComment(ctx, first.ID, alice); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	if _, err := svc.Rate(ctx, postID, alice, 1); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if _, err := svc.Rate(ctx, postID, alice, 4); err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	summary, err := svc.RatingSummary(ctx, postID, alice)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Total != 1 || summary.UserValue != 4 || summary.Average != 4 {
		t.Fatalf("expected upserted rating, got %+v", summary)
	}

	rating, err := community.NewBunRatingRepository(db).GetByPostAndUser(ctx, postID, alice)
	if err != nil {
		t.Fatalf("get rating: %v", err)
	}
	duplicate := *rating
	duplicate.ID = bob
	if _, err := community.NewBunRatingRepository(db).Create(ctx, &duplicate); err == nil {
		t.Fatalf("expected unique (post_id, user_id) violation")
	}
}
