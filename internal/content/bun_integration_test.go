package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/storage"
	"github.com/goliatone/go-blog/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func newBunFixture(t *testing.T) (fixture, *bun.DB) {
	t.Helper()
	db := testsupport.NewBunDB(t)
	if err := storage.Migrate(context.Background(), db, content.Schema()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return newFixture(
		content.NewBunPostRepository(db),
		content.NewBunCategoryRepository(db),
		content.NewBunTagRepository(db),
	), db
}

func TestBunReadServiceExcludesDrafts(t *testing.T) {
	ctx := context.Background()
	f, _ := newBunFixture(t)

	blog := mustCategory(t, f, "blog")
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	mustPost(t, f, "first", &blog.ID, false, base)
	mustPost(t, f, "second", &blog.ID, false, base.Add(time.Hour))
	mustPost(t, f, "draft", &blog.ID, true, base.Add(2*time.Hour))
	mustPost(t, f, "loose", nil, false, base.Add(-time.Hour))

	all, err := f.read.GetAllPosts(ctx)
	if err != nil {
		t.Fatalf("get all posts: %v", err)
	}
	assertNoDrafts(t, "GetAllPosts", all)
	if got := slugsOf(all); len(got) != 3 || got[0] != "second" || got[1] != "first" || got[2] != "loose" {
		t.Fatalf("expected [second first loose], got %v", got)
	}

	byCategory, err := f.read.GetPostsByCategory(ctx, "blog")
	if err != nil {
		t.Fatalf("get posts by category: %v", err)
	}
	assertNoDrafts(t, "GetPostsByCategory", byCategory.Posts)
	if len(byCategory.Posts) != 2 {
		t.Fatalf("expected 2 published blog posts, got %v", slugsOf(byCategory.Posts))
	}

	hidden, err := f.read.GetPostBySlug(ctx, "draft")
	if err != nil || hidden != nil {
		t.Fatalf("expected draft to be hidden, got %v (%v)", hidden, err)
	}

	visible, err := f.read.GetPostBySlug(ctx, "first")
	if err != nil || visible == nil {
		t.Fatalf("expected published post, got %v (%v)", visible, err)
	}
	if visible.Category == nil || visible.Category.Slug != "blog" {
		t.Fatalf("expected category to be attached")
	}
}

func TestBunPostRoundTripsLocalizedFields(t *testing.T) {
	ctx := context.Background()
	f, _ := newBunFixture(t)

	created, err := f.admin.CreatePost(ctx, content.PostInput{
		Slug: "localized",
		Title: localization.Localized(map[localization.Locale]string{
			localization.EN: "Hello",
			localization.RO: "Salut",
		}),
		Content:    localization.Plain("plain body"),
		Type:       content.PostTypeVideo,
		Tags:       []string{"Go"},
		Draft:      boolPtr(false),
		YouTubeURL: "https://youtube.com/shorts/abc",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	loaded, err := f.posts.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got := localization.Resolve(loaded.Title, localization.RO); got != "Salut" {
		t.Fatalf("expected ro title, got %q", got)
	}
	if got := localization.Resolve(loaded.Title, localization.RU); got != "Hello" {
		t.Fatalf("expected en fallback, got %q", got)
	}
	if loaded.Content.Kind() != localization.KindPlain {
		t.Fatalf("expected plain content, got %s", loaded.Content.Kind())
	}
	if loaded.Description.Kind() != localization.KindAbsent {
		t.Fatalf("expected absent description, got %s", loaded.Description.Kind())
	}
	if len(loaded.Tags) != 1 || loaded.Tags[0] != "go" {
		t.Fatalf("expected tags to round trip, got %v", loaded.Tags)
	}
	if loaded.Type != content.PostTypeVideo || loaded.YouTubeURL != "https://youtube.com/shorts/abc" {
		t.Fatalf("expected video fields to round trip, got %+v", loaded)
	}
}

func TestBunUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	f, _ := newBunFixture(t)

	tag := &content.Tag{ID: sequentialUUIDs()(), Name: "go", Slug: "go", CreatedAt: time.Now().UTC()}
	if _, err := f.tags.Create(ctx, tag); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	clash := *tag
	clash.ID = uuid.New()
	_, err := f.tags.Create(ctx, &clash)
	var duplicate *content.DuplicateError
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}

	if _, err := f.admin.CreateTag(ctx, "GO"); !errors.Is(err, content.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestBunNotFoundMapsToSentinels(t *testing.T) {
	ctx := context.Background()
	f, _ := newBunFixture(t)

	if _, err := f.admin.GetPost(ctx, sequentialUUIDs()()); !errors.Is(err, content.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, err := f.admin.GetCategoryBySlug(ctx, "missing"); !errors.Is(err, content.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestBunRepositoriesWithCache(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := storage.Migrate(ctx, db, content.Schema()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	f := newFixture(
		content.NewBunPostRepositoryWithCache(db, cacheService, keySerializer),
		content.NewBunCategoryRepositoryWithCache(db, cacheService, keySerializer),
		content.NewBunTagRepositoryWithCache(db, cacheService, keySerializer),
	)
	post := mustPost(t, f, "cached", nil, false, time.Now().UTC())

	for range 2 {
		loaded, err := f.read.GetPostBySlug(ctx, "cached")
		if err != nil || loaded == nil || loaded.ID != post.ID {
			t.Fatalf("expected cached post, got %v (%v)", loaded, err)
		}
	}
}
