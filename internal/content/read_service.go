package content

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// ReadService is the public read path. Draft posts never appear in any of
// its results, and a missing record is an empty result rather than an error.
type ReadService interface {
	// GetPostBySlug returns nil when no published post has slug.
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	// GetPostsByCategory returns the category with its published posts,
	// newest first, or a nil category and no posts when slug is unknown.
	GetPostsByCategory(ctx context.Context, categorySlug string) (CategoryPosts, error)
	// GetAllPosts returns every published post, newest first, with its
	// category attached.
	GetAllPosts(ctx context.Context) ([]*Post, error)
	GetCategories(ctx context.Context) ([]*Category, error)
	GetTags(ctx context.Context) ([]*Tag, error)
}

// ReadOption configures the read service.
type ReadOption func(*readService)

// WithReadLogger sets the logger used for repository failures.
func WithReadLogger(logger interfaces.Logger) ReadOption {
	return func(s *readService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type readService struct {
	posts      PostRepository
	categories CategoryRepository
	tags       TagRepository
	logger     interfaces.Logger
}

// NewReadService constructs the public read service.
func NewReadService(posts PostRepository, categories CategoryRepository, tags TagRepository, opts ...ReadOption) ReadService {
	if posts == nil || categories == nil || tags == nil {
		panic("content: read service requires post, category and tag repositories")
	}
	s := &readService{
		posts:      posts,
		categories: categories,
		tags:       tags,
		logger:     logging.ContentLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *readService) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, s.fail(ctx, "content.read.post", err, "slug", slug)
	}
	if post == nil || post.Draft {
		return nil, nil
	}
	if post.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *post.CategoryID)
		if err != nil && !isNotFound(err) {
			return nil, s.fail(ctx, "content.read.post_category", err, "slug", slug)
		}
		post.Category = category
	}
	return post, nil
}

func (s *readService) GetPostsByCategory(ctx context.Context, categorySlug string) (CategoryPosts, error) {
	empty := CategoryPosts{Posts: []*Post{}}
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return empty, nil
	}
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		if isNotFound(err) {
			return empty, nil
		}
		return empty, s.fail(ctx, "content.read.category", err, "slug", categorySlug)
	}
	if category == nil {
		return empty, nil
	}

	id := category.ID
	posts, err := s.posts.List(ctx, PostFilter{CategoryID: &id})
	if err != nil {
		return empty, s.fail(ctx, "content.read.category_posts", err, "slug", categorySlug)
	}
	posts = publicOnly(posts)
	for _, post := range posts {
		post.Category = category
	}
	return CategoryPosts{Category: category, Posts: posts}, nil
}

func (s *readService) GetAllPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.posts.List(ctx, PostFilter{})
	if err != nil {
		return nil, s.fail(ctx, "content.read.posts", err)
	}
	posts = publicOnly(posts)

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "content.read.categories", err)
	}
	attachCategories(posts, categories)
	return posts, nil
}

func (s *readService) GetCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "content.read.categories", err)
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

func (s *readService) GetTags(ctx context.Context) ([]*Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "content.read.tags", err)
	}
	if tags == nil {
		tags = []*Tag{}
	}
	return tags, nil
}

func (s *readService) fail(ctx context.Context, event string, err error, fields ...any) error {
	args := append([]any{"error", err}, fields...)
	logging.ForContext(ctx, s.logger).Error(event, args...)
	return err
}

// publicOnly drops drafts from posts. Repositories already filter drafts
// out of public listings; every read path still passes through here.
func publicOnly(posts []*Post) []*Post {
	out := make([]*Post, 0, len(posts))
	for _, post := range posts {
		if post == nil || post.Draft {
			continue
		}
		out = append(out, post)
	}
	return out
}

func attachCategories(posts []*Post, categories []*Category) {
	byID := make(map[uuid.UUID]*Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}
	for _, post := range posts {
		if post.CategoryID == nil {
			continue
		}
		post.Category = byID[*post.CategoryID]
	}
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

func isDuplicate(err error) bool {
	var duplicate *DuplicateError
	return errors.As(err, &duplicate)
}
