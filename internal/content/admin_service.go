package content

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/slugs"
	"github.com/goliatone/go-blog/internal/video"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrPostNotFound     = errors.New("content: post not found")
	ErrCategoryNotFound = errors.New("content: category not found")
	ErrTagNotFound      = errors.New("content: tag not found")
	ErrSlugExists       = errors.New("content: slug already exists")
	ErrTagExists        = errors.New("content: tag already exists")
)

// AdminService is the editing surface used by operators. Unlike ReadService
// it sees drafts.
type AdminService interface {
	ListPosts(ctx context.Context) ([]*Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	CreatePost(ctx context.Context, input PostInput) (*Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, input PostInput) (*Post, error)
	// UpsertPost updates the post matching input.Slug or creates it.
	UpsertPost(ctx context.Context, input PostInput) (*Post, bool, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ToggleDraft(ctx context.Context, id uuid.UUID) (*Post, error)

	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*Category, error)
	// DeleteCategory detaches the category's posts before removing it.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListTags(ctx context.Context) ([]*Tag, error)
	CreateTag(ctx context.Context, name string) (*Tag, error)
	// EnsureTag returns the existing tag for name, creating it when missing.
	EnsureTag(ctx context.Context, name string) (*Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

// PostInput carries the editable fields of a post. A blank Slug is derived
// from the title. Draft defaults to true on create. PublishedAt defaults to
// now on create and is preserved on update.
type PostInput struct {
	Slug        string
	Title       localization.Field
	Description localization.Field
	Content     localization.Field
	Type        PostType
	YouTubeURL  string
	Duration    string
	Tags        []string
	CategoryID  *uuid.UUID
	Draft       *bool
	PublishedAt *time.Time
}

// Validate checks the input with ozzo-validation rules.
func (in PostInput) Validate() error {
	errs := validation.Errors{}
	if in.Title.IsEmpty() {
		errs["title"] = validation.NewError("content.post.title_required", "title is required")
	}
	if slug := strings.TrimSpace(in.Slug); slug != "" && !slugs.IsValid(slug) {
		errs["slug"] = validation.NewError("content.post.slug_invalid", "slug must contain lowercase letters, digits and single hyphens")
	}
	postType := in.Type
	if postType == "" {
		postType = PostTypeText
	}
	if !postType.Valid() {
		errs["type"] = validation.NewError("content.post.type_invalid", "type must be text or video")
	}
	if postType == PostTypeVideo {
		if _, ok := video.ExtractID(in.YouTubeURL); !ok {
			errs["youtube_url"] = validation.NewError("content.post.youtube_url_invalid", "a YouTube link is required for video posts")
		}
	}
	if err := validation.Validate(in.Duration, validation.Length(0, 32)); err != nil {
		errs["duration"] = err
	}
	return errs.Filter()
}

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	Slug        string
	Name        localization.Field
	Description localization.Field
	SortOrder   *int
}

// Validate checks the input with ozzo-validation rules.
func (in CategoryInput) Validate() error {
	errs := validation.Errors{}
	if in.Name.IsEmpty() {
		errs["name"] = validation.NewError("content.category.name_required", "name is required")
	}
	if slug := strings.TrimSpace(in.Slug); slug != "" && !slugs.IsValid(slug) {
		errs["slug"] = validation.NewError("content.category.slug_invalid", "slug must contain lowercase letters, digits and single hyphens")
	}
	return errs.Filter()
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// AdminOption configures the admin service.
type AdminOption func(*adminService)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) AdminOption {
	return func(s *adminService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) AdminOption {
	return func(s *adminService) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithAdminLogger sets the logger used for write operations.
func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(s *adminService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type adminService struct {
	posts      PostRepository
	categories CategoryRepository
	tags       TagRepository
	now        func() time.Time
	id         IDGenerator
	logger     interfaces.Logger
}

// NewAdminService constructs the editing service.
func NewAdminService(posts PostRepository, categories CategoryRepository, tags TagRepository, opts ...AdminOption) AdminService {
	if posts == nil || categories == nil || tags == nil {
		panic("content: admin service requires post, category and tag repositories")
	}
	s := &adminService{
		posts:      posts,
		categories: categories,
		tags:       tags,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.ContentLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *adminService) ListPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.posts.List(ctx, PostFilter{IncludeDrafts: true})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	attachCategories(posts, categories)
	return posts, nil
}

func (s *adminService) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrPostNotFound)
	}
	return post, nil
}

func (s *adminService) CreatePost(ctx context.Context, input PostInput) (*Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	post := &Post{
		ID:          s.id(),
		Draft:       true,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.applyPostInput(ctx, post, input); err != nil {
		return nil, err
	}
	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, translate(err, ErrPostNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.post.created", "post_id", created.ID, "slug", created.Slug, "draft", created.Draft)
	return created, nil
}

func (s *adminService) UpdatePost(ctx context.Context, id uuid.UUID, input PostInput) (*Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrPostNotFound)
	}
	if err := s.applyPostInput(ctx, post, input); err != nil {
		return nil, err
	}
	post.UpdatedAt = s.now().UTC()
	post.Category = nil

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, translate(err, ErrPostNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.post.updated", "post_id", updated.ID, "slug", updated.Slug, "draft", updated.Draft)
	return updated, nil
}

func (s *adminService) UpsertPost(ctx context.Context, input PostInput) (*Post, bool, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugs.Slugify(localization.Resolve(input.Title, localization.DefaultLocale))
		input.Slug = slug
	}
	existing, err := s.posts.GetBySlug(ctx, slug)
	switch {
	case err == nil && existing != nil:
		updated, err := s.UpdatePost(ctx, existing.ID, input)
		return updated, false, err
	case err != nil && !isNotFound(err):
		return nil, false, err
	}
	created, err := s.CreatePost(ctx, input)
	return created, true, err
}

func (s *adminService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return translate(err, ErrPostNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.post.deleted", "post_id", id)
	return nil
}

func (s *adminService) ToggleDraft(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrPostNotFound)
	}
	post.Draft = !post.Draft
	post.UpdatedAt = s.now().UTC()
	post.Category = nil

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, translate(err, ErrPostNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.post.draft_toggled", "post_id", updated.ID, "draft", updated.Draft)
	return updated, nil
}

func (s *adminService) applyPostInput(ctx context.Context, post *Post, input PostInput) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugs.Slugify(localization.Resolve(input.Title, localization.DefaultLocale))
	}
	if !slugs.IsValid(slug) {
		return validation.Errors{
			"slug": validation.NewError("content.post.slug_invalid", "slug could not be derived from the title"),
		}
	}
	if existing, err := s.posts.GetBySlug(ctx, slug); err == nil && existing != nil && existing.ID != post.ID {
		return ErrSlugExists
	} else if err != nil && !isNotFound(err) {
		return err
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return translate(err, ErrCategoryNotFound)
		}
		id := *input.CategoryID
		post.CategoryID = &id
	} else {
		post.CategoryID = nil
	}

	tags, err := s.ensureTags(ctx, input.Tags)
	if err != nil {
		return err
	}

	post.Slug = slug
	post.Title = input.Title
	post.Description = input.Description
	post.Content = input.Content
	post.Type = input.Type
	if post.Type == "" {
		post.Type = PostTypeText
	}
	post.Tags = tags
	if post.Type == PostTypeVideo {
		post.YouTubeURL = strings.TrimSpace(input.YouTubeURL)
		post.Duration = strings.TrimSpace(input.Duration)
	} else {
		post.YouTubeURL = ""
		post.Duration = ""
	}
	if input.Draft != nil {
		post.Draft = *input.Draft
	}
	if input.PublishedAt != nil && !input.PublishedAt.IsZero() {
		post.PublishedAt = input.PublishedAt.UTC()
	}
	return nil
}

func (s *adminService) ensureTags(ctx context.Context, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := normalizeTagName(raw)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		if _, err := s.EnsureTag(ctx, name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

func (s *adminService) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

func (s *adminService) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	category, err := s.categories.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}
	return category, nil
}

func (s *adminService) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	slug := categorySlug(input)
	if !slugs.IsValid(slug) {
		return nil, validation.Errors{
			"slug": validation.NewError("content.category.slug_invalid", "slug could not be derived from the name"),
		}
	}
	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		existing, err := s.categories.List(ctx)
		if err != nil {
			return nil, err
		}
		sortOrder = len(existing) + 1
	}

	now := s.now().UTC()
	created, err := s.categories.Create(ctx, &Category{
		ID:          s.id(),
		Slug:        slug,
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   sortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.category.created", "category_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}
	slug := categorySlug(input)
	if !slugs.IsValid(slug) {
		return nil, validation.Errors{
			"slug": validation.NewError("content.category.slug_invalid", "slug could not be derived from the name"),
		}
	}
	category.Slug = slug
	category.Name = input.Name
	category.Description = input.Description
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	category.UpdatedAt = s.now().UTC()

	updated, err := s.categories.Update(ctx, category)
	if err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.category.updated", "category_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *adminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return translate(err, ErrCategoryNotFound)
	}
	posts, err := s.posts.List(ctx, PostFilter{CategoryID: &id, IncludeDrafts: true})
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.CategoryID = nil
		post.Category = nil
		post.UpdatedAt = s.now().UTC()
		if _, err := s.posts.Update(ctx, post); err != nil {
			return err
		}
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return translate(err, ErrCategoryNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.category.deleted", "category_id", id, "detached_posts", len(posts))
	return nil
}

func (s *adminService) ListTags(ctx context.Context) ([]*Tag, error) {
	return s.tags.List(ctx)
}

func (s *adminService) CreateTag(ctx context.Context, name string) (*Tag, error) {
	normalized := normalizeTagName(name)
	if normalized == "" {
		return nil, validation.Errors{
			"name": validation.NewError("content.tag.name_required", "tag name is required"),
		}
	}
	slug := slugs.Slugify(normalized)
	if slug == "" {
		return nil, validation.Errors{
			"name": validation.NewError("content.tag.name_invalid", "tag name must contain letters or digits"),
		}
	}
	if _, err := s.tags.GetByName(ctx, normalized); err == nil {
		return nil, ErrTagExists
	} else if !isNotFound(err) {
		return nil, err
	}

	created, err := s.tags.Create(ctx, &Tag{
		ID:        s.id(),
		Name:      normalized,
		Slug:      slug,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("content.tag.created", "tag_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *adminService) EnsureTag(ctx context.Context, name string) (*Tag, error) {
	created, err := s.CreateTag(ctx, name)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrTagExists) {
		return nil, err
	}
	existing, err := s.tags.GetByName(ctx, normalizeTagName(name))
	if err != nil {
		// a different name produced the same slug
		if isNotFound(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return existing, nil
}

func (s *adminService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return translate(err, ErrTagNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("content.tag.deleted", "tag_id", id)
	return nil
}

func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func categorySlug(input CategoryInput) string {
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		return slug
	}
	return slugs.Slugify(localization.Resolve(input.Name, localization.DefaultLocale))
}

func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return notFound
	case isDuplicate(err):
		return errors.Join(ErrSlugExists, err)
	default:
		return err
	}
}
