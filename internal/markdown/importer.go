package markdown

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/slugs"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrContentServiceRequired = errors.New("markdown importer: content admin service is required")
	ErrUnsupportedLocale      = errors.New("markdown importer: unsupported locale")
	ErrSlugMissing            = errors.New("markdown importer: slug could not be derived")
)

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithImporterLogger sets the importer logger.
func WithImporterLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithDefaultLocale selects the locale whose file carries shared metadata.
func WithDefaultLocale(locale localization.Locale) ImporterOption {
	return func(i *Importer) {
		if locale.Valid() {
			i.defaultLocale = locale
		}
	}
}

// Importer turns groups of translated documents into posts.
type Importer struct {
	admin         content.AdminService
	defaultLocale localization.Locale
	logger        interfaces.Logger
}

// NewImporter builds an Importer writing through admin.
func NewImporter(admin content.AdminService, opts ...ImporterOption) *Importer {
	importer := &Importer{
		admin:         admin,
		defaultLocale: localization.DefaultLocale,
		logger:        logging.MarkdownLogger(nil),
	}
	for _, opt := range opts {
		opt(importer)
	}
	return importer
}

// Import upserts one post per document key. Metadata comes from the default
// locale's file when present; titles, descriptions and bodies are merged
// across translations.
func (i *Importer) Import(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.admin == nil {
		return nil, ErrContentServiceRequired
	}

	result := &interfaces.ImportResult{}
	for _, group := range groupDocuments(docs) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		slug, err := i.importGroup(ctx, group, opts, result)
		if err != nil {
			logging.ForContext(ctx, i.logger).Warn("markdown.import.failed", "key", group.key, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", group.key, err))
			continue
		}
		logging.ForContext(ctx, i.logger).Debug("markdown.import.post", "key", group.key, "slug", slug, "dry_run", opts.DryRun)
	}

	logging.ForContext(ctx, i.logger).Info("markdown.import.completed",
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
	)
	return result, nil
}

func (i *Importer) importGroup(ctx context.Context, group documentGroup, opts interfaces.ImportOptions, result *interfaces.ImportResult) (string, error) {
	input, err := i.buildInput(ctx, group, opts)
	if err != nil {
		return "", err
	}
	if opts.DryRun {
		if err := input.Validate(); err != nil {
			return "", err
		}
		result.Skipped = append(result.Skipped, input.Slug)
		return input.Slug, nil
	}

	post, created, err := i.admin.UpsertPost(ctx, input)
	if err != nil {
		return "", err
	}
	if created {
		result.Created = append(result.Created, post.Slug)
	} else {
		result.Updated = append(result.Updated, post.Slug)
	}
	return post.Slug, nil
}

func (i *Importer) buildInput(ctx context.Context, group documentGroup, opts interfaces.ImportOptions) (content.PostInput, error) {
	primary := group.primary(string(i.defaultLocale))
	meta := primary.FrontMatter

	title := localization.Absent()
	description := localization.Absent()
	body := localization.Absent()
	for _, doc := range group.docs {
		locale, ok := localization.ParseLocale(doc.Locale)
		if !ok {
			return content.PostInput{}, fmt.Errorf("%w %q in %s", ErrUnsupportedLocale, doc.Locale, doc.FilePath)
		}
		if value := strings.TrimSpace(doc.FrontMatter.Title); value != "" {
			title = title.With(locale, value)
		}
		if value := strings.TrimSpace(doc.FrontMatter.Description); value != "" {
			description = description.With(locale, value)
		}
		title = withLocalized(title, doc.FrontMatter.Titles)
		description = withLocalized(description, doc.FrontMatter.Descriptions)
		if len(doc.Body) > 0 {
			body = body.With(locale, string(doc.Body))
		}
	}

	slug := slugs.Normalize(meta.Slug, path.Base(group.key))
	if slug == "" {
		return content.PostInput{}, ErrSlugMissing
	}
	if title.IsEmpty() {
		title = localization.Plain(strings.ReplaceAll(slug, "-", " "))
	}

	draft := opts.DefaultDraft
	if meta.Draft != nil {
		draft = *meta.Draft
	}
	input := content.PostInput{
		Slug:        slug,
		Title:       title,
		Description: description,
		Content:     body,
		Type:        content.PostType(strings.ToLower(strings.TrimSpace(meta.Type))),
		YouTubeURL:  meta.YouTubeURL,
		Duration:    meta.Duration,
		Tags:        meta.Tags,
		Draft:       &draft,
	}
	if !meta.Date.IsZero() {
		published := meta.Date.UTC()
		input.PublishedAt = &published
	}

	if name := strings.TrimSpace(meta.Category); name != "" {
		categoryID, err := i.resolveCategory(ctx, name, opts.DryRun)
		if err != nil {
			return content.PostInput{}, err
		}
		input.CategoryID = categoryID
	}
	return input, nil
}

// resolveCategory finds the category by slug, creating it when missing. Dry
// runs never create.
func (i *Importer) resolveCategory(ctx context.Context, name string, dryRun bool) (*uuid.UUID, error) {
	slug := slugs.Slugify(name)
	category, err := i.admin.GetCategoryBySlug(ctx, slug)
	switch {
	case err == nil:
		return &category.ID, nil
	case !errors.Is(err, content.ErrCategoryNotFound):
		return nil, err
	case dryRun:
		return nil, nil
	}

	category, err = i.admin.CreateCategory(ctx, content.CategoryInput{
		Slug: slug,
		Name: localization.Plain(name),
	})
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, i.logger).Info("markdown.import.category_created", "slug", slug)
	return &category.ID, nil
}

func withLocalized(field localization.Field, values map[string]string) localization.Field {
	for code, value := range values {
		locale, ok := localization.ParseLocale(code)
		if !ok || value == "" {
			continue
		}
		field = field.With(locale, value)
	}
	return field
}

type documentGroup struct {
	key  string
	docs []*interfaces.Document
}

func (g documentGroup) primary(defaultLocale string) *interfaces.Document {
	for _, doc := range g.docs {
		if doc.Locale == defaultLocale {
			return doc
		}
	}
	return g.docs[0]
}

func groupDocuments(docs []*interfaces.Document) []documentGroup {
	index := map[string]int{}
	var groups []documentGroup
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		key := doc.Key
		if key == "" {
			key = strings.TrimSuffix(doc.FilePath, path.Ext(doc.FilePath))
		}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, documentGroup{key: key})
		}
		groups[pos].docs = append(groups[pos].docs, doc)
	}
	for _, group := range groups {
		sort.SliceStable(group.docs, func(a, b int) bool {
			return group.docs[a].Locale < group.docs[b].Locale
		})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].key < groups[b].key
	})
	return groups
}
