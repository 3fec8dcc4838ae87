package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
)

var (
	ErrSeedContentServiceRequired = errors.New("blog: content service is required")
	ErrSeedRoadmapServiceRequired = errors.New("blog: roadmap service is required")
	ErrSeedSlugRequired           = errors.New("blog: seed entries need a slug")
)

// SeedOptions describes content that SeedContent converges the store onto. Entries are
// matched by slug, so running the same options twice is a no-op.
type SeedOptions struct {
	Content ContentAdminService
	Roadmap RoadmapService

	Categories []SeedCategory
	Posts      []SeedPost
	Topics     []SeedTopic
}

type SeedCategory struct {
	Slug        string
	Name        localization.Field
	Description localization.Field
	SortOrder   int
}

// SeedPost references its category by slug. Posts are upserted, so existing posts pick
// up edited fields.
type SeedPost struct {
	Input        content.PostInput
	CategorySlug string
}

// SeedTopic lists item titles; items whose resolved English title already exists on the
// topic are skipped.
type SeedTopic struct {
	Slug          string
	Title         localization.Field
	Description   localization.Field
	PrivacyPolicy localization.Field
	Items         []localization.Field
}

// SeedContent creates missing categories, posts and roadmap topics.
func SeedContent(ctx context.Context, opts SeedOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Content == nil && (len(opts.Categories) > 0 || len(opts.Posts) > 0) {
		return ErrSeedContentServiceRequired
	}
	if opts.Roadmap == nil && len(opts.Topics) > 0 {
		return ErrSeedRoadmapServiceRequired
	}

	categoryIDs := make(map[string]*content.Category, len(opts.Categories))
	for _, seed := range opts.Categories {
		slug := strings.TrimSpace(seed.Slug)
		if slug == "" {
			return ErrSeedSlugRequired
		}
		category, err := opts.Content.GetCategoryBySlug(ctx, slug)
		if errors.Is(err, content.ErrCategoryNotFound) {
			order := seed.SortOrder
			category, err = opts.Content.CreateCategory(ctx, content.CategoryInput{
				Slug:        slug,
				Name:        seed.Name,
				Description: seed.Description,
				SortOrder:   &order,
			})
		}
		if err != nil {
			return fmt.Errorf("seed category %s: %w", slug, err)
		}
		categoryIDs[slug] = category
	}

	for _, seed := range opts.Posts {
		input := seed.Input
		if slug := strings.TrimSpace(seed.CategorySlug); slug != "" {
			category, ok := categoryIDs[slug]
			if !ok {
				found, err := opts.Content.GetCategoryBySlug(ctx, slug)
				if err != nil {
					return fmt.Errorf("seed post %s: category %s: %w", input.Slug, slug, err)
				}
				category = found
			}
			id := category.ID
			input.CategoryID = &id
		}
		if strings.TrimSpace(input.Slug) == "" {
			return ErrSeedSlugRequired
		}
		if _, _, err := opts.Content.UpsertPost(ctx, input); err != nil {
			return fmt.Errorf("seed post %s: %w", input.Slug, err)
		}
	}

	for _, seed := range opts.Topics {
		if err := seedTopic(ctx, opts.Roadmap, seed); err != nil {
			return err
		}
	}
	return nil
}

func seedTopic(ctx context.Context, svc RoadmapService, seed SeedTopic) error {
	slug := strings.TrimSpace(seed.Slug)
	if slug == "" {
		return ErrSeedSlugRequired
	}
	topic, err := svc.GetTopicBySlug(ctx, slug)
	if errors.Is(err, roadmap.ErrTopicNotFound) {
		topic, err = svc.CreateTopic(ctx, roadmap.CreateTopicRequest{
			Slug:          slug,
			Title:         seed.Title,
			Description:   seed.Description,
			PrivacyPolicy: seed.PrivacyPolicy,
		})
	}
	if err != nil {
		return fmt.Errorf("seed topic %s: %w", slug, err)
	}

	existing := make(map[string]struct{}, len(topic.Items))
	for _, item := range topic.Items {
		existing[localization.Resolve(item.Title, localization.EN)] = struct{}{}
	}
	for _, title := range seed.Items {
		key := localization.Resolve(title, localization.EN)
		if _, ok := existing[key]; ok {
			continue
		}
		if _, err := svc.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: title}); err != nil {
			return fmt.Errorf("seed topic %s item %q: %w", slug, key, err)
		}
		existing[key] = struct{}{}
	}
	return nil
}

// DemoSeed returns a small trilingual data set used by `blog seed`.
func DemoSeed(module *Module) SeedOptions {
	published := false
	return SeedOptions{
		Content: module.Content(),
		Roadmap: module.Roadmap(),
		Categories: []SeedCategory{
			{
				Slug: "music",
				Name: localization.Localized(map[localization.Locale]string{
					localization.EN: "Music", localization.RO: "Muzică", localization.RU: "Музыка",
				}),
			},
			{
				Slug: "streams",
				Name: localization.Localized(map[localization.Locale]string{
					localization.EN: "Streams", localization.RO: "Transmisiuni", localization.RU: "Стримы",
				}),
				SortOrder: 1,
			},
		},
		Posts: []SeedPost{
			{
				CategorySlug: "music",
				Input: content.PostInput{
					Slug: "hello-world",
					Title: localization.Localized(map[localization.Locale]string{
						localization.EN: "Hello world", localization.RO: "Salut lume",
					}),
					Content: localization.Localized(map[localization.Locale]string{
						localization.EN: "First post.", localization.RO: "Prima postare.",
					}),
					Tags:  []string{"intro"},
					Draft: &published,
				},
			},
			{
				CategorySlug: "streams",
				Input: content.PostInput{
					Slug:       "first-stream",
					Title:      localization.Plain("First stream"),
					Type:       content.PostTypeVideo,
					YouTubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
					Duration:   "1:02:03",
					Tags:       []string{"stream"},
					Draft:      &published,
				},
			},
		},
		Topics: []SeedTopic{
			{
				Slug: "guitar",
				Title: localization.Localized(map[localization.Locale]string{
					localization.EN: "Guitar", localization.RO: "Chitară",
				}),
				Items: []localization.Field{
					localization.Plain("Scales"),
					localization.Plain("Chords"),
				},
			},
		},
	}
}
