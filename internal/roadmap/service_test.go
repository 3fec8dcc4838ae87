package roadmap_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/google/uuid"
)

func sequentialUUIDs() roadmap.IDGenerator {
	counter := 0
	return func() uuid.UUID {
		counter++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
	}
}

func fixedClock() func() time.Time {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newMemoryService() roadmap.Service {
	return roadmap.NewService(
		roadmap.NewMemoryTopicRepository(),
		roadmap.NewMemoryItemRepository(),
		roadmap.WithIDGenerator(sequentialUUIDs()),
		roadmap.WithClock(fixedClock()),
	)
}

func TestServiceCreateTopicDerivesSlugAndOrder(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	first, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{
		Title: localization.Localized(map[localization.Locale]string{localization.RO: "Filosofia Orientală"}),
	})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if first.Slug != "filosofia-orientala" || first.SortOrder != 1 {
		t.Fatalf("unexpected topic %+v", first)
	}

	second, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{Slug: "go", Title: localization.Plain("Go")})
	if err != nil {
		t.Fatalf("create second topic: %v", err)
	}
	if second.SortOrder != 2 {
		t.Fatalf("expected sort order 2, got %d", second.SortOrder)
	}

	if _, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{Slug: "go", Title: localization.Plain("Go again")}); !errors.Is(err, roadmap.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	if _, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{Title: localization.Absent()}); !errors.Is(err, roadmap.ErrTopicTitleRequired) {
		t.Fatalf("expected ErrTopicTitleRequired, got %v", err)
	}
	if _, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{Slug: "Bad Slug", Title: localization.Plain("x")}); !errors.Is(err, roadmap.ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestServiceItemsAndSummaries(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	topic, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{
		Slug:  "learning",
		Title: localization.Localized(map[localization.Locale]string{localization.EN: "Learning", localization.RO: "Învățare"}),
	})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}

	var created []*roadmap.Item
	for _, title := range []string{"Read", "Write", "Ship"} {
		item, err := svc.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: localization.Plain(title)})
		if err != nil {
			t.Fatalf("add item: %v", err)
		}
		if item.Status != roadmap.StatusTodo {
			t.Fatalf("expected new items to start as todo, got %s", item.Status)
		}
		created = append(created, item)
	}
	if created[2].SortOrder != 3 {
		t.Fatalf("expected sort order 3, got %d", created[2].SortOrder)
	}

	if _, err := svc.UpdateItemStatus(ctx, created[0].ID, roadmap.StatusDone); err != nil {
		t.Fatalf("update status: %v", err)
	}
	cycled, err := svc.CycleItemStatus(ctx, created[1].ID)
	if err != nil {
		t.Fatalf("cycle status: %v", err)
	}
	if cycled.Status != roadmap.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", cycled.Status)
	}
	if _, err := svc.UpdateItemStatus(ctx, created[2].ID, roadmap.Status("blocked")); !errors.Is(err, roadmap.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	summaries, err := svc.Summaries(ctx, localization.RO)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	summary := summaries[0]
	if summary.Title != "Învățare" {
		t.Fatalf("expected ro title, got %q", summary.Title)
	}
	if summary.Percent != 50 || summary.Status != roadmap.StatusInProgress {
		t.Fatalf("expected 50%% in progress, got %d %s", summary.Percent, summary.Status)
	}
	if summary.Current == nil || summary.Current.Title != "Write" {
		t.Fatalf("expected current item Write, got %+v", summary.Current)
	}
	if len(summary.Items) != 3 || summary.Items[0].Title != "Read" {
		t.Fatalf("expected items in sort order, got %+v", summary.Items)
	}
}

func TestServiceGetTopicBySlug(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	if _, err := svc.GetTopicBySlug(ctx, "missing"); !errors.Is(err, roadmap.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
	if _, err := svc.GetTopicBySlug(ctx, " "); !errors.Is(err, roadmap.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound for blank slug, got %v", err)
	}

	_, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{
		Slug:          "app",
		Title:         localization.Plain("App"),
		PrivacyPolicy: localization.Localized(map[localization.Locale]string{localization.EN: "We store nothing."}),
	})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	topic, err := svc.GetTopicBySlug(ctx, "app")
	if err != nil {
		t.Fatalf("get topic: %v", err)
	}
	if got := localization.Resolve(topic.PrivacyPolicy, localization.RU); got != "We store nothing." {
		t.Fatalf("expected en fallback for privacy policy, got %q", got)
	}
}

func TestServiceDeleteTopicCascadesItems(t *testing.T) {
	ctx := context.Background()
	items := roadmap.NewMemoryItemRepository()
	svc := roadmap.NewService(roadmap.NewMemoryTopicRepository(), items, roadmap.WithIDGenerator(sequentialUUIDs()))

	topic, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{Slug: "temp", Title: localization.Plain("Temp")})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if _, err := svc.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: localization.Plain("x")}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := svc.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	remaining, err := items.List(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected items to be removed with topic, got %d", len(remaining))
	}
	if err := svc.DeleteTopic(ctx, topic.ID); !errors.Is(err, roadmap.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
	if _, err := svc.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: localization.Plain("x")}); !errors.Is(err, roadmap.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound for orphan item, got %v", err)
	}
}

func TestServiceUpdateTopic(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	topic, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{Slug: "old", Title: localization.Plain("Old")})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	order := 7
	updated, err := svc.UpdateTopic(ctx, roadmap.UpdateTopicRequest{
		ID:        topic.ID,
		Slug:      "new",
		Title:     localization.Plain("New"),
		SortOrder: &order,
	})
	if err != nil {
		t.Fatalf("update topic: %v", err)
	}
	if updated.Slug != "new" || updated.SortOrder != 7 {
		t.Fatalf("unexpected topic %+v", updated)
	}
	if _, err := svc.GetTopicBySlug(ctx, "old"); !errors.Is(err, roadmap.ErrTopicNotFound) {
		t.Fatalf("expected old slug to be released, got %v", err)
	}
}

func TestNewServicePanicsWithoutRepositories(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	roadmap.NewService(nil, roadmap.NewMemoryItemRepository())
}
