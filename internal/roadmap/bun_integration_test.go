package roadmap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/goliatone/go-blog/internal/storage"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func TestRoadmapWithBunStorage(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := storage.Migrate(ctx, db, roadmap.Schema()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	items := roadmap.NewBunItemRepository(db)
	svc := roadmap.NewService(
		roadmap.NewBunTopicRepository(db),
		items,
		roadmap.WithIDGenerator(sequentialUUIDs()),
		roadmap.WithClock(fixedClock()),
	)

	topic, err := svc.CreateTopic(ctx, roadmap.CreateTopicRequest{
		Title:         localization.Localized(map[localization.Locale]string{localization.EN: "Music", localization.RO: "Muzică"}),
		PrivacyPolicy: localization.Plain("No tracking."),
	})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}

	var ids []string
	for _, title := range []string{"Scales", "Chords", "Songs"} {
		item, err := svc.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: localization.Plain(title)})
		if err != nil {
			t.Fatalf("add item %s: %v", title, err)
		}
		ids = append(ids, item.ID.String())
		if item.Status != roadmap.StatusTodo {
			t.Fatalf("expected new items to start as todo, got %s", item.Status)
		}
	}

	first, _ := items.ListByTopic(ctx, topic.ID)
	if len(first) != 3 || first[0].ID.String() != ids[0] || first[2].ID.String() != ids[2] {
		t.Fatalf("expected items in insertion order, got %d", len(first))
	}
	if _, err := svc.UpdateItemStatus(ctx, first[0].ID, roadmap.StatusDone); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, err := svc.CycleItemStatus(ctx, first[1].ID); err != nil {
		t.Fatalf("cycle status: %v", err)
	}

	summaries, err := svc.Summaries(ctx, localization.RO)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	summary := summaries[0]
	// (1 + 0.5 + 0) / 3 = 50%
	if summary.Title != "Muzică" || summary.Percent != 50 || summary.Status != roadmap.StatusInProgress {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Current == nil || summary.Current.Title != "Chords" {
		t.Fatalf("expected Chords to be current, got %+v", summary.Current)
	}

	loaded, err := svc.GetTopicBySlug(ctx, "music")
	if err != nil {
		t.Fatalf("get topic: %v", err)
	}
	if got := localization.Resolve(loaded.PrivacyPolicy, localization.RU); got != "No tracking." {
		t.Fatalf("expected plain privacy policy, got %q", got)
	}

	if err := svc.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	remaining, err := items.List(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected items to be removed with their topic, got %d", len(remaining))
	}
	if _, err := svc.GetTopicBySlug(ctx, "music"); !errors.Is(err, roadmap.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}
