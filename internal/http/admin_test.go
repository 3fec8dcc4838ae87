package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
)

func TestAdminAPI_RequiresAdminSession(t *testing.T) {
	mux, svc := setupAPI(t)
	reader := readerSession(t, svc, "reader@example.com")

	doJSONRequest(t, mux, http.MethodGet, "/admin/api/posts", "", nil, http.StatusUnauthorized)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/posts", "garbage", nil, http.StatusUnauthorized)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/posts", reader.Token, nil, http.StatusForbidden)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/posts", adminToken(t, svc), nil, http.StatusOK)
}

func TestAdminAPI_RegisterRequiresAuthenticator(t *testing.T) {
	if err := NewAdminAPI().Register(http.NewServeMux()); err == nil {
		t.Fatalf("expected error without authenticator")
	}
}

func TestAdminAPI_PostLifecycle(t *testing.T) {
	mux, svc := setupAPI(t)
	token := adminToken(t, svc)

	createBody := map[string]any{
		"title":   map[string]any{"en": "Hello world", "ro": "Salut lume"},
		"content": "Plain body",
		"tags":    []string{"Go", "streams"},
	}
	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", token, createBody, http.StatusCreated)
	var created content.Post
	decodeJSONBody(t, rec, &created)
	if created.Slug != "hello-world" || !created.Draft {
		t.Fatalf("expected derived slug and draft default, got slug=%q draft=%v", created.Slug, created.Draft)
	}
	if localization.Resolve(created.Title, "ro") != "Salut lume" {
		t.Fatalf("unexpected title %+v", created.Title)
	}

	doJSONRequest(t, mux, http.MethodGet, "/en/posts/hello-world", "", nil, http.StatusNotFound)

	path := "/admin/api/posts/" + created.ID.String()
	rec = doJSONRequest(t, mux, http.MethodPost, path+"/toggle-draft", token, nil, http.StatusOK)
	var toggled content.Post
	decodeJSONBody(t, rec, &toggled)
	if toggled.Draft {
		t.Fatalf("expected toggle-draft to publish the post")
	}
	doJSONRequest(t, mux, http.MethodGet, "/en/posts/hello-world", "", nil, http.StatusOK)

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", token, createBody, http.StatusConflict)

	rec = doJSONRequest(t, mux, http.MethodPut, path, token, map[string]any{"title": "Renamed", "slug": "hello-world"}, http.StatusOK)
	var updated content.Post
	decodeJSONBody(t, rec, &updated)
	if localization.Resolve(updated.Title, "en") != "Renamed" {
		t.Fatalf("unexpected update %+v", updated.Title)
	}

	doJSONRequest(t, mux, http.MethodDelete, path, token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, path, token, nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodPost, path+"/toggle-draft", token, nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/posts/not-a-uuid", token, nil, http.StatusBadRequest)
}

func TestAdminAPI_PostValidation(t *testing.T) {
	mux, svc := setupAPI(t)
	token := adminToken(t, svc)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"content": "body"}},
		{"unknown locale key", map[string]any{"title": map[string]any{"de": "Hallo"}}},
		{"non-string translation", map[string]any{"title": map[string]any{"en": 42}}},
		{"video without link", map[string]any{"title": "Clip", "type": "video", "youtube_url": "https://example.com"}},
		{"bad slug", map[string]any{"title": "Ok", "slug": "Not A Slug"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", token, tc.body, http.StatusUnprocessableEntity)
			var resp errorResponse
			decodeJSONBody(t, rec, &resp)
			if resp.Error != "validation_failed" {
				t.Fatalf("unexpected error body %+v", resp)
			}
		})
	}
}

func TestAdminAPI_CategoriesAndTags(t *testing.T) {
	mux, svc := setupAPI(t)
	token := adminToken(t, svc)

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/categories", token, map[string]any{
		"name":        map[string]any{"en": "Live Streams", "ru": "Трансляции"},
		"description": "Weekly sessions",
	}, http.StatusCreated)
	var category content.Category
	decodeJSONBody(t, rec, &category)
	if category.Slug != "live-streams" {
		t.Fatalf("expected derived slug, got %q", category.Slug)
	}
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/categories", token, map[string]any{"name": "Live Streams"}, http.StatusConflict)

	sortOrder := 3
	categoryPath := "/admin/api/categories/" + category.ID.String()
	doJSONRequest(t, mux, http.MethodPut, categoryPath, token, map[string]any{"name": "Streams", "slug": "live-streams", "sort_order": sortOrder}, http.StatusOK)

	rec = doJSONRequest(t, mux, http.MethodPost, "/admin/api/tags", token, map[string]any{"name": " Go "}, http.StatusCreated)
	var tag content.Tag
	decodeJSONBody(t, rec, &tag)
	if tag.Name != "go" {
		t.Fatalf("expected normalized tag name, got %q", tag.Name)
	}
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/tags", token, map[string]any{"name": "go"}, http.StatusConflict)

	rec = doJSONRequest(t, mux, http.MethodPost, "/admin/api/tags/ensure", token, map[string]any{"name": "GO"}, http.StatusOK)
	var ensured content.Tag
	decodeJSONBody(t, rec, &ensured)
	if ensured.ID != tag.ID {
		t.Fatalf("expected ensure to select the existing tag, got %+v", ensured)
	}
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/tags/ensure", token, map[string]any{"name": "  "}, http.StatusUnprocessableEntity)

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/tags/"+tag.ID.String(), token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodDelete, categoryPath, token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodDelete, categoryPath, token, nil, http.StatusNotFound)
}

func TestAdminAPI_RoadmapEditing(t *testing.T) {
	mux, svc := setupAPI(t)
	token := adminToken(t, svc)

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/roadmap/topics", token, map[string]any{
		"slug":  "search",
		"title": map[string]any{"en": "Search", "ro": "Căutare"},
	}, http.StatusCreated)
	var topic roadmap.Topic
	decodeJSONBody(t, rec, &topic)

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/roadmap/topics", token, map[string]any{"slug": "other"}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/roadmap/topics", token, map[string]any{"slug": "search", "title": "Dup"}, http.StatusConflict)

	rec = doJSONRequest(t, mux, http.MethodPost, "/admin/api/roadmap/topics/"+topic.ID.String()+"/items", token, map[string]any{"title": "Index posts"}, http.StatusCreated)
	var item roadmap.Item
	decodeJSONBody(t, rec, &item)
	if item.Status != roadmap.StatusTodo {
		t.Fatalf("expected new items to start as todo, got %q", item.Status)
	}

	itemPath := "/admin/api/roadmap/items/" + item.ID.String()
	doJSONRequest(t, mux, http.MethodPost, itemPath+"/cycle", token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodPut, itemPath+"/status", token, map[string]any{"status": "finished"}, http.StatusUnprocessableEntity)

	rec = doJSONRequest(t, mux, http.MethodGet, "/admin/api/roadmap/topics", token, nil, http.StatusOK)
	var topics []roadmap.Topic
	decodeJSONBody(t, rec, &topics)
	if len(topics) != 1 || len(topics[0].Items) != 1 || topics[0].Items[0].Status != roadmap.StatusInProgress {
		t.Fatalf("expected cycled item, got %+v", topics)
	}

	rec = doJSONRequest(t, mux, http.MethodPut, itemPath+"/status", token, map[string]any{"status": "done"}, http.StatusOK)
	decodeJSONBody(t, rec, &item)
	if item.Status != roadmap.StatusDone {
		t.Fatalf("expected done, got %q", item.Status)
	}

	doJSONRequest(t, mux, http.MethodDelete, itemPath, token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodPost, itemPath+"/cycle", token, nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/roadmap/topics/"+topic.ID.String(), token, nil, http.StatusNoContent)
}

func TestAdminAPI_Moderation(t *testing.T) {
	mux, svc := setupAPI(t)
	token := adminToken(t, svc)
	ctx := context.Background()

	publishedPost(t, svc, content.PostInput{Slug: "thread", Title: localization.Plain("Thread")})
	troll := readerSession(t, svc, "troll@example.com")

	rec := doJSONRequest(t, mux, http.MethodPost, "/en/posts/thread/comments", troll.Token, map[string]any{"content": "first"}, http.StatusCreated)
	var comment commentView
	decodeJSONBody(t, rec, &comment)

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/comments/"+comment.ID.String(), token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/comments/"+comment.ID.String(), token, nil, http.StatusNotFound)

	userPath := "/admin/api/users/" + troll.ProfileID.String()
	rec = doJSONRequest(t, mux, http.MethodPost, userPath+"/block", token, nil, http.StatusOK)
	var blocked identity.Profile
	decodeJSONBody(t, rec, &blocked)
	if !blocked.IsBlocked || blocked.BlockedAt == nil {
		t.Fatalf("expected blocked profile, got %+v", blocked)
	}
	doJSONRequest(t, mux, http.MethodPost, "/en/posts/thread/comments", troll.Token, map[string]any{"content": "again"}, http.StatusForbidden)

	admin, err := svc.identity.EnsureAdmin(ctx, adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/users/"+admin.ID.String()+"/block", token, nil, http.StatusBadRequest)

	doJSONRequest(t, mux, http.MethodPost, userPath+"/unblock", token, nil, http.StatusOK)
	doJSONRequest(t, mux, http.MethodPost, "/en/posts/thread/comments", troll.Token, map[string]any{"content": "sorry"}, http.StatusCreated)

	rec = doJSONRequest(t, mux, http.MethodGet, "/admin/api/users", token, nil, http.StatusOK)
	var users []identity.Profile
	decodeJSONBody(t, rec, &users)
	if len(users) != 2 {
		t.Fatalf("expected admin and reader, got %d", len(users))
	}
}

func TestAdminAPI_ImportUnavailableWithoutMarkdown(t *testing.T) {
	mux, svc := setupAPI(t)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/import", adminToken(t, svc), map[string]any{"directory": "."}, http.StatusServiceUnavailable)
}
