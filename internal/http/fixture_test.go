package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/links"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

type testServices struct {
	content   content.AdminService
	roadmap   roadmap.Service
	identity  identity.Service
	community community.Service
}

func setupAPI(t *testing.T) (*http.ServeMux, testServices) {
	t.Helper()

	posts := content.NewMemoryPostRepository()
	categories := content.NewMemoryCategoryRepository()
	tags := content.NewMemoryTagRepository()

	tokens, err := identity.NewTokens("", 0)
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	identitySvc := identity.NewService(identity.NewMemoryProfileRepository(), tokens,
		identity.WithBcryptCost(bcrypt.MinCost))

	svc := testServices{
		content:   content.NewAdminService(posts, categories, tags),
		roadmap:   roadmap.NewService(roadmap.NewMemoryTopicRepository(), roadmap.NewMemoryItemRepository()),
		identity:  identitySvc,
		community: community.NewService(community.NewMemoryCommentRepository(), community.NewMemoryRatingRepository(), identitySvc),
	}

	builder, err := links.NewBuilder("https://blog.example.com/")
	if err != nil {
		t.Fatalf("links: %v", err)
	}

	mux := http.NewServeMux()
	public := NewPublicAPI(
		WithReadService(content.NewReadService(posts, categories, tags)),
		WithRoadmap(svc.roadmap),
		WithCommunity(svc.community),
		WithAuth(identitySvc),
		WithLinks(builder),
	)
	if err := public.Register(mux); err != nil {
		t.Fatalf("register public api: %v", err)
	}
	admin := NewAdminAPI(
		WithContentAdmin(svc.content),
		WithRoadmapAdmin(svc.roadmap),
		WithProfiles(identitySvc),
		WithModeration(svc.community),
		WithAuthenticator(identitySvc),
	)
	if err := admin.Register(mux); err != nil {
		t.Fatalf("register admin api: %v", err)
	}
	return mux, svc
}

func adminToken(t *testing.T, svc testServices) string {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.identity.EnsureAdmin(ctx, adminEmail, adminPassword); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	session, err := svc.identity.SignIn(ctx, adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("sign in admin: %v", err)
	}
	return session.Token
}

func readerSession(t *testing.T, svc testServices, email string) *identity.Session {
	t.Helper()
	session, err := svc.identity.SignUp(context.Background(), identity.SignUpInput{
		Email:       email,
		Password:    "correct horse",
		DisplayName: "Reader",
	})
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	return session
}

func publishedPost(t *testing.T, svc testServices, input content.PostInput) *content.Post {
	t.Helper()
	if input.Draft == nil {
		draft := false
		input.Draft = &draft
	}
	post, err := svc.content.CreatePost(context.Background(), input)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func localized(en, ro string) localization.Field {
	return localization.Localized(map[localization.Locale]string{"en": en, "ro": ro})
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path, token string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
