package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
)

func TestPublicAPI_DraftsAreHidden(t *testing.T) {
	mux, svc := setupAPI(t)

	publishedPost(t, svc, content.PostInput{Slug: "live", Title: localization.Plain("Live")})
	draft := true
	publishedPost(t, svc, content.PostInput{Slug: "hidden", Title: localization.Plain("Hidden"), Draft: &draft})

	doJSONRequest(t, mux, http.MethodGet, "/en/posts/hidden", "", nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodGet, "/en/posts/hidden/comments", "", nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodGet, "/en/posts/missing", "", nil, http.StatusNotFound)

	rec := doJSONRequest(t, mux, http.MethodGet, "/en/posts", "", nil, http.StatusOK)
	var list struct {
		Posts []content.PostView `json:"posts"`
	}
	decodeJSONBody(t, rec, &list)
	if len(list.Posts) != 1 || list.Posts[0].Slug != "live" {
		t.Fatalf("expected only the published post, got %+v", list.Posts)
	}
}

func TestPublicAPI_ResolvesLocaleWithFallback(t *testing.T) {
	mux, svc := setupAPI(t)
	publishedPost(t, svc, content.PostInput{
		Slug:    "hello",
		Title:   localized("Hello", "Salut"),
		Content: localization.Localized(map[localization.Locale]string{"en": "Body"}),
	})

	cases := []struct {
		path   string
		accept string
		locale localization.Locale
		title  string
	}{
		{"/ro/posts/hello", "", "ro", "Salut"},
		{"/ru/posts/hello", "", "ru", "Hello"},
		{"/xx/posts/hello", "ro-RO,ro;q=0.9", "ro", "Salut"},
		{"/xx/posts/hello", "", "en", "Hello"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.accept != "" {
			req.Header.Set("Accept-Language", tc.accept)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code == http.StatusFound {
			// unsupported prefixes land on the negotiated locale
			req = httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil)
			req.Header.Set("Accept-Language", tc.accept)
			rec = httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d (%s)", tc.path, rec.Code, rec.Body.String())
		}
		var view content.PostView
		decodeJSONBody(t, rec, &view)
		if view.Locale != tc.locale || view.Title != tc.title {
			t.Fatalf("%s: expected %s/%q, got %s/%q", tc.path, tc.locale, tc.title, view.Locale, view.Title)
		}
		if view.Body != "Body" {
			t.Fatalf("%s: expected body fallback to en, got %q", tc.path, view.Body)
		}
		if view.URL != "https://blog.example.com/"+tc.locale.String()+"/posts/hello" {
			t.Fatalf("%s: unexpected canonical url %q", tc.path, view.URL)
		}
		if len(view.Alternates) != len(localization.SupportedLocales()) {
			t.Fatalf("%s: expected alternates for every locale, got %v", tc.path, view.Alternates)
		}
	}
}

func TestPublicAPI_RootRedirectsToPreferredLocale(t *testing.T) {
	mux, _ := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/ru/" {
		t.Fatalf("expected /ru/, got %q", location)
	}
}

func TestPublicAPI_UnknownLocalePrefix(t *testing.T) {
	mux, _ := setupAPI(t)

	cases := []struct {
		method   string
		path     string
		accept   string
		status   int
		location string
	}{
		{http.MethodGet, "/xx/posts?tag=intro", "", http.StatusFound, "/en/posts?tag=intro"},
		{http.MethodGet, "/fr/posts/hello", "ro-RO,ro;q=0.9", http.StatusFound, "/ro/posts/hello"},
		{http.MethodGet, "/pt-BR/", "ru", http.StatusFound, "/ru/"},
		{http.MethodPost, "/de/posts/hello/comments", "", http.StatusTemporaryRedirect, "/en/posts/hello/comments"},
		{http.MethodGet, "/admin/", "", http.StatusNotFound, ""},
		{http.MethodGet, "/favicon.ico/", "", http.StatusNotFound, ""},
		{http.MethodGet, "/feeds/posts", "", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.accept != "" {
			req.Header.Set("Accept-Language", tc.accept)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s %s: expected %d got %d (%s)", tc.method, tc.path, tc.status, rec.Code, rec.Body.String())
		}
		if location := rec.Header().Get("Location"); location != tc.location {
			t.Fatalf("%s %s: expected location %q got %q", tc.method, tc.path, tc.location, location)
		}
	}

	doJSONRequest(t, mux, http.MethodGet, "/RO/posts", "", nil, http.StatusOK)
}

func TestPublicAPI_CategoryPages(t *testing.T) {
	mux, svc := setupAPI(t)
	ctx := context.Background()

	category, err := svc.content.CreateCategory(ctx, content.CategoryInput{Slug: "streams", Name: localized("Streams", "Transmisiuni")})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	publishedPost(t, svc, content.PostInput{Slug: "episode-1", Title: localization.Plain("Episode 1"), CategoryID: &category.ID})

	rec := doJSONRequest(t, mux, http.MethodGet, "/ro/categories/streams", "", nil, http.StatusOK)
	var page struct {
		Category content.CategoryView `json:"category"`
		Posts    []content.PostView   `json:"posts"`
	}
	decodeJSONBody(t, rec, &page)
	if page.Category.Name != "Transmisiuni" || page.Category.URL != "https://blog.example.com/ro/categories/streams" {
		t.Fatalf("unexpected category view %+v", page.Category)
	}
	if len(page.Posts) != 1 || page.Posts[0].Slug != "episode-1" {
		t.Fatalf("unexpected posts %+v", page.Posts)
	}

	doJSONRequest(t, mux, http.MethodGet, "/en/categories/nope", "", nil, http.StatusNotFound)
}

func TestPublicAPI_RoadmapProgress(t *testing.T) {
	mux, svc := setupAPI(t)
	ctx := context.Background()

	topic, err := svc.roadmap.CreateTopic(ctx, roadmap.CreateTopicRequest{
		Slug:          "mobile-app",
		Title:         localized("Mobile app", "Aplicație mobilă"),
		PrivacyPolicy: localized("We collect nothing.", "Nu colectăm nimic."),
	})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	first, err := svc.roadmap.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: localization.Plain("Design")})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.roadmap.AddItem(ctx, roadmap.AddItemRequest{TopicID: topic.ID, Title: localization.Plain("Build")}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.roadmap.UpdateItemStatus(ctx, first.ID, roadmap.StatusDone); err != nil {
		t.Fatalf("update status: %v", err)
	}

	rec := doJSONRequest(t, mux, http.MethodGet, "/ro/roadmap", "", nil, http.StatusOK)
	var summaries []roadmap.TopicSummary
	decodeJSONBody(t, rec, &summaries)
	if len(summaries) != 1 || summaries[0].Percent != 50 || summaries[0].Title != "Aplicație mobilă" {
		t.Fatalf("unexpected summaries %+v", summaries)
	}

	rec = doJSONRequest(t, mux, http.MethodGet, "/en/privacy/mobile-app", "", nil, http.StatusOK)
	var privacy map[string]string
	decodeJSONBody(t, rec, &privacy)
	if privacy["privacy_policy"] != "We collect nothing." {
		t.Fatalf("unexpected privacy page %v", privacy)
	}
	doJSONRequest(t, mux, http.MethodGet, "/en/privacy/unknown", "", nil, http.StatusNotFound)
}

func TestPublicAPI_CommentsRequireSession(t *testing.T) {
	mux, svc := setupAPI(t)
	publishedPost(t, svc, content.PostInput{Slug: "talk", Title: localization.Plain("Talk")})

	body := map[string]any{"content": "Nice stream!"}
	doJSONRequest(t, mux, http.MethodPost, "/en/posts/talk/comments", "", body, http.StatusUnauthorized)
	doJSONRequest(t, mux, http.MethodPost, "/en/posts/talk/comments", "not-a-token", body, http.StatusUnauthorized)

	alice := readerSession(t, svc, "alice@example.com")
	bob := readerSession(t, svc, "bob@example.com")

	doJSONRequest(t, mux, http.MethodPost, "/en/posts/talk/comments", alice.Token, map[string]any{"content": "   "}, http.StatusUnprocessableEntity)
	rec := doJSONRequest(t, mux, http.MethodPost, "/en/posts/talk/comments", alice.Token, body, http.StatusCreated)
	var created commentView
	decodeJSONBody(t, rec, &created)
	if created.Content != "Nice stream!" || created.UserID != alice.ProfileID {
		t.Fatalf("unexpected comment %+v", created.Comment)
	}

	rec = doJSONRequest(t, mux, http.MethodGet, "/en/posts/talk/comments", "", nil, http.StatusOK)
	var listed []commentView
	decodeJSONBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].TimeAgo == "" {
		t.Fatalf("expected one comment with relative time, got %+v", listed)
	}

	path := "/comments/" + created.ID.String()
	doJSONRequest(t, mux, http.MethodDelete, path, bob.Token, nil, http.StatusForbidden)
	doJSONRequest(t, mux, http.MethodDelete, path, alice.Token, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodDelete, path, alice.Token, nil, http.StatusNotFound)
}

func TestPublicAPI_Rating(t *testing.T) {
	mux, svc := setupAPI(t)
	publishedPost(t, svc, content.PostInput{Slug: "rated", Title: localization.Plain("Rated")})
	alice := readerSession(t, svc, "alice@example.com")
	bob := readerSession(t, svc, "bob@example.com")

	doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", "", map[string]any{"value": 5}, http.StatusUnauthorized)
	doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", alice.Token, map[string]any{"value": 9}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", alice.Token, map[string]any{"value": 5}, http.StatusOK)
	rec := doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", bob.Token, map[string]any{"value": 4}, http.StatusOK)

	var summary community.RatingSummary
	decodeJSONBody(t, rec, &summary)
	if summary.Total != 2 || summary.Average != 4.5 || summary.UserValue != 4 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	rec = doJSONRequest(t, mux, http.MethodGet, "/en/posts/rated/rating", "", nil, http.StatusOK)
	decodeJSONBody(t, rec, &summary)
	if summary.UserValue != 0 {
		t.Fatalf("anonymous viewers have no rating, got %+v", summary)
	}
}

func TestPublicAPI_RatingRejectsMissingValue(t *testing.T) {
	mux, svc := setupAPI(t)
	publishedPost(t, svc, content.PostInput{Slug: "rated", Title: localization.Plain("Rated")})
	alice := readerSession(t, svc, "alice@example.com")

	doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", alice.Token, map[string]any{"value": 4}, http.StatusOK)
	doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", alice.Token, map[string]any{}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPut, "/en/posts/rated/rating", alice.Token, map[string]any{"value": 0}, http.StatusUnprocessableEntity)

	rec := doJSONRequest(t, mux, http.MethodGet, "/en/posts/rated/rating", alice.Token, nil, http.StatusOK)
	var summary community.RatingSummary
	decodeJSONBody(t, rec, &summary)
	if summary.Total != 1 || summary.UserValue != 4 || summary.Average != 4 {
		t.Fatalf("rejected ratings must not overwrite the stored one, got %+v", summary)
	}
}

func TestPublicAPI_AuthFlow(t *testing.T) {
	mux, _ := setupAPI(t)

	signup := map[string]any{"email": "reader@example.com", "password": "correct horse", "display_name": "Reader"}
	rec := doJSONRequest(t, mux, http.MethodPost, "/auth/signup", "", signup, http.StatusCreated)
	var session identity.Session
	decodeJSONBody(t, rec, &session)
	if session.Token == "" || session.IsAdmin {
		t.Fatalf("unexpected session %+v", session)
	}
	if cookies := rec.Result().Cookies(); len(cookies) == 0 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	doJSONRequest(t, mux, http.MethodPost, "/auth/signup", "", signup, http.StatusConflict)
	doJSONRequest(t, mux, http.MethodPost, "/auth/signup", "", map[string]any{"email": "bad", "password": "x"}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPost, "/auth/login", "", map[string]any{"email": "reader@example.com", "password": "wrong password"}, http.StatusUnauthorized)
	doJSONRequest(t, mux, http.MethodPost, "/auth/login", "", map[string]any{"email": "reader@example.com", "password": "correct horse"}, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	me := httptest.NewRecorder()
	mux.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("expected /auth/me to accept the cookie, got %d", me.Code)
	}
	var profile identity.Profile
	decodeJSONBody(t, me, &profile)
	if profile.Email != "reader@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	doJSONRequest(t, mux, http.MethodGet, "/auth/me", "", nil, http.StatusUnauthorized)
	rec = doJSONRequest(t, mux, http.MethodPost, "/auth/logout", "", nil, http.StatusNoContent)
	if cookies := rec.Result().Cookies(); len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected logout to expire the cookie, got %v", cookies)
	}
}
