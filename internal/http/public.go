package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/links"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

const homePostLimit = 6

// PublicAPI serves the locale-prefixed reader surface plus the auth endpoints.
type PublicAPI struct {
	posts     content.ReadService
	projector *content.Projector
	roadmap   roadmap.Service
	community community.Service
	auth      identity.AuthService
	links     *links.Builder
	logger    interfaces.Logger
	now       func() time.Time
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI instance.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		projector: content.NewProjector(nil),
		logger:    logging.HTTPLogger(nil),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithReadService wires the draft-excluding content read path.
func WithReadService(service content.ReadService) PublicOption {
	return func(api *PublicAPI) {
		api.posts = service
	}
}

// WithProjector sets the projector used to resolve posts for a locale.
func WithProjector(projector *content.Projector) PublicOption {
	return func(api *PublicAPI) {
		if projector != nil {
			api.projector = projector
		}
	}
}

func WithRoadmap(service roadmap.Service) PublicOption {
	return func(api *PublicAPI) {
		api.roadmap = service
	}
}

func WithCommunity(service community.Service) PublicOption {
	return func(api *PublicAPI) {
		api.community = service
	}
}

// WithAuth wires sign-up, sign-in and session verification.
func WithAuth(service identity.AuthService) PublicOption {
	return func(api *PublicAPI) {
		api.auth = service
	}
}

// WithLinks attaches canonical and alternate URLs to post and category views.
func WithLinks(builder *links.Builder) PublicOption {
	return func(api *PublicAPI) {
		api.links = builder
	}
}

func WithPublicLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

func WithPublicClock(clock func() time.Time) PublicOption {
	return func(api *PublicAPI) {
		if clock != nil {
			api.now = clock
		}
	}
}

// Register attaches the public endpoints to the provided mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: public api is nil")
	}

	handle := func(pattern string, fn http.HandlerFunc) {
		if strings.Contains(pattern, "{locale}") {
			fn = localeRoute(fn)
		}
		mux.Handle(pattern, withProfile(api.authenticator(), fn))
	}

	handle("GET /{$}", api.handleRoot)
	handle("GET /{locale}/{$}", api.handleHome)
	handle("GET /{locale}/posts", api.handlePosts)
	handle("GET /{locale}/posts/{slug}", api.handlePost)
	handle("GET /{locale}/categories", api.handleCategories)
	handle("GET /{locale}/categories/{slug}", api.handleCategory)
	handle("GET /{locale}/tags", api.handleTags)
	handle("GET /{locale}/roadmap", api.handleRoadmap)
	handle("GET /{locale}/privacy/{slug}", api.handlePrivacy)

	handle("GET /{locale}/posts/{slug}/comments", api.handleComments)
	handle("POST /{locale}/posts/{slug}/comments", api.handleCommentCreate)
	handle("DELETE /comments/{id}", api.handleCommentDelete)
	handle("GET /{locale}/posts/{slug}/rating", api.handleRating)
	handle("PUT /{locale}/posts/{slug}/rating", api.handleRate)

	handle("POST /auth/signup", api.handleSignUp)
	handle("POST /auth/login", api.handleLogin)
	handle("POST /auth/logout", api.handleLogout)
	handle("GET /auth/me", api.handleMe)
	return nil
}

func (api *PublicAPI) authenticator() Authenticator {
	if api.auth == nil {
		return nil
	}
	return api.auth
}

func (api *PublicAPI) handleRoot(w http.ResponseWriter, r *http.Request) {
	locale := localization.FromAcceptLanguage(r.Header.Get("Accept-Language"))
	http.Redirect(w, r, "/"+locale.String()+"/", http.StatusFound)
}

// localeRoute serves fn only under a supported locale prefix. A prefix shaped like a
// language code moves onto the negotiated locale; any other prefix is not ours.
func localeRoute(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		segment := r.PathValue("locale")
		if _, ok := localization.ParseLocale(segment); ok {
			fn(w, r)
			return
		}
		if !looksLikeLanguageTag(segment) {
			writeNotFound(w, "page not found")
			return
		}
		locale := localization.FromAcceptLanguage(r.Header.Get("Accept-Language"))
		target := "/" + locale.String() + strings.TrimPrefix(r.URL.Path, "/"+segment)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		status := http.StatusFound
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			status = http.StatusTemporaryRedirect
		}
		http.Redirect(w, r, target, status)
	}
}

func (api *PublicAPI) handleHome(w http.ResponseWriter, r *http.Request) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	locale := requestLocale(r)
	posts, err := api.posts.GetAllPosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if len(posts) > homePostLimit {
		posts = posts[:homePostLimit]
	}
	categories, err := api.posts.GetCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale":     locale,
		"posts":      api.postViews(posts, locale),
		"categories": api.categoryViews(categories, locale),
	})
}

func (api *PublicAPI) handlePosts(w http.ResponseWriter, r *http.Request) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	locale := requestLocale(r)
	posts, err := api.posts.GetAllPosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	filter := strings.TrimSpace(r.URL.Query().Get("filter"))
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": locale,
		"filter": filter,
		"posts":  api.postViews(content.FilterPosts(posts, filter), locale),
	})
}

func (api *PublicAPI) handlePost(w http.ResponseWriter, r *http.Request) {
	post, ok := api.lookupPost(w, r)
	if !ok {
		return
	}
	locale := requestLocale(r)
	view, err := api.projector.Post(post, locale, true)
	if err != nil {
		writeError(w, err)
		return
	}
	api.decoratePost(&view)
	writeJSON(w, http.StatusOK, view)
}

func (api *PublicAPI) handleCategories(w http.ResponseWriter, r *http.Request) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	categories, err := api.posts.GetCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.categoryViews(categories, requestLocale(r)))
}

func (api *PublicAPI) handleCategory(w http.ResponseWriter, r *http.Request) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	locale := requestLocale(r)
	result, err := api.posts.GetPostsByCategory(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if result.Category == nil {
		writeNotFound(w, "category not found")
		return
	}
	category := content.ProjectCategory(result.Category, locale)
	api.decorateCategory(&category, locale)
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"posts":    api.postViews(result.Posts, locale),
	})
}

func (api *PublicAPI) handleTags(w http.ResponseWriter, r *http.Request) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	tags, err := api.posts.GetTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if tags == nil {
		tags = []*content.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (api *PublicAPI) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	summaries, err := api.roadmap.Summaries(r.Context(), requestLocale(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []roadmap.TopicSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (api *PublicAPI) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	locale := requestLocale(r)
	topic, err := api.roadmap.GetTopicBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slug":           topic.Slug,
		"title":          localization.Resolve(topic.Title, locale),
		"privacy_policy": localization.Resolve(topic.PrivacyPolicy, locale),
	})
}

type commentView struct {
	*community.Comment
	TimeAgo string `json:"time_ago"`
}

func (api *PublicAPI) handleComments(w http.ResponseWriter, r *http.Request) {
	if api.community == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	post, ok := api.lookupPost(w, r)
	if !ok {
		return
	}
	comments, err := api.community.ListComments(r.Context(), post.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	now := api.now()
	out := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		out = append(out, commentView{Comment: comment, TimeAgo: community.TimeAgo(now, comment.CreatedAt)})
	}
	writeJSON(w, http.StatusOK, out)
}

type commentPayload struct {
	Content string `json:"content"`
}

func (api *PublicAPI) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	if api.community == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	profile, err := requireProfile(api.authenticator(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	post, ok := api.lookupPost(w, r)
	if !ok {
		return
	}
	var payload commentPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	comment, err := api.community.AddComment(r.Context(), post.ID, profile.ID, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commentView{Comment: comment, TimeAgo: community.TimeAgo(api.now(), comment.CreatedAt)})
}

func (api *PublicAPI) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	if api.community == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	profile, err := requireProfile(api.authenticator(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid comment id")
		return
	}
	if err := api.community.DeleteComment(r.Context(), id, profile.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *PublicAPI) handleRating(w http.ResponseWriter, r *http.Request) {
	if api.community == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	post, ok := api.lookupPost(w, r)
	if !ok {
		return
	}
	viewer := uuid.Nil
	if profile := profileFromContext(r.Context()); profile != nil {
		viewer = profile.ID
	}
	summary, err := api.community.RatingSummary(r.Context(), post.ID, viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type ratingPayload struct {
	Value int `json:"value"`
}

func (api *PublicAPI) handleRate(w http.ResponseWriter, r *http.Request) {
	if api.community == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	profile, err := requireProfile(api.authenticator(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	post, ok := api.lookupPost(w, r)
	if !ok {
		return
	}
	var payload ratingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if _, err := api.community.Rate(r.Context(), post.ID, profile.ID, payload.Value); err != nil {
		writeError(w, err)
		return
	}
	summary, err := api.community.RatingSummary(r.Context(), post.ID, profile.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type signUpPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (api *PublicAPI) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if api.auth == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload signUpPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	session, err := api.auth.SignUp(r.Context(), identity.SignUpInput{
		Email:       payload.Email,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, session)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (api *PublicAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if api.auth == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload loginPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	session, err := api.auth.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		logging.ForContext(r.Context(), api.logger).Warn("http.auth.login_rejected", "error", err)
		writeError(w, err)
		return
	}
	setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, session)
}

func (api *PublicAPI) handleLogout(w http.ResponseWriter, _ *http.Request) {
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (api *PublicAPI) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := requireProfile(api.authenticator(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// lookupPost resolves {slug} through the read service, so drafts answer 404.
func (api *PublicAPI) lookupPost(w http.ResponseWriter, r *http.Request) (*content.Post, bool) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return nil, false
	}
	post, err := api.posts.GetPostBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if post == nil {
		writeNotFound(w, "post not found")
		return nil, false
	}
	return post, true
}

func (api *PublicAPI) postViews(posts []*content.Post, locale localization.Locale) []content.PostView {
	views := api.projector.Posts(posts, locale)
	for i := range views {
		api.decoratePost(&views[i])
	}
	return views
}

func (api *PublicAPI) categoryViews(categories []*content.Category, locale localization.Locale) []content.CategoryView {
	views := content.ProjectCategories(categories, locale)
	for i := range views {
		api.decorateCategory(&views[i], locale)
	}
	return views
}

func (api *PublicAPI) decoratePost(view *content.PostView) {
	if api.links == nil {
		return
	}
	view.URL = api.links.PostURL(view.Locale, view.Slug)
	view.Alternates = api.links.Alternates(links.RoutePost, map[string]any{"slug": view.Slug})
	if view.Category != nil {
		api.decorateCategory(view.Category, view.Locale)
	}
}

func (api *PublicAPI) decorateCategory(view *content.CategoryView, locale localization.Locale) {
	if api.links == nil {
		return
	}
	view.URL = api.links.CategoryURL(locale, view.Slug)
}
