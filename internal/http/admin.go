package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/commands"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	roadmapcmd "github.com/goliatone/go-blog/internal/commands/roadmap"
	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

// AdminAPI registers the editing endpoints. Every route requires an admin session.
type AdminAPI struct {
	basePath   string
	content    content.AdminService
	roadmap    roadmap.Service
	profiles   identity.ProfileService
	moderation community.Service
	markdown   interfaces.MarkdownService
	auth       Authenticator
	logger     interfaces.Logger

	toggleDraft command.Commander[contentcmd.ToggleDraftCommand]
	ensureTag   command.Commander[contentcmd.EnsureTagCommand]
	cycleStatus command.Commander[roadmapcmd.CycleStatusCommand]
	importDocs  command.Commander[markdowncmd.ImportDirectoryCommand]
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.HTTPLogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithContentAdmin wires post, category and tag editing.
func WithContentAdmin(service content.AdminService) AdminOption {
	return func(api *AdminAPI) {
		api.content = service
	}
}

// WithRoadmapAdmin wires topic and item editing.
func WithRoadmapAdmin(service roadmap.Service) AdminOption {
	return func(api *AdminAPI) {
		api.roadmap = service
	}
}

// WithProfiles wires user listing and blocking.
func WithProfiles(service identity.ProfileService) AdminOption {
	return func(api *AdminAPI) {
		api.profiles = service
	}
}

// WithModeration wires comment removal.
func WithModeration(service community.Service) AdminOption {
	return func(api *AdminAPI) {
		api.moderation = service
	}
}

// WithMarkdown wires the Markdown import endpoint.
func WithMarkdown(service interfaces.MarkdownService) AdminOption {
	return func(api *AdminAPI) {
		api.markdown = service
	}
}

// WithAuthenticator sets the session verifier used by the admin guard.
func WithAuthenticator(auth Authenticator) AdminOption {
	return func(api *AdminAPI) {
		api.auth = auth
	}
}

func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// CommandHandlers overrides the command handlers behind state-changing admin actions.
// Nil entries are built from the wired services.
type CommandHandlers struct {
	ToggleDraft command.Commander[contentcmd.ToggleDraftCommand]
	EnsureTag   command.Commander[contentcmd.EnsureTagCommand]
	CycleStatus command.Commander[roadmapcmd.CycleStatusCommand]
	Import      command.Commander[markdowncmd.ImportDirectoryCommand]
}

func WithCommandHandlers(handlers CommandHandlers) AdminOption {
	return func(api *AdminAPI) {
		api.toggleDraft = handlers.ToggleDraft
		api.ensureTag = handlers.EnsureTag
		api.cycleStatus = handlers.CycleStatus
		api.importDocs = handlers.Import
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}
	if api.auth == nil {
		return fmt.Errorf("http: admin api requires an authenticator")
	}
	api.buildCommands()

	base := joinPath(api.basePath, "")
	handle := func(method, suffix string, fn http.HandlerFunc) {
		mux.HandleFunc(method+" "+joinPath(base, suffix), requireAdmin(api.auth, fn))
	}

	handle("GET", "posts", api.handlePostList)
	handle("POST", "posts", api.handlePostCreate)
	handle("GET", "posts/{id}", api.handlePostGet)
	handle("PUT", "posts/{id}", api.handlePostUpdate)
	handle("DELETE", "posts/{id}", api.handlePostDelete)
	handle("POST", "posts/{id}/toggle-draft", api.handlePostToggleDraft)

	handle("GET", "categories", api.handleCategoryList)
	handle("POST", "categories", api.handleCategoryCreate)
	handle("PUT", "categories/{id}", api.handleCategoryUpdate)
	handle("DELETE", "categories/{id}", api.handleCategoryDelete)

	handle("GET", "tags", api.handleTagList)
	handle("POST", "tags", api.handleTagCreate)
	handle("POST", "tags/ensure", api.handleTagEnsure)
	handle("DELETE", "tags/{id}", api.handleTagDelete)

	handle("GET", "roadmap/topics", api.handleTopicList)
	handle("POST", "roadmap/topics", api.handleTopicCreate)
	handle("PUT", "roadmap/topics/{id}", api.handleTopicUpdate)
	handle("DELETE", "roadmap/topics/{id}", api.handleTopicDelete)
	handle("POST", "roadmap/topics/{id}/items", api.handleItemCreate)
	handle("PUT", "roadmap/items/{id}/status", api.handleItemStatus)
	handle("POST", "roadmap/items/{id}/cycle", api.handleItemCycle)
	handle("DELETE", "roadmap/items/{id}", api.handleItemDelete)

	handle("GET", "users", api.handleUserList)
	handle("POST", "users/{id}/block", api.handleUserBlock)
	handle("POST", "users/{id}/unblock", api.handleUserUnblock)

	handle("DELETE", "comments/{id}", api.handleCommentRemove)

	handle("POST", "import", api.handleImport)
	return nil
}

func (api *AdminAPI) buildCommands() {
	logger := logging.WithFields(api.logger, map[string]any{"component": "command"})
	if api.toggleDraft == nil && api.content != nil {
		api.toggleDraft = contentcmd.NewToggleDraftHandler(api.content, logger)
	}
	if api.ensureTag == nil && api.content != nil {
		api.ensureTag = contentcmd.NewEnsureTagHandler(api.content, logger)
	}
	if api.cycleStatus == nil && api.roadmap != nil {
		api.cycleStatus = roadmapcmd.NewCycleStatusHandler(api.roadmap, logger)
	}
	if api.importDocs == nil && api.markdown != nil {
		api.importDocs = markdowncmd.NewImportDirectoryHandler(api.markdown, logger,
			commands.WithTimeout[markdowncmd.ImportDirectoryCommand](5*time.Minute))
	}
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

type postPayload struct {
	Slug        string          `json:"slug"`
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Content     json.RawMessage `json:"content"`
	Type        string          `json:"type"`
	YouTubeURL  string          `json:"youtube_url"`
	Duration    string          `json:"duration"`
	Tags        []string        `json:"tags"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Draft       *bool           `json:"draft"`
	PublishedAt *time.Time      `json:"published_at"`
}

func (p postPayload) input() (content.PostInput, error) {
	title, err := decodeField("title", p.Title)
	if err != nil {
		return content.PostInput{}, err
	}
	description, err := decodeField("description", p.Description)
	if err != nil {
		return content.PostInput{}, err
	}
	body, err := decodeField("content", p.Content)
	if err != nil {
		return content.PostInput{}, err
	}
	return content.PostInput{
		Slug:        p.Slug,
		Title:       title,
		Description: description,
		Content:     body,
		Type:        content.PostType(p.Type),
		YouTubeURL:  p.YouTubeURL,
		Duration:    p.Duration,
		Tags:        p.Tags,
		CategoryID:  p.CategoryID,
		Draft:       p.Draft,
		PublishedAt: p.PublishedAt,
	}, nil
}

func (api *AdminAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	posts, err := api.content.ListPosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content.FilterPosts(posts, r.URL.Query().Get("filter")))
}

func (api *AdminAPI) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	input, err := payload.input()
	if err != nil {
		writeError(w, err)
		return
	}
	post, err := api.content.CreatePost(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (api *AdminAPI) handlePostGet(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	post, err := api.content.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *AdminAPI) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	input, err := payload.input()
	if err != nil {
		writeError(w, err)
		return
	}
	post, err := api.content.UpdatePost(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *AdminAPI) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.content.DeletePost(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handlePostToggleDraft(w http.ResponseWriter, r *http.Request) {
	if api.content == nil || api.toggleDraft == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.toggleDraft.Execute(r.Context(), contentcmd.ToggleDraftCommand{PostID: id}); err != nil {
		writeError(w, err)
		return
	}
	post, err := api.content.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

type categoryPayload struct {
	Slug        string          `json:"slug"`
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	SortOrder   *int            `json:"sort_order"`
}

func (p categoryPayload) input() (content.CategoryInput, error) {
	name, err := decodeField("name", p.Name)
	if err != nil {
		return content.CategoryInput{}, err
	}
	description, err := decodeField("description", p.Description)
	if err != nil {
		return content.CategoryInput{}, err
	}
	return content.CategoryInput{
		Slug:        p.Slug,
		Name:        name,
		Description: description,
		SortOrder:   p.SortOrder,
	}, nil
}

func (api *AdminAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	categories, err := api.content.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (api *AdminAPI) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	input, err := payload.input()
	if err != nil {
		writeError(w, err)
		return
	}
	category, err := api.content.CreateCategory(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (api *AdminAPI) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	input, err := payload.input()
	if err != nil {
		writeError(w, err)
		return
	}
	category, err := api.content.UpdateCategory(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (api *AdminAPI) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.content.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type tagPayload struct {
	Name string `json:"name"`
}

func (api *AdminAPI) handleTagList(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	tags, err := api.content.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (api *AdminAPI) handleTagCreate(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	var payload tagPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	tag, err := api.content.CreateTag(r.Context(), payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// handleTagEnsure selects the tag when it already exists instead of failing.
func (api *AdminAPI) handleTagEnsure(w http.ResponseWriter, r *http.Request) {
	if api.content == nil || api.ensureTag == nil {
		unavailable(w)
		return
	}
	var payload tagPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := api.ensureTag.Execute(r.Context(), contentcmd.EnsureTagCommand{Name: payload.Name}); err != nil {
		writeError(w, err)
		return
	}
	tags, err := api.content.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	name := strings.ToLower(strings.TrimSpace(payload.Name))
	for _, tag := range tags {
		if tag.Name == name {
			writeJSON(w, http.StatusOK, tag)
			return
		}
	}
	writeNotFound(w, "tag not found")
}

func (api *AdminAPI) handleTagDelete(w http.ResponseWriter, r *http.Request) {
	if api.content == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.content.DeleteTag(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type topicPayload struct {
	Slug          string          `json:"slug"`
	Title         json.RawMessage `json:"title"`
	Description   json.RawMessage `json:"description"`
	PrivacyPolicy json.RawMessage `json:"privacy_policy"`
	SortOrder     *int            `json:"sort_order"`
}

func (p topicPayload) update(id uuid.UUID) (roadmap.UpdateTopicRequest, error) {
	title, err := decodeField("title", p.Title)
	if err != nil {
		return roadmap.UpdateTopicRequest{}, err
	}
	description, err := decodeField("description", p.Description)
	if err != nil {
		return roadmap.UpdateTopicRequest{}, err
	}
	privacy, err := decodeField("privacy_policy", p.PrivacyPolicy)
	if err != nil {
		return roadmap.UpdateTopicRequest{}, err
	}
	return roadmap.UpdateTopicRequest{
		ID:            id,
		Slug:          p.Slug,
		Title:         title,
		Description:   description,
		PrivacyPolicy: privacy,
		SortOrder:     p.SortOrder,
	}, nil
}

func (api *AdminAPI) handleTopicList(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	topics, err := api.roadmap.ListTopics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (api *AdminAPI) handleTopicCreate(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	var payload topicPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	req, err := payload.update(uuid.Nil)
	if err != nil {
		writeError(w, err)
		return
	}
	topic, err := api.roadmap.CreateTopic(r.Context(), roadmap.CreateTopicRequest{
		Slug:          req.Slug,
		Title:         req.Title,
		Description:   req.Description,
		PrivacyPolicy: req.PrivacyPolicy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, topic)
}

func (api *AdminAPI) handleTopicUpdate(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload topicPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	req, err := payload.update(id)
	if err != nil {
		writeError(w, err)
		return
	}
	topic, err := api.roadmap.UpdateTopic(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (api *AdminAPI) handleTopicDelete(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.roadmap.DeleteTopic(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type itemPayload struct {
	Title json.RawMessage `json:"title"`
}

func (api *AdminAPI) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	topicID, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload itemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	title, err := decodeField("title", payload.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := api.roadmap.AddItem(r.Context(), roadmap.AddItemRequest{TopicID: topicID, Title: title})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (api *AdminAPI) handleItemStatus(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload statusPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	item, err := api.roadmap.UpdateItemStatus(r.Context(), id, roadmap.Status(strings.TrimSpace(payload.Status)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *AdminAPI) handleItemCycle(w http.ResponseWriter, r *http.Request) {
	if api.cycleStatus == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.cycleStatus.Execute(r.Context(), roadmapcmd.CycleStatusCommand{ItemID: id}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if api.roadmap == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.roadmap.DeleteItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleUserList(w http.ResponseWriter, r *http.Request) {
	if api.profiles == nil {
		unavailable(w)
		return
	}
	profiles, err := api.profiles.ListProfiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (api *AdminAPI) handleUserBlock(w http.ResponseWriter, r *http.Request) {
	api.setBlocked(w, r, true)
}

func (api *AdminAPI) handleUserUnblock(w http.ResponseWriter, r *http.Request) {
	api.setBlocked(w, r, false)
}

func (api *AdminAPI) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	if api.profiles == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if current := profileFromContext(r.Context()); blocked && current != nil && current.ID == id {
		writeBadRequest(w, "admins cannot block themselves")
		return
	}
	var (
		profile *identity.Profile
		err     error
	)
	if blocked {
		profile, err = api.profiles.Block(r.Context(), id)
	} else {
		profile, err = api.profiles.Unblock(r.Context(), id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	logging.ForContext(r.Context(), api.logger).Info("http.admin.user_blocked", "profile_id", id, "blocked", blocked)
	writeJSON(w, http.StatusOK, profile)
}

func (api *AdminAPI) handleCommentRemove(w http.ResponseWriter, r *http.Request) {
	if api.moderation == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.moderation.RemoveComment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importPayload struct {
	Directory    string `json:"directory"`
	DryRun       bool   `json:"dry_run"`
	DefaultDraft bool   `json:"default_draft"`
}

func (api *AdminAPI) handleImport(w http.ResponseWriter, r *http.Request) {
	if api.importDocs == nil {
		unavailable(w)
		return
	}
	var payload importPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	err := api.importDocs.Execute(r.Context(), markdowncmd.ImportDirectoryCommand{
		Directory:    payload.Directory,
		DryRun:       payload.DryRun,
		DefaultDraft: payload.DefaultDraft,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
