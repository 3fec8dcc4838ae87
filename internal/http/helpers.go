package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/roadmap"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var (
	errUnauthenticated = errors.New("http: sign in required")
	errForbidden       = errors.New("http: admin session required")
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  map[string]string `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: message})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: fieldErrs.Error(),
			Issues:  issues(fieldErrs),
		}
	}

	var wireErr *localization.WireError
	if errors.As(err, &wireErr) {
		resp := errorResponse{Error: "validation_failed", Message: wireErr.Error()}
		if wireErr.Field != "" {
			resp.Issues = map[string]string{wireErr.Field: wireErr.Error()}
		}
		return http.StatusUnprocessableEntity, resp
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) ||
		errors.Is(err, roadmap.ErrTopicTitleRequired) ||
		errors.Is(err, roadmap.ErrItemTitleRequired) ||
		errors.Is(err, roadmap.ErrInvalidSlug) ||
		errors.Is(err, roadmap.ErrInvalidStatus) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		}
	}

	var (
		contentNotFound   *content.NotFoundError
		roadmapNotFound   *roadmap.NotFoundError
		communityNotFound *community.NotFoundError
		identityNotFound  *identity.NotFoundError
	)
	if errors.As(err, &contentNotFound) ||
		errors.As(err, &roadmapNotFound) ||
		errors.As(err, &communityNotFound) ||
		errors.As(err, &identityNotFound) ||
		errors.Is(err, content.ErrPostNotFound) ||
		errors.Is(err, content.ErrCategoryNotFound) ||
		errors.Is(err, content.ErrTagNotFound) ||
		errors.Is(err, roadmap.ErrTopicNotFound) ||
		errors.Is(err, roadmap.ErrItemNotFound) ||
		errors.Is(err, community.ErrCommentNotFound) ||
		errors.Is(err, identity.ErrProfileNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	var duplicate *content.DuplicateError
	if errors.As(err, &duplicate) ||
		errors.Is(err, content.ErrSlugExists) ||
		errors.Is(err, content.ErrTagExists) ||
		errors.Is(err, roadmap.ErrSlugExists) ||
		errors.Is(err, identity.ErrEmailTaken) ||
		errors.Is(err, community.ErrAlreadyRated) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, errUnauthenticated) ||
		errors.Is(err, identity.ErrInvalidCredentials) ||
		errors.Is(err, identity.ErrInvalidToken) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		}
	}

	if errors.Is(err, errForbidden) ||
		errors.Is(err, identity.ErrProfileBlocked) ||
		errors.Is(err, community.ErrAuthorBlocked) ||
		errors.Is(err, community.ErrUnknownAuthor) ||
		errors.Is(err, community.ErrNotCommentOwner) {
		return http.StatusForbidden, errorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func issues(errs validation.Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

// requestLocale resolves the {locale} path value. Unknown segments fall back to the
// Accept-Language header and then to the default locale without an error.
// looksLikeLanguageTag accepts a two or three letter primary subtag with optional
// subtags, such as "fr", "pt-BR" or "zh_Hant".
func looksLikeLanguageTag(segment string) bool {
	primary, rest, _ := strings.Cut(strings.ReplaceAll(segment, "_", "-"), "-")
	if len(primary) < 2 || len(primary) > 3 || !isASCIILetters(primary) {
		return false
	}
	for rest != "" {
		var subtag string
		subtag, rest, _ = strings.Cut(rest, "-")
		if len(subtag) < 2 || len(subtag) > 8 {
			return false
		}
		for _, c := range subtag {
			if !(c >= '0' && c <= '9') && !isASCIILetters(string(c)) {
				return false
			}
		}
	}
	return true
}

func isASCIILetters(value string) bool {
	for _, c := range value {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return value != ""
}

func requestLocale(r *http.Request) localization.Locale {
	return localization.Negotiate(r.PathValue("locale"), r.Header.Get("Accept-Language"))
}

func decodeField(name string, raw json.RawMessage) (localization.Field, error) {
	return localization.DecodeWire(name, raw)
}
