package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/identity"
)

// SessionCookie carries the session token for browser clients. API clients send the
// same token as a bearer Authorization header.
const SessionCookie = "blog_session"

type profileContextKey struct{}

// Authenticator resolves a session token to the signed-in profile.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Profile, error)
}

func sessionToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// withProfile attaches the signed-in profile to the request context when a valid token
// is present. Invalid or missing tokens leave the request anonymous.
func withProfile(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth != nil {
			if token := sessionToken(r); token != "" {
				if profile, err := auth.Authenticate(r.Context(), token); err == nil && profile != nil {
					r = r.WithContext(context.WithValue(r.Context(), profileContextKey{}, profile))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func profileFromContext(ctx context.Context) *identity.Profile {
	profile, _ := ctx.Value(profileContextKey{}).(*identity.Profile)
	return profile
}

// requireProfile verifies the session and rejects anonymous requests.
func requireProfile(auth Authenticator, r *http.Request) (*identity.Profile, error) {
	if profile := profileFromContext(r.Context()); profile != nil {
		return profile, nil
	}
	if auth == nil {
		return nil, errUnauthenticated
	}
	token := sessionToken(r)
	if token == "" {
		return nil, errUnauthenticated
	}
	return auth.Authenticate(r.Context(), token)
}

// requireAdmin wraps next so only admin sessions reach it.
func requireAdmin(auth Authenticator, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := requireProfile(auth, r)
		if err != nil {
			writeError(w, err)
			return
		}
		if !profile.IsAdmin {
			writeError(w, errForbidden)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), profileContextKey{}, profile)))
	}
}

func setSessionCookie(w http.ResponseWriter, session *identity.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
