// Package links builds locale-prefixed public URLs with go-urlkit.
package links

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/localization"
	urlkit "github.com/goliatone/go-urlkit"
)

const rootGroup = "site"

// Route names understood by the builder.
const (
	RouteHome       = "home"
	RoutePosts      = "posts"
	RoutePost       = "post"
	RouteCategories = "categories"
	RouteCategory   = "category"
	RouteTags       = "tags"
	RouteRoadmap    = "roadmap"
	RoutePrivacy    = "privacy"
)

var routePaths = map[string]string{
	RouteHome:       "/",
	RoutePosts:      "/posts",
	RoutePost:       "/posts/:slug",
	RouteCategories: "/categories",
	RouteCategory:   "/categories/:slug",
	RouteTags:       "/tags",
	RouteRoadmap:    "/roadmap",
	RoutePrivacy:    "/privacy/:slug",
}

// Builder resolves route names to absolute URLs for each supported locale.
type Builder struct {
	manager *urlkit.RouteManager
	groups  map[localization.Locale]*urlkit.Group
}

// NewBuilder registers one urlkit group per supported locale under baseURL.
func NewBuilder(baseURL string) (*Builder, error) {
	locales := localization.SupportedLocales()
	children := make([]urlkit.GroupConfig, 0, len(locales))
	for _, locale := range locales {
		children = append(children, urlkit.GroupConfig{
			Name:  locale.String(),
			Path:  "/" + locale.String(),
			Paths: copyPaths(),
		})
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    rootGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths:   copyPaths(),
				Groups:  children,
			},
		},
	})

	root, err := lookupGroup(manager, rootGroup)
	if err != nil {
		return nil, err
	}
	builder := &Builder{
		manager: manager,
		groups:  make(map[localization.Locale]*urlkit.Group, len(locales)),
	}
	for _, locale := range locales {
		group, err := lookupChildGroup(root, locale.String())
		if err != nil {
			return nil, err
		}
		builder.groups[locale] = group
	}
	return builder, nil
}

// URL builds route for locale. Unknown locales use the default locale.
func (b *Builder) URL(locale localization.Locale, route string, params map[string]any) (string, error) {
	if b == nil {
		return "", fmt.Errorf("links: builder not configured")
	}
	group, ok := b.groups[locale]
	if !ok {
		group = b.groups[localization.DefaultLocale]
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

// PostURL returns the public URL of a post, or "" when it cannot be built.
func (b *Builder) PostURL(locale localization.Locale, slug string) string {
	return b.must(locale, RoutePost, map[string]any{"slug": slug})
}

// CategoryURL returns the public URL of a category listing.
func (b *Builder) CategoryURL(locale localization.Locale, slug string) string {
	return b.must(locale, RouteCategory, map[string]any{"slug": slug})
}

// PrivacyURL returns the privacy policy page of a roadmap topic.
func (b *Builder) PrivacyURL(locale localization.Locale, slug string) string {
	return b.must(locale, RoutePrivacy, map[string]any{"slug": slug})
}

// RoadmapURL returns the roadmap page.
func (b *Builder) RoadmapURL(locale localization.Locale) string {
	return b.must(locale, RouteRoadmap, nil)
}

// Alternates returns route for every supported locale, keyed by locale code.
func (b *Builder) Alternates(route string, params map[string]any) map[string]string {
	out := make(map[string]string, len(b.groups))
	for _, locale := range localization.SupportedLocales() {
		if url := b.must(locale, route, params); url != "" {
			out[locale.String()] = url
		}
	}
	return out
}

func (b *Builder) must(locale localization.Locale, route string, params map[string]any) string {
	url, err := b.URL(locale, route, params)
	if err != nil {
		return ""
	}
	return url
}

func copyPaths() map[string]string {
	out := make(map[string]string, len(routePaths))
	for name, path := range routePaths {
		out[name] = path
	}
	return out
}

// safeBuilder recovers from urlkit's panic on unknown routes.
func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("links: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: unknown route %q: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}
