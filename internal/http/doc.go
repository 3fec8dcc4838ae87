// Package http exposes the blog over net/http.
//
// PublicAPI serves localized reads under /{locale}:
//   - Posts: /{locale}/posts, /{locale}/posts/{slug}
//   - Categories: /{locale}/categories, /{locale}/categories/{slug}
//   - Tags and roadmap: /{locale}/tags, /{locale}/roadmap, /{locale}/privacy/{slug}
//   - Community: /{locale}/posts/{slug}/comments, /{locale}/posts/{slug}/rating, /comments/{id}
//   - Sessions: /auth/signup, /auth/login, /auth/logout, /auth/me
//
// AdminAPI mounts under /admin/api and requires an admin session:
//   - Posts: /posts, /posts/{id}, /posts/{id}/toggle-draft
//   - Categories and tags: /categories, /categories/{id}, /tags, /tags/ensure, /tags/{id}
//   - Roadmap: /roadmap/topics, /roadmap/topics/{id}, /roadmap/topics/{id}/items,
//     /roadmap/items/{id}/status, /roadmap/items/{id}/cycle
//   - Moderation: /users, /users/{id}/block, /users/{id}/unblock, /comments/{id}
//   - Markdown import: /import
//
// Host applications can register handlers on their own mux as needed.
package http
