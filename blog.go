package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/goliatone/go-blog/internal/storage"
	"github.com/goliatone/go-blog/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	"github.com/uptrace/bun"
)

// ContentAdminService exports the post, category and tag editing contract.
type ContentAdminService = content.AdminService

// ReadService exports the public, draft-excluding read contract.
type ReadService = content.ReadService

// RoadmapService exports the roadmap contract.
type RoadmapService = roadmap.Service

// IdentityService exports the auth and profile contract.
type IdentityService = identity.Service

// CommunityService exports the comments and ratings contract.
type CommunityService = community.Service

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
	db        *bun.DB
}

// New constructs a blog module using the provided configuration and optional DI overrides.
// Without di.WithBunDB the module runs on in-memory repositories.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Open connects to the configured database, applies Schemas and builds a module on top
// of it. Close releases the connection.
func Open(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	provider, err := di.NewLoggerProvider(cfg.Logging)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, cfg.Storage, logging.StorageLogger(provider))
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(ctx, db, Schemas()...); err != nil {
		_ = db.Close()
		return nil, err
	}
	// caller options come last so an explicit provider still wins
	base := []di.Option{di.WithLoggerProvider(provider), di.WithBunDB(db)}
	module, err := New(cfg, append(base, opts...)...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	module.db = db
	return module, nil
}

// Migrate applies Schemas to the configured database and closes the connection.
func Migrate(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	db, err := storage.Open(ctx, cfg.Storage, logging.StorageLogger(nil))
	if err != nil {
		return err
	}
	migrateErr := storage.Migrate(ctx, db, Schemas()...)
	return errors.Join(migrateErr, db.Close())
}

// Schemas lists the tables every persisted module needs, in creation order.
func Schemas() []pkgstorage.Schema {
	return []pkgstorage.Schema{
		content.Schema(),
		roadmap.Schema(),
		identity.Schema(),
		community.Schema(),
	}
}

// Close releases the database handle opened by Open. It is a no-op for modules built with New.
func (m *Module) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Bootstrap creates the configured administrator when missing.
func (m *Module) Bootstrap(ctx context.Context) error {
	return m.container.Bootstrap(ctx)
}

// Handler returns the public site, auth endpoints and admin API as one handler.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.Handler()
}

// Import loads markdown documents under dir, relative to the configured content directory.
func (m *Module) Import(ctx context.Context, dir string, dryRun bool) error {
	if err := m.container.ImportMarkdown(ctx, dir, dryRun); err != nil {
		return fmt.Errorf("blog: import %s: %w", dir, err)
	}
	return nil
}

// Content returns the editing service.
func (m *Module) Content() ContentAdminService {
	return m.container.ContentAdmin()
}

// Read returns the public read service.
func (m *Module) Read() ReadService {
	return m.container.ContentRead()
}

func (m *Module) Roadmap() RoadmapService {
	return m.container.RoadmapService()
}

func (m *Module) Identity() IdentityService {
	return m.container.IdentityService()
}

func (m *Module) Community() CommunityService {
	return m.container.CommunityService()
}

// Markdown returns the markdown service, or nil when the content directory is missing.
func (m *Module) Markdown() interfaces.MarkdownService {
	return m.container.MarkdownService()
}

// Logger returns a module scoped logger from the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}
