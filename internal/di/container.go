package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/commands"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	roadmapcmd "github.com/goliatone/go-blog/internal/commands/roadmap"
	"github.com/goliatone/go-blog/internal/community"
	"github.com/goliatone/go-blog/internal/content"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/links"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Repositories are in-memory unless a bun
// handle is supplied with WithBunDB.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	postRepo     content.PostRepository
	categoryRepo content.CategoryRepository
	tagRepo      content.TagRepository
	topicRepo    roadmap.TopicRepository
	itemRepo     roadmap.ItemRepository
	profileRepo  identity.ProfileRepository
	commentRepo  community.CommentRepository
	ratingRepo   community.RatingRepository

	tokens       *identity.Tokens
	contentAdmin content.AdminService
	contentRead  content.ReadService
	projector    *content.Projector
	roadmapSvc   roadmap.Service
	identitySvc  identity.Service
	communitySvc community.Service
	markdownSvc  *markdown.Service
	links        *links.Builder

	registry        commands.Registry
	contentCommands *contentcmd.HandlerSet
	roadmapCommands *roadmapcmd.CycleStatusHandler
	importCommand   *markdowncmd.ImportDirectoryHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB switches every repository to bun. The caller owns the handle and is
// expected to have migrated it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCommandRegistry registers the command handlers with reg as they are built.
func WithCommandRegistry(reg commands.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		postRepo:     content.NewMemoryPostRepository(),
		categoryRepo: content.NewMemoryCategoryRepository(),
		tagRepo:      content.NewMemoryTagRepository(),
		topicRepo:    roadmap.NewMemoryTopicRepository(),
		itemRepo:     roadmap.NewMemoryItemRepository(),
		profileRepo:  identity.NewMemoryProfileRepository(),
		commentRepo:  community.NewMemoryCommentRepository(),
		ratingRepo:   community.NewMemoryRatingRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureCacheDefaults(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	c.logger.Info("container.configured",
		"storage", c.storageKind(),
		"cache", c.cacheService != nil,
		"markdown", c.markdownSvc != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider == nil {
		provider, err := NewLoggerProvider(c.Config.Logging)
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "blog.container")
	return nil
}

// NewLoggerProvider builds the provider selected by cfg.Provider: "console" writes plain
// text to stderr, anything else goes through go-logger.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), "console") {
		level, _ := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: &level}), nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		return nil
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("di: repository cache: %w", err)
		}
		c.cacheService = service
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.postRepo = content.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.categoryRepo = content.NewBunCategoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.tagRepo = content.NewBunTagRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.topicRepo = roadmap.NewBunTopicRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.itemRepo = roadmap.NewBunItemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.profileRepo = identity.NewBunProfileRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.commentRepo = community.NewBunCommentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.ratingRepo = community.NewBunRatingRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureServices() error {
	provider := c.loggerProvider

	c.contentAdmin = content.NewAdminService(c.postRepo, c.categoryRepo, c.tagRepo,
		content.WithAdminLogger(logging.ContentLogger(provider)))
	c.contentRead = content.NewReadService(c.postRepo, c.categoryRepo, c.tagRepo,
		content.WithReadLogger(logging.ContentLogger(provider)))
	c.roadmapSvc = roadmap.NewService(c.topicRepo, c.itemRepo,
		roadmap.WithLogger(logging.RoadmapLogger(provider)))

	tokens, err := identity.NewTokens(c.Config.Auth.TokenKeyHex, c.Config.Auth.SessionTTL)
	if err != nil {
		return err
	}
	if c.Config.Auth.TokenKeyHex == "" {
		c.logger.Warn("container.auth.ephemeral_key", "hint", "sessions will not survive a restart")
	}
	c.tokens = tokens
	c.identitySvc = identity.NewService(c.profileRepo, tokens,
		identity.WithBcryptCost(c.Config.Auth.BcryptCost),
		identity.WithLogger(logging.IdentityLogger(provider)))
	c.communitySvc = community.NewService(c.commentRepo, c.ratingRepo, c.identitySvc,
		community.WithLogger(logging.CommunityLogger(provider)))

	builder, err := links.NewBuilder(c.Config.HTTP.BaseURL)
	if err != nil {
		return err
	}
	c.links = builder

	parseOptions := interfaces.ParseOptions{
		Extensions: c.Config.Markdown.Parser.Extensions,
		HardWraps:  c.Config.Markdown.Parser.HardWraps,
		AllowHTML:  c.Config.Markdown.Parser.AllowHTML,
	}
	parser := markdown.NewGoldmarkParser(parseOptions)
	c.projector = content.NewProjector(parser)

	dir := c.Config.Markdown.ContentDir
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		c.logger.Warn("container.markdown.disabled", "content_dir", dir, "error", err)
		return nil
	}
	svc, err := markdown.NewService(markdown.Config{
		BasePath:      dir,
		DefaultLocale: c.Config.DefaultLocale,
		Locales:       c.Config.I18N.Locales,
		Pattern:       c.Config.Markdown.Pattern,
		Recursive:     c.Config.Markdown.Recursive,
		Parser:        parseOptions,
	}, parser,
		markdown.WithContentAdmin(c.contentAdmin),
		markdown.WithLogger(logging.MarkdownLogger(provider)),
	)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureCommands() error {
	set, err := contentcmd.RegisterContentCommands(c.registry, c.contentAdmin, c.loggerProvider)
	if err != nil {
		return err
	}
	c.contentCommands = set

	cycle, err := roadmapcmd.RegisterRoadmapCommands(c.registry, c.roadmapSvc, c.loggerProvider)
	if err != nil {
		return err
	}
	c.roadmapCommands = cycle

	if c.markdownSvc != nil {
		importer, err := markdowncmd.RegisterMarkdownCommands(c.registry, c.markdownSvc, c.loggerProvider)
		if err != nil {
			return err
		}
		c.importCommand = importer
	}
	return nil
}

func (c *Container) storageKind() string {
	if c.bunDB == nil {
		return "memory"
	}
	return c.Config.Storage.Driver
}

// Bootstrap ensures the configured admin account exists. It is a no-op when no
// admin email is configured.
func (c *Container) Bootstrap(ctx context.Context) error {
	email := strings.TrimSpace(c.Config.Auth.AdminEmail)
	if email == "" {
		return nil
	}
	profile, err := c.identitySvc.EnsureAdmin(ctx, email, c.Config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("di: ensure admin: %w", err)
	}
	logging.ForContext(ctx, c.logger).Info("container.admin.ready", "profile_id", profile.ID)
	return nil
}

// Handler builds the HTTP surface: the public reader routes, the auth endpoints and
// the admin API, wrapped in request logging.
func (c *Container) Handler() (http.Handler, error) {
	httpLogger := logging.HTTPLogger(c.loggerProvider)
	mux := http.NewServeMux()

	public := bloghttp.NewPublicAPI(
		bloghttp.WithReadService(c.contentRead),
		bloghttp.WithProjector(c.projector),
		bloghttp.WithRoadmap(c.roadmapSvc),
		bloghttp.WithCommunity(c.communitySvc),
		bloghttp.WithAuth(c.identitySvc),
		bloghttp.WithLinks(c.links),
		bloghttp.WithPublicLogger(httpLogger),
	)
	if err := public.Register(mux); err != nil {
		return nil, err
	}

	handlers := bloghttp.CommandHandlers{
		ToggleDraft: c.contentCommands.ToggleDraft,
		EnsureTag:   c.contentCommands.EnsureTag,
		CycleStatus: c.roadmapCommands,
	}
	if c.importCommand != nil {
		handlers.Import = c.importCommand
	}
	adminOpts := []bloghttp.AdminOption{
		bloghttp.WithBasePath(c.Config.HTTP.AdminBasePath),
		bloghttp.WithContentAdmin(c.contentAdmin),
		bloghttp.WithRoadmapAdmin(c.roadmapSvc),
		bloghttp.WithProfiles(c.identitySvc),
		bloghttp.WithModeration(c.communitySvc),
		bloghttp.WithAuthenticator(c.identitySvc),
		bloghttp.WithAdminLogger(httpLogger),
		bloghttp.WithCommandHandlers(handlers),
	}
	if c.markdownSvc != nil {
		adminOpts = append(adminOpts, bloghttp.WithMarkdown(c.markdownSvc))
	}
	if err := bloghttp.NewAdminAPI(adminOpts...).Register(mux); err != nil {
		return nil, err
	}

	return bloghttp.Middleware(httpLogger, mux), nil
}

// ImportMarkdown runs the import command against dir, relative to the content directory.
func (c *Container) ImportMarkdown(ctx context.Context, dir string, dryRun bool) error {
	if c.importCommand == nil {
		return errors.New("di: markdown import unavailable, content directory missing")
	}
	return c.importCommand.Execute(ctx, markdowncmd.ImportDirectoryCommand{
		Directory:    dir,
		DryRun:       dryRun,
		DefaultDraft: c.Config.Markdown.DefaultDraft,
	})
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ContentAdmin returns the editing service for posts, categories and tags.
func (c *Container) ContentAdmin() content.AdminService {
	return c.contentAdmin
}

// ContentRead returns the draft-excluding read service.
func (c *Container) ContentRead() content.ReadService {
	return c.contentRead
}

func (c *Container) Projector() *content.Projector {
	return c.projector
}

// RoadmapService returns the configured roadmap service.
func (c *Container) RoadmapService() roadmap.Service {
	return c.roadmapSvc
}

// IdentityService returns the configured auth and profile service.
func (c *Container) IdentityService() identity.Service {
	return c.identitySvc
}

// CommunityService returns the configured comments and ratings service.
func (c *Container) CommunityService() community.Service {
	return c.communitySvc
}

// MarkdownService returns nil when the content directory does not exist.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	if c.markdownSvc == nil {
		return nil
	}
	return c.markdownSvc
}

func (c *Container) Links() *links.Builder {
	return c.links
}
