package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	BasePath      string
	DefaultLocale string
	Locales       []string
	Pattern       string
	Recursive     bool
	Parser        interfaces.ParseOptions
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithContentAdmin enables ImportDirectory by writing posts through admin.
func WithContentAdmin(admin content.AdminService) ServiceOption {
	return func(s *Service) {
		s.admin = admin
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service implements interfaces.MarkdownService for filesystem-backed post files.
type Service struct {
	cfg      Config
	parser   interfaces.MarkdownParser
	loader   *Loader
	admin    content.AdminService
	importer *Importer
	logger   interfaces.Logger
}

// NewService constructs a Markdown service. When parser is nil a goldmark
// parser with cfg.Parser defaults is used. Locales default to the supported
// blog locales.
func NewService(cfg Config, parser interfaces.MarkdownParser, opts ...ServiceOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = localization.DefaultLocale.String()
	}
	if len(cfg.Locales) == 0 {
		for _, locale := range localization.SupportedLocales() {
			cfg.Locales = append(cfg.Locales, locale.String())
		}
	}

	s := &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:      cfg.BasePath,
			DefaultLocale: cfg.DefaultLocale,
			Locales:       cfg.Locales,
			Pattern:       cfg.Pattern,
			Recursive:     cfg.Recursive,
		}),
		logger: logging.MarkdownLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.admin != nil {
		defaultLocale, _ := localization.ParseLocale(cfg.DefaultLocale)
		s.importer = NewImporter(s.admin,
			WithDefaultLocale(defaultLocale),
			WithImporterLogger(s.logger),
		)
	}
	return s, nil
}

// Parser returns the parser used for rendering, for projections that only
// need Parse.
func (s *Service) Parser() interfaces.MarkdownParser {
	return s.parser
}

// Load reads and renders a single document relative to the base path.
func (s *Service) Load(ctx context.Context, name string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	doc, err := s.loader.LoadFile(ctx, s.normalisePath(name))
	if err != nil {
		return nil, err
	}
	if _, err := s.RenderDocument(ctx, doc, opts.Parser); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadDirectory reads and renders every document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	docs, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), opts)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if _, err := s.RenderDocument(ctx, doc, opts.Parser); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Render parses Markdown bytes into HTML.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument renders the document body and stores it on BodyHTML.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return html, nil
}

// ImportDirectory loads every post file under dir and upserts the posts.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if s.importer == nil {
		return nil, ErrContentServiceRequired
	}
	docs, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}
	return s.importer.Import(ctx, docs, opts)
}

func (s *Service) normalisePath(name string) string {
	if strings.TrimSpace(name) == "" {
		return "."
	}
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.AllowHTML {
		result.AllowHTML = true
	}
	return result
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}

var _ interfaces.MarkdownService = (*Service)(nil)
