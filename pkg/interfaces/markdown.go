package interfaces

import (
	"context"
	"time"
)

// MarkdownParser converts Markdown bytes into HTML. Parsers are reusable and
// safe for concurrent use.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Raw HTML in post bodies is
// escaped unless AllowHTML is set.
type ParseOptions struct {
	Extensions []string `json:"extensions" yaml:"extensions"`
	HardWraps  bool     `json:"hard_wraps" yaml:"hard_wraps"`
	AllowHTML  bool     `json:"allow_html" yaml:"allow_html"`
}

// MarkdownService loads post files from disk, renders them and imports them
// as blog posts.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
}

// Document is one Markdown file. Translations of a post live side by side as
// name.md, name.ro.md and name.ru.md and share a Key.
type Document struct {
	FilePath     string
	Key          string
	Locale       string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the file.
	Checksum []byte
}

// FrontMatter is the metadata block of a post file. Localized titles and
// descriptions use title_<locale> and description_<locale> keys; a bare title
// belongs to the document's own locale.
type FrontMatter struct {
	Title        string            `yaml:"title" json:"title"`
	Titles       map[string]string `yaml:"-" json:"titles,omitempty"`
	Description  string            `yaml:"description" json:"description"`
	Descriptions map[string]string `yaml:"-" json:"descriptions,omitempty"`
	Slug         string            `yaml:"slug" json:"slug"`
	Category     string            `yaml:"category" json:"category"`
	Tags         []string          `yaml:"tags" json:"tags"`
	Draft        *bool             `yaml:"draft" json:"draft,omitempty"`
	Type         string            `yaml:"type" json:"type"`
	YouTubeURL   string            `yaml:"youtube_url" json:"youtube_url"`
	Duration     string            `yaml:"duration" json:"duration"`
	Date         time.Time         `yaml:"date" json:"date"`
	Custom       map[string]any    `yaml:",inline" json:"custom"`
}

// LoadOptions fine-tunes how documents are discovered.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how documents become posts.
type ImportOptions struct {
	// DryRun validates every post without writing.
	DryRun bool
	// DefaultDraft applies to files without a draft key.
	DefaultDraft bool
}

// ImportResult reports the slugs touched by an import run. A failing post is
// recorded in Errors and does not stop the run.
type ImportResult struct {
	Created []string
	Updated []string
	Skipped []string
	Errors  []error
}
