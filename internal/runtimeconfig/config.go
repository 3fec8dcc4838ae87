package runtimeconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/localization"
	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "BLOG_"

// ErrStorageConfigInvalid wraps schema violations in the storage section.
var ErrStorageConfigInvalid = errors.New("blog config: storage section is invalid")

// ErrAdminPasswordRequired indicates an admin email was configured without a password.
var ErrAdminPasswordRequired = errors.New("blog config: auth admin password is required when admin email is set")

// Config aggregates the runtime settings for the blog. Fields keep simple types so the
// YAML file and the BLOG_* environment map onto them directly.
type Config struct {
	DefaultLocale string            `yaml:"default_locale" env:"DEFAULT_LOCALE"`
	I18N          I18NConfig        `yaml:"i18n" envPrefix:"I18N_"`
	Storage       pkgstorage.Config `yaml:"storage" envPrefix:"STORAGE_"`
	Cache         CacheConfig       `yaml:"cache" envPrefix:"CACHE_"`
	HTTP          HTTPConfig        `yaml:"http" envPrefix:"HTTP_"`
	Auth          AuthConfig        `yaml:"auth" envPrefix:"AUTH_"`
	Logging       LoggingConfig     `yaml:"logging" envPrefix:"LOG_"`
	Markdown      MarkdownConfig    `yaml:"markdown" envPrefix:"MARKDOWN_"`
}

// I18NConfig lists the locales served by the public site.
type I18NConfig struct {
	Locales []string `yaml:"locales" env:"LOCALES"`
}

// CacheConfig toggles the repository cache. It is off unless enabled explicitly.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" env:"ENABLED"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"DEFAULT_TTL"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	BaseURL         string        `yaml:"base_url" env:"BASE_URL"`
	AdminBasePath   string        `yaml:"admin_base_path" env:"ADMIN_BASE_PATH"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// AuthConfig configures session tokens and the bootstrap administrator.
type AuthConfig struct {
	// TokenKeyHex is the hex encoded ed25519 secret key. Empty generates an ephemeral key.
	TokenKeyHex   string        `yaml:"token_key_hex" env:"TOKEN_KEY_HEX"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"SESSION_TTL"`
	BcryptCost    int           `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	AdminEmail    string        `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string        `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// LoggingConfig mirrors the go-logger provider options. Provider "console" swaps in the
// plain-text console logger, which only honours Level.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" env:"PROVIDER"`
	Level     string   `yaml:"level" env:"LEVEL"`
	Format    string   `yaml:"format" env:"FORMAT"`
	AddSource bool     `yaml:"add_source" env:"ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"FOCUS"`
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown imports.
type MarkdownConfig struct {
	ContentDir   string               `yaml:"content_dir" env:"CONTENT_DIR"`
	Pattern      string               `yaml:"pattern" env:"PATTERN"`
	Recursive    bool                 `yaml:"recursive" env:"RECURSIVE"`
	DefaultDraft bool                 `yaml:"default_draft" env:"DEFAULT_DRAFT"`
	Parser       MarkdownParserConfig `yaml:"parser" envPrefix:"PARSER_"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions" env:"EXTENSIONS"`
	HardWraps  bool     `yaml:"hard_wraps" env:"HARD_WRAPS"`
	AllowHTML  bool     `yaml:"allow_html" env:"ALLOW_HTML"`
}

// DefaultConfig returns a configuration that runs against a local sqlite file.
func DefaultConfig() Config {
	locales := make([]string, 0, len(localization.SupportedLocales()))
	for _, locale := range localization.SupportedLocales() {
		locales = append(locales, locale.String())
	}
	return Config{
		DefaultLocale: localization.DefaultLocale.String(),
		I18N: I18NConfig{
			Locales: locales,
		},
		Storage: pkgstorage.Config{
			Driver: pkgstorage.DriverSQLite,
			DSN:    "file:blog.db?cache=shared&_fk=1",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			BaseURL:         "http://localhost:8080",
			AdminBasePath:   "/admin/api",
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			SessionTTL: 7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
	}
}

// Validate performs consistency checks across sections. Field problems are reported as
// ozzo-validation errors keyed by section.
func (cfg Config) Validate() error {
	errs := validation.Errors{}

	if _, ok := localization.ParseLocale(cfg.DefaultLocale); !ok {
		errs["default_locale"] = validation.NewError("blog.config.default_locale_unsupported", "default_locale must be one of en, ro, ru")
	}
	for _, raw := range cfg.I18N.Locales {
		if _, ok := localization.ParseLocale(raw); !ok {
			errs["i18n.locales"] = validation.NewError("blog.config.locale_unsupported", fmt.Sprintf("locale %q is not supported", raw))
			break
		}
	}
	if err := validateStorage(cfg.Storage); err != nil {
		errs["storage"] = err
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		errs["cache.default_ttl"] = validation.NewError("blog.config.cache_ttl_invalid", "default_ttl must be positive when the cache is enabled")
	}
	if err := validation.Validate(strings.TrimSpace(cfg.HTTP.Addr), validation.Required); err != nil {
		errs["http.addr"] = err
	}
	if path := strings.TrimSpace(cfg.HTTP.AdminBasePath); path == "" || !strings.HasPrefix(path, "/") {
		errs["http.admin_base_path"] = validation.NewError("blog.config.admin_path_invalid", "admin_base_path must start with /")
	}
	if cfg.Auth.SessionTTL <= 0 {
		errs["auth.session_ttl"] = validation.NewError("blog.config.session_ttl_invalid", "session_ttl must be positive")
	}
	if err := validation.Validate(cfg.Auth.BcryptCost, validation.Max(31)); err != nil {
		errs["auth.bcrypt_cost"] = err
	}
	if strings.TrimSpace(cfg.Auth.AdminEmail) != "" && cfg.Auth.AdminPassword == "" {
		errs["auth.admin_password"] = ErrAdminPasswordRequired
	}
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)),
		validation.In("", "gologger", "console")); err != nil {
		errs["logging.provider"] = err
	}
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(cfg.Logging.Level)),
		validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")); err != nil {
		errs["logging.level"] = err
	}
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(cfg.Logging.Format)),
		validation.In("", "json", "console", "pretty")); err != nil {
		errs["logging.format"] = err
	}
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		errs["markdown.content_dir"] = validation.NewError("blog.config.content_dir_required", "content_dir is required")
	}
	return errs.Filter()
}

var compiledStorageSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("storage.json", strings.NewReader(pkgstorage.ConfigJSONSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("storage.json")
})

func validateStorage(cfg pkgstorage.Config) error {
	schema, err := compiledStorageSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageConfigInvalid, err)
	}
	return nil
}
