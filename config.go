package blog

import (
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
)

var (
	ErrStorageConfigInvalid  = runtimeconfig.ErrStorageConfigInvalid
	ErrAdminPasswordRequired = runtimeconfig.ErrAdminPasswordRequired
)

// EnvPrefix namespaces every environment override read by LoadConfig.
const EnvPrefix = runtimeconfig.EnvPrefix

type (
	Config               = runtimeconfig.Config
	I18NConfig           = runtimeconfig.I18NConfig
	StorageConfig        = pkgstorage.Config
	CacheConfig          = runtimeconfig.CacheConfig
	HTTPConfig           = runtimeconfig.HTTPConfig
	AuthConfig           = runtimeconfig.AuthConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads path over DefaultConfig and applies BLOG_* environment overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
