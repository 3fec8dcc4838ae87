package di

import (
	"testing"

	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = t.TempDir()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if logger := provider.GetLogger("blog.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderUsesConsoleWhenConfigured(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = t.TempDir()
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "error"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.loggerProvider.(*gologger.Provider); ok {
		t.Fatalf("expected console provider, got go-logger")
	}
	if container.LoggerProvider() == nil {
		t.Fatalf("expected a provider")
	}
}

func TestNewLoggerProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Format: "xml"}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	provider, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "Console", Format: "xml"})
	if err != nil || provider == nil {
		t.Fatalf("expected console provider to ignore format, got %v", err)
	}
}
