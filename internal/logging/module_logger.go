package logging

import (
	"context"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	rootModule      = "blog"
	contentModule   = "blog.content"
	roadmapModule   = "blog.roadmap"
	communityModule = "blog.community"
	identityModule  = "blog.identity"
	httpModule      = "blog.http"
	commandsModule  = "blog.commands"
	markdownModule  = "blog.markdown"
	storageModule   = "blog.storage"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger namespace reserved for posts, categories and tags.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// RoadmapLogger returns the logger namespace reserved for the roadmap widget.
func RoadmapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, roadmapModule)
}

// CommunityLogger returns the logger namespace reserved for comments and ratings.
func CommunityLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, communityModule)
}

// IdentityLogger returns the logger namespace reserved for auth and profiles.
func IdentityLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, identityModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP adapters.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown import.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// StorageLogger returns the logger namespace reserved for database bootstrap.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
