package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// WithFields returns a child of logger carrying fields. Loggers without field
// support are returned as they are, so post and request ids are simply dropped.
// The map is copied; callers may keep mutating theirs.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fielded, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fielded.WithFields(maps.Clone(fields))
}

// ForContext binds the logger to ctx and merges any request fields stored on it.
func ForContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if ctx == nil {
		return logger
	}
	return WithFields(logger.WithContext(ctx), ContextFields(ctx))
}
