package contentcmd

import (
	"context"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

var (
	_ command.Commander[ToggleDraftCommand] = (*ToggleDraftHandler)(nil)
	_ command.Commander[EnsureTagCommand]   = (*EnsureTagHandler)(nil)
)

// ToggleDraftHandler flips post visibility through the admin service.
type ToggleDraftHandler struct {
	inner *commands.Handler[ToggleDraftCommand]
}

// NewToggleDraftHandler constructs a handler wired to the provided admin service.
func NewToggleDraftHandler(service content.AdminService, logger interfaces.Logger, opts ...commands.HandlerOption[ToggleDraftCommand]) *ToggleDraftHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ToggleDraftCommand) error {
		post, err := service.ToggleDraft(ctx, msg.PostID)
		if err != nil {
			return err
		}
		logger.Info("content.command.toggle_draft.completed", "post_id", post.ID, "draft", post.Draft)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ToggleDraftCommand]{
		commands.WithLogger[ToggleDraftCommand](logger),
		commands.WithOperation[ToggleDraftCommand]("content.toggle_draft"),
		commands.WithMessageFields(func(msg ToggleDraftCommand) map[string]any {
			return map[string]any{"post_id": msg.PostID}
		}),
		commands.WithRejection[ToggleDraftCommand](commands.RejectOn(content.ErrPostNotFound)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ToggleDraftHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ToggleDraftCommand].
func (h *ToggleDraftHandler) Execute(ctx context.Context, msg ToggleDraftCommand) error {
	return h.inner.Execute(ctx, msg)
}

// EnsureTagHandler makes sure a tag exists before posts reference it.
type EnsureTagHandler struct {
	inner *commands.Handler[EnsureTagCommand]
}

func NewEnsureTagHandler(service content.AdminService, logger interfaces.Logger, opts ...commands.HandlerOption[EnsureTagCommand]) *EnsureTagHandler {
	exec := func(ctx context.Context, msg EnsureTagCommand) error {
		_, err := service.EnsureTag(ctx, msg.Name)
		return err
	}

	handlerOpts := []commands.HandlerOption[EnsureTagCommand]{
		commands.WithLogger[EnsureTagCommand](logger),
		commands.WithOperation[EnsureTagCommand]("content.tag.ensure"),
		commands.WithTelemetry(commands.DefaultTelemetry[EnsureTagCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &EnsureTagHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[EnsureTagCommand].
func (h *EnsureTagHandler) Execute(ctx context.Context, msg EnsureTagCommand) error {
	return h.inner.Execute(ctx, msg)
}
