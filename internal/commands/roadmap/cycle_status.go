package roadmapcmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/roadmap"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

const cycleStatusMessageType = "blog.roadmap.item.cycle_status"

// CycleStatusCommand advances a roadmap item to its next status.
type CycleStatusCommand struct {
	ItemID uuid.UUID `json:"item_id"`
}

// Type implements command.Message.
func (CycleStatusCommand) Type() string { return cycleStatusMessageType }

// Validate ensures the message names an item.
func (m CycleStatusCommand) Validate() error {
	if m.ItemID == uuid.Nil {
		return validation.Errors{
			"item_id": validation.NewError("blog.roadmap.item.item_id_required", "item_id is required"),
		}
	}
	return nil
}

var _ command.Commander[CycleStatusCommand] = (*CycleStatusHandler)(nil)

// CycleStatusHandler runs roadmap status transitions through the shared command handler.
type CycleStatusHandler struct {
	inner *commands.Handler[CycleStatusCommand]
}

func NewCycleStatusHandler(service roadmap.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CycleStatusCommand]) *CycleStatusHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg CycleStatusCommand) error {
		item, err := service.CycleItemStatus(ctx, msg.ItemID)
		if err != nil {
			return err
		}
		logger.Info("roadmap.command.cycle_status.completed", "item_id", item.ID, "status", item.Status)
		return nil
	}

	handlerOpts := []commands.HandlerOption[CycleStatusCommand]{
		commands.WithLogger[CycleStatusCommand](logger),
		commands.WithOperation[CycleStatusCommand]("roadmap.item.cycle_status"),
		commands.WithMessageFields(func(msg CycleStatusCommand) map[string]any {
			return map[string]any{"item_id": msg.ItemID}
		}),
		commands.WithRejection[CycleStatusCommand](commands.RejectOn(roadmap.ErrItemNotFound)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CycleStatusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CycleStatusCommand].
func (h *CycleStatusHandler) Execute(ctx context.Context, msg CycleStatusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RegisterRoadmapCommands builds the roadmap handler and registers it with reg when supplied.
func RegisterRoadmapCommands(reg commands.Registry, service roadmap.Service, provider interfaces.LoggerProvider) (*CycleStatusHandler, error) {
	if service == nil {
		return nil, errors.New("roadmap command registration: service is nil")
	}
	handler := NewCycleStatusHandler(service, commands.CommandLogger(provider, "roadmap"))
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
