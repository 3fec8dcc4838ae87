package contentcmd

import (
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// HandlerSet groups the content command handlers.
type HandlerSet struct {
	ToggleDraft *ToggleDraftHandler
	EnsureTag   *EnsureTagHandler
}

// RegisterContentCommands builds the content handlers and registers them with reg when
// one is supplied.
func RegisterContentCommands(reg commands.Registry, service content.AdminService, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("content command registration: service is nil")
	}
	logger := commands.CommandLogger(provider, "content")
	set := &HandlerSet{
		ToggleDraft: NewToggleDraftHandler(service, logger),
		EnsureTag:   NewEnsureTagHandler(service, logger),
	}
	if reg != nil {
		if err := reg.RegisterCommand(set.ToggleDraft); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.EnsureTag); err != nil {
			return nil, err
		}
	}
	return set, nil
}
