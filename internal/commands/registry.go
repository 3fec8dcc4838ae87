package commands

// Registry is the minimal registration contract expected when wiring command handlers.
// Hosts supply one through di.WithCommandRegistry; nil skips registration.
type Registry interface {
	RegisterCommand(handler any) error
}
