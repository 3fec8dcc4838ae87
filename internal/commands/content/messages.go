package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	toggleDraftMessageType = "blog.content.toggle_draft"
	ensureTagMessageType   = "blog.content.tag.ensure"
)

// ToggleDraftCommand flips the draft flag of a post.
type ToggleDraftCommand struct {
	PostID uuid.UUID `json:"post_id"`
}

// Type implements command.Message.
func (ToggleDraftCommand) Type() string { return toggleDraftMessageType }

// Validate ensures the message carries a post identifier.
func (m ToggleDraftCommand) Validate() error {
	if m.PostID == uuid.Nil {
		return validation.Errors{
			"post_id": validation.NewError("blog.content.toggle_draft.post_id_required", "post_id is required"),
		}
	}
	return nil
}

// EnsureTagCommand creates the named tag unless it already exists.
type EnsureTagCommand struct {
	Name string `json:"name"`
}

// Type implements command.Message.
func (EnsureTagCommand) Type() string { return ensureTagMessageType }

func (m EnsureTagCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name,
			validation.By(func(value any) error {
				if strings.TrimSpace(value.(string)) == "" {
					return validation.NewError("blog.content.tag.name_required", "name is required")
				}
				return nil
			}),
			validation.RuneLength(0, 64),
		),
	)
}
