package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importDirectoryMessageType = "blog.content.import_markdown"

// ImportDirectoryCommand imports every Markdown document under Directory as a post.
// An empty Directory falls back to the configured content directory.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
	// DryRun validates documents without writing posts or categories.
	DryRun bool `json:"dry_run,omitempty"`
	// DefaultDraft applies to documents whose front matter has no draft key.
	DefaultDraft bool `json:"default_draft,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate rejects directories that try to climb out of the content root.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(func(value any) error {
			dir := strings.TrimSpace(value.(string))
			for _, part := range strings.Split(strings.ReplaceAll(dir, "\\", "/"), "/") {
				if part == ".." {
					return validation.NewError("blog.markdown.import.directory_invalid", "directory must not contain '..'")
				}
			}
			return nil
		})),
	)
}
