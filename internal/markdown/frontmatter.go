package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter splits source into its metadata block and Markdown body.
// Keys of the form title_<locale> and description_<locale> are lifted out of
// Custom into Titles and Descriptions.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta interfaces.FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	meta.Titles = liftLocalized(meta.Custom, "title_")
	meta.Descriptions = liftLocalized(meta.Custom, "description_")
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}

// BuildDocument assembles a Document from a file's path, locale and bytes.
// BodyHTML is left empty so callers can render lazily.
func BuildDocument(path, key, locale string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &interfaces.Document{
		FilePath:     path,
		Key:          key,
		Locale:       locale,
		FrontMatter:  meta,
		Body:         bytes.TrimSpace(body),
		LastModified: modified,
	}, nil
}

func liftLocalized(custom map[string]any, prefix string) map[string]string {
	out := map[string]string{}
	for key, value := range custom {
		locale, ok := strings.CutPrefix(key, prefix)
		if !ok || locale == "" {
			continue
		}
		text, ok := value.(string)
		if !ok {
			continue
		}
		out[strings.ToLower(locale)] = strings.TrimSpace(text)
		delete(custom, key)
	}
	return out
}
