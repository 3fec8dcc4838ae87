// Package video extracts YouTube identifiers from the URL shapes authors
// paste into video posts.
package video

import (
	"fmt"
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:embed/|v/|watch\?v=|shorts/))([^&?\s]+)`)

// ExtractID returns the video identifier carried by url. The identifier
// stops at the first '&', '?' or whitespace character. ok is false when no
// recognized shape matches.
func ExtractID(url string) (id string, ok bool) {
	match := idPattern.FindStringSubmatch(url)
	if len(match) < 2 || match[1] == "" {
		return "", false
	}
	return match[1], true
}

// EmbedURL returns the player URL for id.
func EmbedURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
}

// ThumbnailURL returns the high quality thumbnail URL for id.
func ThumbnailURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}
