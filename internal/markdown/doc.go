// Package markdown renders post bodies with goldmark and imports post files
// with front matter into the content store. Translations of a post are
// sibling files named name.md, name.ro.md and name.ru.md.
package markdown
