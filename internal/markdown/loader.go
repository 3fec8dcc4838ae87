package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// LoaderConfig configures how post files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where post files live.
	BasePath string
	// DefaultLocale applies to files without a locale suffix.
	DefaultLocale string
	// Locales enumerates the suffixes recognised in name.<locale>.md.
	Locales []string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into documents.
type Loader struct {
	fs            fs.FS
	basePath      string
	defaultLocale string
	locales       map[string]struct{}
	pattern       string
	recursive     bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	locales := make(map[string]struct{}, len(cfg.Locales))
	for _, locale := range cfg.Locales {
		locales[strings.ToLower(locale)] = struct{}{}
	}

	return &Loader{
		fs:            filesystem,
		basePath:      filepath.Clean(cfg.BasePath),
		defaultLocale: cfg.DefaultLocale,
		locales:       locales,
		pattern:       pattern,
		recursive:     cfg.Recursive,
	}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(name)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	key, locale := l.splitName(rel)
	doc, err := BuildDocument(rel, key, locale, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory discovers post files under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	recursive := l.recursive
	if opts.Recursive != nil {
		recursive = *opts.Recursive
	}
	pattern := l.pattern
	if strings.TrimSpace(opts.Pattern) != "" {
		pattern = opts.Pattern
	}

	var docs []*interfaces.Document
	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && current != root {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if match, err := path.Match(pattern, path.Base(current)); err != nil || !match {
			return nil
		}

		doc, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// splitName maps dir/name.ro.md to (dir/name, ro) and dir/name.md to
// (dir/name, default locale).
func (l *Loader) splitName(rel string) (string, string) {
	stem := strings.TrimSuffix(rel, path.Ext(rel))
	if ext := path.Ext(stem); ext != "" {
		candidate := strings.ToLower(strings.TrimPrefix(ext, "."))
		if _, ok := l.locales[candidate]; ok {
			return strings.TrimSuffix(stem, ext), candidate
		}
	}
	return stem, l.defaultLocale
}

func (l *Loader) makeRelative(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return ".", nil
	}
	clean := filepath.Clean(name)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", name)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", name, err)
	}
	return rel, nil
}
