package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// LoaderConfig configures how Markdown sources are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive walks sub-directories in LoadDirectory.
	Recursive bool
}

// Loader reads Markdown documents from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadFile reads and splits a single Markdown document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := filepath.ToSlash(filepath.Clean(path))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{Document: doc, Source: data}, nil
}

// LoadDirectory returns every matching document under dir sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*DocumentResult, error) {
	paths, err := l.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	results := make([]*DocumentResult, 0, len(paths))
	for _, path := range paths {
		result, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Discover lists the paths under dir that match the loader pattern.
func (l *Loader) Discover(ctx context.Context, dir string) ([]string, error) {
	root := filepath.ToSlash(filepath.Clean(dir))

	var paths []string
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.matches(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", root, walkErr)
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) matches(path string) bool {
	match, err := filepath.Match(l.pattern, filepath.Base(path))
	return err == nil && match
}
