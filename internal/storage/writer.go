// Package storage writes converted course files. Writers receive complete
// files only; callers build and validate everything before the first write.
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	defaultDirPerm  os.FileMode = 0o755
	defaultFilePerm os.FileMode = 0o644
)

// WriteRequest describes one file routed through a Writer.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	ContentType string
	Checksum    string
}

// Writer abstracts where converted files end up.
type Writer interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, req WriteRequest) error
}

// FSWriter writes to the local filesystem. Each file is written to a
// temporary sibling and renamed into place.
type FSWriter struct {
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

// NewFSWriter returns a filesystem writer with 0755 directories and 0644
// files.
func NewFSWriter() *FSWriter {
	return &FSWriter{DirPerm: defaultDirPerm, FilePerm: defaultFilePerm}
}

func (w *FSWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, w.dirPerm()); err != nil {
		return fmt.Errorf("storage: ensure dir %s: %w", dir, err)
	}
	return nil
}

func (w *FSWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(req.Path)
	if err := w.EnsureDir(ctx, dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(req.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp for %s: %w", req.Path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, req.Content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("storage: write %s: %w", req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("storage: close %s: %w", req.Path, err)
	}
	if err := os.Chmod(tmpName, w.filePerm()); err != nil {
		cleanup()
		return fmt.Errorf("storage: chmod %s: %w", req.Path, err)
	}
	if err := os.Rename(tmpName, req.Path); err != nil {
		cleanup()
		return fmt.Errorf("storage: rename %s: %w", req.Path, err)
	}
	return nil
}

func (w *FSWriter) dirPerm() os.FileMode {
	if w == nil || w.DirPerm == 0 {
		return defaultDirPerm
	}
	return w.DirPerm
}

func (w *FSWriter) filePerm() os.FileMode {
	if w == nil || w.FilePerm == 0 {
		return defaultFilePerm
	}
	return w.FilePerm
}

// MemoryWriter keeps written files in memory. Dry runs and tests use it.
type MemoryWriter struct {
	mu    sync.Mutex
	dirs  map[string]struct{}
	files map[string][]byte
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{dirs: map[string]struct{}{}, files: map[string][]byte{}}
}

func (w *MemoryWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[filepath.Clean(dir)] = struct{}{}
	return nil
}

func (w *MemoryWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return fmt.Errorf("storage: read %s: %w", req.Path, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[filepath.Clean(req.Path)] = data
	return nil
}

// File returns the content written to path.
func (w *MemoryWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[filepath.Clean(path)]
	return data, ok
}

// Paths lists written files in lexical order.
func (w *MemoryWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for path := range w.files {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func validateRequest(req WriteRequest) error {
	if req.Content == nil {
		return errors.New("storage: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("storage: write requires path")
	}
	return nil
}

// WrittenFile reports one file written by WriteBundle.
type WrittenFile struct {
	Path     string
	Size     int64
	Checksum string
}

// WriteBundle writes files into dir in the given order, creating dir first.
// Names missing from order are written afterwards in lexical order.
func WriteBundle(ctx context.Context, w Writer, dir string, files map[string][]byte, order ...string) ([]WrittenFile, error) {
	if w == nil {
		return nil, errors.New("storage: nil writer")
	}
	if err := w.EnsureDir(ctx, dir); err != nil {
		return nil, err
	}

	written := make([]WrittenFile, 0, len(files))
	for _, name := range orderedNames(files, order) {
		data := files[name]
		sum := sha256.Sum256(data)
		req := WriteRequest{
			Path:        filepath.Join(dir, name),
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			ContentType: contentType(name),
			Checksum:    hex.EncodeToString(sum[:]),
		}
		if err := w.WriteFile(ctx, req); err != nil {
			return written, err
		}
		written = append(written, WrittenFile{Path: req.Path, Size: req.Size, Checksum: req.Checksum})
	}
	return written, nil
}

func orderedNames(files map[string][]byte, order []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, name := range order {
		if _, ok := files[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	rest := make([]string, 0, len(files)-len(out))
	for name := range files {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func contentType(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return "application/json"
	}
	return "application/octet-stream"
}
