package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

func TestParseFrontMatter(t *testing.T) {
	source := strings.Join([]string{
		"---",
		"title: Intro",
		"language: de",
		"parentMenuTitle: Menu",
		"extra: 3",
		"---",
		"# Course",
		"",
	}, "\n")

	meta, body, err := ParseFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Title != "Intro" || meta.Language != "de" || meta.ParentMenuTitle != "Menu" {
		t.Fatalf("unexpected meta %#v", meta)
	}
	if fmt.Sprint(meta.Custom["extra"]) != "3" {
		t.Fatalf("expected custom field, got %#v", meta.Custom)
	}
	if !strings.Contains(string(body), "# Course") || strings.Contains(string(body), "title:") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterOptional(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("# Only Body\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Title != "" || meta.Custom == nil {
		t.Fatalf("unexpected meta %#v", meta)
	}
	if !strings.Contains(string(body), "# Only Body") {
		t.Fatalf("expected body unchanged, got %q", body)
	}
}

func TestExtractPreamble(t *testing.T) {
	body := "parentMenuTitle: \"Kurs\"\nlanguage: \"de\"\ncourseCode: \"K-1\"\n\n# Title\nversion: \"2\"\n"
	meta := interfaces.DocumentMeta{Language: "en"}

	got, rest := ExtractPreamble(meta, []byte(body))
	if got.ParentMenuTitle != "Kurs" {
		t.Fatalf("expected parent menu title, got %#v", got)
	}
	if got.Language != "en" {
		t.Fatalf("expected front matter language to win, got %q", got.Language)
	}
	if got.Version != "" {
		t.Fatalf("expected lines after the first heading to be ignored, got %q", got.Version)
	}
	if got.Custom["courseCode"] != "K-1" {
		t.Fatalf("expected custom preamble value, got %#v", got.Custom)
	}
	if meta.Custom != nil {
		t.Fatalf("expected input meta to stay untouched")
	}

	want := "\n\n\n\n# Title\nversion: \"2\"\n"
	if string(rest) != want {
		t.Fatalf("unexpected body %q", rest)
	}
}

func TestLoaderDiscoverAndLoad(t *testing.T) {
	modified := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"a.md":      {Data: []byte("---\ntitle: A\n---\n# A\n"), ModTime: modified},
		"notes.txt": {Data: []byte("ignored")},
		"sub/b.md":  {Data: []byte("# B\n")},
	}
	ctx := context.Background()

	flat := NewLoader(fsys, LoaderConfig{})
	paths, err := flat.Discover(ctx, ".")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 || paths[0] != "a.md" {
		t.Fatalf("unexpected paths %v", paths)
	}

	deep := NewLoader(fsys, LoaderConfig{Recursive: true})
	results, err := deep.LoadDirectory(ctx, ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 2 || results[1].Document.FilePath != "sub/b.md" {
		t.Fatalf("unexpected results %#v", results)
	}

	doc := results[0].Document
	if doc.Meta.Title != "A" {
		t.Fatalf("expected front matter title, got %#v", doc.Meta)
	}
	if len(doc.Checksum) != 32 {
		t.Fatalf("expected sha256 checksum, got %d bytes", len(doc.Checksum))
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("expected mod time %v, got %v", modified, doc.LastModified)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(fstest.MapFS{"a.md": {Data: []byte("# A")}}, LoaderConfig{})
	if _, err := loader.LoadFile(ctx, "a.md"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestServiceLoadAndDiscover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "course.md")
	content := "language: \"de\"\n\n# Kurs\n\n## Seite\n\nHallo\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := NewService(interfaces.ParseOptions{})
	src, err := svc.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Document.Meta.Language != "de" {
		t.Fatalf("expected preamble language, got %#v", src.Document.Meta)
	}
	if src.Document.FilePath != path {
		t.Fatalf("expected file path %s, got %s", path, src.Document.FilePath)
	}
	if len(src.Blocks) != 3 || src.Blocks[0].Text != "Kurs" {
		t.Fatalf("unexpected blocks %#v", src.Blocks)
	}

	paths, err := svc.Discover(context.Background(), []string{dir}, false)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("unexpected discovered paths %v", paths)
	}

	if _, err := svc.Load(context.Background(), filepath.Join(dir, "missing.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestServiceRead(t *testing.T) {
	svc := NewService(interfaces.ParseOptions{})
	src, err := svc.Read(context.Background(), "inline.md", []byte("# Title\n\nBody\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(src.Blocks) != 2 || src.Document.FilePath != "inline.md" {
		t.Fatalf("unexpected source %#v", src)
	}
}
