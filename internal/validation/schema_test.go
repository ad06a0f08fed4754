package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-md2adapt/internal/adapt"
	"github.com/goliatone/go-md2adapt/internal/export"
	"github.com/goliatone/go-md2adapt/internal/markdown"
)

func TestValidateBundleAcceptsExportedCourse(t *testing.T) {
	for _, opts := range []export.Options{{}, {Language: "de", MenuTitle: "Menu"}} {
		if err := ValidateBundle(buildBundle(t, opts)); err != nil {
			t.Fatalf("ValidateBundle(%+v): %v", opts, err)
		}
	}
}

func TestValidateBundleReportsIssues(t *testing.T) {
	bundle := buildBundle(t, export.Options{})
	bundle.Components[0]["_items"] = []export.Object{}
	bundle.Blocks[0]["_trackingId"] = 0

	err := ValidateBundle(bundle)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	wantIssue(t, issues, "components.json#/0/_items")
	wantIssue(t, issues, "blocks.json#/0/_trackingId")
}

func TestValidateFilesRejectsMissingAndUnknownFiles(t *testing.T) {
	files, err := export.Files(buildBundle(t, export.Options{}))
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	delete(files, export.FileCourse)
	files["extra.json"] = []byte("{}")
	files[export.FileArticles] = []byte("{not json")

	err = ValidateFiles(files)
	issues := Issues(err)
	wantIssue(t, issues, "course.json#: missing file")
	wantIssue(t, issues, "extra.json#: no schema for file")
	wantIssue(t, issues, "articles.json#: decode")
}

func TestCompiledSchemasCoverEveryFile(t *testing.T) {
	schemas, err := compiledSchemas()
	if err != nil {
		t.Fatalf("compiledSchemas: %v", err)
	}
	for _, name := range export.FileNames {
		if schemas[name] == nil {
			t.Fatalf("expected schema for %s", name)
		}
	}
}

func TestIssuesFallsBackToMessage(t *testing.T) {
	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("unexpected issues %+v", issues)
	}
	if Issues(nil) != nil {
		t.Fatal("expected nil issues for nil error")
	}
}

func wantIssue(t *testing.T, issues []ValidationIssue, prefix string) {
	t.Helper()
	for _, issue := range issues {
		if strings.HasPrefix(issue.String(), prefix) {
			return
		}
	}
	t.Fatalf("expected issue starting with %q, got %+v", prefix, issues)
}

func buildBundle(t *testing.T, opts export.Options) *export.Bundle {
	t.Helper()
	root, err := adapt.Map([]markdown.Block{
		markdown.Heading(1, "Course"),
		markdown.Heading(2, "Page"),
		markdown.Heading(5, "[mcq] Question"),
		{Kind: markdown.BlockList, Items: []markdown.ListItem{
			{Text: "yes", Checkbox: markdown.CheckboxChecked},
			{Text: "no\nFeedback: Think again.", Checkbox: markdown.CheckboxUnchecked},
		}},
		markdown.Heading(5, "[slider] Rate"),
		markdown.Paragraph("scale: 1..5"),
		markdown.Heading(5, "Pairs"),
		markdown.Paragraph("Type: matching"),
		{Kind: markdown.BlockList, Items: []markdown.ListItem{
			{Text: "Q", Children: []markdown.ListItem{{Text: "A", Checkbox: markdown.CheckboxChecked}}},
		}},
		{Kind: markdown.BlockImage, Image: &markdown.Image{Src: "a.png", Alt: "A"}},
		markdown.Paragraph("Closing words"),
	})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	bundle, err := export.Build(root, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return bundle
}
