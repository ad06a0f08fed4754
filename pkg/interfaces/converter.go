package interfaces

import "context"

// ConvertOptions adjusts a single conversion run. Blank fields fall back to
// the document metadata and then to the converter configuration.
type ConvertOptions struct {
	Language  string
	MenuTitle string
	// DryRun builds and validates every file without writing it.
	DryRun bool
}

// ConvertSummary reports the outcome of converting one Markdown file.
type ConvertSummary struct {
	Source    string
	OutputDir string
	Title     string
	Language  string

	ContentObjects int
	Articles       int
	Blocks         int
	Components     int

	// Files lists the written paths, or the paths that would have been
	// written on a dry run.
	Files  []string
	DryRun bool
}

// CourseConverter turns Markdown files into Adapt course directories.
type CourseConverter interface {
	ConvertFile(ctx context.Context, source, outputDir string, opts ConvertOptions) (*ConvertSummary, error)
	ConvertFiles(ctx context.Context, sources []string, outputDir string, opts ConvertOptions) ([]*ConvertSummary, error)
}
