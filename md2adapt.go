// Package md2adapt converts structured Markdown documents into the JSON
// content files of the Adapt e-learning framework.
package md2adapt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-md2adapt/internal/adapt"
	"github.com/goliatone/go-md2adapt/internal/di"
	"github.com/goliatone/go-md2adapt/internal/export"
	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/internal/markdown"
	"github.com/goliatone/go-md2adapt/internal/validation"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

type (
	// ContentNode is a node of the mapped course tree.
	ContentNode = adapt.ContentNode
	// StructureError reports a document the mapper cannot turn into a course.
	StructureError = adapt.StructureError
	// Bundle holds the exported Adapt documents.
	Bundle = export.Bundle
	// ConvertOptions adjusts a single conversion.
	ConvertOptions = interfaces.ConvertOptions
	// ConvertSummary reports one converted file.
	ConvertSummary = interfaces.ConvertSummary
	// Option customises the collaborators built by New.
	Option = di.Option
)

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithWriter         = di.WithWriter
	WithIDFactory      = di.WithIDFactory
	WithFeedbackPolicy = di.WithFeedbackPolicy

	// IsStructureError reports whether err carries a StructureError.
	IsStructureError = adapt.IsStructureError
)

var _ interfaces.CourseConverter = (*Converter)(nil)

// Result is the in-memory outcome of converting one document.
type Result struct {
	Source    string
	Meta      interfaces.DocumentMeta
	Language  string
	MenuTitle string
	Tree      *ContentNode
	Bundle    *Bundle
	// Files maps each output file name to its JSON content.
	Files map[string][]byte
}

// Converter runs conversions with a fixed configuration. It is safe for
// concurrent use; every call builds its own mapper.
type Converter struct {
	container *di.Container
	logger    interfaces.Logger
	exportLog interfaces.Logger
}

// New validates cfg and wires a Converter.
func New(cfg Config, opts ...Option) (*Converter, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Converter{
		container: container,
		logger:    logging.ConvertLogger(container.LoggerProvider()),
		exportLog: logging.ExportLogger(container.LoggerProvider()),
	}, nil
}

// Config returns the configuration the converter was built with.
func (c *Converter) Config() Config {
	return c.container.Config
}

// LoggerProvider exposes the provider so callers can log alongside the
// converter. It is nil when logging is disabled.
func (c *Converter) LoggerProvider() interfaces.LoggerProvider {
	return c.container.LoggerProvider()
}

// Discover expands directory arguments into the Markdown files below them,
// honouring cfg.Markdown.Recursive. File arguments are kept as given.
func (c *Converter) Discover(ctx context.Context, paths []string) ([]string, error) {
	return c.container.MarkdownService().Discover(ctx, paths, c.container.Config.Markdown.Recursive)
}

// Convert maps source and builds every output document without touching
// the filesystem. StructureError is returned unchanged.
func (c *Converter) Convert(ctx context.Context, source []byte, opts ConvertOptions) (*Result, error) {
	src, err := c.container.MarkdownService().Read(ctx, "", source)
	if err != nil {
		return nil, err
	}
	return c.convert(ctx, src, opts)
}

func (c *Converter) convert(ctx context.Context, src *markdown.Source, opts ConvertOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := c.container.Config
	meta := src.Document.Meta
	result := &Result{
		Source:    src.Document.FilePath,
		Meta:      meta,
		Language:  firstNonEmpty(opts.Language, meta.Language, cfg.Language, export.DefaultLanguage),
		MenuTitle: firstNonEmpty(opts.MenuTitle, meta.ParentMenuTitle, cfg.MenuTitle),
	}

	mapper := adapt.NewMapper(c.container.MapperOptions(adapt.Titles{
		Course:  firstNonEmpty(meta.Title, cfg.Mapping.CourseTitle),
		Page:    meta.PageTitle,
		Article: meta.ArticleTitle,
	})...)
	tree, err := mapper.Map(src.Blocks)
	if err != nil {
		return nil, err
	}
	result.Tree = tree

	bundle, err := export.Build(tree, export.Options{
		Language:  result.Language,
		MenuTitle: result.MenuTitle,
	})
	if err != nil {
		return nil, err
	}
	if err := export.ValidateGraph(bundle); err != nil {
		return nil, fmt.Errorf("md2adapt: %w", err)
	}
	result.Bundle = bundle

	files, err := export.Files(bundle)
	if err != nil {
		return nil, err
	}
	if cfg.Features.SchemaValidation {
		if err := validation.ValidateFiles(files); err != nil {
			c.exportLog.Warn("export.schema.invalid",
				"source", result.Source,
				"issues", len(validation.Issues(err)),
			)
			return nil, fmt.Errorf("md2adapt: %w", err)
		}
	}
	counts := bundle.Counts()
	c.exportLog.Debug("export.bundle.built",
		"source", result.Source,
		"language", result.Language,
		"content_objects", counts.ContentObjects,
		"components", counts.Components,
	)
	result.Files = files
	return result, nil
}

// ErrSourceRequired is returned when ConvertFile gets a blank path.
var ErrSourceRequired = errors.New("md2adapt: source path is required")

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
