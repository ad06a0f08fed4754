package logging

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

const (
	rootModule     = "md2adapt"
	markdownModule = "md2adapt.markdown"
	mapperModule   = "md2adapt.mapper"
	exportModule   = "md2adapt.export"
	convertModule  = "md2adapt.convert"
)

const (
	fieldSourcePath = "source"
	fieldOutputDir  = "output_dir"
	fieldLanguage   = "language"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields the
// no-op logger, so callers never need to guard their log statements.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = NoOp()
	if provider != nil {
		if named := provider.GetLogger(module); named != nil {
			logger = named
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// MarkdownLogger scopes logs emitted while tokenising Markdown sources.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// MapperLogger scopes logs emitted while building content trees.
func MapperLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mapperModule)
}

// ExportLogger scopes logs emitted while serialising Adapt documents.
func ExportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exportModule)
}

// ConvertLogger scopes logs emitted by file conversion runs.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// WithSourceContext annotates logger with the source file, output directory
// and language of a conversion run. Blank values are skipped.
func WithSourceContext(logger interfaces.Logger, source, outputDir, language string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSourcePath] = filepath.ToSlash(trimmed)
	}
	if trimmed := strings.TrimSpace(outputDir); trimmed != "" {
		fields[fieldOutputDir] = filepath.ToSlash(trimmed)
	}
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
