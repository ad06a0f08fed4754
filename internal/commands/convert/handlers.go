package convertcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-md2adapt/internal/commands"
	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

const (
	fileOperation  = "convert.file"
	batchOperation = "convert.batch"
)

// ErrConverterRequired is returned when a handler is built without a
// converter.
var ErrConverterRequired = errors.New("convert command: converter is nil")

var (
	_ command.Commander[ConvertFileCommand]  = (*ConvertFileHandler)(nil)
	_ command.Commander[ConvertBatchCommand] = (*ConvertBatchHandler)(nil)
)

// ConvertFileHandler runs single file conversions through the shared
// command handler.
type ConvertFileHandler struct {
	inner *commands.Handler[ConvertFileCommand]
}

// NewConvertFileHandler creates a handler bound to converter.
func NewConvertFileHandler(converter interfaces.CourseConverter, logger interfaces.Logger, observer SummaryObserver, opts ...commands.HandlerOption[ConvertFileCommand]) *ConvertFileHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ConvertFileCommand) error {
		if converter == nil {
			return ErrConverterRequired
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		summary, err := converter.ConvertFile(ctx, msg.Source, msg.OutputDir, interfaces.ConvertOptions{
			Language:  msg.Language,
			MenuTitle: msg.MenuTitle,
			DryRun:    msg.DryRun,
		})
		if err != nil {
			return err
		}
		if summary != nil {
			logging.WithFields(baseLogger, summaryFields(summary)).Info("convert.command.file.completed")
			observer.observe(summary)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertFileCommand]{
		commands.WithLogger[ConvertFileCommand](baseLogger),
		commands.WithOperation[ConvertFileCommand](fileOperation),
		commands.WithMessageFields(func(msg ConvertFileCommand) map[string]any {
			return requestFields(msg.OutputDir, msg.Language, msg.MenuTitle, msg.DryRun, map[string]any{
				"source": msg.Source,
			})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertFileCommand].
func (h *ConvertFileHandler) Execute(ctx context.Context, msg ConvertFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConvertBatchHandler runs multi file conversions through the shared
// command handler.
type ConvertBatchHandler struct {
	inner *commands.Handler[ConvertBatchCommand]
}

// NewConvertBatchHandler creates a handler bound to converter.
func NewConvertBatchHandler(converter interfaces.CourseConverter, logger interfaces.Logger, observer SummaryObserver, opts ...commands.HandlerOption[ConvertBatchCommand]) *ConvertBatchHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ConvertBatchCommand) error {
		if converter == nil {
			return ErrConverterRequired
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		summaries, err := converter.ConvertFiles(ctx, msg.Sources, msg.OutputDir, interfaces.ConvertOptions{
			Language:  msg.Language,
			MenuTitle: msg.MenuTitle,
			DryRun:    msg.DryRun,
		})
		observer.observe(summaries...)
		if err != nil {
			return err
		}

		components := 0
		for _, summary := range summaries {
			if summary != nil {
				components += summary.Components
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"course_count":    len(summaries),
			"component_count": components,
			"dry_run":         msg.DryRun,
		}).Info("convert.command.batch.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertBatchCommand]{
		commands.WithLogger[ConvertBatchCommand](baseLogger),
		commands.WithOperation[ConvertBatchCommand](batchOperation),
		commands.WithMessageFields(func(msg ConvertBatchCommand) map[string]any {
			return requestFields(msg.OutputDir, msg.Language, msg.MenuTitle, msg.DryRun, map[string]any{
				"source_count": len(msg.Sources),
			})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertBatchCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertBatchHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConvertBatchCommand].
func (h *ConvertBatchHandler) Execute(ctx context.Context, msg ConvertBatchCommand) error {
	return h.inner.Execute(ctx, msg)
}

func requestFields(outputDir, language, menuTitle string, dryRun bool, fields map[string]any) map[string]any {
	if outputDir != "" {
		fields["output_dir"] = outputDir
	}
	if language != "" {
		fields["language"] = language
	}
	if menuTitle != "" {
		fields["menu_title"] = menuTitle
	}
	if dryRun {
		fields["dry_run"] = true
	}
	return fields
}

func summaryFields(summary *interfaces.ConvertSummary) map[string]any {
	return map[string]any{
		"title":                summary.Title,
		"language":             summary.Language,
		"content_object_count": summary.ContentObjects,
		"article_count":        summary.Articles,
		"block_count":          summary.Blocks,
		"component_count":      summary.Components,
		"file_count":           len(summary.Files),
		"dry_run":              summary.DryRun,
	}
}
