package md2adapt

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-md2adapt/internal/export"
	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/internal/storage"
)

// ConvertFile converts the Markdown file at source and writes the course
// files into outputDir. Nothing is written unless every document was built
// and validated. A dry run goes through the same steps against an in-memory
// writer.
func (c *Converter) ConvertFile(ctx context.Context, source, outputDir string, opts ConvertOptions) (*ConvertSummary, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrSourceRequired
	}
	if timeout := c.container.Config.Output.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	logger := logging.WithSourceContext(c.logger, source, outputDir, opts.Language)

	src, err := c.container.MarkdownService().Load(ctx, source)
	if err != nil {
		logger.Error("convert.file.failed", "stage", "load", "error", err)
		return nil, err
	}
	result, err := c.convert(ctx, src, opts)
	if err != nil {
		logger.Error("convert.file.failed", "stage", "convert", "error", err)
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	writer := c.container.Writer()
	if opts.DryRun {
		writer = storage.NewMemoryWriter()
	}
	dir := outputDir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	written, err := storage.WriteBundle(ctx, writer, dir, result.Files, export.FileNames...)
	if err != nil {
		logger.Error("convert.file.failed", "stage", "write", "error", err)
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	counts := result.Bundle.Counts()
	summary := &ConvertSummary{
		Source:         source,
		OutputDir:      dir,
		Title:          result.Tree.Title,
		Language:       result.Language,
		ContentObjects: counts.ContentObjects,
		Articles:       counts.Articles,
		Blocks:         counts.Blocks,
		Components:     counts.Components,
		Files:          make([]string, 0, len(written)),
		DryRun:         opts.DryRun,
	}
	for _, file := range written {
		summary.Files = append(summary.Files, file.Path)
	}

	logger.Info("convert.file.completed",
		"title", summary.Title,
		"components", summary.Components,
		"files", len(summary.Files),
		"dry_run", summary.DryRun,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return summary, nil
}

// ConvertFiles converts sources concurrently, each into its own directory
// below outputDir named after the slug of the file name. The first failure
// cancels the remaining conversions; summaries of finished files are still
// returned, with nil entries for the others.
func (c *Converter) ConvertFiles(ctx context.Context, sources []string, outputDir string, opts ConvertOptions) ([]*ConvertSummary, error) {
	dirs := OutputDirs(outputDir, sources)
	summaries := make([]*ConvertSummary, len(sources))

	workers := c.container.Config.Output.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, source := range sources {
		g.Go(func() error {
			summary, err := c.ConvertFile(gctx, source, dirs[i], opts)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	err := g.Wait()

	c.logger.Info("convert.batch.completed",
		"sources", len(sources),
		"workers", workers,
		"failed", err != nil,
	)
	return summaries, err
}

// OutputDirs returns one output directory per source: outputDir joined with
// the slug of the file name. Repeated names get the first free numeric
// suffix.
func OutputDirs(outputDir string, sources []string) []string {
	dirs := make([]string, len(sources))
	used := map[string]bool{}
	for i, source := range sources {
		base := sourceSlug(source)
		if base == "" {
			base = "course"
		}
		name := base
		for n := 2; used[name]; n++ {
			name = base + "-" + strconv.Itoa(n)
		}
		used[name] = true
		dirs[i] = filepath.Join(outputDir, name)
	}
	return dirs
}

func sourceSlug(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	normalized, err := slug.Normalize(base)
	if err != nil {
		return ""
	}
	return normalized
}
