package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	md2adapt "github.com/goliatone/go-md2adapt"
	"github.com/goliatone/go-md2adapt/internal/commands"
	convertcmd "github.com/goliatone/go-md2adapt/internal/commands/convert"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

const (
	exitFailure   = 1
	exitUsage     = 2
	exitStructure = 3
)

var errUsage = errors.New("usage: md2adapt --out <dir> [flags] <markdown-file|dir>...")

type moduleOptions struct {
	Config md2adapt.Config
	Report func(*interfaces.ConvertSummary)
}

type moduleResources struct {
	file     command.Commander[convertcmd.ConvertFileCommand]
	batch    command.Commander[convertcmd.ConvertBatchCommand]
	discover func(ctx context.Context, paths []string) ([]string, error)
}

var moduleBuilder = buildModule

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Printf("md2adapt: %v", err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return exitUsage
	case md2adapt.IsStructureError(err):
		return exitStructure
	}
	return exitFailure
}

func run(args []string) error {
	fs := flag.NewFlagSet("md2adapt", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	out := fs.String("out", "", "Output directory for the course JSON files")
	lang := fs.String("lang", "", "Label language (front matter wins)")
	menu := fs.String("menu", "", "Menu title; adds a menu above the pages (front matter wins)")
	ids := fs.String("ids", "", "Id strategy: sequential or hashed")
	namespace := fs.String("id-namespace", "", "Namespace for hashed ids")
	mergeText := fs.Bool("merge-text", false, "Merge consecutive text components of a block")
	feedback := fs.String("feedback", "", "Feedback policy: question or option")
	workers := fs.Int("workers", 0, "Concurrent conversions when several files are given")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories of directory arguments")
	logLevel := fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: console, json or pretty")
	quiet := fs.Bool("quiet", false, "Disable logging")
	noSchema := fs.Bool("no-schema", false, "Skip JSON schema validation of the output")
	dryRun := fs.Bool("dry-run", false, "Build and validate without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 || (strings.TrimSpace(*out) == "" && !*dryRun) {
		fs.Usage()
		return errUsage
	}

	cfg := md2adapt.DefaultConfig()
	if strings.TrimSpace(*configPath) != "" {
		loaded, err := md2adapt.LoadConfigFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lang":
			cfg.Language = strings.TrimSpace(*lang)
		case "menu":
			cfg.MenuTitle = strings.TrimSpace(*menu)
		case "ids":
			cfg.IDs.Strategy = strings.TrimSpace(*ids)
		case "id-namespace":
			cfg.IDs.Namespace = strings.TrimSpace(*namespace)
		case "merge-text":
			cfg.Mapping.MergeText = *mergeText
		case "feedback":
			cfg.Mapping.FeedbackPolicy = strings.TrimSpace(*feedback)
		case "workers":
			cfg.Output.Workers = *workers
		case "recursive":
			cfg.Markdown.Recursive = *recursive
		case "log-level":
			cfg.Logging.Level = strings.TrimSpace(*logLevel)
		case "log-format":
			cfg.Logging.Format = strings.TrimSpace(*logFormat)
			if cfg.Logging.Format == "json" || cfg.Logging.Format == "pretty" {
				cfg.Logging.Provider = "gologger"
			}
		case "quiet":
			cfg.Features.Logger = !*quiet
		case "no-schema":
			cfg.Features.SchemaValidation = !*noSchema
		}
	})

	module, err := moduleBuilder(moduleOptions{Config: cfg, Report: report})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	ctx := context.Background()
	sources, err := module.discover(ctx, fs.Args())
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no markdown files found in %s", strings.Join(fs.Args(), ", "))
	}

	if len(sources) == 1 && fs.NArg() == 1 {
		return module.file.Execute(ctx, convertcmd.ConvertFileCommand{
			Source:    sources[0],
			OutputDir: *out,
			DryRun:    *dryRun,
		})
	}
	return module.batch.Execute(ctx, convertcmd.ConvertBatchCommand{
		Sources:   sources,
		OutputDir: *out,
		DryRun:    *dryRun,
	})
}

func buildModule(opts moduleOptions) (*moduleResources, error) {
	converter, err := md2adapt.New(opts.Config)
	if err != nil {
		return nil, err
	}
	set, err := convertcmd.RegisterConvertCommands(nil, converter, converter.LoggerProvider(),
		convertcmd.WithSummaryObserver(opts.Report),
		convertcmd.WithFileHandlerOptions(commands.WithTimeout[convertcmd.ConvertFileCommand](opts.Config.Output.Timeout)),
		// Each file carries its own deadline inside the batch.
		convertcmd.WithBatchHandlerOptions(commands.WithTimeout[convertcmd.ConvertBatchCommand](0)),
	)
	if err != nil {
		return nil, err
	}
	return &moduleResources{
		file:     set.File,
		batch:    set.Batch,
		discover: converter.Discover,
	}, nil
}

func report(summary *interfaces.ConvertSummary) {
	verb := "wrote"
	if summary.DryRun {
		verb = "checked"
	}
	log.Printf("md2adapt: %s %s -> %s title=%q content_objects=%d articles=%d blocks=%d components=%d",
		verb,
		summary.Source,
		summary.OutputDir,
		summary.Title,
		summary.ContentObjects,
		summary.Articles,
		summary.Blocks,
		summary.Components,
	)
}
