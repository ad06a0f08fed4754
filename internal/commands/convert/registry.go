package convertcmd

import (
	"github.com/goliatone/go-md2adapt/internal/commands"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterConvertCommands.
type HandlerSet struct {
	File  *ConvertFileHandler
	Batch *ConvertBatchHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	observer  SummaryObserver
	fileOpts  []commands.HandlerOption[ConvertFileCommand]
	batchOpts []commands.HandlerOption[ConvertBatchCommand]
}

// WithSummaryObserver forwards every conversion summary to fn.
func WithSummaryObserver(fn func(*interfaces.ConvertSummary)) Option {
	return func(cfg *options) {
		cfg.observer = SummaryObserver{OnSummary: fn}
	}
}

// WithFileHandlerOptions forwards options to the ConvertFileHandler
// constructor.
func WithFileHandlerOptions(opts ...commands.HandlerOption[ConvertFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileOpts = append(cfg.fileOpts, opts...)
	}
}

// WithBatchHandlerOptions forwards options to the ConvertBatchHandler
// constructor.
func WithBatchHandlerOptions(opts ...commands.HandlerOption[ConvertBatchCommand]) Option {
	return func(cfg *options) {
		cfg.batchOpts = append(cfg.batchOpts, opts...)
	}
}

// RegisterConvertCommands builds the conversion handlers and registers them
// with reg when it is not nil.
func RegisterConvertCommands(reg CommandRegistry, converter interfaces.CourseConverter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if converter == nil {
		return nil, ErrConverterRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "convert")
	set := &HandlerSet{
		File:  NewConvertFileHandler(converter, logger, cfg.observer, cfg.fileOpts...),
		Batch: NewConvertBatchHandler(converter, logger, cfg.observer, cfg.batchOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.File); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Batch); err != nil {
			return nil, err
		}
	}
	return set, nil
}
