package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-md2adapt/internal/adapt"
	"github.com/goliatone/go-md2adapt/internal/identity"
	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/internal/logging/console"
	"github.com/goliatone/go-md2adapt/internal/logging/gologger"
	"github.com/goliatone/go-md2adapt/internal/markdown"
	"github.com/goliatone/go-md2adapt/internal/runtimeconfig"
	"github.com/goliatone/go-md2adapt/internal/storage"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// Container wires the collaborators of a conversion run from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	writer         storage.Writer
	markdownSvc    *markdown.Service
	ids            identity.Factory
	feedback       adapt.FeedbackPolicy
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from cfg.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithWriter replaces the filesystem writer.
func WithWriter(writer storage.Writer) Option {
	return func(c *Container) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithMarkdownService replaces the goldmark backed service.
func WithMarkdownService(svc *markdown.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.markdownSvc = svc
		}
	}
}

// WithIDFactory replaces the generator chosen by cfg.IDs.
func WithIDFactory(factory identity.Factory) Option {
	return func(c *Container) {
		if factory != nil {
			c.ids = factory
		}
	}
}

// WithFeedbackPolicy replaces the policy chosen by cfg.Mapping.
func WithFeedbackPolicy(policy adapt.FeedbackPolicy) Option {
	return func(c *Container) {
		if policy != nil {
			c.feedback = policy
		}
	}
}

// NewContainer validates cfg and builds the default collaborators for every
// slot an option did not fill.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureMapping(); err != nil {
		return nil, err
	}
	if c.writer == nil {
		c.writer = storage.NewFSWriter()
	}
	if c.markdownSvc == nil {
		parser := cfg.Markdown.Parser
		c.markdownSvc = markdown.NewService(interfaces.ParseOptions{
			Extensions: parser.Extensions,
			HardWraps:  parser.HardWraps,
			SafeMode:   parser.SafeMode,
		}, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	}

	logging.ModuleLogger(c.loggerProvider, "md2adapt.di").Debug("container.configured",
		"id_strategy", cfg.IDs.Strategy,
		"feedback_policy", cfg.Mapping.FeedbackPolicy,
		"schema_validation", cfg.Features.SchemaValidation,
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure gologger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: level})
	}
	return nil
}

func (c *Container) configureMapping() error {
	if c.ids == nil {
		factory, err := identity.FactoryFor(c.Config.IDs.Strategy, c.Config.IDs.Namespace)
		if err != nil {
			return fmt.Errorf("di: %w", err)
		}
		c.ids = factory
	}
	if c.feedback == nil {
		c.feedback = FeedbackPolicyFor(c.Config.Mapping.FeedbackPolicy)
	}
	return nil
}

// FeedbackPolicyFor resolves a configured policy name. Unknown names fall
// back to question level feedback.
func FeedbackPolicyFor(name string) adapt.FeedbackPolicy {
	if strings.EqualFold(strings.TrimSpace(name), runtimeconfig.FeedbackOption) {
		return adapt.PerOptionFeedback
	}
	return adapt.QuestionFeedback
}

// LoggerProvider returns the configured provider, which is nil when the
// logger feature is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Writer returns the artifact writer.
func (c *Container) Writer() storage.Writer {
	return c.writer
}

// MarkdownService returns the Markdown loader and block extractor.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// MapperOptions returns the mapper configuration for one document.
func (c *Container) MapperOptions(titles adapt.Titles) []adapt.Option {
	return []adapt.Option{
		adapt.WithIDFactory(c.ids),
		adapt.WithFeedbackPolicy(c.feedback),
		adapt.WithMergeText(c.Config.Mapping.MergeText),
		adapt.WithTitles(titles),
		adapt.WithLogger(logging.MapperLogger(c.loggerProvider)),
	}
}
