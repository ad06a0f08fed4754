package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-md2adapt/internal/identity"
	"github.com/goliatone/go-md2adapt/internal/markdown"
)

var ErrLanguageInvalid = errors.New("md2adapt config: language must be a code such as en or de-CH")
var ErrIDStrategyUnknown = errors.New("md2adapt config: id strategy is invalid")
var ErrIDNamespaceRequired = errors.New("md2adapt config: hashed ids require a namespace")
var ErrFeedbackPolicyUnknown = errors.New("md2adapt config: feedback policy is invalid")
var ErrMarkdownExtensionUnknown = errors.New("md2adapt config: markdown extension is invalid")
var ErrWorkersInvalid = errors.New("md2adapt config: workers must be zero or positive")
var ErrTimeoutInvalid = errors.New("md2adapt config: timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("md2adapt config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("md2adapt config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("md2adapt config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("md2adapt config: logging format is invalid")

// Feedback policy names.
const (
	FeedbackQuestion = "question"
	FeedbackOption   = "option"
)

var languagePattern = regexp.MustCompile(`^[A-Za-z]{2,3}([-_][A-Za-z0-9]{2,8})?$`)

// Config collects every knob of a conversion run. Flags, front matter and
// per call options override it in that order of increasing precedence.
type Config struct {
	Language  string         `yaml:"language"`
	MenuTitle string         `yaml:"menuTitle"`
	IDs       IDConfig       `yaml:"ids"`
	Mapping   MappingConfig  `yaml:"mapping"`
	Markdown  MarkdownConfig `yaml:"markdown"`
	Output    OutputConfig   `yaml:"output"`
	Features  Features       `yaml:"features"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// IDConfig selects the id generator.
type IDConfig struct {
	Strategy  string `yaml:"strategy"`
	Namespace string `yaml:"namespace"`
}

// MappingConfig tunes the mapper.
type MappingConfig struct {
	MergeText      bool   `yaml:"mergeText"`
	FeedbackPolicy string `yaml:"feedbackPolicy"`
	CourseTitle    string `yaml:"courseTitle"`
}

// MarkdownConfig captures discovery and parser behaviour.
type MarkdownConfig struct {
	Recursive bool                 `yaml:"recursive"`
	Parser    MarkdownParserConfig `yaml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for configuration.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hardWraps"`
	SafeMode   bool     `yaml:"safeMode"`
}

// OutputConfig controls batch fan-out and the per file deadline.
type OutputConfig struct {
	// Workers bounds concurrent conversions. Zero uses GOMAXPROCS.
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
}

// Features toggles optional stages.
type Features struct {
	Logger           bool `yaml:"logger"`
	SchemaValidation bool `yaml:"schemaValidation"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"addSource"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the settings used by the CLI without flags.
func DefaultConfig() Config {
	return Config{
		Language: "en",
		IDs: IDConfig{
			Strategy:  identity.StrategySequential,
			Namespace: "md2adapt",
		},
		Mapping: MappingConfig{
			FeedbackPolicy: FeedbackQuestion,
		},
		Markdown: MarkdownConfig{
			Recursive: true,
			Parser: MarkdownParserConfig{
				Extensions: []string{"gfm", "tasklist"},
			},
		},
		Output: OutputConfig{
			Workers: 4,
			Timeout: 2 * time.Minute,
		},
		Features: Features{
			Logger:           true,
			SchemaValidation: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile reads a YAML config file on top of DefaultConfig and validates
// the result.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("md2adapt config: read %s: %w", path, err)
	}
	return Load(raw)
}

// Load decodes YAML on top of DefaultConfig. Unknown keys are rejected.
func Load(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("md2adapt config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if lang := strings.TrimSpace(cfg.Language); lang != "" && !languagePattern.MatchString(lang) {
		return fmt.Errorf("%w: %s", ErrLanguageInvalid, lang)
	}
	switch strategy := normalize(cfg.IDs.Strategy); strategy {
	case "", identity.StrategySequential:
	case identity.StrategyHashed:
		if strings.TrimSpace(cfg.IDs.Namespace) == "" {
			return ErrIDNamespaceRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrIDStrategyUnknown, strategy)
	}
	switch policy := normalize(cfg.Mapping.FeedbackPolicy); policy {
	case "", FeedbackQuestion, FeedbackOption:
	default:
		return fmt.Errorf("%w: %s", ErrFeedbackPolicyUnknown, policy)
	}
	known := markdown.ExtensionNames()
	for _, name := range cfg.Markdown.Parser.Extensions {
		if !slices.Contains(known, normalize(name)) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}
	if cfg.Output.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Output.Workers)
	}
	if cfg.Output.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrTimeoutInvalid, cfg.Output.Timeout)
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

// The console provider only writes key=value lines.
func isSupportedFormat(provider, format string) bool {
	switch normalize(format) {
	case "console":
		return true
	case "json", "pretty":
		return provider == "gologger"
	default:
		return false
	}
}
