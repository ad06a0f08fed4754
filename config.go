package md2adapt

import "github.com/goliatone/go-md2adapt/internal/runtimeconfig"

var (
	ErrLanguageInvalid          = runtimeconfig.ErrLanguageInvalid
	ErrIDStrategyUnknown        = runtimeconfig.ErrIDStrategyUnknown
	ErrIDNamespaceRequired      = runtimeconfig.ErrIDNamespaceRequired
	ErrFeedbackPolicyUnknown    = runtimeconfig.ErrFeedbackPolicyUnknown
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrWorkersInvalid           = runtimeconfig.ErrWorkersInvalid
	ErrTimeoutInvalid           = runtimeconfig.ErrTimeoutInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	IDConfig             = runtimeconfig.IDConfig
	MappingConfig        = runtimeconfig.MappingConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	OutputConfig         = runtimeconfig.OutputConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfigFile reads a YAML config file on top of DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
