package convertcmd

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	convertFileMessageType  = "md2adapt.convert.file"
	convertBatchMessageType = "md2adapt.convert.batch"
)

var languagePattern = regexp.MustCompile(`^[A-Za-z]{2,3}([-_][A-Za-z0-9]{2,8})?$`)

// ConvertFileCommand converts one Markdown file into an Adapt course
// directory.
type ConvertFileCommand struct {
	// Source is the Markdown file to read.
	Source string `json:"source"`
	// OutputDir receives the course JSON files. Optional on dry runs.
	OutputDir string `json:"output_dir,omitempty"`
	// Language overrides the front matter and configured label language.
	Language string `json:"language,omitempty"`
	// MenuTitle adds a menu content object above the pages when set.
	MenuTitle string `json:"menu_title,omitempty"`
	// DryRun validates the course without writing any file.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ConvertFileCommand) Type() string { return convertFileMessageType }

// Validate checks the source, output directory and language before
// handlers execute.
func (cmd ConvertFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(notBlank("md2adapt.convert.file.source_required", "source is required"))),
		validation.Field(&cmd.OutputDir, validation.When(!cmd.DryRun, validation.Required, validation.By(notBlank("md2adapt.convert.file.output_required", "output directory is required")))),
		validation.Field(&cmd.Language, validation.Match(languagePattern).Error("language must be a code such as en or de-CH")),
	)
}

// ConvertBatchCommand converts several Markdown files, writing each course
// into its own directory below OutputDir.
type ConvertBatchCommand struct {
	Sources   []string `json:"sources"`
	OutputDir string   `json:"output_dir,omitempty"`
	Language  string   `json:"language,omitempty"`
	MenuTitle string   `json:"menu_title,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ConvertBatchCommand) Type() string { return convertBatchMessageType }

// Validate requires at least one non-blank source.
func (cmd ConvertBatchCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Sources, validation.Required, validation.Each(validation.Required, validation.By(notBlank("md2adapt.convert.batch.source_required", "source is required")))),
		validation.Field(&cmd.OutputDir, validation.When(!cmd.DryRun, validation.Required, validation.By(notBlank("md2adapt.convert.batch.output_required", "output directory is required")))),
		validation.Field(&cmd.Language, validation.Match(languagePattern).Error("language must be a code such as en or de-CH")),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
