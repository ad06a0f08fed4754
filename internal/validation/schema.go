package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-md2adapt/internal/export"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	File     string
	Location string
	Message  string
}

func (i ValidationIssue) String() string {
	location := strings.TrimSpace(i.Location)
	if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	out := i.File + location
	if i.Message != "" {
		out += ": " + i.Message
	}
	return out
}

// PayloadValidationError lists every schema violation of a bundle.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues("", validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateBundle encodes bundle and checks every file against its schema.
func ValidateBundle(bundle *export.Bundle) error {
	files, err := export.Files(bundle)
	if err != nil {
		return err
	}
	return ValidateFiles(files)
}

// ValidateFiles checks encoded bundle files against the embedded schemas.
// Files without a schema are rejected.
func ValidateFiles(files map[string][]byte) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}

	var issues []ValidationIssue
	var causes []error
	for _, name := range export.FileNames {
		data, ok := files[name]
		if !ok {
			issues = append(issues, ValidationIssue{File: name, Message: "missing file"})
			continue
		}
		doc, err := decode(data)
		if err != nil {
			issues = append(issues, ValidationIssue{File: name, Message: err.Error()})
			continue
		}
		if err := schemas[name].Validate(doc); err != nil {
			causes = append(causes, err)
			var validationErr *jsonschema.ValidationError
			if errors.As(err, &validationErr) {
				issues = append(issues, collectValidationIssues(name, validationErr)...)
				continue
			}
			issues = append(issues, ValidationIssue{File: name, Message: err.Error()})
		}
	}
	for name := range files {
		if _, ok := schemas[name]; !ok {
			issues = append(issues, ValidationIssue{File: name, Message: "no schema for file"})
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &PayloadValidationError{Issues: issues, Cause: errors.Join(causes...)}
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

// compiledSchemas maps output file names to their compiled schema.
func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		out := make(map[string]*jsonschema.Schema, len(export.FileNames))
		for _, name := range export.FileNames {
			schema, err := compileSchema(schemaFile(name))
			if err != nil {
				schemasErr = fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
				return
			}
			out[name] = schema
		}
		schemas = out
	})
	return schemas, schemasErr
}

func schemaFile(file string) string {
	return strings.TrimSuffix(file, path.Ext(file)) + ".schema.json"
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func collectValidationIssues(file string, err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				File:     file,
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
