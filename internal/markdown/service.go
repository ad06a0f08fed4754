package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// Source is a loaded Markdown document together with its extracted blocks.
type Source struct {
	Document *interfaces.Document
	Blocks   []Block
}

// Service ties the loader and parser together for callers that work with
// paths rather than raw bytes.
type Service struct {
	parser *Parser
	logger interfaces.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for load events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser replaces the default goldmark parser.
func WithParser(parser *Parser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// NewService constructs a Service using opts for the default parser.
func NewService(opts interfaces.ParseOptions, options ...ServiceOption) *Service {
	svc := &Service{
		parser: NewGoldmarkParser(opts),
		logger: logging.NoOp(),
	}
	for _, option := range options {
		if option != nil {
			option(svc)
		}
	}
	return svc
}

// Parser exposes the underlying parser.
func (s *Service) Parser() *Parser {
	return s.parser
}

// Read splits metadata from source and extracts the body blocks.
func (s *Service) Read(ctx context.Context, path string, source []byte) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := BuildDocument(path, source, time.Time{})
	if err != nil {
		return nil, err
	}
	return s.extract(doc)
}

// Load reads the file at path from disk and extracts its blocks.
func (s *Service) Load(ctx context.Context, path string) (*Source, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("markdown service: path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("markdown service: resolve %s: %w", path, err)
	}

	loader := NewLoader(os.DirFS(filepath.Dir(abs)), LoaderConfig{})
	result, err := loader.LoadFile(ctx, filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	result.Document.FilePath = path
	return s.extract(result.Document)
}

// Discover expands directory arguments into the Markdown files they hold.
// File arguments are returned as given.
func (s *Service) Discover(ctx context.Context, paths []string, recursive bool) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("markdown service: stat %s: %w", path, err)
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		loader := NewLoader(os.DirFS(path), LoaderConfig{Recursive: recursive})
		found, err := loader.Discover(ctx, ".")
		if err != nil {
			return nil, err
		}
		for _, rel := range found {
			out = append(out, filepath.Join(path, filepath.FromSlash(rel)))
		}
	}
	return out, nil
}

func (s *Service) extract(doc *interfaces.Document) (*Source, error) {
	blocks, err := s.parser.Extract(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("markdown extract %s: %w", doc.FilePath, err)
	}
	s.logger.Debug("markdown.extract.completed",
		"source", doc.FilePath,
		"blocks", len(blocks),
	)
	return &Source{Document: doc, Blocks: blocks}, nil
}
