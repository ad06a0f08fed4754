package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// Parser extracts blocks from Markdown with a goldmark engine. It holds no
// per-document state and can be shared between goroutines.
type Parser struct {
	options interfaces.ParseOptions
	engine  goldmark.Markdown
}

// NewGoldmarkParser builds a parser for opts. Without explicit extensions the
// engine runs GFM with task lists so checkbox items are recognised natively.
func NewGoldmarkParser(opts interfaces.ParseOptions) *Parser {
	return &Parser{
		options: opts,
		engine:  newGoldmarkEngine(opts),
	}
}

// Options returns the parse options the engine was built with.
func (p *Parser) Options() interfaces.ParseOptions {
	return p.options
}

// Parse returns the goldmark AST for source.
func (p *Parser) Parse(source []byte) ast.Node {
	return p.engine.Parser().Parse(text.NewReader(source))
}

// Render converts a whole Markdown document into HTML.
func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// renderNode renders a single block node and its descendants.
func (p *Parser) renderNode(source []byte, node ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := p.engine.Renderer().Render(&buf, source, node); err != nil {
		return "", fmt.Errorf("markdown render %s: %w", node.Kind(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAttribute()),
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// collectExtensions resolves extension names, ignoring unknown entries and
// duplicates.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.TaskList}
	}

	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}
	for _, name := range names {
		ext, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extenders = append(extenders, ext)
	}
	return extenders
}

// ExtensionNames lists the names accepted in ParseOptions.Extensions.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	return names
}
