package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

var checkboxPattern = regexp.MustCompile(`(?s)^\[([ xX])\]\s*(.*)$`)

// Extract parses source and returns its top-level blocks in document order.
// Nested structure is only preserved for lists.
func (p *Parser) Extract(source []byte) ([]Block, error) {
	doc := p.Parse(source)

	var blocks []Block
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		block, err := p.extractBlock(source, node)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (p *Parser) extractBlock(source []byte, node ast.Node) (Block, error) {
	switch n := node.(type) {
	case *ast.Heading:
		return Block{Kind: BlockHeading, Level: n.Level, Text: strings.TrimSpace(inlineText(n, source))}, nil
	case *ast.ThematicBreak:
		return Block{Kind: BlockThematicBreak}, nil
	case *ast.Paragraph, *ast.TextBlock:
		html, err := p.renderNode(source, node)
		if err != nil {
			return Block{}, err
		}
		if img := standaloneImage(node, source); img != nil {
			return Block{Kind: BlockImage, Text: img.Alt, HTML: html, Image: img}, nil
		}
		return Block{Kind: BlockParagraph, Text: lineText(node, source), HTML: html}, nil
	case *ast.List:
		html, err := p.renderNode(source, node)
		if err != nil {
			return Block{}, err
		}
		items := listItems(n, source)
		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = item.Text
		}
		return Block{
			Kind:    BlockList,
			Text:    strings.Join(texts, "\n"),
			HTML:    html,
			Items:   items,
			Ordered: n.IsOrdered(),
		}, nil
	default:
		html, err := p.renderNode(source, node)
		if err != nil {
			return Block{}, fmt.Errorf("markdown extract: %w", err)
		}
		return Block{Kind: BlockRaw, Text: collectLines(node, source), HTML: html}, nil
	}
}

func listItems(list *ast.List, source []byte) []ListItem {
	var items []ListItem
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		items = append(items, listItem(li, source))
	}
	return items
}

func listItem(li *ast.ListItem, source []byte) ListItem {
	item := ListItem{}
	var parts []string
	native := false

	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.List:
			item.Children = append(item.Children, listItems(c, source)...)
		case *ast.TextBlock, *ast.Paragraph:
			if len(parts) == 0 {
				if box, ok := c.FirstChild().(*extast.TaskCheckBox); ok {
					native = true
					item.Checkbox = CheckboxUnchecked
					if box.IsChecked {
						item.Checkbox = CheckboxChecked
					}
				}
			}
			parts = append(parts, lineText(c, source))
		default:
			parts = append(parts, collectLines(c, source))
		}
	}

	text := strings.Join(parts, "\n")
	if m := checkboxPattern.FindStringSubmatch(text); m != nil {
		if !native {
			item.Checkbox = CheckboxUnchecked
			if m[1] != " " {
				item.Checkbox = CheckboxChecked
			}
		}
		text = m[2]
	}
	item.Text = strings.TrimSpace(text)
	return item
}

// standaloneImage reports the image of a paragraph that holds nothing else.
func standaloneImage(node ast.Node, source []byte) *Image {
	var found *ast.Image
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Image:
			if found != nil {
				return nil
			}
			found = c
		case *ast.Text:
			if strings.TrimSpace(string(c.Segment.Value(source))) != "" {
				return nil
			}
		default:
			return nil
		}
	}
	if found == nil {
		return nil
	}
	return &Image{
		Src:   string(found.Destination),
		Alt:   strings.TrimSpace(inlineText(found, source)),
		Title: string(found.Title),
	}
}

// inlineText concatenates the literal text of an inline subtree.
func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *extast.TaskCheckBox:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// lineText returns the raw source lines of a leaf block, right-trimmed.
func lineText(node ast.Node, source []byte) string {
	lines := node.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(source)), " \t\r\n"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// collectLines gathers the source lines of a container block and its
// descendants.
func collectLines(node ast.Node, source []byte) string {
	if node.Type() == ast.TypeBlock && node.Lines().Len() > 0 {
		return lineText(node, source)
	}
	var parts []string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		if text := collectLines(child, source); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
