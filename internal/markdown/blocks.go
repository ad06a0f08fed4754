package markdown

import "html"

// BlockKind enumerates the block shapes the mapper understands.
type BlockKind string

const (
	BlockHeading       BlockKind = "heading"
	BlockParagraph     BlockKind = "paragraph"
	BlockList          BlockKind = "list"
	BlockImage         BlockKind = "image"
	BlockThematicBreak BlockKind = "thematic_break"
	// BlockRaw covers every construct without a dedicated kind (code,
	// quotes, tables, HTML). The mapper keeps it as plain text.
	BlockRaw BlockKind = "raw"
)

// Checkbox is the task marker state of a list item.
type Checkbox uint8

const (
	CheckboxNone Checkbox = iota
	CheckboxUnchecked
	CheckboxChecked
)

// Block is one top-level Markdown block in document order.
type Block struct {
	Kind BlockKind
	// Level is the heading depth (1-6); zero for other kinds.
	Level int
	// Text holds the source text: heading text, paragraph lines joined with
	// "\n", or the literal content of raw blocks.
	Text string
	// HTML is the rendered fragment for paragraphs, lists and raw blocks.
	HTML    string
	Items   []ListItem
	Ordered bool
	Image   *Image
}

// ListItem is a single list entry. Text keeps every source line of the item,
// including lazy continuation lines, without the checkbox marker.
type ListItem struct {
	Text     string
	Checkbox Checkbox
	Children []ListItem
}

// Image is a standalone image paragraph.
type Image struct {
	Src   string
	Alt   string
	Title string
}

// Heading returns a heading block, mostly useful to build fixtures.
func Heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text}
}

// Paragraph returns a paragraph block whose HTML is the escaped text wrapped
// in <p>.
func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text, HTML: "<p>" + html.EscapeString(text) + "</p>"}
}
