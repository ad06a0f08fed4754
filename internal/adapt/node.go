// Package adapt maps Markdown blocks onto the Adapt content hierarchy
// (course, page, article, block, component).
package adapt

import "strings"

// Kind is the Adapt type of a content node.
type Kind string

const (
	KindCourse  Kind = "course"
	KindPage    Kind = "page"
	KindArticle Kind = "article"
	KindBlock   Kind = "block"

	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindMcq      Kind = "mcq"
	KindSlider   Kind = "slider"
	KindMatching Kind = "matching"
)

const (
	depthCourse = iota
	depthPage
	depthArticle
	depthBlock
	depthComponent
)

// IsComponent reports whether k is one of the component variants.
func (k Kind) IsComponent() bool {
	switch k {
	case KindText, KindImage, KindMcq, KindSlider, KindMatching:
		return true
	}
	return false
}

// Depth is the position of k in the hierarchy, from course (0) to
// component (4). Unknown kinds report -1.
func (k Kind) Depth() int {
	switch k {
	case KindCourse:
		return depthCourse
	case KindPage:
		return depthPage
	case KindArticle:
		return depthArticle
	case KindBlock:
		return depthBlock
	}
	if k.IsComponent() {
		return depthComponent
	}
	return -1
}

func kindForDepth(depth int) Kind {
	switch depth {
	case depthCourse:
		return KindCourse
	case depthPage:
		return KindPage
	case depthArticle:
		return KindArticle
	case depthBlock:
		return KindBlock
	}
	return KindText
}

// ParseMarker splits a leading "[marker]" from a heading title. Unknown
// markers are left in the title and reported as an empty kind.
func ParseMarker(title string) (Kind, string) {
	trimmed := strings.TrimSpace(title)
	if !strings.HasPrefix(trimmed, "[") {
		return "", trimmed
	}
	end := strings.IndexByte(trimmed, ']')
	if end < 0 {
		return "", trimmed
	}
	switch kind := Kind(strings.ToLower(strings.TrimSpace(trimmed[1:end]))); kind {
	case KindPage, KindArticle, KindBlock, KindText, KindImage, KindMcq, KindSlider, KindMatching:
		return kind, strings.TrimSpace(trimmed[end+1:])
	}
	return "", trimmed
}

// ContentNode is one node of the mapped tree. Children are owned in document
// order; ParentID is a lookup reference only.
type ContentNode struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	Title    string `json:"title,omitempty"`
	// Body is an HTML fragment.
	Body string `json:"body,omitempty"`
	// Level is the source heading level; zero for implicit and content
	// derived nodes.
	Level    int  `json:"level,omitempty"`
	Implicit bool `json:"implicit,omitempty"`
	Marker   Kind `json:"marker,omitempty"`

	Instruction string          `json:"instruction,omitempty"`
	Options     []McqOption     `json:"options,omitempty"`
	Feedback    string          `json:"feedback,omitempty"`
	Items       []string        `json:"items,omitempty"`
	Image       *ImageSource    `json:"image,omitempty"`
	Slider      *SliderSettings `json:"slider,omitempty"`
	Matching    []MatchingItem  `json:"matching,omitempty"`
	// TrackingID is set on blocks only, counting from 1 in document order.
	TrackingID int `json:"trackingId,omitempty"`

	Children []*ContentNode `json:"children,omitempty"`
}

// McqOption is one answer of a multiple choice question.
type McqOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback,omitempty"`
}

// ImageSource describes the graphic of an image component.
type ImageSource struct {
	Src   string `json:"src"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

// SliderSettings holds the scale of a slider component.
type SliderSettings struct {
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	Step       int    `json:"step"`
	LabelStart string `json:"labelStart"`
	LabelEnd   string `json:"labelEnd"`
}

// MatchingItem is one question of a matching component.
type MatchingItem struct {
	Text    string           `json:"text"`
	Options []MatchingOption `json:"options"`
}

// MatchingOption is one selectable answer of a MatchingItem.
type MatchingOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited node.
func Walk(n *ContentNode, fn func(node, parent *ContentNode) bool) {
	walk(n, nil, fn)
}

func walk(n, parent *ContentNode, fn func(node, parent *ContentNode) bool) {
	if n == nil {
		return
	}
	if !fn(n, parent) {
		return
	}
	for _, child := range n.Children {
		walk(child, n, fn)
	}
}

// Count returns the number of nodes per kind below and including root.
func Count(root *ContentNode) map[Kind]int {
	counts := map[Kind]int{}
	Walk(root, func(node, _ *ContentNode) bool {
		counts[node.Kind]++
		return true
	})
	return counts
}

// Components returns the number of component nodes in the tree.
func Components(root *ContentNode) int {
	total := 0
	for kind, n := range Count(root) {
		if kind.IsComponent() {
			total += n
		}
	}
	return total
}
