package adapt

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-md2adapt/internal/identity"
	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/internal/markdown"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// CourseID is the fixed id of the root node.
const CourseID = "course"

const defaultCourseTitle = "Course"

// emptyBody is the body of the text component added to an empty block.
const emptyBody = "<p></p>"

// Titles supplies fallbacks for nodes the document does not name.
type Titles struct {
	Course  string
	Page    string
	Article string
}

// Mapper builds content trees from Markdown blocks. A Mapper holds only
// configuration; every Map call works on its own state.
type Mapper struct {
	feedback  FeedbackPolicy
	ids       identity.Factory
	mergeText bool
	titles    Titles
	logger    interfaces.Logger
}

// Option customises a Mapper.
type Option func(*Mapper)

// WithFeedbackPolicy swaps the feedback attachment rule.
func WithFeedbackPolicy(policy FeedbackPolicy) Option {
	return func(m *Mapper) {
		if policy != nil {
			m.feedback = policy
		}
	}
}

// WithIDFactory sets the id generator used for each run.
func WithIDFactory(factory identity.Factory) Option {
	return func(m *Mapper) {
		if factory != nil {
			m.ids = factory
		}
	}
}

// WithMergeText merges consecutive text content under the same block into a
// single text component.
func WithMergeText(enabled bool) Option {
	return func(m *Mapper) {
		m.mergeText = enabled
	}
}

// WithTitles sets fallback titles, usually taken from document metadata.
func WithTitles(titles Titles) Option {
	return func(m *Mapper) {
		m.titles = titles
	}
}

// WithLogger sets the logger used for degraded parses.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMapper returns a Mapper with question-level feedback and sequential ids
// unless overridden.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		feedback: QuestionFeedback,
		ids:      func() identity.Generator { return identity.NewSequential() },
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Map builds a tree with the default mapper.
func Map(blocks []markdown.Block) (*ContentNode, error) {
	return NewMapper().Map(blocks)
}

// Map runs a single pass over blocks and returns the course root. It fails
// with a StructureError when blocks is empty or holds no heading.
func (m *Mapper) Map(blocks []markdown.Block) (*ContentNode, error) {
	if len(blocks) == 0 {
		return nil, newStructureError("document is empty", 0)
	}
	if !hasHeading(blocks) {
		return nil, newStructureError("document has no heading", len(blocks))
	}

	r := newRun(m)
	for _, b := range blocks {
		switch b.Kind {
		case markdown.BlockHeading:
			r.heading(b)
		case markdown.BlockThematicBreak:
			r.closeBlock()
		default:
			r.content(b)
		}
	}
	r.closeSlot()

	root := r.root
	r.finalize()
	r.logger.Debug("adapt.mapper.completed",
		"pages", len(root.Children),
		"components", Components(root),
	)
	return root, nil
}

func hasHeading(blocks []markdown.Block) bool {
	for _, b := range blocks {
		if b.Kind == markdown.BlockHeading {
			return true
		}
	}
	return false
}

// frame is one open ancestor. level is the heading level used for popping;
// implicit frames inherit the level of their parent so that only headings
// of the matching depth close them.
type frame struct {
	node  *ContentNode
	level int
	depth int
}

// slot collects the blocks that follow a component heading.
type slot struct {
	node   *ContentNode
	forced Kind
	blocks []markdown.Block
}

type run struct {
	*Mapper
	root        *ContentNode
	stack       []frame
	slot        *slot
	courseTitle bool
	lastMcq     *ContentNode
	lastText    *ContentNode
}

func newRun(m *Mapper) *run {
	root := &ContentNode{Kind: KindCourse, ID: CourseID}
	return &run{
		Mapper: m,
		root:   root,
		stack:  []frame{{node: root}},
	}
}

func (r *run) top() frame {
	return r.stack[len(r.stack)-1]
}

func (r *run) pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

func (r *run) push(node *ContentNode, level int) {
	parent := r.top()
	parent.node.Children = append(parent.node.Children, node)
	r.stack = append(r.stack, frame{node: node, level: level, depth: parent.depth + 1})
}

func (r *run) heading(b markdown.Block) {
	r.closeSlot()
	r.lastMcq, r.lastText = nil, nil

	marker, title := ParseMarker(b.Text)
	level := b.Level

	if level <= 1 && marker == "" && !r.courseTitle {
		r.courseTitle = true
		r.root.Title = title
		r.root.Level = level
		r.stack = r.stack[:1]
		return
	}

	depth := depthForLevel(level)
	if marker != "" {
		depth = marker.Depth()
	}

	for len(r.stack) > 1 && r.top().level >= level {
		r.pop()
	}
	if top := r.top(); marker == "" && !top.node.Implicit && depth <= top.depth {
		depth = min(top.depth+1, depthComponent)
	}
	for len(r.stack) > 1 && r.top().depth >= depth {
		r.pop()
	}
	r.fill(depth - 1)

	node := &ContentNode{
		Kind:   kindForDepth(depth),
		Title:  title,
		Level:  level,
		Marker: marker,
	}
	if marker != "" {
		// a forced kind closes on headings of its own depth, not its source level
		level = min(level, depth+1)
	}
	r.push(node, level)

	if depth == depthComponent {
		forced := Kind("")
		if marker.IsComponent() {
			forced = marker
		}
		r.slot = &slot{node: node, forced: forced}
	}
}

func depthForLevel(level int) int {
	switch {
	case level <= 2:
		return depthPage
	case level == 3:
		return depthArticle
	case level == 4:
		return depthBlock
	}
	return depthComponent
}

// fill inserts implicit nodes until the top of the stack sits at depth.
func (r *run) fill(depth int) {
	for r.top().depth < depth {
		top := r.top()
		node := &ContentNode{Kind: kindForDepth(top.depth + 1), Implicit: true}
		r.push(node, top.level)
	}
}

func (r *run) content(b markdown.Block) {
	if r.slot != nil {
		r.slot.blocks = append(r.slot.blocks, b)
		return
	}

	if b.Kind == markdown.BlockParagraph && r.lastMcq != nil && isFeedbackParagraph(b.Text) {
		if _, fb, _ := splitFeedback(b.Text); fb != "" {
			r.feedback(r.lastMcq, fb)
		} else {
			r.degraded(r.lastMcq, "feedback line without text")
		}
		return
	}

	parent := r.openBlock()
	node := &ContentNode{}
	r.fillComponent(node, []markdown.Block{b}, "", false)

	if node.Kind == KindText && r.mergeText && r.lastText != nil {
		r.lastText.Body = joinNonEmpty([]string{r.lastText.Body, node.Body}, "\n")
		r.lastText.Items = append(r.lastText.Items, node.Items...)
		return
	}

	parent.Children = append(parent.Children, node)
	r.lastMcq, r.lastText = nil, nil
	switch node.Kind {
	case KindMcq:
		r.lastMcq = node
	case KindText:
		r.lastText = node
	}
}

// openBlock returns the block that receives loose content, creating an
// implicit chain when none is open.
func (r *run) openBlock() *ContentNode {
	for len(r.stack) > 1 && r.top().depth > depthBlock {
		r.pop()
	}
	r.fill(depthBlock)
	return r.top().node
}

func (r *run) closeSlot() {
	if r.slot == nil {
		return
	}
	s := r.slot
	r.slot = nil
	r.fillComponent(s.node, s.blocks, s.forced, true)
}

// closeBlock ends the open block; following content starts a new one.
func (r *run) closeBlock() {
	r.closeSlot()
	r.lastMcq, r.lastText = nil, nil
	for len(r.stack) > 1 && r.top().depth >= depthBlock {
		r.pop()
	}
}

func (r *run) degraded(node *ContentNode, reason string) {
	r.logger.Warn("adapt.mapper.degraded",
		"reason", reason,
		"title", node.Title,
	)
}

// finalize resolves titles, tracking ids and node ids once the pass is done.
func (r *run) finalize() {
	root := r.root
	if root.Title == "" {
		root.Title = firstNonEmpty(r.titles.Course, defaultCourseTitle)
	}
	r.pad(root)

	ids := r.ids()
	tracking := 0
	var assign func(node *ContentNode, path string)
	assign = func(node *ContentNode, path string) {
		counters := map[Kind]int{}
		for _, child := range node.Children {
			if child.Implicit && child.Title == "" {
				child.Title = r.implicitTitle(child.Kind, node)
			}
			if child.Kind == KindBlock {
				tracking++
				child.TrackingID = tracking
			}

			key := string(child.Kind) + ":" + strconv.Itoa(counters[child.Kind])
			counters[child.Kind]++
			if path != "" {
				key = path + "/" + key
			}
			child.ID = ids.NewID(key)
			child.ParentID = node.ID
			assign(child, key)
		}
	}
	assign(root, "")
}

// pad gives the course at least one page and every empty page, article and
// block an implicit child, down to an empty text component.
func (r *run) pad(node *ContentNode) {
	if node.Kind.IsComponent() {
		return
	}
	if len(node.Children) == 0 {
		child := &ContentNode{Kind: kindForDepth(node.Kind.Depth() + 1), Implicit: true}
		if child.Kind == KindText {
			child.Body = emptyBody
		}
		node.Children = append(node.Children, child)
		r.logger.Debug("adapt.mapper.padded",
			"kind", node.Kind,
			"title", node.Title,
		)
	}
	for _, child := range node.Children {
		r.pad(child)
	}
}

func (r *run) implicitTitle(kind Kind, parent *ContentNode) string {
	switch kind {
	case KindPage:
		return firstNonEmpty(r.titles.Page, parent.Title)
	case KindArticle:
		return firstNonEmpty(r.titles.Article, parent.Title)
	}
	return parent.Title
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
