package adapt

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-md2adapt/internal/identity"
	"github.com/goliatone/go-md2adapt/internal/markdown"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

func TestMapRejectsEmptyAndHeadinglessInput(t *testing.T) {
	inputs := map[string][]markdown.Block{
		"empty":      nil,
		"paragraphs": {markdown.Paragraph("Hello"), markdown.Paragraph("World")},
	}

	for name, blocks := range inputs {
		t.Run(name, func(t *testing.T) {
			root, err := Map(blocks)
			if err == nil {
				t.Fatalf("expected structure error, got tree %#v", root)
			}
			if !IsStructureError(err) {
				t.Fatalf("expected StructureError, got %v", err)
			}
			var structural *StructureError
			if !errors.As(err, &structural) || structural.Blocks != len(blocks) {
				t.Fatalf("expected StructureError with %d blocks, got %#v", len(blocks), structural)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
}

func TestMapCoursePageParagraph(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(1, "Course Title"),
		markdown.Heading(2, "Page One"),
		markdown.Paragraph("Hello"),
	)

	if root.Kind != KindCourse || root.ID != CourseID || root.Title != "Course Title" {
		t.Fatalf("unexpected root %#v", root)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected one page, got %d", len(root.Children))
	}

	page := root.Children[0]
	if page.Kind != KindPage || page.Title != "Page One" || page.Implicit {
		t.Fatalf("unexpected page %#v", page)
	}
	article := only(t, page)
	if article.Kind != KindArticle || !article.Implicit || article.Title != "Page One" {
		t.Fatalf("unexpected article %#v", article)
	}
	block := only(t, article)
	if block.Kind != KindBlock || !block.Implicit || block.Title != "Page One" || block.TrackingID != 1 {
		t.Fatalf("unexpected block %#v", block)
	}
	text := only(t, block)
	if text.Kind != KindText || text.Body != "<p>Hello</p>" {
		t.Fatalf("unexpected text component %#v", text)
	}

	wantIDs := []string{page.ID, article.ID, block.ID, text.ID}
	for i, id := range wantIDs {
		if id != identity.Hex24(uint64(i+1)) {
			t.Fatalf("node %d: expected sequential id, got %s", i, id)
		}
	}
	if text.ParentID != block.ID || block.ParentID != article.ID || article.ParentID != page.ID || page.ParentID != CourseID {
		t.Fatal("expected parent ids to follow the tree")
	}
}

func TestMapSiblingPages(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(1, "Course"),
		markdown.Heading(2, "First"),
		markdown.Heading(2, "Second"),
	)

	if len(root.Children) != 2 {
		t.Fatalf("expected two sibling pages, got %d", len(root.Children))
	}
	for i, title := range []string{"First", "Second"} {
		page := root.Children[i]
		if page.Kind != KindPage || page.Title != title {
			t.Fatalf("unexpected page %d: %#v", i, page)
		}
		text := only(t, only(t, only(t, page)))
		if text.Kind != KindText || !text.Implicit || text.Body != emptyBody {
			t.Fatalf("expected empty text component under page %d, got %#v", i, text)
		}
	}
}

func TestMapCourseHeadingOnlyGetsPage(t *testing.T) {
	root := mustMap(t, NewMapper(), markdown.Heading(1, "Course Only"))

	page := only(t, root)
	if page.Kind != KindPage || !page.Implicit || page.Title != "Course Only" {
		t.Fatalf("unexpected page %#v", page)
	}
	article := only(t, page)
	block := only(t, article)
	if article.Kind != KindArticle || block.Kind != KindBlock || block.TrackingID != 1 {
		t.Fatalf("unexpected chain %#v %#v", article, block)
	}
	text := only(t, block)
	if text.Kind != KindText || text.Body != emptyBody || text.ParentID != block.ID || text.ID == "" {
		t.Fatalf("unexpected text component %#v", text)
	}
}

func TestMapPadsEmptyArticleAndBlock(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(1, "Course"),
		markdown.Heading(2, "Page"),
		markdown.Heading(3, "Empty Article"),
		markdown.Heading(3, "Article"),
		markdown.Heading(4, "Empty Block"),
		markdown.Heading(4, "Block"),
		markdown.Paragraph("x"),
	)

	page := only(t, root)
	if len(page.Children) != 2 {
		t.Fatalf("expected two articles, got %d", len(page.Children))
	}
	if text := only(t, only(t, page.Children[0])); text.Body != emptyBody {
		t.Fatalf("expected padded article, got %#v", text)
	}
	article := page.Children[1]
	if len(article.Children) != 2 {
		t.Fatalf("expected two blocks, got %d", len(article.Children))
	}
	if text := only(t, article.Children[0]); !text.Implicit || text.Body != emptyBody {
		t.Fatalf("expected padded block, got %#v", text)
	}
	if text := only(t, article.Children[1]); text.Implicit || text.Body != "<p>x</p>" {
		t.Fatalf("unexpected content block %#v", text)
	}
}

func TestMapMcqRoundTrip(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(2, "Quiz"),
		checklist(
			box(true, "1"),
			box(false, "2"),
			box(false, "3\nFeedback: Only one answer is right."),
		),
	)

	mcq := firstComponent(t, root)
	if mcq.Kind != KindMcq {
		t.Fatalf("expected mcq, got %s", mcq.Kind)
	}
	assertOptions(t, mcq.Options, []McqOption{
		{Text: "1", IsCorrect: true},
		{Text: "2"},
		{Text: "3"},
	})
	if mcq.Feedback != "Only one answer is right." {
		t.Fatalf("unexpected feedback %q", mcq.Feedback)
	}
}

func TestMapMcqFromMarkdownSource(t *testing.T) {
	source := strings.Join([]string{
		"# Kurs",
		"",
		"## [block] Einstieg",
		"",
		"### [mcq] Frage 1",
		"",
		"Anweisung: Wähle eine Antwort",
		"",
		"- [x] 1",
		"- [ ] 2",
		"- [ ] 3",
		"Feedback: Only one answer is right.",
		"",
	}, "\n")

	blocks, err := markdown.NewGoldmarkParser(interfaces.ParseOptions{}).Extract([]byte(source))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	root := mustMap(t, NewMapper(), blocks...)

	mcq := firstComponent(t, root)
	if mcq.Kind != KindMcq || mcq.Title != "Frage 1" || mcq.Marker != KindMcq {
		t.Fatalf("unexpected component %#v", mcq)
	}
	if mcq.Instruction != "<p>Wähle eine Antwort</p>" {
		t.Fatalf("unexpected instruction %q", mcq.Instruction)
	}
	assertOptions(t, mcq.Options, []McqOption{
		{Text: "1", IsCorrect: true},
		{Text: "2"},
		{Text: "3"},
	})
	if mcq.Feedback != "Only one answer is right." {
		t.Fatalf("unexpected feedback %q", mcq.Feedback)
	}
}

func TestMapFeedbackParagraphAfterList(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(2, "Quiz"),
		checklist(box(false, "a"), box(true, "b")),
		markdown.Paragraph("feedback: Well done."),
	)

	block := root.Children[0].Children[0].Children[0]
	if len(block.Children) != 1 {
		t.Fatalf("expected feedback to attach instead of creating a component, got %d children", len(block.Children))
	}
	if block.Children[0].Feedback != "Well done." {
		t.Fatalf("unexpected feedback %q", block.Children[0].Feedback)
	}
}

func TestMapEmptyFeedbackParagraphIsLogged(t *testing.T) {
	logger := &recordingLogger{}
	root := mustMap(t, NewMapper(WithLogger(logger)),
		markdown.Heading(2, "Quiz"),
		checklist(box(false, "a"), box(true, "b")),
		markdown.Paragraph("Feedback:"),
	)

	mcq := firstComponent(t, root)
	if mcq.Kind != KindMcq || mcq.Feedback != "" || len(firstBlock(t, root).Children) != 1 {
		t.Fatalf("unexpected mcq %#v", mcq)
	}
	if !logger.warned("feedback line without text") {
		t.Fatalf("expected degraded warning, got %v", logger.entries)
	}
}

func TestMapPerOptionFeedbackPolicy(t *testing.T) {
	root := mustMap(t, NewMapper(WithFeedbackPolicy(PerOptionFeedback)),
		markdown.Heading(2, "Quiz"),
		checklist(box(true, "a"), box(false, "b\nRückmeldung: Richtig ist a.")),
	)

	mcq := firstComponent(t, root)
	if mcq.Feedback != "Richtig ist a." {
		t.Fatalf("unexpected question feedback %q", mcq.Feedback)
	}
	for i, opt := range mcq.Options {
		if opt.Feedback != "Richtig ist a." {
			t.Fatalf("option %d: expected copied feedback, got %q", i, opt.Feedback)
		}
	}
}

func TestMapCheckboxParagraph(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(2, "Quiz"),
		markdown.Paragraph("[x] 1\n[ ] 2\nFeedback: One is right."),
	)

	mcq := firstComponent(t, root)
	if mcq.Kind != KindMcq {
		t.Fatalf("expected mcq, got %s", mcq.Kind)
	}
	assertOptions(t, mcq.Options, []McqOption{{Text: "1", IsCorrect: true}, {Text: "2"}})
	if mcq.Feedback != "One is right." {
		t.Fatalf("unexpected feedback %q", mcq.Feedback)
	}
}

func TestMapListsWithoutCheckboxesBecomeText(t *testing.T) {
	logger := &recordingLogger{}
	root := mustMap(t, NewMapper(WithLogger(logger)),
		markdown.Heading(2, "Lists"),
		checklist(plain("one"), plain("two")),
		checklist(box(true, "a"), plain("b")),
	)

	block := root.Children[0].Children[0].Children[0]
	if len(block.Children) != 2 {
		t.Fatalf("expected two components, got %d", len(block.Children))
	}
	for i, want := range [][]string{{"one", "two"}, {"a", "b"}} {
		comp := block.Children[i]
		if comp.Kind != KindText || !reflect.DeepEqual(comp.Items, want) {
			t.Fatalf("component %d: unexpected %#v", i, comp)
		}
	}
	if !logger.warned("malformed checkbox list") {
		t.Fatalf("expected degraded warning, got %v", logger.entries)
	}
}

func TestMapInsertsImplicitIntermediates(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(1, "Course"),
		markdown.Heading(2, "Page"),
		markdown.Heading(4, "Block"),
		markdown.Paragraph("x"),
		markdown.Heading(3, "Article"),
		markdown.Paragraph("y"),
	)

	page := root.Children[0]
	if len(page.Children) != 2 {
		t.Fatalf("expected implicit and explicit article, got %d", len(page.Children))
	}
	implicit, explicit := page.Children[0], page.Children[1]
	if !implicit.Implicit || implicit.Title != "Page" {
		t.Fatalf("unexpected implicit article %#v", implicit)
	}
	block := only(t, implicit)
	if block.Title != "Block" || block.Level != 4 || block.Implicit {
		t.Fatalf("unexpected block %#v", block)
	}
	if explicit.Title != "Article" || explicit.Implicit {
		t.Fatalf("unexpected article %#v", explicit)
	}
	if got := only(t, explicit); !got.Implicit || got.Title != "Article" || got.TrackingID != 2 {
		t.Fatalf("unexpected implicit block %#v", got)
	}
}

func TestMapContentBeforeFirstHeading(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Paragraph("intro"),
		markdown.Heading(1, "Course"),
		markdown.Heading(2, "Page"),
		markdown.Paragraph("body"),
	)

	if len(root.Children) != 2 {
		t.Fatalf("expected implicit page and page, got %d", len(root.Children))
	}
	first := root.Children[0]
	if !first.Implicit || first.Title != "Course" {
		t.Fatalf("unexpected implicit page %#v", first)
	}
	text := only(t, only(t, only(t, first)))
	if text.Body != "<p>intro</p>" {
		t.Fatalf("expected intro to be kept, got %#v", text)
	}
	if root.Children[1].Title != "Page" {
		t.Fatalf("unexpected second page %#v", root.Children[1])
	}
}

func TestMapMarkersAndComponentSlots(t *testing.T) {
	root := mustMap(t, NewMapper(), markerFixture()...)

	page := only(t, root)
	if !page.Implicit || page.Title != "Course" {
		t.Fatalf("unexpected page %#v", page)
	}
	article := only(t, page)
	if len(article.Children) != 2 {
		t.Fatalf("expected two blocks, got %d", len(article.Children))
	}

	intro, next := article.Children[0], article.Children[1]
	if intro.Title != "Intro" || intro.Marker != KindBlock || intro.TrackingID != 1 {
		t.Fatalf("unexpected first block %#v", intro)
	}
	if next.Title != "Next" || next.TrackingID != 2 {
		t.Fatalf("unexpected second block %#v", next)
	}
	if len(intro.Children) != 2 {
		t.Fatalf("expected mcq and slider, got %d", len(intro.Children))
	}

	mcq, slider := intro.Children[0], intro.Children[1]
	if mcq.Kind != KindMcq || mcq.Title != "Question" || mcq.Instruction != "<p>Pick one</p>" {
		t.Fatalf("unexpected mcq %#v", mcq)
	}
	assertOptions(t, mcq.Options, []McqOption{{Text: "yes", IsCorrect: true}, {Text: "no"}})

	want := &SliderSettings{Min: 1, Max: 5, Step: 1, LabelStart: "low", LabelEnd: "high"}
	if slider.Kind != KindSlider || !reflect.DeepEqual(slider.Slider, want) {
		t.Fatalf("unexpected slider %#v", slider.Slider)
	}

	plainComp := only(t, next)
	if plainComp.Kind != KindText || plainComp.Title != "Plain" || plainComp.Body != "<p>text</p>" {
		t.Fatalf("unexpected text component %#v", plainComp)
	}
}

func TestMapForcedPageTakesShallowerHeadings(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(1, "C"),
		markdown.Heading(4, "[page] Forced"),
		markdown.Heading(3, "Article"),
		markdown.Paragraph("x"),
	)

	page := only(t, root)
	if page.Title != "Forced" || page.Implicit || page.Level != 4 {
		t.Fatalf("unexpected page %#v", page)
	}
	article := only(t, page)
	if article.Title != "Article" || article.Kind != KindArticle {
		t.Fatalf("expected article under forced page, got %#v", article)
	}
}

func TestMapSliderDefaults(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(2, "Page"),
		markdown.Heading(5, "[slider] Rate it"),
	)

	slider := firstComponent(t, root)
	want := &SliderSettings{Min: 1, Max: 10, Step: 1, LabelStart: "1", LabelEnd: "10"}
	if slider.Kind != KindSlider || !reflect.DeepEqual(slider.Slider, want) {
		t.Fatalf("unexpected slider %#v", slider.Slider)
	}
}

func TestMapMatching(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(2, "Pairs"),
		markdown.Heading(5, "Match"),
		markdown.Paragraph("Type: matching\nInstruction: Match them"),
		checklist(
			parent("Q1", box(true, "A"), box(false, "B")),
			parent("Q2", box(false, "A"), box(true, "B")),
			parent("no options", plain("x")),
		),
		markdown.Paragraph("Feedback: Nice"),
	)

	comp := firstComponent(t, root)
	if comp.Kind != KindMatching || comp.Title != "Match" {
		t.Fatalf("unexpected component %#v", comp)
	}
	want := []MatchingItem{
		{Text: "Q1", Options: []MatchingOption{{Text: "A", IsCorrect: true}, {Text: "B"}}},
		{Text: "Q2", Options: []MatchingOption{{Text: "A"}, {Text: "B", IsCorrect: true}}},
	}
	if !reflect.DeepEqual(comp.Matching, want) {
		t.Fatalf("unexpected items %#v", comp.Matching)
	}
	if comp.Instruction != "<p>Match them</p>" || comp.Feedback != "Nice" {
		t.Fatalf("unexpected instruction/feedback %q %q", comp.Instruction, comp.Feedback)
	}
}

func TestMapMarkerWithoutPayloadDegrades(t *testing.T) {
	logger := &recordingLogger{}
	root := mustMap(t, NewMapper(WithLogger(logger)),
		markdown.Heading(2, "Page"),
		markdown.Heading(4, "[mcq] Q"),
		markdown.Paragraph("no options here"),
	)

	comp := firstComponent(t, root)
	if comp.Kind != KindText || comp.Title != "Q" || comp.Body != "<p>no options here</p>" {
		t.Fatalf("expected text fallback, got %#v", comp)
	}
	if !logger.warned("mcq without checkbox options") {
		t.Fatalf("expected degraded warning, got %v", logger.entries)
	}
}

func TestMapThematicBreakClosesBlock(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(2, "Page"),
		markdown.Paragraph("a"),
		markdown.Block{Kind: markdown.BlockThematicBreak},
		markdown.Paragraph("b"),
	)

	article := only(t, root.Children[0])
	if len(article.Children) != 2 {
		t.Fatalf("expected two blocks, got %d", len(article.Children))
	}
	for i, body := range []string{"<p>a</p>", "<p>b</p>"} {
		block := article.Children[i]
		if block.TrackingID != i+1 || only(t, block).Body != body {
			t.Fatalf("unexpected block %d: %#v", i, block)
		}
	}
}

func TestMapMergeText(t *testing.T) {
	blocks := []markdown.Block{
		markdown.Heading(2, "Page"),
		markdown.Paragraph("a"),
		markdown.Paragraph("b"),
		checklist(plain("c")),
	}

	split := firstBlock(t, mustMap(t, NewMapper(), blocks...))
	if len(split.Children) != 3 {
		t.Fatalf("expected three components without merging, got %d", len(split.Children))
	}

	merged := firstBlock(t, mustMap(t, NewMapper(WithMergeText(true)), blocks...))
	text := only(t, merged)
	if !strings.HasPrefix(text.Body, "<p>a</p>\n<p>b</p>") || !reflect.DeepEqual(text.Items, []string{"c"}) {
		t.Fatalf("unexpected merged text %#v", text)
	}
}

func TestMapImageAndRawBlocks(t *testing.T) {
	logger := &recordingLogger{}
	root := mustMap(t, NewMapper(WithLogger(logger)),
		markdown.Heading(2, "Page"),
		markdown.Block{Kind: markdown.BlockImage, Image: &markdown.Image{Src: "a.png", Alt: "A"}},
		markdown.Block{Kind: markdown.BlockRaw, Text: "code", HTML: "<pre><code>code</code></pre>"},
	)

	block := firstBlock(t, root)
	if len(block.Children) != 2 {
		t.Fatalf("expected two components, got %d", len(block.Children))
	}
	img := block.Children[0]
	if img.Kind != KindImage || img.Image == nil || img.Image.Src != "a.png" || img.Image.Alt != "A" {
		t.Fatalf("unexpected image %#v", img)
	}
	raw := block.Children[1]
	if raw.Kind != KindText || raw.Body != "<pre><code>code</code></pre>" {
		t.Fatalf("unexpected raw fallback %#v", raw)
	}
	if !logger.warned("unsupported block") {
		t.Fatalf("expected degraded warning, got %v", logger.entries)
	}
}

func TestMapLaterH1OpensPage(t *testing.T) {
	root := mustMap(t, NewMapper(),
		markdown.Heading(1, "Course"),
		markdown.Heading(1, "Second"),
		markdown.Paragraph("x"),
	)

	if root.Title != "Course" || len(root.Children) != 1 {
		t.Fatalf("unexpected root %#v", root)
	}
	if page := root.Children[0]; page.Kind != KindPage || page.Title != "Second" || page.Level != 1 {
		t.Fatalf("unexpected page %#v", page)
	}
}

func TestMapFallbackTitles(t *testing.T) {
	root := mustMap(t, NewMapper(WithTitles(Titles{Course: "Meta", Page: "Seite", Article: "Artikel"})),
		markdown.Heading(4, "Block"),
	)

	if root.Title != "Meta" {
		t.Fatalf("expected fallback course title, got %q", root.Title)
	}
	page := only(t, root)
	article := only(t, page)
	if page.Title != "Seite" || article.Title != "Artikel" {
		t.Fatalf("unexpected implicit titles %q %q", page.Title, article.Title)
	}

	root = mustMap(t, NewMapper(), markdown.Heading(3, "Article"))
	if root.Title != "Course" {
		t.Fatalf("expected default course title, got %q", root.Title)
	}
}

func TestMapIsDeterministic(t *testing.T) {
	factory, err := identity.FactoryFor(identity.StrategyHashed, "fixture.md")
	if err != nil {
		t.Fatalf("FactoryFor: %v", err)
	}

	for _, mapper := range []*Mapper{NewMapper(), NewMapper(WithIDFactory(factory))} {
		first := mustMap(t, mapper, markerFixture()...)
		second := mustMap(t, mapper, markerFixture()...)
		if !reflect.DeepEqual(first, second) {
			t.Fatal("expected identical trees for identical input")
		}
	}
}

func TestMapDepthFollowsKinds(t *testing.T) {
	root := mustMap(t, NewMapper(), markerFixture()...)

	Walk(root, func(node, parent *ContentNode) bool {
		if parent == nil {
			return true
		}
		if node.Kind.Depth() != parent.Kind.Depth()+1 {
			t.Fatalf("%s under %s breaks the hierarchy", node.Kind, parent.Kind)
		}
		return true
	})
}

func TestParseMarker(t *testing.T) {
	cases := []struct {
		title string
		kind  Kind
		rest  string
	}{
		{"[mcq] Question", KindMcq, "Question"},
		{"[BLOCK]Intro", KindBlock, "Intro"},
		{"  [ slider ]  Rate ", KindSlider, "Rate"},
		{"[note] Keep me", "", "[note] Keep me"},
		{"No marker", "", "No marker"},
		{"[unclosed", "", "[unclosed"},
	}
	for _, tc := range cases {
		kind, rest := ParseMarker(tc.title)
		if kind != tc.kind || rest != tc.rest {
			t.Fatalf("ParseMarker(%q) = %q, %q; want %q, %q", tc.title, kind, rest, tc.kind, tc.rest)
		}
	}
}

func markerFixture() []markdown.Block {
	return []markdown.Block{
		markdown.Heading(1, "Course"),
		markdown.Heading(2, "[block] Intro"),
		markdown.Heading(3, "[mcq] Question"),
		markdown.Paragraph("Instruction: Pick one"),
		checklist(box(true, "yes"), box(false, "no")),
		markdown.Heading(3, "[slider] Rate"),
		markdown.Paragraph("scale: 1..5\nlabelStart: \"low\"\nlabelEnd: \"high\""),
		markdown.Heading(2, "[block] Next"),
		markdown.Heading(3, "Plain"),
		markdown.Paragraph("text"),
	}
}

func mustMap(t *testing.T, mapper *Mapper, blocks ...markdown.Block) *ContentNode {
	t.Helper()
	root, err := mapper.Map(blocks)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if err := Validate(root); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return root
}

func only(t *testing.T, node *ContentNode) *ContentNode {
	t.Helper()
	if len(node.Children) != 1 {
		t.Fatalf("expected exactly one child under %s %q, got %d", node.Kind, node.Title, len(node.Children))
	}
	return node.Children[0]
}

func firstBlock(t *testing.T, root *ContentNode) *ContentNode {
	t.Helper()
	var found *ContentNode
	Walk(root, func(node, _ *ContentNode) bool {
		if found == nil && node.Kind == KindBlock {
			found = node
		}
		return found == nil
	})
	if found == nil {
		t.Fatal("expected a block")
	}
	return found
}

func firstComponent(t *testing.T, root *ContentNode) *ContentNode {
	t.Helper()
	block := firstBlock(t, root)
	if len(block.Children) == 0 {
		t.Fatal("expected a component")
	}
	return block.Children[0]
}

func assertOptions(t *testing.T, got, want []McqOption) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected options\n got: %#v\nwant: %#v", got, want)
	}
}

func checklist(items ...markdown.ListItem) markdown.Block {
	return markdown.Block{Kind: markdown.BlockList, Items: items}
}

func box(checked bool, text string) markdown.ListItem {
	state := markdown.CheckboxUnchecked
	if checked {
		state = markdown.CheckboxChecked
	}
	return markdown.ListItem{Text: text, Checkbox: state}
}

func plain(text string) markdown.ListItem {
	return markdown.ListItem{Text: text}
}

func parent(text string, children ...markdown.ListItem) markdown.ListItem {
	return markdown.ListItem{Text: text, Children: children}
}

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) record(level, msg string, args ...any) {
	entry := level + " " + msg
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "reason" {
			entry += " reason=" + args[i+1].(string)
		}
	}
	l.entries = append(l.entries, entry)
}

func (l *recordingLogger) warned(reason string) bool {
	for _, entry := range l.entries {
		if strings.HasPrefix(entry, "warn adapt.mapper.degraded") && strings.Contains(entry, "reason="+reason) {
			return true
		}
	}
	return false
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }
