package adapt

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-md2adapt/internal/markdown"
)

var (
	checkboxLinePattern = regexp.MustCompile(`^\s*(?:[-*+]\s*)?\[([xX ])\]\s*(.+?)\s*$`)
	instructionPattern  = regexp.MustCompile(`(?i)^\s*(?:\*\*)?\s*(?:instruction|anweisung)\s*:\s*(?:\*\*)?\s*(.*)$`)
	scalePattern        = regexp.MustCompile(`(?i)^\s*scale\s*:\s*(-?\d+)\s*\.\.\s*(-?\d+)\s*$`)
	stepPattern         = regexp.MustCompile(`(?i)^\s*step\s*:\s*(\d+)\s*$`)
	labelPattern        = regexp.MustCompile(`(?i)^\s*(labelStart|labelEnd)\s*:\s*"?(.*?)"?\s*$`)
	matchingTypePattern = regexp.MustCompile(`(?i)^\s*type\s*:\s*matching\s*$`)
)

const (
	defaultScaleMin = 1
	defaultScaleMax = 10
)

// fillComponent turns the blocks collected for a component into its payload.
// forced is the heading marker kind, empty for detection. Slider and matching
// detection only runs for component headings (slot).
func (r *run) fillComponent(node *ContentNode, blocks []markdown.Block, forced Kind, slot bool) {
	kind := forced
	if kind == "" {
		kind = detectKind(blocks, slot)
	}

	switch kind {
	case KindMcq:
		if r.fillMcq(node, blocks) {
			return
		}
		r.degraded(node, "mcq without checkbox options")
	case KindMatching:
		if r.fillMatching(node, blocks) {
			return
		}
		r.degraded(node, "matching without items")
	case KindSlider:
		r.fillSlider(node, blocks)
		return
	case KindImage:
		if fillImage(node, blocks) {
			return
		}
		r.degraded(node, "image component without image")
	}
	r.fillText(node, blocks)
}

func detectKind(blocks []markdown.Block, slot bool) Kind {
	if slot && anyLine(blocks, matchingTypePattern.MatchString) {
		return KindMatching
	}
	for _, b := range blocks {
		if _, _, ok := checkboxOptions(b); ok {
			return KindMcq
		}
	}
	if slot && anyLine(blocks, isSliderSetting) {
		return KindSlider
	}
	if len(blocks) == 1 && blocks[0].Kind == markdown.BlockImage && blocks[0].Image != nil {
		return KindImage
	}
	return KindText
}

func isSliderSetting(line string) bool {
	return scalePattern.MatchString(line) || labelPattern.MatchString(line) || stepPattern.MatchString(line)
}

// anyLine reports whether a paragraph line of blocks satisfies match.
func anyLine(blocks []markdown.Block, match func(string) bool) bool {
	for _, b := range blocks {
		if b.Kind != markdown.BlockParagraph {
			continue
		}
		for _, line := range strings.Split(b.Text, "\n") {
			if match(line) {
				return true
			}
		}
	}
	return false
}

// checkboxOptions returns the options of a checkbox list or of a paragraph
// made only of checkbox lines. A list whose items are only partly
// checkboxes is not an option group.
func checkboxOptions(b markdown.Block) ([]McqOption, []string, bool) {
	switch b.Kind {
	case markdown.BlockList:
		if len(b.Items) == 0 {
			return nil, nil, false
		}
		var options []McqOption
		var feedback []string
		for _, item := range b.Items {
			if item.Checkbox == markdown.CheckboxNone {
				return nil, nil, false
			}
			text, fb, found := splitFeedback(item.Text)
			if found && fb != "" {
				feedback = append(feedback, fb)
			}
			options = append(options, McqOption{
				Text:      flatten(text),
				IsCorrect: item.Checkbox == markdown.CheckboxChecked,
			})
		}
		return options, feedback, true
	case markdown.BlockParagraph:
		var options []McqOption
		var feedback []string
		lines := strings.Split(b.Text, "\n")
		for i, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if m := checkboxLinePattern.FindStringSubmatch(line); m != nil {
				options = append(options, McqOption{Text: m[2], IsCorrect: m[1] != " "})
				continue
			}
			if _, ok := parseFeedback(line); ok && len(options) > 0 {
				if _, fb, _ := splitFeedback(strings.Join(lines[i:], "\n")); fb != "" {
					feedback = append(feedback, fb)
				}
				break
			}
			return nil, nil, false
		}
		return options, feedback, len(options) > 0
	}
	return nil, nil, false
}

// partialCheckboxList reports a list that mixes checkbox and plain items.
func partialCheckboxList(b markdown.Block) bool {
	if b.Kind != markdown.BlockList {
		return false
	}
	boxes := 0
	for _, item := range b.Items {
		if item.Checkbox != markdown.CheckboxNone {
			boxes++
		}
	}
	return boxes > 0 && boxes < len(b.Items)
}

func (r *run) fillMcq(node *ContentNode, blocks []markdown.Block) bool {
	var (
		options     []McqOption
		feedback    []string
		instruction []string
		body        []string
	)

	for _, b := range blocks {
		if opts, fb, ok := checkboxOptions(b); ok {
			options = append(options, opts...)
			feedback = append(feedback, fb...)
			continue
		}
		if b.Kind == markdown.BlockParagraph {
			if isFeedbackParagraph(b.Text) {
				if _, fb, _ := splitFeedback(b.Text); fb != "" {
					feedback = append(feedback, fb)
				}
				continue
			}
			if len(options) == 0 {
				instruction = append(instruction, instructionHTML(b))
				continue
			}
		}
		body = append(body, blockHTML(b))
	}

	if len(options) == 0 {
		return false
	}

	node.Kind = KindMcq
	node.Options = options
	node.Instruction = joinNonEmpty(instruction, "\n")
	node.Body = joinNonEmpty(body, "\n")
	if len(feedback) > 0 {
		r.feedback(node, strings.Join(feedback, " "))
	}
	return true
}

func isFeedbackParagraph(text string) bool {
	_, ok := parseFeedback(firstLine(text))
	return ok
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func instructionHTML(b markdown.Block) string {
	if m := instructionPattern.FindStringSubmatch(firstLine(b.Text)); m != nil {
		rest := strings.TrimSpace(m[1])
		if i := strings.IndexByte(b.Text, '\n'); i >= 0 {
			rest = joinNonEmpty([]string{rest, b.Text[i+1:]}, " ")
		}
		return paragraphHTML(rest)
	}
	return blockHTML(b)
}

func (r *run) fillSlider(node *ContentNode, blocks []markdown.Block) {
	settings := &SliderSettings{Min: defaultScaleMin, Max: defaultScaleMax, Step: 1}
	var labelStart, labelEnd string
	var instruction, body []string

	for _, b := range blocks {
		if b.Kind != markdown.BlockParagraph {
			body = append(body, blockHTML(b))
			continue
		}
		var rest []string
		for _, line := range strings.Split(b.Text, "\n") {
			switch {
			case scalePattern.MatchString(line):
				m := scalePattern.FindStringSubmatch(line)
				lo, _ := strconv.Atoi(m[1])
				hi, _ := strconv.Atoi(m[2])
				if lo >= hi {
					r.logger.Warn("adapt.mapper.degraded",
						"reason", "slider scale must increase",
						"title", node.Title,
						"scale", strings.TrimSpace(line),
					)
					continue
				}
				settings.Min, settings.Max = lo, hi
			case stepPattern.MatchString(line):
				if step, err := strconv.Atoi(stepPattern.FindStringSubmatch(line)[1]); err == nil && step > 0 {
					settings.Step = step
				}
			case labelPattern.MatchString(line):
				m := labelPattern.FindStringSubmatch(line)
				if strings.EqualFold(m[1], "labelStart") {
					labelStart = m[2]
				} else {
					labelEnd = m[2]
				}
			case instructionPattern.MatchString(line):
				instruction = append(instruction, paragraphHTML(instructionPattern.FindStringSubmatch(line)[1]))
			default:
				rest = append(rest, line)
			}
		}
		if text := joinNonEmpty(rest, "\n"); text != "" {
			body = append(body, paragraphHTML(text))
		}
	}

	if labelStart == "" {
		labelStart = strconv.Itoa(settings.Min)
	}
	if labelEnd == "" {
		labelEnd = strconv.Itoa(settings.Max)
	}
	settings.LabelStart, settings.LabelEnd = labelStart, labelEnd

	node.Kind = KindSlider
	node.Slider = settings
	node.Instruction = joinNonEmpty(instruction, "\n")
	node.Body = joinNonEmpty(body, "\n")
}

func (r *run) fillMatching(node *ContentNode, blocks []markdown.Block) bool {
	var (
		items       []MatchingItem
		feedback    []string
		instruction []string
		body        []string
	)

	for _, b := range blocks {
		switch b.Kind {
		case markdown.BlockParagraph:
			var rest []string
			lines := strings.Split(b.Text, "\n")
			for i, line := range lines {
				if matchingTypePattern.MatchString(line) {
					continue
				}
				if m := instructionPattern.FindStringSubmatch(line); m != nil {
					instruction = append(instruction, paragraphHTML(m[1]))
					continue
				}
				if _, ok := parseFeedback(line); ok {
					if _, fb, _ := splitFeedback(strings.Join(lines[i:], "\n")); fb != "" {
						feedback = append(feedback, fb)
					}
					break
				}
				rest = append(rest, line)
			}
			if text := joinNonEmpty(rest, "\n"); text != "" {
				body = append(body, paragraphHTML(text))
			}
		case markdown.BlockList:
			for _, entry := range b.Items {
				question, fb, _ := splitFeedback(entry.Text)
				if fb != "" {
					feedback = append(feedback, fb)
				}
				item := MatchingItem{Text: flatten(question)}
				for _, child := range entry.Children {
					if child.Checkbox == markdown.CheckboxNone {
						continue
					}
					text, fb, _ := splitFeedback(child.Text)
					if fb != "" {
						feedback = append(feedback, fb)
					}
					item.Options = append(item.Options, MatchingOption{
						Text:      flatten(text),
						IsCorrect: child.Checkbox == markdown.CheckboxChecked,
					})
				}
				if len(item.Options) > 0 {
					items = append(items, item)
				}
			}
		default:
			body = append(body, blockHTML(b))
		}
	}

	if len(items) == 0 {
		return false
	}

	node.Kind = KindMatching
	node.Matching = items
	node.Instruction = joinNonEmpty(instruction, "\n")
	node.Body = joinNonEmpty(body, "\n")
	if len(feedback) > 0 {
		r.feedback(node, strings.Join(feedback, " "))
	}
	return true
}

func fillImage(node *ContentNode, blocks []markdown.Block) bool {
	var body []string
	for _, b := range blocks {
		if b.Kind == markdown.BlockImage && b.Image != nil && node.Image == nil {
			node.Image = &ImageSource{Src: b.Image.Src, Alt: b.Image.Alt, Title: b.Image.Title}
			continue
		}
		body = append(body, blockHTML(b))
	}
	if node.Image == nil {
		return false
	}
	node.Kind = KindImage
	node.Body = joinNonEmpty(body, "\n")
	return true
}

func (r *run) fillText(node *ContentNode, blocks []markdown.Block) {
	var body []string
	for _, b := range blocks {
		switch {
		case partialCheckboxList(b):
			r.degraded(node, "malformed checkbox list")
		case b.Kind == markdown.BlockRaw:
			r.degraded(node, "unsupported block")
		}
		if b.Kind == markdown.BlockList {
			for _, item := range b.Items {
				node.Items = append(node.Items, flatten(item.Text))
			}
		}
		body = append(body, blockHTML(b))
	}
	node.Kind = KindText
	node.Body = joinNonEmpty(body, "\n")
}

func blockHTML(b markdown.Block) string {
	if html := strings.TrimSpace(b.HTML); html != "" {
		return html
	}
	switch {
	case b.Kind == markdown.BlockImage && b.Image != nil:
		return imageHTML(b.Image)
	case strings.TrimSpace(b.Text) != "":
		return paragraphHTML(b.Text)
	}
	return ""
}

func imageHTML(img *markdown.Image) string {
	out := `<img src="` + html.EscapeString(img.Src) + `" alt="` + html.EscapeString(img.Alt) + `"`
	if img.Title != "" {
		out += ` title="` + html.EscapeString(img.Title) + `"`
	}
	return out + ">"
}

func paragraphHTML(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return "<p>" + html.EscapeString(text) + "</p>"
}

// flatten joins the lines of multi-line item text with single spaces.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
