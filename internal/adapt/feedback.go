package adapt

import (
	"regexp"
	"strings"
)

// FeedbackPolicy attaches a feedback text to a question once its options are
// known. It is the single place that decides where feedback ends up.
type FeedbackPolicy func(question *ContentNode, feedback string)

// QuestionFeedback stores feedback on the question itself. Repeated feedback
// lines are joined with a space.
func QuestionFeedback(question *ContentNode, feedback string) {
	if question == nil || feedback == "" {
		return
	}
	if question.Feedback == "" {
		question.Feedback = feedback
		return
	}
	question.Feedback += " " + feedback
}

// PerOptionFeedback stores feedback on the question and copies it to every
// option that has none yet.
func PerOptionFeedback(question *ContentNode, feedback string) {
	QuestionFeedback(question, feedback)
	if question == nil {
		return
	}
	for i := range question.Options {
		if question.Options[i].Feedback == "" {
			question.Options[i].Feedback = feedback
		}
	}
}

var feedbackPattern = regexp.MustCompile(`(?i)^\s*(?:\*\*)?\s*(?:feedback|rückmeldung)\s*:\s*(?:\*\*)?\s*(.*)$`)

// parseFeedback reports whether line starts with a feedback prefix and
// returns the text after it.
func parseFeedback(line string) (string, bool) {
	m := feedbackPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// splitFeedback separates trailing feedback from text. Everything from the
// first feedback line onwards counts as feedback.
func splitFeedback(text string) (rest, feedback string, found bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fb, ok := parseFeedback(line)
		if !ok {
			continue
		}
		tail := append([]string{fb}, trimLines(lines[i+1:])...)
		return strings.TrimSpace(strings.Join(lines[:i], "\n")), joinNonEmpty(tail, " "), true
	}
	return strings.TrimSpace(text), "", false
}

func trimLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

func joinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, sep)
}
