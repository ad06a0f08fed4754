package export

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a document names no language or one without
// a label set.
const DefaultLanguage = "en"

//go:embed labels.yaml
var labelsYAML []byte

// Labels holds the user facing strings written into course and component
// documents.
type Labels struct {
	Buttons             ButtonLabels        `yaml:"buttons"`
	Accessibility       AccessibilityLabels `yaml:"accessibility"`
	Feedback            FeedbackLabels      `yaml:"feedback"`
	McqInstruction      string              `yaml:"mcqInstruction"`
	SliderInstruction   string              `yaml:"sliderInstruction"`
	MatchingPlaceholder string              `yaml:"matchingPlaceholder"`
}

type ButtonLabels struct {
	Submit            string `yaml:"submit"`
	Reset             string `yaml:"reset"`
	ShowCorrectAnswer string `yaml:"showCorrectAnswer"`
	HideCorrectAnswer string `yaml:"hideCorrectAnswer"`
	ShowFeedback      string `yaml:"showFeedback"`
	RemainingAttempts string `yaml:"remainingAttempts"`
	RemainingAttempt  string `yaml:"remainingAttempt"`
	Disabled          string `yaml:"disabled"`
}

type AccessibilityLabels struct {
	SkipNavigationText string            `yaml:"skipNavigationText"`
	AltFeedbackTitle   string            `yaml:"altFeedbackTitle"`
	AriaLabels         map[string]string `yaml:"ariaLabels"`
}

// FeedbackLabels prefix question feedback per outcome.
type FeedbackLabels struct {
	Title         string `yaml:"title"`
	Correct       string `yaml:"correct"`
	Incorrect     string `yaml:"incorrect"`
	PartlyCorrect string `yaml:"partlyCorrect"`
}

var (
	labelsOnce sync.Once
	labelSets  map[string]Labels
	labelsErr  error
)

func loadLabelSets() (map[string]Labels, error) {
	labelsOnce.Do(func() {
		sets := map[string]Labels{}
		if err := yaml.Unmarshal(labelsYAML, &sets); err != nil {
			labelsErr = fmt.Errorf("export: decode label sets: %w", err)
			return
		}
		if _, ok := sets[DefaultLanguage]; !ok {
			labelsErr = fmt.Errorf("export: label sets miss default language %q", DefaultLanguage)
			return
		}
		labelSets = sets
	})
	return labelSets, labelsErr
}

// LabelsFor returns the label set for lang. Region subtags are ignored
// ("de-AT" resolves to "de") and unknown languages fall back to English.
func LabelsFor(lang string) (Labels, error) {
	sets, err := loadLabelSets()
	if err != nil {
		return Labels{}, err
	}
	if labels, ok := sets[baseLanguage(lang)]; ok {
		return labels, nil
	}
	return sets[DefaultLanguage], nil
}

// Languages lists the languages with a dedicated label set.
func Languages() []string {
	sets, err := loadLabelSets()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(sets))
	for lang := range sets {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func baseLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
