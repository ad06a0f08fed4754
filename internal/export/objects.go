package export

import (
	"html"
	"strings"

	"github.com/goliatone/go-md2adapt/internal/adapt"
)

// Object is one Adapt JSON document.
type Object map[string]any

const (
	scoreToPass       = 60
	componentLayout   = "full"
	emptyParagraph    = "<p></p>"
	tutorHideFeedback = "{{_globals._extensions._tutor.hideFeedback}}"
)

func courseObject(title, lang string, labels Labels) Object {
	aria := make(map[string]any, len(labels.Accessibility.AriaLabels))
	for key, value := range labels.Accessibility.AriaLabels {
		aria[key] = value
	}
	return Object{
		"_id":               adapt.CourseID,
		"_type":             "course",
		"title":             title,
		"displayTitle":      "",
		"description":       "",
		"_defaultLanguage":  lang,
		"_defaultDirection": "ltr",
		"_mcq": Object{
			"ariaRegion":         "Multiple choice question",
			"ariaCorrectAnswer":  "The correct answer is {{{correctAnswer}}}",
			"ariaCorrectAnswers": "The correct answers are {{{correctAnswer}}}",
			"ariaUserAnswer":     "The answer you chose was {{{userAnswer}}}",
			"ariaUserAnswers":    "The answers you chose were {{{userAnswer}}}",
		},
		"_buttons": Object{
			"_submit":               button(labels.Buttons.Submit),
			"_reset":                button(labels.Buttons.Reset),
			"_showCorrectAnswer":    button(labels.Buttons.ShowCorrectAnswer),
			"_hideCorrectAnswer":    button(labels.Buttons.HideCorrectAnswer),
			"_showFeedback":         button(labels.Buttons.ShowFeedback),
			"remainingAttemptsText": labels.Buttons.RemainingAttempts,
			"remainingAttemptText":  labels.Buttons.RemainingAttempt,
			"disabledAriaLabel":     labels.Buttons.Disabled,
		},
		"_assessment": Object{
			"_scoreToPass":       scoreToPass,
			"_correctToPass":     scoreToPass,
			"_isPercentageBased": true,
		},
		"_requireCompletionOf": -1,
		"_globals": Object{
			"_accessibility": Object{
				"skipNavigationText": labels.Accessibility.SkipNavigationText,
				"_ariaLabels":        aria,
				"altFeedbackTitle":   labels.Accessibility.AltFeedbackTitle,
			},
		},
	}
}

func button(text string) Object {
	return Object{"buttonText": text, "ariaLabel": text}
}

func emptyButton() Object {
	return button("")
}

func contentObject(kind, id, parentID, title string) Object {
	return Object{
		"_type":        kind,
		"_id":          id,
		"_parentId":    parentID,
		"title":        title,
		"displayTitle": title,
	}
}

func articleObject(node *adapt.ContentNode) Object {
	return Object{
		"_id":          node.ID,
		"_parentId":    node.ParentID,
		"_type":        "article",
		"title":        node.Title,
		"body":         node.Body,
		"displayTitle": "",
		"_articleBlockSlider": Object{
			"_isEnabled": false,
			"_hasTabs":   false,
		},
		"_assessment": Object{
			"_isEnabled":           false,
			"_id":                  node.ID,
			"_suppressMarking":     false,
			"_scoreToPass":         scoreToPass,
			"_correctToPass":       scoreToPass,
			"_isPercentageBased":   true,
			"_includeInTotalScore": false,
			"_assessmentWeight":    1,
			"_isResetOnRevisit":    false,
			"_attempts":            1,
			"_allowResetIfPassed":  false,
			"_scrollToOnReset":     false,
			"_banks": Object{
				"_isEnabled":     false,
				"_split":         "",
				"_randomisation": false,
			},
			"_randomisation": Object{
				"_isEnabled":  false,
				"_blockCount": 0,
			},
			"_questions": Object{
				"_resetType":          "soft",
				"_canShowFeedback":    true,
				"_canShowMarking":     true,
				"_canShowModelAnswer": false,
			},
		},
	}
}

func blockObject(node *adapt.ContentNode) Object {
	return Object{
		"_id":                node.ID,
		"_parentId":          node.ParentID,
		"_type":              "block",
		"title":              node.Title,
		"body":               node.Body,
		"displayTitle":       node.Title,
		"_trackingId":        node.TrackingID,
		"_pageLevelProgress": Object{"_isEnabled": false},
	}
}

func componentBase(node *adapt.ContentNode, component string) Object {
	return Object{
		"_type":             "component",
		"_component":        component,
		"_id":               node.ID,
		"_parentId":         node.ParentID,
		"title":             node.Title,
		"displayTitle":      node.Title,
		"_layout":           componentLayout,
		"_classes":          "",
		"_isOptional":       false,
		"_isAvailable":      true,
		"_isHidden":         false,
		"_isVisible":        true,
		"_isResetOnRevisit": "false",
	}
}

func textObject(node *adapt.ContentNode) Object {
	obj := componentBase(node, "text")
	body := node.Body
	if body == "" && len(node.Items) > 0 {
		body = listHTML(node.Items)
	}
	if body == "" {
		body = emptyParagraph
	}
	obj["body"] = body
	return obj
}

func listHTML(items []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func graphicObject(node *adapt.ContentNode) Object {
	obj := componentBase(node, "graphic")
	obj["body"] = node.Body
	obj["instruction"] = ""
	graphic := Object{"alt": "", "large": "", "small": "", "attribution": "", "_url": "", "_target": ""}
	if img := node.Image; img != nil {
		graphic["alt"] = img.Alt
		graphic["large"] = img.Src
		graphic["small"] = img.Src
	}
	obj["_graphic"] = graphic
	return obj
}

func mcqObject(node *adapt.ContentNode, labels Labels) Object {
	obj := componentBase(node, "mcq")
	obj["body"] = node.Body
	obj["instruction"] = firstNonEmpty(node.Instruction, labels.McqInstruction)

	items := make([]Object, 0, len(node.Options))
	correct := 0
	for _, opt := range node.Options {
		if opt.IsCorrect {
			correct++
		}
		items = append(items, Object{
			"text":              opt.Text,
			"_shouldBeSelected": opt.IsCorrect,
			"_isPartlyCorrect":  false,
			"feedback":          opt.Feedback,
		})
	}
	obj["_items"] = items
	obj["_selectable"] = max(correct, 1)
	obj["_attempts"] = 1
	obj["_shouldDisplayAttempts"] = false
	obj["_canShowModelAnswer"] = true
	obj["_canShowMarking"] = true
	obj["_isRandom"] = true
	obj["_recordInteraction"] = true
	obj["_hasItemScoring"] = false
	obj["_questionWeight"] = 1
	obj["_tutor"] = Object{
		"_isInherited":           true,
		"_type":                  "inline",
		"_classes":               "",
		"_hasNotifyBottomButton": false,
		"_button": Object{
			"text":      tutorHideFeedback,
			"ariaLabel": tutorHideFeedback,
		},
	}

	hasFeedback := applyFeedback(obj, node.Feedback, labels)
	buttons := Object{
		"_submit":               emptyButton(),
		"_reset":                Object{"buttonText": labels.Buttons.Reset, "ariaLabel": ""},
		"_showCorrectAnswer":    emptyButton(),
		"_hideCorrectAnswer":    emptyButton(),
		"remainingAttemptsText": "",
		"remainingAttemptText":  "",
	}
	if hasFeedback {
		buttons["_showFeedback"] = emptyButton()
	}
	obj["_buttons"] = buttons
	return obj
}

func sliderObject(node *adapt.ContentNode, labels Labels) Object {
	settings := adapt.SliderSettings{Min: 1, Max: 10, Step: 1, LabelStart: "1", LabelEnd: "10"}
	if node.Slider != nil {
		settings = *node.Slider
	}
	obj := componentBase(node, "slider")
	obj["body"] = node.Body
	obj["instruction"] = firstNonEmpty(node.Instruction, labels.SliderInstruction)
	obj["_scaleStart"] = settings.Min
	obj["_scaleEnd"] = settings.Max
	obj["_scaleStep"] = max(settings.Step, 1)
	obj["labelStart"] = settings.LabelStart
	obj["labelEnd"] = settings.LabelEnd
	obj["_correctRange"] = Object{"_bottom": settings.Min, "_top": settings.Max}
	obj["_buttons"] = Object{"_submit": emptyButton()}
	obj["_canShowFeedback"] = false
	return obj
}

func matchingObject(node *adapt.ContentNode, labels Labels) Object {
	obj := componentBase(node, "matching")
	obj["body"] = node.Body
	obj["instruction"] = node.Instruction
	obj["ariaQuestion"] = node.Title
	obj["_attempts"] = 1
	obj["_shouldDisplayAttempts"] = false
	obj["_shouldResetAllAnswers"] = true
	obj["_isRandom"] = false
	obj["_isRandomQuestionOrder"] = false
	obj["_questionWeight"] = 1
	obj["_canShowModelAnswer"] = true
	obj["_canShowCorrectness"] = false
	obj["_canShowMarking"] = true
	obj["_recordInteraction"] = true
	obj["placeholder"] = labels.MatchingPlaceholder
	obj["_allowOnlyUniqueAnswers"] = false
	obj["_hasItemScoring"] = false

	items := make([]Object, 0, len(node.Matching))
	for _, item := range node.Matching {
		options := make([]Object, 0, len(item.Options))
		for _, opt := range item.Options {
			options = append(options, Object{"text": opt.Text, "_isCorrect": opt.IsCorrect})
		}
		items = append(items, Object{"text": item.Text, "_options": options})
	}
	obj["_items"] = items
	applyFeedback(obj, node.Feedback, labels)
	return obj
}

// applyFeedback writes the _feedback block for question components. Without
// feedback text the component only records that none can be shown.
func applyFeedback(obj Object, feedback string, labels Labels) bool {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		obj["_canShowFeedback"] = false
		return false
	}
	obj["_canShowFeedback"] = true
	obj["_feedback"] = Object{
		"title":   labels.Feedback.Title,
		"correct": prefixed(labels.Feedback.Correct, feedback),
		"_incorrect": Object{
			"final":    prefixed(labels.Feedback.Incorrect, feedback),
			"notFinal": "",
		},
		"_partlyCorrect": Object{
			"final":    prefixed(labels.Feedback.PartlyCorrect, feedback),
			"notFinal": "",
		},
	}
	return true
}

func prefixed(prefix, text string) string {
	return strings.TrimSpace(prefix + " " + text)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
