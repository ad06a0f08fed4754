// Package export turns a mapped content tree into the Adapt framework's JSON
// documents: course, contentObjects, articles, blocks and components.
package export

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-md2adapt/internal/adapt"
	"github.com/goliatone/go-md2adapt/internal/identity"
)

// Output file names, in the order they are written.
const (
	FileContentObjects = "contentObjects.json"
	FileArticles       = "articles.json"
	FileBlocks         = "blocks.json"
	FileComponents     = "components.json"
	FileCourse         = "course.json"
)

// FileNames lists every file of a bundle.
var FileNames = []string{FileContentObjects, FileArticles, FileBlocks, FileComponents, FileCourse}

// Options tunes the exported documents.
type Options struct {
	// Language is written as the course default language and picks the
	// label set.
	Language string
	// MenuTitle adds a menu content object that parents every page. Pages
	// hang off the course when empty.
	MenuTitle string
	// MenuID overrides the derived menu id.
	MenuID string
	// Labels replaces the built-in label set for Language.
	Labels *Labels
}

// Bundle holds the documents of one course in document order.
type Bundle struct {
	Course         Object
	ContentObjects []Object
	Articles       []Object
	Blocks         []Object
	Components     []Object
}

// Counts summarises a bundle.
type Counts struct {
	ContentObjects int
	Articles       int
	Blocks         int
	Components     int
}

func (b *Bundle) Counts() Counts {
	if b == nil {
		return Counts{}
	}
	return Counts{
		ContentObjects: len(b.ContentObjects),
		Articles:       len(b.Articles),
		Blocks:         len(b.Blocks),
		Components:     len(b.Components),
	}
}

// Build converts root into a bundle. root must pass adapt.Validate.
func Build(root *adapt.ContentNode, opts Options) (*Bundle, error) {
	if err := adapt.Validate(root); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	lang := strings.TrimSpace(opts.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	labels, err := opts.labels(lang)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Course: courseObject(root.Title, lang, labels)}

	pageParent := root.ID
	if title := strings.TrimSpace(opts.MenuTitle); title != "" {
		menuID := strings.TrimSpace(opts.MenuID)
		if menuID == "" {
			menuID = MenuID(root.Title)
		}
		bundle.ContentObjects = append(bundle.ContentObjects, contentObject("menu", menuID, root.ID, title))
		pageParent = menuID
	}

	for _, page := range root.Children {
		bundle.ContentObjects = append(bundle.ContentObjects, contentObject("page", page.ID, pageParent, page.Title))
		for _, article := range page.Children {
			bundle.Articles = append(bundle.Articles, articleObject(article))
			for _, block := range article.Children {
				bundle.Blocks = append(bundle.Blocks, blockObject(block))
				for _, component := range block.Children {
					obj, err := componentObject(component, labels)
					if err != nil {
						return nil, err
					}
					bundle.Components = append(bundle.Components, obj)
				}
			}
		}
	}
	return bundle, nil
}

// MenuID derives the menu id from the course title so repeated exports keep
// it stable.
func MenuID(courseTitle string) string {
	return identity.NewHashed("menu").NewID(courseTitle)
}

func (o Options) labels(lang string) (Labels, error) {
	if o.Labels != nil {
		return *o.Labels, nil
	}
	return LabelsFor(lang)
}

func componentObject(node *adapt.ContentNode, labels Labels) (Object, error) {
	switch node.Kind {
	case adapt.KindText:
		return textObject(node), nil
	case adapt.KindImage:
		return graphicObject(node), nil
	case adapt.KindMcq:
		return mcqObject(node, labels), nil
	case adapt.KindSlider:
		return sliderObject(node, labels), nil
	case adapt.KindMatching:
		return matchingObject(node, labels), nil
	}
	return nil, fmt.Errorf("export: unsupported component kind %q (%s)", node.Kind, node.ID)
}
