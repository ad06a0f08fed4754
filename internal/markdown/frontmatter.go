package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// ParseFrontMatter splits optional YAML front matter from the Markdown body.
// Sources without a front matter block are returned unchanged.
func ParseFrontMatter(source []byte) (interfaces.DocumentMeta, []byte, error) {
	var meta interfaces.DocumentMeta

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.DocumentMeta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}

var preamblePattern = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)\s*:\s*"(.*)"\s*$`)

// ExtractPreamble reads `key: "value"` lines that appear before the first
// heading and returns the body with those lines blanked out. Values already
// present in meta win over preamble values.
func ExtractPreamble(meta interfaces.DocumentMeta, body []byte) (interfaces.DocumentMeta, []byte) {
	out := meta
	out.Custom = maps.Clone(meta.Custom)
	if out.Custom == nil {
		out.Custom = map[string]any{}
	}

	lines := strings.Split(string(body), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			break
		}
		if m := preamblePattern.FindStringSubmatch(line); m != nil {
			applyPreamble(&out, m[1], m[2])
			// blank the line to keep paragraph boundaries intact
			lines[i] = ""
		}
	}
	return out, []byte(strings.Join(lines, "\n"))
}

func applyPreamble(meta *interfaces.DocumentMeta, key, value string) {
	set := func(target *string) {
		if *target == "" {
			*target = value
		}
	}
	switch strings.ToLower(key) {
	case "title":
		set(&meta.Title)
	case "language", "lang":
		set(&meta.Language)
	case "parentmenutitle":
		set(&meta.ParentMenuTitle)
	case "version":
		set(&meta.Version)
	case "pagetitle":
		set(&meta.PageTitle)
	case "articletitle":
		set(&meta.ArticleTitle)
	default:
		if _, ok := meta.Custom[key]; !ok {
			meta.Custom[key] = value
		}
	}
}

// BuildDocument assembles a Document from raw file content. The body keeps
// only the Markdown that follows the metadata.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	meta, body = ExtractPreamble(meta, body)

	return &interfaces.Document{
		FilePath:     path,
		Meta:         meta,
		Body:         body,
		LastModified: modified,
	}, nil
}
