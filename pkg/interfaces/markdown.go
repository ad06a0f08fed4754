package interfaces

import "time"

// ParseOptions customises how Markdown sources are tokenised and rendered.
// Option names stay readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	// Extensions lists goldmark extensions by name ("gfm", "tasklist", ...).
	// An empty list enables GFM and task lists.
	Extensions []string
	// HardWraps renders soft line breaks inside paragraphs as <br>.
	HardWraps bool
	// SafeMode drops raw HTML from rendered fragments.
	SafeMode bool
}

// Document is a Markdown source together with the metadata read from its
// front matter and preamble.
type Document struct {
	FilePath     string
	Meta         DocumentMeta
	Body         []byte
	LastModified time.Time
	// Checksum stores the SHA-256 digest of the original file content.
	Checksum []byte
}

// DocumentMeta models the metadata an author can place ahead of the first
// heading, either as YAML front matter or as legacy `key: "value"` lines.
type DocumentMeta struct {
	Title           string         `yaml:"title" json:"title,omitempty"`
	Language        string         `yaml:"language" json:"language,omitempty"`
	ParentMenuTitle string         `yaml:"parentMenuTitle" json:"parentMenuTitle,omitempty"`
	Version         string         `yaml:"version" json:"version,omitempty"`
	PageTitle       string         `yaml:"pageTitle" json:"pageTitle,omitempty"`
	ArticleTitle    string         `yaml:"articleTitle" json:"articleTitle,omitempty"`
	Custom          map[string]any `yaml:",inline" json:"custom,omitempty"`
}
