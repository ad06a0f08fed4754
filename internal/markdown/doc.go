// Package markdown turns Markdown sources into the flat block sequence the
// Adapt mapper consumes. Parsing is delegated to goldmark; this package only
// reads the top level of the AST, renders HTML fragments for body text and
// collects document metadata from front matter or legacy preamble lines.
package markdown
