// Package diagram normalizes raw diagram text into a canonical form and
// resolves it against a registry of lazily loaded diagram implementations.
//
// The entry points are Preprocess, which cleans text and extracts embedded
// metadata, FromText, which binds cleaned text to a registered diagram
// definition, and Render, which runs the whole pipeline and produces SVG.
package diagram

import (
	"regexp"
	"strings"
	"unicode"
)

// Preprocessed is the canonical form of a raw diagram description: cleaned
// source text plus the metadata that was embedded in it.
type Preprocessed struct {
	// Code is the diagram body with front matter, directives and comment
	// lines removed, line endings normalized and leading whitespace trimmed.
	Code string

	// Title is the front matter title, empty when none was given.
	Title string

	// Config is the merged configuration from front matter and init
	// directives. Never nil; empty when the text carried no configuration.
	Config map[string]any
}

var (
	// lineBreakPattern collapses Windows and legacy Mac line endings.
	lineBreakPattern = regexp.MustCompile(`\r\n?`)

	// htmlTagPattern matches an HTML-like tag so attribute quoting inside it
	// can be rewritten without touching quotes in the surrounding text.
	htmlTagPattern   = regexp.MustCompile(`<(\w+)([^>]*)>`)
	attrValuePattern = regexp.MustCompile(`="([^"]*)"`)

	// commentPattern matches %% comment lines but never %%{ directive
	// openers. A bare %% with nothing after it is not a comment.
	commentPattern = regexp.MustCompile(`(?m)^\s*%%[^{\n][^\n]*\n?`)
)

// normalizeText converts all line endings to \n and rewrites double-quoted
// attribute values inside HTML-like tags to single quotes, so that embedded
// markup survives grammars which reserve double quotes for their own strings.
// Idempotent.
func normalizeText(text string) string {
	text = lineBreakPattern.ReplaceAllString(text, "\n")
	return htmlTagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		m := htmlTagPattern.FindStringSubmatch(tag)
		return "<" + m[1] + attrValuePattern.ReplaceAllString(m[2], "='$1'") + ">"
	})
}

// stripComments removes comment lines entirely and trims leading whitespace.
// Line numbers of the remaining text shift accordingly; downstream parse
// errors are reported against the cleaned code.
func stripComments(text string) string {
	return strings.TrimLeftFunc(commentPattern.ReplaceAllString(text, ""), unicode.IsSpace)
}

// Preprocess runs the full cleaning pipeline: normalize line endings and
// in-tag quoting, extract front matter, process directives, merge the two
// configuration sources and strip comments. Collaborator errors (malformed
// front matter YAML, unparseable directive bodies) propagate unchanged.
func Preprocess(text string) (*Preprocessed, error) {
	text = normalizeText(text)

	fm, body, err := extractFrontmatter(text)
	if err != nil {
		return nil, err
	}

	fmConfig := fm.Config
	if fm.DisplayMode != "" {
		// Legacy top-level displayMode maps onto the gantt section.
		if fmConfig == nil {
			fmConfig = map[string]any{}
		}
		gantt, _ := fmConfig["gantt"].(map[string]any)
		if gantt == nil {
			gantt = map[string]any{}
		}
		gantt["displayMode"] = fm.DisplayMode
		fmConfig["gantt"] = gantt
	}

	dirConfig, body, err := processDirectives(body)
	if err != nil {
		return nil, err
	}

	return &Preprocessed{
		Code:   stripComments(body),
		Title:  fm.Title,
		Config: mergeConfig(fmConfig, dirConfig),
	}, nil
}
