package main

import (
	"fmt"
	"strings"
)

// MarkdownWriter accumulates a markdown document.
type MarkdownWriter struct {
	b strings.Builder
}

// NewMarkdownWriter creates an empty markdown document.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes the YAML frontmatter block the docs site expects.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	w.b.WriteString("---\n")
	fmt.Fprintf(&w.b, "title: %s\n", title)
	fmt.Fprintf(&w.b, "description: %s\n", description)
	w.b.WriteString("---\n\n")
}

// GeneratedMarker marks the file as generated so nobody edits it by hand.
func (w *MarkdownWriter) GeneratedMarker() {
	w.b.WriteString("<!-- This file is generated by scripts/gendocs. Do not edit. -->\n\n")
}

// Header writes an ATX header at the given level.
func (w *MarkdownWriter) Header(level int, text string) {
	w.b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
}

// Paragraph writes a paragraph followed by a blank line.
func (w *MarkdownWriter) Paragraph(text string) {
	w.b.WriteString(text + "\n\n")
}

// CodeBlock writes a fenced code block.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	w.b.WriteString("```" + lang + "\n")
	w.b.WriteString(strings.TrimRight(code, "\n") + "\n")
	w.b.WriteString("```\n\n")
}

// BulletList writes one bullet per item.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		w.b.WriteString("- " + item + "\n")
	}
	w.b.WriteString("\n")
}

// Table writes a pipe table. Cell text is escaped so stray pipes don't
// break the layout.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	w.b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	w.b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "|", "\\|")
		}
		w.b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	w.b.WriteString("\n")
}

// Bytes returns the document.
func (w *MarkdownWriter) Bytes() []byte {
	return []byte(w.b.String())
}

// InlineCode wraps text in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// cleanDescription flattens a description to a single table-safe line.
func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
