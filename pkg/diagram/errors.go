package diagram

import (
	"fmt"
	"strings"
)

// UnknownDiagramError is returned when no registered detector claims the text,
// or when a detected type has neither a definition nor a loader.
type UnknownDiagramError struct {
	Name      string // detected type, empty when detection itself failed
	Text      string // first line of the probed text, for diagnostics
	Available []string
}

func (e *UnknownDiagramError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no diagram type detected matching given configuration for text: %s\nAvailable types: %v", e.Text, e.Available)
	}
	return fmt.Sprintf("unknown diagram type %q\nAvailable types: %v", e.Name, e.Available)
}

// RegistrationConflictError is returned when a diagram id is registered a
// second time with a different definition.
type RegistrationConflictError struct {
	ID string
}

func (e *RegistrationConflictError) Error() string {
	return fmt.Sprintf("diagram %s already registered", e.ID)
}

// FrontmatterError is returned when a front matter block is present but its
// YAML body cannot be parsed.
type FrontmatterError struct {
	Err error
}

func (e *FrontmatterError) Error() string {
	return fmt.Sprintf("failed to parse front matter: %v", e.Err)
}

func (e *FrontmatterError) Unwrap() error {
	return e.Err
}

// DirectiveError is returned when a directive body cannot be parsed even
// after repair.
type DirectiveError struct {
	Raw string // the directive body as written
	Err error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("failed to parse directive %q: %v", e.Raw, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// ParseError represents a grammar error in diagram source text with position
// information.
type ParseError struct {
	Type    string // diagram type whose grammar rejected the text
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// LoadError is returned when a lazy diagram loader fails. The requested type
// stays unregistered so a later resolve can retry.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load diagram %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// TextSizeError is returned when source text exceeds the configured
// maxTextSize. The text is never partially rendered.
type TextSizeError struct {
	Size  int
	Limit int
}

func (e *TextSizeError) Error() string {
	return fmt.Sprintf("text size %d exceeds limit %d", e.Size, e.Limit)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
