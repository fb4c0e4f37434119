// Package svg builds SVG documents as element trees with deterministic
// output: attributes render in insertion order and floats format identically
// across runs, so the same diagram always produces the same bytes.
package svg

import (
	"bytes"
	"strconv"
	"strings"
)

// Element is one node of an SVG document tree.
type Element struct {
	name     string
	attrs    []attribute
	text     string
	children []*Element
}

type attribute struct {
	key   string
	value string
}

// New creates an element with the given tag name.
func New(name string) *Element {
	return &Element{name: name}
}

// Document creates a root <svg> element with the standard namespace and a
// viewBox spanning the given size.
func Document(id string, width, height float64) *Element {
	return New("svg").
		Attr("id", id).
		Attr("xmlns", "http://www.w3.org/2000/svg").
		AttrFloat("width", width).
		AttrFloat("height", height).
		Attr("viewBox", "0 0 "+formatFloat(width)+" "+formatFloat(height))
}

// Attr sets an attribute. Setting a key again replaces its value in place,
// keeping the original position in the output.
func (e *Element) Attr(key, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i].key == key {
			e.attrs[i].value = value
			return e
		}
	}
	e.attrs = append(e.attrs, attribute{key: key, value: value})
	return e
}

// AttrInt sets an integer attribute.
func (e *Element) AttrInt(key string, value int) *Element {
	return e.Attr(key, strconv.Itoa(value))
}

// AttrFloat sets a numeric attribute with at most two decimals.
func (e *Element) AttrFloat(key string, value float64) *Element {
	return e.Attr(key, formatFloat(value))
}

// Text sets the element's text content. Escaping happens at render time.
func (e *Element) Text(s string) *Element {
	e.text = s
	return e
}

// Child creates an element, appends it and returns the child for chaining.
func (e *Element) Child(name string) *Element {
	c := New(name)
	e.children = append(e.children, c)
	return c
}

// Append adds existing elements as children and returns the receiver.
func (e *Element) Append(children ...*Element) *Element {
	e.children = append(e.children, children...)
	return e
}

// Bytes renders the element tree as an SVG fragment.
func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	e.render(&buf, 0)
	return buf.Bytes()
}

// String renders the element tree as an SVG fragment.
func (e *Element) String() string {
	return string(e.Bytes())
}

func (e *Element) render(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
	buf.WriteByte('<')
	buf.WriteString(e.name)
	for _, a := range e.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.key)
		buf.WriteString(`="`)
		buf.WriteString(Escape(a.value))
		buf.WriteByte('"')
	}

	if e.text == "" && len(e.children) == 0 {
		buf.WriteString("/>\n")
		return
	}

	buf.WriteByte('>')
	if e.text != "" {
		buf.WriteString(Escape(e.text))
	}
	if len(e.children) > 0 {
		buf.WriteByte('\n')
		for _, c := range e.children {
			c.render(buf, depth+1)
		}
		for i := 0; i < depth; i++ {
			buf.WriteString("  ")
		}
	}
	buf.WriteString("</")
	buf.WriteString(e.name)
	buf.WriteString(">\n")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape encodes the characters significant in SVG text and attribute
// values.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Number formats a coordinate the same way attributes do, for callers
// assembling path data or transform strings by hand.
func Number(v float64) string {
	return formatFloat(v)
}

// formatFloat renders a float with up to two decimals, trimming trailing
// zeros so whole numbers print without a decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
