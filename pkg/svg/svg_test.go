package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElement_AttributeOrderStable(t *testing.T) {
	e := New("rect").
		AttrInt("x", 10).
		AttrInt("y", 20).
		Attr("fill", "#ececff")

	assert.Equal(t, "<rect x=\"10\" y=\"20\" fill=\"#ececff\"/>\n", e.String())
}

func TestElement_AttrReplacesInPlace(t *testing.T) {
	e := New("rect").
		Attr("fill", "red").
		AttrInt("width", 5).
		Attr("fill", "blue")

	assert.Equal(t, "<rect fill=\"blue\" width=\"5\"/>\n", e.String())
}

func TestElement_NestedRendering(t *testing.T) {
	root := New("g").Attr("id", "grp")
	root.Child("rect").AttrInt("width", 1)
	root.Child("text").Text("hi")

	want := "<g id=\"grp\">\n" +
		"  <rect width=\"1\"/>\n" +
		"  <text>hi</text>\n" +
		"</g>\n"
	assert.Equal(t, want, root.String())
}

func TestElement_TextEscaped(t *testing.T) {
	e := New("text").Text(`a < b & "c"`)
	assert.Equal(t, "<text>a &lt; b &amp; &quot;c&quot;</text>\n", e.String())
}

func TestElement_AttributeEscaped(t *testing.T) {
	e := New("text").Attr("data-label", `<script>`)
	assert.Equal(t, "<text data-label=\"&lt;script&gt;\"/>\n", e.String())
}

func TestDocument(t *testing.T) {
	d := Document("graph-1", 320, 240.5)
	s := d.String()

	assert.Contains(t, s, `id="graph-1"`)
	assert.Contains(t, s, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, s, `viewBox="0 0 320 240.5"`)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3.0, "3"},
		{12.5, "12.5"},
		{33.333333, "33.33"},
		{-4.20, "-4.2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "formatFloat(%v)", tt.in)
	}
}

func TestNamedTheme_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "default", Named("no-such-theme").Name)
	assert.Equal(t, "dark", Named("dark").Name)
}

func TestThemeAccent_Cycles(t *testing.T) {
	th := Named("default")
	n := len(th.Accents)

	assert.Equal(t, th.Accents[0], th.Accent(0))
	assert.Equal(t, th.Accents[0], th.Accent(n))
	assert.Equal(t, th.Accents[1], th.Accent(n+1))
}

func TestTextWidth_Monotonic(t *testing.T) {
	assert.Less(t, TextWidth("ab", 16), TextWidth("abc", 16))
	assert.Less(t, TextWidth("abc", 12), TextWidth("abc", 16))
	assert.Greater(t, TextWidth("漢字", 16), TextWidth("ab", 16), "wide runes measure wider than narrow ones")
	assert.Zero(t, TextWidth("", 16))
}
