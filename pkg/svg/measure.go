package svg

import "unicode"

// Glyph width as a fraction of font size. Real text metrics need the actual
// font; diagrams only need boxes wide enough that labels fit.
const (
	glyphAspect     = 0.6
	wideGlyphAspect = 1.0
	lineHeightRatio = 1.2
)

// TextWidth estimates the rendered width of a single line of text at the
// given font size. East Asian and other wide runes count as full-width.
func TextWidth(s string, fontSize int) float64 {
	var units float64
	for _, r := range s {
		if isWide(r) {
			units += wideGlyphAspect
		} else {
			units += glyphAspect
		}
	}
	return units * float64(fontSize)
}

// LineHeight returns the vertical space one text line occupies.
func LineHeight(fontSize int) float64 {
	return float64(fontSize) * lineHeightRatio
}

func isWide(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)
}
