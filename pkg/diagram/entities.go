package diagram

import (
	"regexp"
	"strings"
)

// Entity references are written in diagram text as #name; or #ddd; without
// the leading ampersand, which most grammars reserve. Before parsing they
// are swapped for private-use sentinels no grammar treats specially, and the
// sentinels are turned into real references after rendering.
const (
	numericEntityMark = "" // becomes &# on decode
	namedEntityMark   = "" // becomes & on decode
	entityEndMark     = "" // becomes ; on decode
)

var (
	// Style and classDef statements lose the semicolon after a color value
	// so #hex colors never match the entity pattern.
	styleColorPattern    = regexp.MustCompile(`style.*:\S*#.*;`)
	classDefColorPattern = regexp.MustCompile(`classDef.*:\S*#.*;`)

	entityPattern     = regexp.MustCompile(`#\w+;`)
	numericRefPattern = regexp.MustCompile(`^\+?\d+$`)
)

// encodeEntities replaces entity references with sentinel runes so they
// survive parsing untouched.
func encodeEntities(text string) string {
	text = styleColorPattern.ReplaceAllStringFunc(text, trimTrailingSemicolon)
	text = classDefColorPattern.ReplaceAllStringFunc(text, trimTrailingSemicolon)
	return entityPattern.ReplaceAllStringFunc(text, func(s string) string {
		inner := s[1 : len(s)-1]
		if numericRefPattern.MatchString(inner) {
			return numericEntityMark + inner + entityEndMark
		}
		return namedEntityMark + inner + entityEndMark
	})
}

func trimTrailingSemicolon(s string) string {
	return s[:len(s)-1]
}

// decodeEntities restores sentinel runes in rendered output to HTML entity
// references.
func decodeEntities(svg []byte) []byte {
	s := string(svg)
	s = strings.ReplaceAll(s, numericEntityMark, "&#")
	s = strings.ReplaceAll(s, namedEntityMark, "&")
	s = strings.ReplaceAll(s, entityEndMark, ";")
	return []byte(s)
}
