package diagram

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the metadata fields recognized in a leading YAML front
// matter block. Unknown fields are ignored rather than rejected; front matter
// travels with user documents and must tolerate foreign keys.
type Frontmatter struct {
	Title       string
	DisplayMode string
	Config      map[string]any
}

// frontmatterPattern matches a leading --- delimited block including the
// newline(s) after the closing delimiter.
var frontmatterPattern = regexp.MustCompile(`(?s)^-{3}\s*[\n\r](.*?)[\n\r]-{3}\s*[\n\r]+`)

// extractFrontmatter splits text into its front matter metadata and the
// remaining body. Text without a front matter block is returned unchanged
// with empty metadata. A block whose YAML body does not parse is a
// *FrontmatterError; a body that parses to a non-mapping (scalar, sequence)
// yields empty metadata.
func extractFrontmatter(text string) (Frontmatter, string, error) {
	var fm Frontmatter

	matches := frontmatterPattern.FindStringSubmatch(text)
	if matches == nil {
		return fm, text, nil
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(matches[1]), &parsed); err != nil {
		return fm, text, &FrontmatterError{Err: err}
	}

	if body, ok := parsed.(map[string]any); ok {
		if v, ok := body["title"]; ok && v != nil {
			fm.Title = fmt.Sprint(v)
		}
		if v, ok := body["displayMode"]; ok && v != nil {
			fm.DisplayMode = fmt.Sprint(v)
		}
		if cfg, ok := body["config"].(map[string]any); ok {
			fm.Config = cfg
		}
	}

	return fm, text[len(matches[0]):], nil
}

// stripFrontmatter removes a leading front matter block without parsing it.
// Used by type detection, which must not fail on malformed metadata.
func stripFrontmatter(text string) string {
	return frontmatterPattern.ReplaceAllString(text, "")
}
