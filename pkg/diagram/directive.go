package diagram

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// directivePattern matches an inline %%{name}%% or %%{name: args}%% marker.
// Args run to the first }%% sequence, so nested JSON braces are fine.
var directivePattern = regexp.MustCompile(`(?s)%%{\s*(\w+)\s*(?::\s*(.*?))?\s*}%%`)

// directiveStripPattern additionally eats one trailing newline so removed
// markers do not leave blank lines behind.
var directiveStripPattern = regexp.MustCompile(`(?s)%%{\s*\w+\s*(?::.*?)?\s*}%%[ \t]*\n?`)

// processDirectives extracts init directives from text and removes all
// directive markers. Multiple init directives deep-merge in order, later
// ones winning per key. Any wrap directive forces wrap=true in the result.
// A directive body that cannot be parsed even after repair is a
// *DirectiveError.
func processDirectives(text string) (map[string]any, string, error) {
	init := map[string]any{}
	wrap := false

	for _, m := range directivePattern.FindAllStringSubmatch(text, -1) {
		name, args := m[1], strings.TrimSpace(m[2])
		switch name {
		case "init", "initialize":
			if args == "" {
				continue
			}
			parsed, err := parseDirectiveArgs(args)
			if err != nil {
				return nil, text, err
			}
			init = mergeConfig(init, parsed)
		case "wrap":
			wrap = true
		}
	}

	if wrap {
		init["wrap"] = true
	}

	return init, removeDirectives(text), nil
}

// removeDirectives strips every directive marker from text. Idempotent: text
// without markers passes through unchanged.
func removeDirectives(text string) string {
	return directiveStripPattern.ReplaceAllString(text, "")
}

// parseDirectiveArgs parses a directive body as JSON, tolerating the loose
// quoting real-world directives carry: single quotes, unquoted keys and
// trailing commas are repaired before giving up.
func parseDirectiveArgs(args string) (map[string]any, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(args), &parsed); err == nil {
		return parsed, nil
	}

	repaired, err := jsonrepair.JSONRepair(args)
	if err != nil {
		return nil, &DirectiveError{Raw: args, Err: err}
	}
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, &DirectiveError{Raw: args, Err: err}
	}
	return parsed, nil
}
