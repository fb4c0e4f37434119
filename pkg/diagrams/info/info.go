// Package info implements the info kind: a one-line diagram that renders
// the toolkit name and version. It is the smallest kind and doubles as a
// probe that lazy registration works end to end.
package info

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/svg"
)

// DiagramType is the registry id of this diagram kind.
const DiagramType = "info"

var headerPattern = regexp.MustCompile(`^\s*info\b`)

func init() {
	diagram.RegisterDetector(DiagramType, Detect)
	diagram.RegisterLoader(DiagramType, Load)
}

// Detect reports whether the cleaned source text opens with an info
// header.
func Detect(text string, cfg *core.Config) bool {
	return headerPattern.MatchString(text)
}

// Load builds the info definition. The kind has no model, so the
// definition carries no DB.
func Load(ctx context.Context) (*diagram.Definition, error) {
	r := &Renderer{cfg: core.DefaultConfig()}
	return &diagram.Definition{
		ID:       DiagramType,
		Parser:   Parser{},
		Renderer: r,
		Init: func(cfg *core.Config) {
			r.SetConfig(cfg)
		},
	}, nil
}

// Parser accepts the info grammar: the header, optionally followed by
// the legacy showInfo keyword.
type Parser struct{}

// Parse validates text. There is nothing to build.
func (Parser) Parse(ctx context.Context, text string) error {
	headerSeen := false
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1
		col := 1 + len(raw) - len(strings.TrimLeft(raw, " \t"))

		if !headerSeen {
			rest, ok := strings.CutPrefix(line, "info")
			if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
				return parseError(lineNo, col, fmt.Sprintf("expected info header, got %q", line))
			}
			headerSeen = true
			if rest = strings.TrimSpace(rest); rest != "" && rest != "showInfo" {
				return parseError(lineNo, col, fmt.Sprintf("unexpected %q after info header", rest))
			}
			continue
		}
		if line != "showInfo" {
			return parseError(lineNo, col, fmt.Sprintf("unexpected %q in info diagram", line))
		}
	}
	if !headerSeen {
		return parseError(1, 1, "expected info header")
	}
	return nil
}

func parseError(line, col int, msg string) error {
	return &diagram.ParseError{Type: DiagramType, Line: line, Column: col, Message: msg}
}

// Renderer draws the version banner.
type Renderer struct {
	cfg *core.Config
}

// SetConfig replaces the configuration used by the next Draw.
func (r *Renderer) SetConfig(cfg *core.Config) {
	if cfg != nil {
		r.cfg = cfg
	}
}

// Draw renders the banner.
func (r *Renderer) Draw(ctx context.Context, text, id, version string, d *diagram.Diagram) ([]byte, error) {
	th := svg.Named(r.cfg.Theme)
	banner := "scrawl v" + version

	width := svg.TextWidth(banner, r.cfg.FontSize+8) + 80
	if width < 320 {
		width = 320
	}
	height := 120.0

	doc := svg.Document(id, width, height).
		Attr("class", "info").
		Attr("aria-roledescription", DiagramType).
		Attr("data-version", version).
		Attr("font-family", r.cfg.FontFamily).
		AttrInt("font-size", r.cfg.FontSize)
	doc.Child("rect").
		AttrFloat("width", width).
		AttrFloat("height", height).
		Attr("fill", th.Background)
	doc.Child("text").
		AttrFloat("x", width/2).
		AttrFloat("y", height/2).
		Attr("text-anchor", "middle").
		Attr("dominant-baseline", "central").
		AttrInt("font-size", r.cfg.FontSize+8).
		Attr("fill", th.TextColor).
		Text(banner)

	return doc.Bytes(), nil
}
