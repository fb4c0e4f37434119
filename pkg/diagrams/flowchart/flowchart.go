package flowchart

import (
	"context"
	"regexp"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

// DiagramType is the registry id of this diagram kind.
const DiagramType = "flowchart"

var headerPattern = regexp.MustCompile(`^\s*(flowchart|graph)\b`)

func init() {
	diagram.RegisterDetector(DiagramType, Detect)
	diagram.RegisterLoader(DiagramType, Load)
}

// Detect reports whether the cleaned source text opens with a
// flowchart or graph header.
func Detect(text string, cfg *core.Config) bool {
	return headerPattern.MatchString(text)
}

// Load builds the flowchart definition. Parser and renderer share one
// model instance; the facade serializes access to it.
func Load(ctx context.Context) (*diagram.Definition, error) {
	db := NewDB()
	r := NewRenderer(db)
	return &diagram.Definition{
		ID:       DiagramType,
		DB:       db,
		Parser:   NewParser(db),
		Renderer: r,
		Init: func(cfg *core.Config) {
			r.SetConfig(cfg)
		},
	}, nil
}
