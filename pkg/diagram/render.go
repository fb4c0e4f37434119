package diagram

import (
	"context"
	"sync"
)

// RenderResult is the outcome of a full render: the SVG document plus the
// metadata discovered during preprocessing.
type RenderResult struct {
	SVG   []byte
	Type  string
	Title string
}

// renderMu serializes whole renders. Diagram models are shared per
// definition, so two renders of the same type must never interleave between
// parse and draw.
var renderMu sync.Mutex

// Render runs the complete pipeline on raw text: size guard, preprocessing,
// configuration overlay, type resolution, parse and draw. id becomes the
// root element id of the produced SVG document. Renders are serialized;
// callers needing parallelism fan out across processes, not goroutines.
func Render(ctx context.Context, id, text string) (*RenderResult, error) {
	renderMu.Lock()
	defer renderMu.Unlock()

	if limit := CurrentConfig().MaxTextSize; limit > 0 && len(text) > limit {
		return nil, &TextSizeError{Size: len(text), Limit: limit}
	}

	p, err := Preprocess(text)
	if err != nil {
		return nil, err
	}

	ResetConfig()
	AddDirectives(p.Config)

	d, err := FromText(ctx, p.Code, Metadata{Title: p.Title})
	if err != nil {
		return nil, err
	}

	svg, err := d.Render(ctx, id, Version)
	if err != nil {
		return nil, err
	}

	// An inline title statement overrides the front matter title because the
	// parse runs after the metadata is applied.
	title := p.Title
	if t, ok := d.DB().(Titled); ok && t.Title() != "" {
		title = t.Title()
	}

	return &RenderResult{SVG: svg, Type: d.Type(), Title: title}, nil
}
