package diagram

import (
	"context"

	"github.com/scrawl-labs/scrawl/pkg/core"
)

// DB holds the parsed model of one diagram kind. Each definition owns a
// single shared instance, populated by its parser and read by its renderer.
// The engine treats it as opaque and probes the optional capabilities below.
type DB any

// Clearer resets a DB to its empty state. Because definitions share one DB
// instance across parses, the facade clears it before each parse when the
// capability is present.
type Clearer interface {
	Clear()
}

// TitleSettable accepts a diagram title sourced from document metadata.
type TitleSettable interface {
	SetDiagramTitle(title string)
}

// Titled reports the title recorded in the model, whether it was seeded from
// document metadata or set by the grammar's own title statement.
type Titled interface {
	Title() string
}

// Parser parses diagram source text into its definition's DB.
type Parser interface {
	Parse(ctx context.Context, text string) error
}

// DBBinder is implemented by parsers that keep a reference to the model they
// populate and must be pointed at the definition's DB before parsing.
type DBBinder interface {
	BindDB(db DB)
}

// Renderer draws a parsed diagram as an SVG document. id becomes the root
// element id, version is stamped into the output.
type Renderer interface {
	Draw(ctx context.Context, text, id, version string, d *Diagram) ([]byte, error)
}

// InitFunc configures a diagram implementation from the effective config
// before each parse.
type InitFunc func(cfg *core.Config)

// DetectorFunc reports whether text, already stripped of front matter,
// directives and comments, is a diagram of this kind.
type DetectorFunc func(text string, cfg *core.Config) bool

// LoaderFunc lazily builds a diagram definition. Invoked at most once per
// successful resolve; after a failed load the type stays unregistered and a
// later resolve retries.
type LoaderFunc func(ctx context.Context) (*Definition, error)

// Definition bundles everything the engine needs for one diagram kind.
type Definition struct {
	// ID is the diagram type tag, e.g. "flowchart".
	ID string

	// DB is the shared model instance. Implementations that support repeated
	// parses implement Clearer.
	DB DB

	Parser   Parser
	Renderer Renderer

	// Init, when non-nil, runs before each parse with the effective config.
	Init InitFunc
}
