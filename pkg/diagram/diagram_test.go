package diagram

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrawl-labs/scrawl/pkg/core"
)

// fakeDB records every facade interaction so tests can assert the binding
// sequence.
type fakeDB struct {
	clears int
	title  string
	events []string
}

func (db *fakeDB) Clear() {
	db.clears++
	db.title = ""
	db.events = append(db.events, "clear")
}

func (db *fakeDB) SetDiagramTitle(title string) {
	db.title = title
	db.events = append(db.events, "title")
}

type fakeParser struct {
	db     DB
	text   string
	err    error
	events *[]string
}

func (p *fakeParser) BindDB(db DB) {
	p.db = db
	if p.events != nil {
		*p.events = append(*p.events, "bind")
	}
}

func (p *fakeParser) Parse(ctx context.Context, text string) error {
	p.text = text
	if p.events != nil {
		*p.events = append(*p.events, "parse")
	}
	return p.err
}

type fakeRenderer struct{}

func (fakeRenderer) Draw(ctx context.Context, text, id, version string, d *Diagram) ([]byte, error) {
	return []byte(fmt.Sprintf(`<svg id="%s" data-version="%s">%s</svg>`, id, version, strings.TrimSpace(text))), nil
}

func registerFakeKind(t *testing.T, id, keyword string) (*fakeDB, *fakeParser) {
	t.Helper()

	db := &fakeDB{}
	parser := &fakeParser{events: &db.events}
	def := &Definition{
		ID:       id,
		DB:       db,
		Parser:   parser,
		Renderer: fakeRenderer{},
		Init: func(cfg *core.Config) {
			db.events = append(db.events, "init")
		},
	}
	require.NoError(t, RegisterDiagram(id, def, prefixDetector(keyword)))
	t.Cleanup(ResetRegistry)
	return db, parser
}

func TestFromText_BindingSequence(t *testing.T) {
	db, parser := registerFakeKind(t, "seq-kind", "seqfixture")

	d, err := FromText(context.Background(), "seqfixture body", Metadata{Title: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, []string{"bind", "clear", "init", "title", "parse"}, db.events)
	assert.Same(t, db, parser.db, "parser is bound to the definition's model")
	assert.Equal(t, "Hello", db.title)
	assert.Equal(t, "seqfixture body\n", parser.text, "parser sees the text with the trailing newline appended")
	assert.Equal(t, "seq-kind", d.Type())
	assert.Same(t, db, d.DB())
	assert.Same(t, parser, d.Parser())
}

func TestFromText_ClearsBetweenParses(t *testing.T) {
	db, _ := registerFakeKind(t, "clear-kind", "clearfixture")

	_, err := FromText(context.Background(), "clearfixture one", Metadata{})
	require.NoError(t, err)
	_, err = FromText(context.Background(), "clearfixture two", Metadata{})
	require.NoError(t, err)

	assert.Equal(t, 2, db.clears, "shared model is cleared before every parse")
	assert.Empty(t, db.title, "no metadata title leaves the model title empty")
}

func TestFromText_UnknownType(t *testing.T) {
	_, err := FromText(context.Background(), "completely unrecognizable", Metadata{})
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*UnknownDiagramError))
}

func TestFromText_ParseErrorPropagates(t *testing.T) {
	_, parser := registerFakeKind(t, "err-kind", "errfixture")
	parser.err = &ParseError{Type: "err-kind", Line: 2, Column: 7, Message: "unexpected token"}

	_, err := FromText(context.Background(), "errfixture body", Metadata{})
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestFromText_EncodesEntities(t *testing.T) {
	_, parser := registerFakeKind(t, "ent-kind", "entfixture")

	_, err := FromText(context.Background(), "entfixture Tom #amp; Jerry", Metadata{})
	require.NoError(t, err)

	assert.NotContains(t, parser.text, "#amp;", "entity references are encoded before parsing")
	assert.Contains(t, parser.text, namedEntityMark)
}

func TestDiagramRender_DecodesEntities(t *testing.T) {
	registerFakeKind(t, "render-kind", "renderfixture")

	d, err := FromText(context.Background(), "renderfixture Tom #amp; Jerry", Metadata{})
	require.NoError(t, err)

	svg, err := d.Render(context.Background(), "graph-1", "1.2.3")
	require.NoError(t, err)

	assert.Contains(t, string(svg), `id="graph-1"`)
	assert.Contains(t, string(svg), `data-version="1.2.3"`)
	assert.Contains(t, string(svg), "Tom &amp; Jerry", "sentinels decode to entity references in the output")
}

func TestFromText_TitleSkippedWhenUnsupported(t *testing.T) {
	parser := &fakeParser{}
	def := &Definition{
		ID:       "plain-kind",
		DB:       struct{}{}, // no capabilities at all
		Parser:   parser,
		Renderer: fakeRenderer{},
	}
	require.NoError(t, RegisterDiagram("plain-kind", def, prefixDetector("plainfixture")))
	t.Cleanup(ResetRegistry)

	d, err := FromText(context.Background(), "plainfixture body", Metadata{Title: "Ignored"})
	require.NoError(t, err)
	assert.Equal(t, "plain-kind", d.Type())
	assert.Equal(t, "plainfixture body\n", parser.text)
}
