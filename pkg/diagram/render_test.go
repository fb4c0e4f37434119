package diagram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrawl-labs/scrawl/pkg/core"
)

func TestRender_FullPipeline(t *testing.T) {
	t.Cleanup(ResetAll)
	t.Cleanup(ResetRegistry)
	ResetAll()

	var initTheme string
	db := &fakeDB{}
	parser := &fakeParser{events: &db.events}
	def := &Definition{
		ID:       "pipe-kind",
		DB:       db,
		Parser:   parser,
		Renderer: fakeRenderer{},
		Init: func(cfg *core.Config) {
			initTheme = cfg.Theme
		},
	}
	require.NoError(t, RegisterDiagram("pipe-kind", def, prefixDetector("pipefixture")))

	text := "---\ntitle: Pipeline\n---\n%%{init: {'theme': 'dark'}}%%\npipefixture body"
	res, err := Render(context.Background(), "graph-7", text)
	require.NoError(t, err)

	assert.Equal(t, "pipe-kind", res.Type)
	assert.Equal(t, "Pipeline", res.Title)
	assert.Contains(t, string(res.SVG), `id="graph-7"`)
	assert.Contains(t, string(res.SVG), Version)
	assert.Equal(t, "dark", initTheme, "directive config reaches the implementation's init")
	assert.Equal(t, "Pipeline", db.title, "front matter title lands on the model")
	assert.Equal(t, "pipefixture body\n", parser.text)
}

func TestRender_SizeGuard(t *testing.T) {
	t.Cleanup(ResetAll)

	Initialize(map[string]any{"maxTextSize": 10})

	_, err := Render(context.Background(), "g", "pipefixture with far too much text")
	require.Error(t, err)

	var sizeErr *TextSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 10, sizeErr.Limit)
	assert.Greater(t, sizeErr.Size, sizeErr.Limit)
}

func TestRender_MalformedFrontmatter(t *testing.T) {
	t.Cleanup(ResetAll)
	ResetAll()

	_, err := Render(context.Background(), "g", "---\ntitle: [broken\n---\nflowchart TD")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*FrontmatterError))
}

func TestRender_UnknownType(t *testing.T) {
	t.Cleanup(ResetAll)
	ResetAll()

	_, err := Render(context.Background(), "g", "no kind will ever claim this text")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*UnknownDiagramError))
}
