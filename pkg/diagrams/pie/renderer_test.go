package pie_test

import (
	"context"
	"strings"
	"testing"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagrams/pie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string, cfg *core.Config) string {
	t.Helper()
	db := pie.NewDB()
	require.NoError(t, pie.NewParser(db).Parse(context.Background(), src))
	r := pie.NewRenderer(db)
	if cfg != nil {
		r.SetConfig(cfg)
	}
	out, err := r.Draw(context.Background(), src, "pie1", "1.2.3", nil)
	require.NoError(t, err)
	return string(out)
}

func TestDrawBasicChart(t *testing.T) {
	out := render(t, "pie\ntitle Pets\n\"Dogs\" : 3\n\"Cats\" : 1", nil)

	assert.Contains(t, out, `id="pie1"`)
	assert.Contains(t, out, `data-version="1.2.3"`)
	assert.Contains(t, out, `aria-roledescription="pie"`)
	assert.Contains(t, out, ">Pets</text>")
	assert.Contains(t, out, ">75%</text>")
	assert.Contains(t, out, ">25%</text>")
	assert.Contains(t, out, ">Dogs</text>")
	assert.Equal(t, 2, strings.Count(out, "<path"))
}

func TestDrawSingleSliceIsCircle(t *testing.T) {
	out := render(t, "pie\n\"All\" : 5", nil)

	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, ">100%</text>")
	assert.NotContains(t, out, "<path")
}

func TestDrawZeroSliceSkipped(t *testing.T) {
	out := render(t, "pie\n\"a\" : 0\n\"b\" : 2", nil)

	// b covers the whole pie; a still appears in the legend.
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, ">a</text>")
	assert.NotContains(t, out, ">0%</text>")
}

func TestDrawAllZeroTotal(t *testing.T) {
	out := render(t, "pie\n\"a\" : 0", nil)

	assert.NotContains(t, out, `class="slices"`)
	assert.Contains(t, out, ">a</text>")
}

func TestDrawShowDataLegend(t *testing.T) {
	out := render(t, "pie showData\n\"Dogs\" : 42.5\n\"Cats\" : 7", nil)

	assert.Contains(t, out, ">Dogs [42.5]</text>")
	assert.Contains(t, out, ">Cats [7]</text>")
}

func TestDrawLabelRadiusFollowsConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Pie.TextPosition = 0.5

	out := render(t, "pie\n\"a\" : 1\n\"b\" : 1", cfg)

	// The first slice's mid-angle sits at three o'clock, so half the
	// radius from center puts its label at x = 225 + 85.
	assert.Contains(t, out, `x="310"`)
}

func TestDrawDarkTheme(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Theme = "dark"

	out := render(t, "pie\n\"a\" : 1", cfg)

	assert.Contains(t, out, `fill="#2b2b33"`)
	assert.Contains(t, out, `fill="#5b6bc0"`)
}

func TestDrawEscapesLabels(t *testing.T) {
	out := render(t, "pie\n\"Fish & Chips\" : 1", nil)
	assert.Contains(t, out, ">Fish &amp; Chips</text>")
}
