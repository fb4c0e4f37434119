package flowchart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/diagrams/flowchart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *flowchart.DB {
	t.Helper()
	db := flowchart.NewDB()
	p := flowchart.NewParser(db)
	require.NoError(t, p.Parse(context.Background(), src))
	return db
}

func TestParseBasicChart(t *testing.T) {
	db := parse(t, `flowchart TD
  A[Start] --> B{Decide}
  B -->|yes| C(Go)
  B -->|no| D([Stop])
`)

	assert.Equal(t, "TB", db.Direction(), "TD normalizes to TB")

	require.Len(t, db.Nodes(), 4)
	assert.Equal(t, "Start", db.Node("A").Label)
	assert.Equal(t, flowchart.ShapeRect, db.Node("A").Shape)
	assert.Equal(t, flowchart.ShapeDiamond, db.Node("B").Shape)
	assert.Equal(t, flowchart.ShapeRound, db.Node("C").Shape)
	assert.Equal(t, flowchart.ShapeStadium, db.Node("D").Shape)

	require.Len(t, db.Edges(), 3)
	assert.Equal(t, "yes", db.Edges()[1].Label)
	assert.Equal(t, "no", db.Edges()[2].Label)
	assert.Equal(t, "B", db.Edges()[1].From)
	assert.Equal(t, "C", db.Edges()[1].To)
}

func TestParseHeaderVariants(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantDir string
	}{
		{"graph keyword", "graph LR\na --> b", "LR"},
		{"no direction", "flowchart\na --> b", "TB"},
		{"bottom up", "flowchart BT\na --> b", "BT"},
		{"right left", "flowchart RL\na --> b", "RL"},
		{"semicolon separators", "flowchart LR;a --> b;b --> c", "LR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := parse(t, tt.src)
			assert.Equal(t, tt.wantDir, db.Direction())
		})
	}
}

func TestParseEdgeStyles(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want flowchart.EdgeStyle
	}{
		{"arrow", "flowchart TD\na --> b", flowchart.EdgeArrow},
		{"open", "flowchart TD\na --- b", flowchart.EdgeOpen},
		{"dotted", "flowchart TD\na -.-> b", flowchart.EdgeDotted},
		{"thick", "flowchart TD\na ==> b", flowchart.EdgeThick},
		{"long arrow", "flowchart TD\na ---> b", flowchart.EdgeArrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := parse(t, tt.src)
			require.Len(t, db.Edges(), 1)
			assert.Equal(t, tt.want, db.Edges()[0].Style)
			assert.Empty(t, db.Edges()[0].Label)
		})
	}
}

func TestParseEdgeTextForms(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantStyle flowchart.EdgeStyle
		wantLabel string
	}{
		{"dashed text", "flowchart TD\na -- label text --> b", flowchart.EdgeArrow, "label text"},
		{"thick text", "flowchart TD\na == fat pipe ==> b", flowchart.EdgeThick, "fat pipe"},
		{"dotted text", "flowchart TD\na -. maybe .-> b", flowchart.EdgeDotted, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := parse(t, tt.src)
			require.Len(t, db.Edges(), 1)
			assert.Equal(t, tt.wantStyle, db.Edges()[0].Style)
			assert.Equal(t, tt.wantLabel, db.Edges()[0].Label)
		})
	}
}

func TestParseChainedEdges(t *testing.T) {
	db := parse(t, "flowchart LR\na --> b --> c --> d")

	require.Len(t, db.Edges(), 3)
	assert.Equal(t, "a", db.Edges()[0].From)
	assert.Equal(t, "b", db.Edges()[0].To)
	assert.Equal(t, "b", db.Edges()[1].From)
	assert.Equal(t, "c", db.Edges()[1].To)
	assert.Equal(t, "c", db.Edges()[2].From)
	assert.Equal(t, "d", db.Edges()[2].To)
}

func TestParseLaterMentionRelabelsNode(t *testing.T) {
	db := parse(t, `flowchart TD
  a --> b
  b{Is it?}
`)

	require.Len(t, db.Nodes(), 2)
	assert.Equal(t, "Is it?", db.Node("b").Label)
	assert.Equal(t, flowchart.ShapeDiamond, db.Node("b").Shape)
}

func TestParseQuotedLabelUnquoted(t *testing.T) {
	db := parse(t, `flowchart TD
  a["hello <world>"] --> b
`)
	assert.Equal(t, "hello <world>", db.Node("a").Label)
}

func TestParseSubgraph(t *testing.T) {
	db := parse(t, `flowchart TB
  subgraph one
    a1 --> a2
  end
  subgraph two [Second Group]
    b1 --> b2
  end
  a2 --> b1
`)

	require.Len(t, db.Subgraphs(), 2)
	assert.Equal(t, "one", db.Subgraphs()[0].ID)
	assert.Equal(t, "one", db.Subgraphs()[0].Title)
	assert.Equal(t, []string{"a1", "a2"}, db.Subgraphs()[0].Nodes)
	assert.Equal(t, "Second Group", db.Subgraphs()[1].Title)
	assert.Empty(t, db.Subgraphs()[0].Parent)
}

func TestParseNestedSubgraphs(t *testing.T) {
	db := parse(t, `flowchart TB
  subgraph outer
    a
    subgraph inner
      direction LR
      b --> c
    end
  end
`)

	require.Len(t, db.Subgraphs(), 2)
	assert.Equal(t, "outer", db.Subgraphs()[1].Parent)
	assert.Equal(t, []string{"a"}, db.Subgraphs()[0].Nodes)
	assert.Equal(t, []string{"b", "c"}, db.Subgraphs()[1].Nodes)
}

func TestParseMultiWordSubgraphName(t *testing.T) {
	db := parse(t, "flowchart TB\nsubgraph the left half\n x\nend")

	require.Len(t, db.Subgraphs(), 1)
	assert.Equal(t, "the left half", db.Subgraphs()[0].Title)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"missing header", "a --> b", "expected flowchart or graph header"},
		{"unknown direction", "flowchart XX\na --> b", `unknown direction "XX"`},
		{"reserved node id", "flowchart TD\na --> end", "reserved word"},
		{"unclosed subgraph", "flowchart TD\nsubgraph s\na --> b", `missing its "end"`},
		{"dangling edge", "flowchart TD\na -->", "expected a node id"},
		{"single dash", "flowchart TD\na - b", `invalid edge "-"`},
		{"unterminated edge text", "flowchart TD\na -- text b", "missing its closing stroke"},
		{"mismatched edge close", "flowchart TD\na -- text ==> b", "mismatched"},
		{"top level direction", "flowchart TD\ndirection LR", "only valid inside a subgraph"},
		{"stray end", "flowchart TD\nend", `"end" without an open subgraph`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := flowchart.NewParser(flowchart.NewDB())
			err := p.Parse(context.Background(), tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var perr *diagram.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "flowchart", perr.Type)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	p := flowchart.NewParser(flowchart.NewDB())
	err := p.Parse(context.Background(), "flowchart TD\n  a --> end\n")

	var perr *diagram.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 9, perr.Column)
}

func TestParseClearBetweenRuns(t *testing.T) {
	db := flowchart.NewDB()
	p := flowchart.NewParser(db)

	require.NoError(t, p.Parse(context.Background(), "flowchart TD\na --> b"))
	db.Clear()
	require.NoError(t, p.Parse(context.Background(), "flowchart LR\nx --> y"))

	require.Len(t, db.Nodes(), 2)
	assert.Nil(t, db.Node("a"))
	assert.Equal(t, "LR", db.Direction())
}

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"flowchart TD\na --> b", true},
		{"graph LR\na --> b", true},
		{"  flowchart LR", true},
		{"flowcharts are fun", false},
		{"sequenceDiagram\nA->>B: hi", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, flowchart.Detect(tt.text, nil), "text %q", tt.text)
	}
}
