package flowchart

import (
	"context"
	"testing"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseInto(t *testing.T, src string) *DB {
	t.Helper()
	db := NewDB()
	require.NoError(t, NewParser(db).Parse(context.Background(), src))
	return db
}

func TestAssignRanksChain(t *testing.T) {
	db := parseInto(t, "flowchart TD\na --> b --> c")

	rank := assignRanks(db)
	assert.Equal(t, 0, rank["a"])
	assert.Equal(t, 1, rank["b"])
	assert.Equal(t, 2, rank["c"])
}

func TestAssignRanksLongestPathWins(t *testing.T) {
	// d is reachable in one hop from a but sits below the longer
	// a -> b -> c path, so it must land on rank 3.
	db := parseInto(t, `flowchart TD
a --> b --> c --> d
a --> d
`)

	rank := assignRanks(db)
	assert.Equal(t, 3, rank["d"])
}

func TestAssignRanksCycleTerminates(t *testing.T) {
	db := parseInto(t, "flowchart TD\na --> b --> c --> a")

	rank := assignRanks(db)
	require.Len(t, rank, 3)
	for id, r := range rank {
		assert.GreaterOrEqual(t, r, 0, "node %s", id)
	}
}

func TestLayoutTopBottomStacksRanks(t *testing.T) {
	db := parseInto(t, "flowchart TD\na --> b")
	lay := layoutChart(db, core.DefaultConfig())

	a, b := lay.boxes["a"], lay.boxes["b"]
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Greater(t, b.y, a.y)
	assert.Equal(t, a.x, b.x, "single chain stays centered")
}

func TestLayoutLeftRightAdvancesX(t *testing.T) {
	db := parseInto(t, "flowchart LR\na --> b")
	lay := layoutChart(db, core.DefaultConfig())

	assert.Greater(t, lay.boxes["b"].x, lay.boxes["a"].x)
	assert.Equal(t, lay.boxes["a"].y, lay.boxes["b"].y)
}

func TestLayoutBottomTopMirrors(t *testing.T) {
	db := parseInto(t, "flowchart BT\na --> b")
	lay := layoutChart(db, core.DefaultConfig())

	assert.Less(t, lay.boxes["b"].y, lay.boxes["a"].y, "successor rises above its source")
}

func TestLayoutSiblingsShareRank(t *testing.T) {
	db := parseInto(t, "flowchart TD\na --> b\na --> c")
	lay := layoutChart(db, core.DefaultConfig())

	b, c := lay.boxes["b"], lay.boxes["c"]
	assert.Equal(t, b.y, c.y)
	assert.Greater(t, c.x, b.x, "rank keeps source order")
}

func TestMeasureNodeMinWidth(t *testing.T) {
	cfg := core.DefaultConfig()
	b := measureNode(&Node{ID: "i", Label: "i", Shape: ShapeRect}, cfg)
	assert.Equal(t, 48.0, b.w)
}

func TestMeasureNodeCircleIsSquare(t *testing.T) {
	cfg := core.DefaultConfig()
	b := measureNode(&Node{ID: "c", Label: "hello", Shape: ShapeCircle}, cfg)
	assert.Equal(t, b.w, b.h)
}
