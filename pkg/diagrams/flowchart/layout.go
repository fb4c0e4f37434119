package flowchart

import (
	"math"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/svg"
)

// nodeBox is a measured, positioned node. x and y are the box center.
type nodeBox struct {
	node *Node
	x, y float64
	w, h float64
}

// chartLayout holds node positions and the overall canvas extent.
type chartLayout struct {
	boxes  map[string]*nodeBox
	ranks  [][]*nodeBox
	width  float64
	height float64
}

// layoutChart places every node on a rank grid. Ranks are longest-path
// depths from the root nodes, rows keep source order, and the whole
// grid is transposed or mirrored to match the chart direction. Edges
// that point back to an earlier rank are left alone; they simply draw
// against the flow.
func layoutChart(db *DB, cfg *core.Config) *chartLayout {
	lay := &chartLayout{boxes: map[string]*nodeBox{}}
	nodes := db.Nodes()
	if len(nodes) == 0 {
		return lay
	}

	for _, n := range nodes {
		lay.boxes[n.ID] = measureNode(n, cfg)
	}

	rank := assignRanks(db)
	maxRank := 0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}
	lay.ranks = make([][]*nodeBox, maxRank+1)
	for _, n := range nodes {
		r := rank[n.ID]
		lay.ranks[r] = append(lay.ranks[r], lay.boxes[n.ID])
	}

	lay.place(db.Direction(), cfg)
	return lay
}

func measureNode(n *Node, cfg *core.Config) *nodeBox {
	pad := float64(cfg.Flowchart.Padding)
	w := svg.TextWidth(n.Label, cfg.FontSize) + 2*pad
	h := svg.LineHeight(cfg.FontSize) + 2*pad

	switch n.Shape {
	case ShapeCircle:
		d := math.Max(w, h)
		w, h = d, d
	case ShapeDiamond:
		// Diamond sides cut into the label, so give it extra room.
		w *= 1.5
		h *= 1.8
	case ShapeStadium:
		w += h / 2
	}
	if w < 48 {
		w = 48
	}
	return &nodeBox{node: n, w: w, h: h}
}

// assignRanks computes longest-path ranks with Kahn's algorithm. Nodes
// trapped in cycles never drain; they are ranked afterwards, in source
// order, one past their deepest already-ranked predecessor.
func assignRanks(db *DB) map[string]int {
	succs := map[string][]string{}
	preds := map[string][]string{}
	indeg := map[string]int{}
	for _, e := range db.Edges() {
		if e.From == e.To {
			continue
		}
		succs[e.From] = append(succs[e.From], e.To)
		preds[e.To] = append(preds[e.To], e.From)
		indeg[e.To]++
	}

	rank := map[string]int{}
	ranked := map[string]bool{}
	var queue []string
	for _, n := range db.Nodes() {
		if indeg[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ranked[id] = true
		for _, s := range succs[id] {
			if rank[s] < rank[id]+1 {
				rank[s] = rank[id] + 1
			}
			indeg[s]--
			if indeg[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	for _, n := range db.Nodes() {
		if ranked[n.ID] {
			continue
		}
		r := 0
		for _, p := range preds[n.ID] {
			if ranked[p] && rank[p]+1 > r {
				r = rank[p] + 1
			}
		}
		rank[n.ID] = r
		ranked[n.ID] = true
	}
	return rank
}

// place assigns coordinates. The grid is computed along a main axis
// (rank progression) and a cross axis (order within a rank); for LR and
// RL charts the axes swap, for BT and RL the main axis mirrors.
func (l *chartLayout) place(dir string, cfg *core.Config) {
	horizontal := dir == "LR" || dir == "RL"
	nodeGap := float64(cfg.Flowchart.NodeSpacing)
	rankGap := float64(cfg.Flowchart.RankSpacing)

	mainExtent := func(b *nodeBox) float64 {
		if horizontal {
			return b.w
		}
		return b.h
	}
	crossExtent := func(b *nodeBox) float64 {
		if horizontal {
			return b.h
		}
		return b.w
	}

	crossLens := make([]float64, len(l.ranks))
	maxCross := 0.0
	for i, row := range l.ranks {
		for j, b := range row {
			if j > 0 {
				crossLens[i] += nodeGap
			}
			crossLens[i] += crossExtent(b)
		}
		if crossLens[i] > maxCross {
			maxCross = crossLens[i]
		}
	}

	main := 0.0
	for i, row := range l.ranks {
		thickness := 0.0
		for _, b := range row {
			if t := mainExtent(b); t > thickness {
				thickness = t
			}
		}
		cross := (maxCross - crossLens[i]) / 2
		for _, b := range row {
			mainMid := main + thickness/2
			crossMid := cross + crossExtent(b)/2
			if horizontal {
				b.x, b.y = mainMid, crossMid
			} else {
				b.x, b.y = crossMid, mainMid
			}
			cross += crossExtent(b) + nodeGap
		}
		main += thickness
		if i < len(l.ranks)-1 {
			main += rankGap
		}
	}

	if horizontal {
		l.width, l.height = main, maxCross
	} else {
		l.width, l.height = maxCross, main
	}

	switch dir {
	case "BT":
		for _, b := range l.boxes {
			b.y = l.height - b.y
		}
	case "RL":
		for _, b := range l.boxes {
			b.x = l.width - b.x
		}
	}
}
