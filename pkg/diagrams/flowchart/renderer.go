package flowchart

import (
	"context"
	"math"
	"strings"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/svg"
)

const (
	chartMargin = 16.0
	clusterPad  = 12.0
)

// Renderer draws the parsed flowchart model as an SVG document.
type Renderer struct {
	db  *DB
	cfg *core.Config
}

// NewRenderer returns a renderer reading from db.
func NewRenderer(db *DB) *Renderer {
	return &Renderer{db: db, cfg: core.DefaultConfig()}
}

// SetConfig replaces the configuration used by the next Draw.
func (r *Renderer) SetConfig(cfg *core.Config) {
	if cfg != nil {
		r.cfg = cfg
	}
}

// Draw lays out the bound model and renders it. id becomes the root
// element id and prefixes every generated element id.
func (r *Renderer) Draw(ctx context.Context, text, id, version string, d *diagram.Diagram) ([]byte, error) {
	th := svg.Named(r.cfg.Theme)
	lay := layoutChart(r.db, r.cfg)

	title := r.db.Title()
	titleH := 0.0
	if title != "" {
		titleH = svg.LineHeight(r.cfg.FontSize+4) + 10
	}

	width := lay.width + 2*chartMargin
	if width < 64 {
		width = 64
	}
	height := lay.height + 2*chartMargin + titleH

	for _, b := range lay.boxes {
		b.x += chartMargin
		b.y += chartMargin + titleH
	}

	doc := svg.Document(id, width, height).
		Attr("class", "flowchart").
		Attr("aria-roledescription", DiagramType).
		Attr("data-version", version).
		Attr("font-family", r.cfg.FontFamily).
		AttrInt("font-size", r.cfg.FontSize)

	doc.Child("rect").
		AttrFloat("width", width).
		AttrFloat("height", height).
		Attr("fill", th.Background)

	if r.hasArrowheads() {
		doc.Child("defs").Append(svg.ArrowMarker(id+"-arrow", th.LineColor))
	}

	if title != "" {
		doc.Child("text").
			AttrFloat("x", width/2).
			AttrFloat("y", (chartMargin+titleH)/2).
			Attr("text-anchor", "middle").
			Attr("dominant-baseline", "central").
			Attr("font-weight", "bold").
			AttrInt("font-size", r.cfg.FontSize+4).
			Attr("fill", th.TextColor).
			Text(title)
	}

	r.drawClusters(doc, lay, th)
	r.drawEdges(doc, lay, th, id)
	r.drawNodes(doc, lay, th, id)

	return doc.Bytes(), nil
}

func (r *Renderer) hasArrowheads() bool {
	for _, e := range r.db.Edges() {
		if e.Style != EdgeOpen {
			return true
		}
	}
	return false
}

func (r *Renderer) drawClusters(doc *svg.Element, lay *chartLayout, th svg.Theme) {
	if len(r.db.Subgraphs()) == 0 {
		return
	}
	g := doc.Child("g").Attr("class", "clusters")
	for _, sg := range r.db.Subgraphs() {
		x0, y0, x1, y1, ok := r.clusterRect(sg, lay)
		if !ok {
			continue
		}
		titleStrip := svg.LineHeight(r.cfg.FontSize) + 4
		c := g.Child("g")
		c.Child("rect").
			AttrFloat("x", x0).
			AttrFloat("y", y0).
			AttrFloat("width", x1-x0).
			AttrFloat("height", y1-y0).
			Attr("rx", "4").
			Attr("fill", th.ClusterFill).
			Attr("stroke", th.ClusterBorder)
		c.Child("text").
			AttrFloat("x", (x0+x1)/2).
			AttrFloat("y", y0+titleStrip/2+2).
			Attr("text-anchor", "middle").
			Attr("dominant-baseline", "central").
			Attr("fill", th.TextColor).
			Text(sg.Title)
	}
}

// clusterRect returns the padded bounding box of a subgraph, growing to
// hold nested subgraph boxes as well as member nodes.
func (r *Renderer) clusterRect(sg *Subgraph, lay *chartLayout) (x0, y0, x1, y1 float64, ok bool) {
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)

	for _, id := range sg.Nodes {
		b := lay.boxes[id]
		if b == nil {
			continue
		}
		x0 = min(x0, b.x-b.w/2)
		y0 = min(y0, b.y-b.h/2)
		x1 = max(x1, b.x+b.w/2)
		y1 = max(y1, b.y+b.h/2)
		ok = true
	}
	for _, child := range r.db.Subgraphs() {
		if child.Parent != sg.ID {
			continue
		}
		cx0, cy0, cx1, cy1, cok := r.clusterRect(child, lay)
		if !cok {
			continue
		}
		x0 = min(x0, cx0)
		y0 = min(y0, cy0)
		x1 = max(x1, cx1)
		y1 = max(y1, cy1)
		ok = true
	}
	if !ok {
		return 0, 0, 0, 0, false
	}
	titleStrip := svg.LineHeight(r.cfg.FontSize) + 4
	return x0 - clusterPad, y0 - clusterPad - titleStrip, x1 + clusterPad, y1 + clusterPad, true
}

func (r *Renderer) drawEdges(doc *svg.Element, lay *chartLayout, th svg.Theme, id string) {
	edges := r.db.Edges()
	if len(edges) == 0 {
		return
	}
	horizontal := r.db.Direction() == "LR" || r.db.Direction() == "RL"
	g := doc.Child("g").Attr("class", "edges")
	for _, e := range edges {
		from, to := lay.boxes[e.From], lay.boxes[e.To]
		if from == nil || to == nil {
			continue
		}

		var d string
		var mx, my float64
		if e.From == e.To {
			d, mx, my = selfLoopPath(from)
		} else {
			x1, y1 := clipToBox(from, to.x, to.y)
			x2, y2 := clipToBox(to, from.x, from.y)
			d = edgePath(x1, y1, x2, y2, horizontal, r.cfg.Flowchart.Curve)
			mx, my = (x1+x2)/2, (y1+y2)/2
		}

		p := g.Child("path").
			Attr("d", d).
			Attr("fill", "none").
			Attr("stroke", th.LineColor).
			Attr("stroke-width", "2")
		switch e.Style {
		case EdgeDotted:
			p.Attr("stroke-dasharray", "3,3")
		case EdgeThick:
			p.Attr("stroke-width", "3.5")
		}
		if e.Style != EdgeOpen {
			p.Attr("marker-end", "url(#"+id+"-arrow)")
		}

		if e.Label != "" {
			lw := svg.TextWidth(e.Label, r.cfg.FontSize) + 8
			lh := svg.LineHeight(r.cfg.FontSize) + 4
			g.Child("rect").
				AttrFloat("x", mx-lw/2).
				AttrFloat("y", my-lh/2).
				AttrFloat("width", lw).
				AttrFloat("height", lh).
				Attr("fill", th.Background)
			g.Child("text").
				AttrFloat("x", mx).
				AttrFloat("y", my).
				Attr("text-anchor", "middle").
				Attr("dominant-baseline", "central").
				Attr("fill", th.TextColor).
				Text(e.Label)
		}
	}
}

func (r *Renderer) drawNodes(doc *svg.Element, lay *chartLayout, th svg.Theme, id string) {
	if len(r.db.Nodes()) == 0 {
		return
	}
	g := doc.Child("g").Attr("class", "nodes")
	for _, n := range r.db.Nodes() {
		b := lay.boxes[n.ID]
		ng := g.Child("g").Attr("id", id+"-node-"+n.ID)

		switch n.Shape {
		case ShapeCircle:
			ng.Child("circle").
				AttrFloat("cx", b.x).
				AttrFloat("cy", b.y).
				AttrFloat("r", b.w/2).
				Attr("fill", th.NodeFill).
				Attr("stroke", th.NodeBorder)
		case ShapeDiamond:
			points := strings.Join([]string{
				svg.Number(b.x) + "," + svg.Number(b.y-b.h/2),
				svg.Number(b.x+b.w/2) + "," + svg.Number(b.y),
				svg.Number(b.x) + "," + svg.Number(b.y+b.h/2),
				svg.Number(b.x-b.w/2) + "," + svg.Number(b.y),
			}, " ")
			ng.Child("polygon").
				Attr("points", points).
				Attr("fill", th.NodeFill).
				Attr("stroke", th.NodeBorder)
		default:
			rect := ng.Child("rect").
				AttrFloat("x", b.x-b.w/2).
				AttrFloat("y", b.y-b.h/2).
				AttrFloat("width", b.w).
				AttrFloat("height", b.h).
				Attr("fill", th.NodeFill).
				Attr("stroke", th.NodeBorder)
			switch n.Shape {
			case ShapeRound:
				rect.Attr("rx", "5")
			case ShapeStadium:
				rect.AttrFloat("rx", b.h/2)
			}
		}

		ng.Child("text").
			AttrFloat("x", b.x).
			AttrFloat("y", b.y).
			Attr("text-anchor", "middle").
			Attr("dominant-baseline", "central").
			Attr("fill", th.NodeText).
			Text(n.Label)
	}
}

// clipToBox walks from the box center toward (tx, ty) and returns the
// point where the box border is crossed.
func clipToBox(b *nodeBox, tx, ty float64) (float64, float64) {
	dx, dy := tx-b.x, ty-b.y
	if dx == 0 && dy == 0 {
		return b.x, b.y
	}
	scale := math.Inf(1)
	if dx != 0 {
		scale = (b.w / 2) / math.Abs(dx)
	}
	if dy != 0 {
		if s := (b.h / 2) / math.Abs(dy); s < scale {
			scale = s
		}
	}
	if scale > 1 {
		scale = 1
	}
	return b.x + dx*scale, b.y + dy*scale
}

// edgePath produces straight or stepped path data between two border
// points. Steps break at the halfway mark of the flow axis.
func edgePath(x1, y1, x2, y2 float64, horizontal bool, curve string) string {
	if curve == "step" {
		if horizontal {
			mx := (x1 + x2) / 2
			return "M " + svg.Number(x1) + "," + svg.Number(y1) +
				" L " + svg.Number(mx) + "," + svg.Number(y1) +
				" L " + svg.Number(mx) + "," + svg.Number(y2) +
				" L " + svg.Number(x2) + "," + svg.Number(y2)
		}
		my := (y1 + y2) / 2
		return "M " + svg.Number(x1) + "," + svg.Number(y1) +
			" L " + svg.Number(x1) + "," + svg.Number(my) +
			" L " + svg.Number(x2) + "," + svg.Number(my) +
			" L " + svg.Number(x2) + "," + svg.Number(y2)
	}
	return "M " + svg.Number(x1) + "," + svg.Number(y1) +
		" L " + svg.Number(x2) + "," + svg.Number(y2)
}

// selfLoopPath bulges out of the node's right side and back in.
func selfLoopPath(b *nodeBox) (d string, mx, my float64) {
	x := b.x + b.w/2
	d = "M " + svg.Number(x) + "," + svg.Number(b.y-8) +
		" C " + svg.Number(x+40) + "," + svg.Number(b.y-20) +
		" " + svg.Number(x+40) + "," + svg.Number(b.y+20) +
		" " + svg.Number(x) + "," + svg.Number(b.y+8)
	return d, x + 30, b.y
}
