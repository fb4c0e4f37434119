package sequence

import (
	"context"
	"strconv"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/svg"
)

// Renderer draws the parsed sequence model as an SVG document.
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

// openFrame tracks a loop/alt/opt rect between its start and end items.
type openFrame struct {
	kind   BlockKind
	label  string
	x0, x1 float64
	y0     float64
}

// Draw walks the event list top to bottom, advancing a y cursor per
// item, then frames, mirrors and sizes the document around the result.
func (r *Renderer) Draw(ctx context.Context, text, id, version string, d *diagram.Diagram) ([]byte, error) {
	sc := r.cfg.Sequence
	th := svg.Named(r.cfg.Theme)
	actors := r.db.Actors()

	title := r.db.Title()
	titleH := 0.0
	if title != "" {
		titleH = svg.LineHeight(r.cfg.FontSize+4) + 10
	}

	actorW := float64(sc.Width)
	actorH := float64(sc.Height)
	marginX := float64(sc.DiagramMarginX)
	marginY := float64(sc.DiagramMarginY)

	width := 2*marginX + float64(len(actors))*actorW + float64(len(actors)-1)*float64(sc.ActorMargin)
	if len(actors) == 0 {
		width = 2 * marginX
	}

	doc := svg.Document(id, width, 0).
		Attr("class", "sequence").
		Attr("aria-roledescription", DiagramType).
		Attr("data-version", version).
		Attr("font-family", r.cfg.FontFamily).
		AttrInt("font-size", r.cfg.FontSize)
	background := doc.Child("rect").
		AttrFloat("width", width).
		Attr("fill", th.Background)

	if title != "" {
		doc.Child("text").
			AttrFloat("x", width/2).
			AttrFloat("y", marginY+titleH/2).
			Attr("text-anchor", "middle").
			Attr("dominant-baseline", "central").
			Attr("font-weight", "bold").
			AttrInt("font-size", r.cfg.FontSize+4).
			Attr("fill", th.TextColor).
			Text(title)
	}

	if len(actors) == 0 {
		height := 2*marginY + titleH
		doc.AttrFloat("height", height).Attr("viewBox", "0 0 "+svg.Number(width)+" "+svg.Number(height))
		background.AttrFloat("height", height)
		return doc.Bytes(), nil
	}

	if r.needsMarkers() {
		doc.Child("defs").Append(
			svg.ArrowMarker(id+"-arrow", th.LineColor),
			svg.CrossMarker(id+"-cross", th.LineColor),
		)
	}

	actorX := make(map[string]float64, len(actors))
	for i, a := range actors {
		actorX[a.ID] = marginX + float64(i)*(actorW+float64(sc.ActorMargin)) + actorW/2
	}

	boxTop := marginY + titleH
	lifelines := doc.Child("g").Attr("class", "lifelines")
	activations := doc.Child("g").Attr("class", "activations")
	actorsG := doc.Child("g").Attr("class", "actors")
	items := doc.Child("g").Attr("class", "items")
	frames := doc.Child("g").Attr("class", "frames")

	for _, a := range actors {
		r.drawActor(actorsG, a, actorX[a.ID], boxTop, th)
	}

	y := boxTop + actorH
	numbering := r.db.Autonumber() || sc.ShowSequenceNumbers
	msgNum := 0
	var open []*openFrame
	active := map[string][]float64{}

	for _, it := range r.db.Items() {
		switch it.Kind {
		case ItemMessage:
			msgNum++
			label := it.Msg.Text
			if numbering {
				label = strconv.Itoa(msgNum) + ": " + label
			}
			y = r.drawMessage(items, it.Msg, label, actorX, y, th, id)

		case ItemNote:
			y = r.drawNote(items, it.Note, actorX, y, th)

		case ItemBlockStart:
			depth := float64(len(open))
			f := &openFrame{
				kind:  it.Block,
				label: it.Label,
				x0:    marginX/2 + depth*float64(sc.BoxMargin),
				x1:    width - marginX/2 - depth*float64(sc.BoxMargin),
				y0:    y + 10,
			}
			open = append(open, f)
			y += 35

		case ItemBlockElse:
			if len(open) > 0 {
				f := open[len(open)-1]
				y += 10
				items.Child("line").
					AttrFloat("x1", f.x0).
					AttrFloat("y1", y).
					AttrFloat("x2", f.x1).
					AttrFloat("y2", y).
					Attr("stroke", th.LineColor).
					Attr("stroke-dasharray", "3,3")
				if it.Label != "" {
					items.Child("text").
						AttrFloat("x", (f.x0+f.x1)/2).
						AttrFloat("y", y+14).
						Attr("text-anchor", "middle").
						Attr("font-style", "italic").
						Attr("fill", th.TextColor).
						Text("[" + it.Label + "]")
				}
				y += 25
			}

		case ItemBlockEnd:
			if len(open) > 0 {
				f := open[len(open)-1]
				open = open[:len(open)-1]
				y += float64(sc.BoxMargin)
				r.drawFrame(frames, f, y, th)
			}

		case ItemActivate:
			active[it.Actor] = append(active[it.Actor], y)

		case ItemDeactivate:
			if starts := active[it.Actor]; len(starts) > 0 {
				start := starts[len(starts)-1]
				active[it.Actor] = starts[:len(starts)-1]
				r.drawActivation(activations, actorX[it.Actor], start, y, th)
			}
		}
	}

	bottom := y + float64(sc.MessageMargin)
	for actor, starts := range active {
		for _, start := range starts {
			r.drawActivation(activations, actorX[actor], start, bottom, th)
		}
	}

	for _, a := range actors {
		x := actorX[a.ID]
		lifelines.Child("line").
			AttrFloat("x1", x).
			AttrFloat("y1", boxTop+actorH).
			AttrFloat("x2", x).
			AttrFloat("y2", bottom).
			Attr("stroke", th.LineColor)
	}

	height := bottom + marginY
	if sc.MirrorActors {
		for _, a := range actors {
			r.drawActor(actorsG, a, actorX[a.ID], bottom, th)
		}
		height = bottom + actorH + marginY
	}

	doc.AttrFloat("height", height).Attr("viewBox", "0 0 "+svg.Number(width)+" "+svg.Number(height))
	background.AttrFloat("height", height)
	return doc.Bytes(), nil
}

func (r *Renderer) needsMarkers() bool {
	for _, it := range r.db.Items() {
		if it.Kind == ItemMessage && it.Msg.End != EndNone {
			return true
		}
	}
	return false
}

func (r *Renderer) drawActor(g *svg.Element, a *Actor, x, top float64, th svg.Theme) {
	sc := r.cfg.Sequence
	w := float64(sc.Width)
	h := float64(sc.Height)

	if a.Kind == KindActor {
		// Stick figure with the label at its feet.
		g.Child("circle").
			AttrFloat("cx", x).
			AttrFloat("cy", top+12).
			Attr("r", "7").
			Attr("fill", th.ActorFill).
			Attr("stroke", th.ActorBorder)
		body := "M " + svg.Number(x) + "," + svg.Number(top+19) + " L " + svg.Number(x) + "," + svg.Number(top+38) +
			" M " + svg.Number(x-12) + "," + svg.Number(top+26) + " L " + svg.Number(x+12) + "," + svg.Number(top+26) +
			" M " + svg.Number(x) + "," + svg.Number(top+38) + " L " + svg.Number(x-10) + "," + svg.Number(top+50) +
			" M " + svg.Number(x) + "," + svg.Number(top+38) + " L " + svg.Number(x+10) + "," + svg.Number(top+50)
		g.Child("path").
			Attr("d", body).
			Attr("fill", "none").
			Attr("stroke", th.ActorBorder)
		g.Child("text").
			AttrFloat("x", x).
			AttrFloat("y", top+h-4).
			Attr("text-anchor", "middle").
			Attr("fill", th.TextColor).
			Text(a.Label)
		return
	}

	g.Child("rect").
		AttrFloat("x", x-w/2).
		AttrFloat("y", top).
		AttrFloat("width", w).
		AttrFloat("height", h).
		Attr("rx", "3").
		Attr("fill", th.ActorFill).
		Attr("stroke", th.ActorBorder)
	g.Child("text").
		AttrFloat("x", x).
		AttrFloat("y", top+h/2).
		Attr("text-anchor", "middle").
		Attr("dominant-baseline", "central").
		Attr("fill", th.NodeText).
		Text(a.Label)
}

func (r *Renderer) drawMessage(g *svg.Element, m *Message, label string, actorX map[string]float64, y float64, th svg.Theme, id string) float64 {
	sc := r.cfg.Sequence
	x1, x2 := actorX[m.From], actorX[m.To]
	y += float64(sc.MessageMargin)

	if m.From == m.To {
		// Self message loops out of the lifeline and back.
		d := "M " + svg.Number(x1) + "," + svg.Number(y) +
			" C " + svg.Number(x1+60) + "," + svg.Number(y-5) +
			" " + svg.Number(x1+60) + "," + svg.Number(y+25) +
			" " + svg.Number(x1) + "," + svg.Number(y+20)
		p := g.Child("path").
			Attr("d", d).
			Attr("fill", "none").
			Attr("stroke", th.LineColor)
		r.finishLine(p, m, id)
		g.Child("text").
			AttrFloat("x", x1+50).
			AttrFloat("y", y+10).
			Attr("dominant-baseline", "central").
			Attr("fill", th.TextColor).
			Text(label)
		return y + 20
	}

	if label != "" {
		g.Child("text").
			AttrFloat("x", (x1+x2)/2).
			AttrFloat("y", y-6).
			Attr("text-anchor", "middle").
			Attr("fill", th.TextColor).
			Text(label)
	}
	line := g.Child("line").
		AttrFloat("x1", x1).
		AttrFloat("y1", y).
		AttrFloat("x2", x2).
		AttrFloat("y2", y).
		Attr("stroke", th.LineColor)
	r.finishLine(line, m, id)
	return y
}

// finishLine applies the stroke style and end marker of a message.
func (r *Renderer) finishLine(el *svg.Element, m *Message, id string) {
	if m.Line == LineDashed {
		el.Attr("stroke-dasharray", "3,3")
	}
	switch m.End {
	case EndArrow:
		el.Attr("marker-end", "url(#"+id+"-arrow)")
	case EndCross:
		el.Attr("marker-end", "url(#"+id+"-cross)")
	}
}

func (r *Renderer) drawNote(g *svg.Element, n *Note, actorX map[string]float64, y float64, th svg.Theme) float64 {
	sc := r.cfg.Sequence
	noteH := svg.LineHeight(r.cfg.FontSize) + 8
	w := svg.TextWidth(n.Text, r.cfg.FontSize) + 16

	var x0 float64
	switch n.Placement {
	case NoteLeftOf:
		x0 = actorX[n.Actors[0]] - 10 - w
	case NoteRightOf:
		x0 = actorX[n.Actors[0]] + 10
	default: // over
		if len(n.Actors) == 2 {
			a, b := actorX[n.Actors[0]], actorX[n.Actors[1]]
			if a > b {
				a, b = b, a
			}
			x0, w = a-25, b-a+50
		} else {
			x0 = actorX[n.Actors[0]] - w/2
		}
	}

	y += float64(sc.NoteMargin)
	g.Child("rect").
		AttrFloat("x", x0).
		AttrFloat("y", y).
		AttrFloat("width", w).
		AttrFloat("height", noteH).
		Attr("fill", th.NoteFill).
		Attr("stroke", th.NoteBorder)
	g.Child("text").
		AttrFloat("x", x0+w/2).
		AttrFloat("y", y+noteH/2).
		Attr("text-anchor", "middle").
		Attr("dominant-baseline", "central").
		Attr("fill", th.TextColor).
		Text(n.Text)
	return y + noteH
}

func (r *Renderer) drawFrame(g *svg.Element, f *openFrame, y1 float64, th svg.Theme) {
	fg := g.Child("g")
	fg.Child("rect").
		AttrFloat("x", f.x0).
		AttrFloat("y", f.y0).
		AttrFloat("width", f.x1-f.x0).
		AttrFloat("height", y1-f.y0).
		Attr("fill", "none").
		Attr("stroke", th.LineColor)
	fg.Child("rect").
		AttrFloat("x", f.x0).
		AttrFloat("y", f.y0).
		Attr("width", "48").
		Attr("height", "20").
		Attr("fill", th.ClusterFill).
		Attr("stroke", th.LineColor)
	fg.Child("text").
		AttrFloat("x", f.x0+24).
		AttrFloat("y", f.y0+10).
		Attr("text-anchor", "middle").
		Attr("dominant-baseline", "central").
		Attr("fill", th.TextColor).
		Text(string(f.kind))
	if f.label != "" {
		fg.Child("text").
			AttrFloat("x", f.x0+56).
			AttrFloat("y", f.y0+10).
			Attr("dominant-baseline", "central").
			Attr("font-style", "italic").
			Attr("fill", th.TextColor).
			Text("[" + f.label + "]")
	}
}

func (r *Renderer) drawActivation(g *svg.Element, x, y0, y1 float64, th svg.Theme) {
	g.Child("rect").
		AttrFloat("x", x-5).
		AttrFloat("y", y0).
		Attr("width", "10").
		AttrFloat("height", y1-y0).
		Attr("fill", th.ActorFill).
		Attr("stroke", th.ActorBorder)
}
