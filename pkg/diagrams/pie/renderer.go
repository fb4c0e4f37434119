package pie

import (
	"context"
	"math"
	"strconv"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/svg"
)

const (
	chartSide = 450.0
	radius    = 170.0

	legendSquare = 12.0
	legendStep   = 18.0
)

// Renderer draws the parsed pie model as an SVG document.
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

// Draw renders the chart: wedges clockwise from twelve o'clock in source
// order, a percentage label inside each wedge and a legend on the right.
func (r *Renderer) Draw(ctx context.Context, text, id, version string, d *diagram.Diagram) ([]byte, error) {
	th := svg.Named(r.cfg.Theme)
	slices := r.db.Slices()

	cx, cy := chartSide/2, chartSide/2
	width := chartSide + r.legendWidth()
	height := chartSide

	doc := svg.Document(id, width, height).
		Attr("class", "pie").
		Attr("aria-roledescription", DiagramType).
		Attr("data-version", version).
		Attr("font-family", r.cfg.FontFamily).
		AttrInt("font-size", r.cfg.FontSize)
	doc.Child("rect").
		AttrFloat("width", width).
		AttrFloat("height", height).
		Attr("fill", th.Background)

	if title := r.db.Title(); title != "" {
		doc.Child("text").
			AttrFloat("x", cx).
			AttrFloat("y", 25).
			Attr("text-anchor", "middle").
			Attr("font-weight", "bold").
			AttrInt("font-size", r.cfg.FontSize+4).
			Attr("fill", th.TextColor).
			Text(title)
	}

	if total := r.db.Total(); total > 0 {
		r.drawSlices(doc, th, slices, total, cx, cy)
	}
	r.drawLegend(doc, th, slices, cy)

	return doc.Bytes(), nil
}

// drawSlices walks the slices accumulating angles. Zero-valued slices
// take no arc and get no label, but keep their palette slot so legend
// colors still line up.
func (r *Renderer) drawSlices(doc *svg.Element, th svg.Theme, slices []Slice, total, cx, cy float64) {
	g := doc.Child("g").Attr("class", "slices")

	angle := -math.Pi / 2
	for i, s := range slices {
		if s.Value == 0 {
			continue
		}
		frac := s.Value / total
		sweep := frac * 2 * math.Pi
		mid := angle + sweep/2

		if frac == 1 {
			// An arc from a point back to itself collapses, so the only
			// non-empty slice draws as a full circle.
			g.Child("circle").
				AttrFloat("cx", cx).
				AttrFloat("cy", cy).
				AttrFloat("r", radius).
				Attr("fill", th.Accent(i)).
				Attr("stroke", th.Background).
				Attr("stroke-width", "2")
		} else {
			x0, y0 := cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)
			x1, y1 := cx+radius*math.Cos(angle+sweep), cy+radius*math.Sin(angle+sweep)
			large := "0"
			if frac > 0.5 {
				large = "1"
			}
			d := "M" + svg.Number(cx) + "," + svg.Number(cy) +
				" L" + svg.Number(x0) + "," + svg.Number(y0) +
				" A" + svg.Number(radius) + "," + svg.Number(radius) + " 0 " + large + " 1 " +
				svg.Number(x1) + "," + svg.Number(y1) + " Z"
			g.Child("path").
				Attr("d", d).
				Attr("fill", th.Accent(i)).
				Attr("stroke", th.Background).
				Attr("stroke-width", "2")
		}

		lr := r.cfg.Pie.TextPosition * radius
		g.Child("text").
			AttrFloat("x", cx+lr*math.Cos(mid)).
			AttrFloat("y", cy+lr*math.Sin(mid)).
			Attr("text-anchor", "middle").
			Attr("dominant-baseline", "central").
			Attr("fill", th.TextColor).
			Text(strconv.FormatFloat(frac*100, 'f', 0, 64) + "%")

		angle += sweep
	}
}

func (r *Renderer) drawLegend(doc *svg.Element, th svg.Theme, slices []Slice, cy float64) {
	if len(slices) == 0 {
		return
	}
	g := doc.Child("g").Attr("class", "legend")
	x := chartSide + 10
	y := cy - legendStep*float64(len(slices))/2
	for i, s := range slices {
		g.Child("rect").
			AttrFloat("x", x).
			AttrFloat("y", y).
			AttrFloat("width", legendSquare).
			AttrFloat("height", legendSquare).
			Attr("fill", th.Accent(i))
		g.Child("text").
			AttrFloat("x", x+legendSquare+6).
			AttrFloat("y", y+legendSquare/2).
			Attr("dominant-baseline", "central").
			Attr("fill", th.TextColor).
			Text(r.legendEntry(s))
		y += legendStep
	}
}

// legendEntry renders one legend line, appending the raw value when
// showData is on.
func (r *Renderer) legendEntry(s Slice) string {
	if r.db.ShowData() {
		return s.Label + " [" + svg.Number(s.Value) + "]"
	}
	return s.Label
}

// legendWidth sizes the legend column to its widest entry, with a floor
// so charts without long labels keep a stable shape.
func (r *Renderer) legendWidth() float64 {
	w := 150.0
	for _, s := range r.db.Slices() {
		lw := legendSquare + 6 + svg.TextWidth(r.legendEntry(s), r.cfg.FontSize) + 30
		if lw > w {
			w = lw
		}
	}
	return w
}
