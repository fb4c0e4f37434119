package gantt

import (
	"context"
	"time"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
	"github.com/scrawl-labs/scrawl/pkg/svg"
)

const (
	plotWidth    = 600.0
	rightPadding = 75.0
	critStroke   = "#c0392b"
)

// Renderer draws the parsed gantt model as an SVG document.
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

// Draw renders the chart. In the default mode every task gets its own
// row; displayMode "compact" packs each section onto a single row.
func (r *Renderer) Draw(ctx context.Context, text, id, version string, d *diagram.Diagram) ([]byte, error) {
	gc := r.cfg.Gantt
	th := svg.Named(r.cfg.Theme)
	tasks := r.db.Tasks()

	leftPad := float64(gc.LeftPadding)
	topPad := float64(gc.TopPadding)
	barH := float64(gc.BarHeight)
	rowH := barH + float64(gc.BarGap)
	width := leftPad + plotWidth + rightPadding

	compact := gc.DisplayMode == "compact"
	rowOf, rows := r.assignRows(compact)

	chartBottom := topPad + float64(rows)*rowH + 10
	height := chartBottom + 30

	doc := svg.Document(id, width, height).
		Attr("class", "gantt").
		Attr("aria-roledescription", DiagramType).
		Attr("data-version", version).
		Attr("font-family", r.cfg.FontFamily).
		AttrInt("font-size", gc.FontSize)
	doc.Child("rect").
		AttrFloat("width", width).
		AttrFloat("height", height).
		Attr("fill", th.Background)

	if title := r.db.Title(); title != "" {
		doc.Child("text").
			AttrFloat("x", width/2).
			AttrFloat("y", float64(gc.TitleTopMargin)).
			Attr("text-anchor", "middle").
			Attr("font-weight", "bold").
			AttrInt("font-size", r.cfg.FontSize+4).
			Attr("fill", th.TextColor).
			Text(title)
	}

	if len(tasks) == 0 {
		return doc.Bytes(), nil
	}

	start, end := r.db.Span()
	if !end.After(start) {
		end = start.Add(24 * time.Hour)
	}
	span := end.Sub(start)
	x := func(t time.Time) float64 {
		return leftPad + float64(t.Sub(start))/float64(span)*plotWidth
	}

	r.drawSectionBands(doc, rowOf, compact, th, width, topPad, rowH, barH)
	r.drawGrid(doc, th, x, start, end, topPad, chartBottom)
	r.drawTasks(doc, rowOf, th, x, topPad, rowH, barH)

	return doc.Bytes(), nil
}

// assignRows maps each task to its row. Rows follow source order; in
// compact mode all tasks of one section share a row.
func (r *Renderer) assignRows(compact bool) (map[*Task]int, int) {
	rowOf := map[*Task]int{}
	if !compact {
		for i, t := range r.db.Tasks() {
			rowOf[t] = i
		}
		return rowOf, len(r.db.Tasks())
	}

	sectionRow := map[string]int{}
	next := 0
	for _, t := range r.db.Tasks() {
		row, ok := sectionRow[t.Section]
		if !ok {
			row = next
			next++
			sectionRow[t.Section] = row
		}
		rowOf[t] = row
	}
	return rowOf, next
}

// sectionIndex returns the accent palette slot of a section.
func (r *Renderer) sectionIndex(name string) int {
	for i, s := range r.db.Sections() {
		if s == name {
			return i
		}
	}
	return 0
}

// drawSectionBands shades the full-width background stripe behind each
// section's rows and writes the section name into the left margin.
func (r *Renderer) drawSectionBands(doc *svg.Element, rowOf map[*Task]int, compact bool, th svg.Theme, width, topPad, rowH, barH float64) {
	type band struct {
		section  string
		from, to int // row range, inclusive
	}
	var bands []band
	for _, t := range r.db.Tasks() {
		row := rowOf[t]
		if len(bands) > 0 && bands[len(bands)-1].section == t.Section {
			last := &bands[len(bands)-1]
			if row > last.to {
				last.to = row
			}
			continue
		}
		bands = append(bands, band{section: t.Section, from: row, to: row})
	}

	g := doc.Child("g").Attr("class", "sections")
	for _, b := range bands {
		if b.section == "" {
			continue
		}
		y0 := topPad + float64(b.from)*rowH - 2
		y1 := topPad + float64(b.to)*rowH + barH + 2
		g.Child("rect").
			AttrFloat("y", y0).
			AttrFloat("width", width).
			AttrFloat("height", y1-y0).
			Attr("fill", th.Accent(r.sectionIndex(b.section))).
			Attr("fill-opacity", "0.15")
		g.Child("text").
			AttrFloat("x", 10).
			AttrFloat("y", (y0+y1)/2).
			Attr("dominant-baseline", "central").
			Attr("fill", th.TextColor).
			Text(b.section)
	}
}

// drawGrid draws six vertical tick lines with labels across the span.
func (r *Renderer) drawGrid(doc *svg.Element, th svg.Theme, x func(time.Time) float64, start, end time.Time, topPad, chartBottom float64) {
	layout := r.db.AxisLayout()
	if layout == "" {
		layout = r.cfg.Gantt.AxisFormat
	}
	span := end.Sub(start)

	g := doc.Child("g").Attr("class", "grid")
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		tt := start.Add(span * time.Duration(i) / ticks)
		tx := x(tt)
		g.Child("line").
			AttrFloat("x1", tx).
			AttrFloat("y1", topPad-10).
			AttrFloat("x2", tx).
			AttrFloat("y2", chartBottom).
			Attr("stroke", th.GridColor)
		g.Child("text").
			AttrFloat("x", tx).
			AttrFloat("y", chartBottom+15).
			Attr("text-anchor", "middle").
			AttrInt("font-size", r.cfg.Gantt.SectionFontSize).
			Attr("fill", th.TextColor).
			Text(tt.Format(layout))
	}
}

func (r *Renderer) drawTasks(doc *svg.Element, rowOf map[*Task]int, th svg.Theme, x func(time.Time) float64, topPad, rowH, barH float64) {
	g := doc.Child("g").Attr("class", "tasks")
	for _, t := range r.db.Tasks() {
		y := topPad + float64(rowOf[t])*rowH
		x0, x1 := x(t.Start), x(t.End)

		if t.Milestone {
			r.drawMilestone(g, t, x0, y, barH, th)
			continue
		}

		w := x1 - x0
		if w < 2 {
			w = 2
		}
		fill := th.Accent(r.sectionIndex(t.Section))
		switch {
		case t.Done:
			fill = th.GridColor
		case t.Active:
			fill = th.NoteFill
		}
		bar := g.Child("rect").
			AttrFloat("x", x0).
			AttrFloat("y", y).
			AttrFloat("width", w).
			AttrFloat("height", barH).
			Attr("rx", "3").
			Attr("fill", fill).
			Attr("stroke", th.NodeBorder)
		if t.Crit {
			bar.Attr("stroke", critStroke).Attr("stroke-width", "2")
		}

		label := g.Child("text").
			AttrFloat("y", y+barH/2).
			Attr("dominant-baseline", "central").
			Attr("fill", th.TextColor)
		if svg.TextWidth(t.Name, r.cfg.Gantt.FontSize)+8 <= w {
			label.AttrFloat("x", (x0+x1)/2).Attr("text-anchor", "middle")
		} else {
			label.AttrFloat("x", x1+6)
		}
		label.Text(t.Name)
	}
}

func (r *Renderer) drawMilestone(g *svg.Element, t *Task, x0, y, barH float64, th svg.Theme) {
	half := barH / 2
	points := svg.Number(x0) + "," + svg.Number(y) +
		" " + svg.Number(x0+half) + "," + svg.Number(y+half) +
		" " + svg.Number(x0) + "," + svg.Number(y+barH) +
		" " + svg.Number(x0-half) + "," + svg.Number(y+half)
	diamond := g.Child("polygon").
		Attr("points", points).
		Attr("fill", th.Accent(r.sectionIndex(t.Section))).
		Attr("stroke", th.NodeBorder)
	if t.Crit {
		diamond.Attr("stroke", critStroke).Attr("stroke-width", "2")
	}
	g.Child("text").
		AttrFloat("x", x0+half+6).
		AttrFloat("y", y+half).
		Attr("dominant-baseline", "central").
		Attr("fill", th.TextColor).
		Text(t.Name)
}
