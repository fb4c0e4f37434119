// Package gantt implements the gantt chart kind: tasks scheduled on a
// shared time axis, grouped into sections.
//
// The statement forms accepted by the parser, one per line after the
// gantt header:
//
//	title text
//	dateFormat YYYY-MM-DD     layout for task dates (YYYY, YY, MM, DD, HH, mm, ss)
//	axisFormat %m-%d          layout for axis labels (strftime codes)
//	section name
//	name : [tags,] [id,] start, end
//
// A task's start is a date, "after otherId", or empty (follows the
// previous task). Its end is a date or a duration such as 3d or 2w.
// Tags are done, active, crit and milestone, in any combination.
// A one-item task body is just the end; two items are start and end;
// three items are id, start and end.
package gantt

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

var durationPattern = regexp.MustCompile(`^(\d+)([smhdw])$`)

// Parser parses gantt source into a DB.
type Parser struct {
	db *DB
}

// NewParser returns a parser writing into db.
func NewParser(db *DB) *Parser {
	return &Parser{db: db}
}

// BindDB points the parser at the model it should populate.
func (p *Parser) BindDB(d diagram.DB) {
	if db, ok := d.(*DB); ok {
		p.db = db
	}
}

// Parse reads text line by line. The first grammar violation is
// returned as a *diagram.ParseError.
func (p *Parser) Parse(ctx context.Context, text string) error {
	if p.db == nil {
		p.db = NewDB()
	}

	headerSeen := false
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1
		col := 1 + len(raw) - len(strings.TrimLeft(raw, " \t"))

		if !headerSeen {
			if line != "gantt" {
				return p.errorf(lineNo, col, "expected gantt header, got %q", firstWord(line))
			}
			headerSeen = true
			continue
		}
		if err := p.parseLine(line, lineNo, col); err != nil {
			return err
		}
	}
	if !headerSeen {
		return p.errorf(1, 1, "expected gantt header")
	}
	return nil
}

func (p *Parser) parseLine(line string, lineNo, col int) error {
	word, rest := splitKeyword(line)

	switch word {
	case "title":
		if rest == "" {
			return p.errorf(lineNo, col, "title requires text")
		}
		p.db.SetDiagramTitle(rest)
		return nil
	case "dateFormat":
		if rest == "" {
			return p.errorf(lineNo, col, "dateFormat requires a layout")
		}
		p.db.SetDateLayout(toDateLayout(rest))
		return nil
	case "axisFormat":
		if rest == "" {
			return p.errorf(lineNo, col, "axisFormat requires a layout")
		}
		p.db.SetAxisLayout(toAxisLayout(rest))
		return nil
	case "section":
		if rest == "" {
			return p.errorf(lineNo, col, "section requires a name")
		}
		p.db.StartSection(rest)
		return nil
	case "excludes", "todayMarker", "tickInterval", "inclusiveEndDates", "weekday":
		// Accepted for compatibility, not modeled.
		return nil
	}

	if strings.Contains(line, ":") {
		return p.parseTask(line, lineNo, col)
	}
	return p.errorf(lineNo, col, "unrecognized statement %q", firstWord(line))
}

func (p *Parser) parseTask(line string, lineNo, col int) error {
	name, data, _ := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return p.errorf(lineNo, col, "task requires a name")
	}

	var items []string
	for _, it := range strings.Split(data, ",") {
		items = append(items, strings.TrimSpace(it))
	}

	t := &Task{Name: name}
tags:
	for len(items) > 0 {
		switch items[0] {
		case "done":
			t.Done = true
		case "active":
			t.Active = true
		case "crit":
			t.Crit = true
		case "milestone":
			t.Milestone = true
		default:
			break tags
		}
		items = items[1:]
	}

	var startish, endish string
	switch len(items) {
	case 1:
		endish = items[0]
	case 2:
		startish, endish = items[0], items[1]
	case 3:
		t.ID = items[0]
		startish, endish = items[1], items[2]
	default:
		return p.errorf(lineNo, col, "task %q needs a start and an end", name)
	}
	if endish == "" {
		return p.errorf(lineNo, col, "task %q needs a start and an end", name)
	}

	start, err := p.resolveStart(startish)
	if err != nil {
		return p.errorf(lineNo, col, "task %q: %v", name, err)
	}
	t.Start = start

	end, err := p.resolveEnd(start, endish)
	if err != nil {
		return p.errorf(lineNo, col, "task %q: %v", name, err)
	}
	if end.Before(start) {
		return p.errorf(lineNo, col, "task %q ends before it starts", name)
	}
	t.End = end

	p.db.AddTask(t)
	return nil
}

// resolveStart turns the start clause into an instant: a date in the
// chart's date layout, "after id" (one or more ids, latest end wins),
// or empty to follow the previous task.
func (p *Parser) resolveStart(startish string) (time.Time, error) {
	if startish == "" {
		last := p.db.LastTask()
		if last == nil {
			return time.Time{}, fmt.Errorf("first task needs an explicit start")
		}
		return last.End, nil
	}
	if refs, ok := strings.CutPrefix(startish, "after "); ok {
		var start time.Time
		for _, id := range strings.Fields(refs) {
			ref := p.db.Task(id)
			if ref == nil {
				return time.Time{}, fmt.Errorf("after references unknown task %q", id)
			}
			if ref.End.After(start) {
				start = ref.End
			}
		}
		if start.IsZero() {
			return time.Time{}, fmt.Errorf("after requires a task id")
		}
		return start, nil
	}
	start, err := time.Parse(p.db.DateLayout(), startish)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q for layout %s", startish, p.db.DateLayout())
	}
	return start, nil
}

// resolveEnd turns the end clause into an instant: a duration such as
// 3d added to start, or a date in the chart's date layout.
func (p *Parser) resolveEnd(start time.Time, endish string) (time.Time, error) {
	if d, ok := parseDuration(endish); ok {
		return start.Add(d), nil
	}
	end, err := time.Parse(p.db.DateLayout(), endish)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or duration %q", endish)
	}
	return end, nil
}

func parseDuration(s string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	var unit time.Duration
	switch m[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	}
	return time.Duration(n) * unit, true
}

func (p *Parser) errorf(line, col int, format string, args ...any) error {
	return &diagram.ParseError{
		Type:    DiagramType,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}

func splitKeyword(line string) (word, rest string) {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

func firstWord(line string) string {
	w, _ := splitKeyword(line)
	return w
}
