// Package sequence implements the sequence diagram kind: actors
// exchanging messages over vertical lifelines.
//
// The statement forms accepted by the parser, one per line after the
// sequenceDiagram header:
//
//	participant A            declare a lane (box)
//	actor B as Bob           declare a lane (figure) with a label
//	A->>+B: text             message; + activates B, - releases A
//	note right of A: text    annotation (also "left of", "over A,B")
//	activate A               explicit activation bar
//	deactivate A
//	loop label ... end       frame; also "opt" and "alt ... else"
//	autonumber               number every message
//	title text               diagram title
//
// Message arrows: -> solid, --> dashed, ->> solid with arrowhead,
// -->> dashed with arrowhead, -x and --x end in a cross.
package sequence

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

var (
	messagePattern = regexp.MustCompile(`^(\w+)\s*(--?(?:>>|>|x))\s*([+-]?)\s*(\w+)\s*:\s*(.*)$`)
	actorPattern   = regexp.MustCompile(`^(\w+)(?:\s+as\s+(.+))?$`)
	notePattern    = regexp.MustCompile(`(?i)^note\s+(left of|right of|over)\s+(\w+)(?:\s*,\s*(\w+))?\s*:\s*(.*)$`)
	identPattern   = regexp.MustCompile(`^\w+$`)
)

// Parser parses sequence diagram source into a DB.
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
	var blocks []BlockKind
	lastLine := 1

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1
		col := 1 + len(raw) - len(strings.TrimLeft(raw, " \t"))
		lastLine = lineNo

		if !headerSeen {
			if line != "sequenceDiagram" {
				return p.errorf(lineNo, col, "expected sequenceDiagram header, got %q", firstWord(line))
			}
			headerSeen = true
			continue
		}
		if err := p.parseLine(line, lineNo, col, &blocks); err != nil {
			return err
		}
	}

	if !headerSeen {
		return p.errorf(1, 1, "expected sequenceDiagram header")
	}
	if len(blocks) > 0 {
		return p.errorf(lastLine, 1, "unclosed %s block", blocks[len(blocks)-1])
	}
	return nil
}

func (p *Parser) parseLine(line string, lineNo, col int, blocks *[]BlockKind) error {
	word, rest := splitKeyword(line)

	if strings.EqualFold(word, "note") {
		return p.parseNote(line, lineNo, col)
	}

	switch word {
	case "participant":
		return p.parseActor(KindParticipant, rest, lineNo, col)
	case "actor":
		return p.parseActor(KindActor, rest, lineNo, col)
	case "autonumber":
		p.db.EnableAutonumber()
		return nil
	case "title":
		if rest == "" {
			return p.errorf(lineNo, col, "title requires text")
		}
		p.db.SetDiagramTitle(rest)
		return nil
	case "activate", "deactivate":
		if !identPattern.MatchString(rest) {
			return p.errorf(lineNo, col, "%s requires an actor id", word)
		}
		if word == "activate" {
			p.db.Activate(rest)
		} else {
			p.db.Deactivate(rest)
		}
		return nil
	case "loop", "opt", "alt":
		kind := BlockKind(word)
		*blocks = append(*blocks, kind)
		p.db.StartBlock(kind, rest)
		return nil
	case "else":
		if len(*blocks) == 0 || (*blocks)[len(*blocks)-1] != BlockAlt {
			return p.errorf(lineNo, col, "else outside an alt block")
		}
		p.db.ElseBlock(rest)
		return nil
	case "end":
		if len(*blocks) == 0 {
			return p.errorf(lineNo, col, "end without an open block")
		}
		*blocks = (*blocks)[:len(*blocks)-1]
		p.db.EndBlock()
		return nil
	}

	return p.parseMessage(line, lineNo, col)
}

func (p *Parser) parseActor(kind ActorKind, rest string, lineNo, col int) error {
	m := actorPattern.FindStringSubmatch(rest)
	if m == nil {
		return p.errorf(lineNo, col, "%s requires an id, optionally with as and a label", kind)
	}
	p.db.AddActor(m[1], strings.TrimSpace(m[2]), kind)
	return nil
}

func (p *Parser) parseNote(line string, lineNo, col int) error {
	m := notePattern.FindStringSubmatch(line)
	if m == nil {
		return p.errorf(lineNo, col, "malformed note")
	}
	placement := NotePlacement(strings.ToLower(m[1]))
	actors := []string{m[2]}
	if m[3] != "" {
		if placement != NoteOver {
			return p.errorf(lineNo, col, "only over notes may span two actors")
		}
		actors = append(actors, m[3])
	}
	p.db.AddNote(&Note{Placement: placement, Actors: actors, Text: m[4]})
	return nil
}

func (p *Parser) parseMessage(line string, lineNo, col int) error {
	m := messagePattern.FindStringSubmatch(line)
	if m == nil {
		return p.errorf(lineNo, col, "unrecognized statement %q", firstWord(line))
	}
	from, arrow, sign, to, text := m[1], m[2], m[3], m[4], m[5]

	lineStyle, end := arrowParts(arrow)
	p.db.AddMessage(&Message{
		From: from,
		To:   to,
		Text: text,
		Line: lineStyle,
		End:  end,
	})
	switch sign {
	case "+":
		p.db.Activate(to)
	case "-":
		p.db.Deactivate(from)
	}
	return nil
}

func (p *Parser) errorf(line, col int, format string, args ...any) error {
	return &diagram.ParseError{
		Type:    DiagramType,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}

func arrowParts(s string) (LineStyle, LineEnd) {
	line := LineSolid
	if strings.HasPrefix(s, "--") {
		line = LineDashed
	}
	switch {
	case strings.HasSuffix(s, ">>"):
		return line, EndArrow
	case strings.HasSuffix(s, "x"):
		return line, EndCross
	}
	return line, EndNone
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
