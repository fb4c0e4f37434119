// Package pie implements the pie chart kind: labeled values drawn as
// proportional wedges with a legend.
//
// The source format after the pie header, one statement per line:
//
//	title text
//	showData
//	"label" : value
//
// showData may also trail the header line (pie showData). Values are
// non-negative numbers; repeating a label keeps the first value.
package pie

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/scrawl-labs/scrawl/pkg/core"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

// DiagramType is the registry id of this diagram kind.
const DiagramType = "pie"

var (
	headerPattern = regexp.MustCompile(`^\s*pie\b`)
	entryPattern  = regexp.MustCompile(`^"([^"]*)"\s*:\s*(\S+)$`)
)

func init() {
	diagram.RegisterDetector(DiagramType, Detect)
	diagram.RegisterLoader(DiagramType, Load)
}

// Detect reports whether the cleaned source text opens with a pie
// header.
func Detect(text string, cfg *core.Config) bool {
	return headerPattern.MatchString(text)
}

// Load builds the pie chart definition.
func Load(ctx context.Context) (*diagram.Definition, error) {
	db := NewDB()
	r := NewRenderer(db)
	return &diagram.Definition{
		ID:       DiagramType,
		DB:       db,
		Parser:   NewParser(db),
		Renderer: r,
		Init: func(cfg *core.Config) {
			r.SetConfig(cfg)
		},
	}, nil
}

// Parser parses pie chart source into a DB.
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
			rest, ok := strings.CutPrefix(line, "pie")
			if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
				return p.errorf(lineNo, col, "expected pie header, got %q", firstWord(line))
			}
			headerSeen = true
			if err := p.parseHeaderRest(strings.TrimSpace(rest), lineNo, col); err != nil {
				return err
			}
			continue
		}
		if err := p.parseLine(line, lineNo, col); err != nil {
			return err
		}
	}
	if !headerSeen {
		return p.errorf(1, 1, "expected pie header")
	}
	return nil
}

// parseHeaderRest handles trailing header words: "pie showData" and
// "pie showData title Pets" are both valid.
func (p *Parser) parseHeaderRest(rest string, lineNo, col int) error {
	if rest == "" {
		return nil
	}
	if cut, ok := strings.CutPrefix(rest, "showData"); ok {
		p.db.EnableShowData()
		rest = strings.TrimSpace(cut)
		if rest == "" {
			return nil
		}
	}
	if title, ok := strings.CutPrefix(rest, "title "); ok {
		p.db.SetDiagramTitle(strings.TrimSpace(title))
		return nil
	}
	return p.errorf(lineNo, col, "unexpected %q after pie header", firstWord(rest))
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
	case "showData":
		p.db.EnableShowData()
		return nil
	}

	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return p.errorf(lineNo, col, `expected "label" : value, got %q`, firstWord(line))
	}
	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return p.errorf(lineNo, col, "invalid value %q", m[2])
	}
	if value < 0 {
		return p.errorf(lineNo, col, "negative value %q", m[2])
	}
	p.db.AddSlice(m[1], value)
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
