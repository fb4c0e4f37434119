// Package flowchart implements the flowchart diagram kind: nodes joined
// by edges, optionally grouped into subgraphs.
//
// The grammar accepted by the parser:
//
//	flowchart  := header sep statement*
//	header     := ("flowchart" | "graph") [direction]
//	statement  := subgraph | direction | chain sep
//	subgraph   := "subgraph" name sep statement* "end" sep
//	direction  := "direction" ("TB" | "TD" | "BT" | "LR" | "RL")
//	chain      := node (edge node)*
//	node       := IDENT [shape]
//	shape      := "[text]" | "(text)" | "([text])" | "((text))" | "{text}"
//	edge       := EDGE [LABEL] | EDGE text EDGE
//	sep        := NEWLINE | ";"
//
// Edges come in four strokes: "-->" (arrow), "---" (open), "-.->"
// (dotted) and "==>" (thick). A label rides either between pipes after
// the stroke (A -->|yes| B) or inline between a split stroke
// (A -- yes --> B).
package flowchart

import (
	"context"
	"fmt"
	"strings"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

// Parser parses flowchart source into a DB.
type Parser struct {
	db *DB

	lexer *Lexer
	token Token
	peek  Token
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

// Parse tokenizes and parses text, populating the bound DB. The first
// grammar violation is returned as a *diagram.ParseError.
func (p *Parser) Parse(ctx context.Context, text string) error {
	if p.db == nil {
		p.db = NewDB()
	}
	p.lexer = NewLexer(text)
	p.token = p.lexer.NextToken()
	p.peek = p.lexer.NextToken()
	return p.parseFlowchart()
}

func (p *Parser) advance() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) skipSeparators() {
	for p.token.Type == TOKEN_NEWLINE {
		p.advance()
	}
}

func (p *Parser) errorf(pos Position, format string, args ...any) error {
	return &diagram.ParseError{
		Type:    DiagramType,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *Parser) parseFlowchart() error {
	p.skipSeparators()

	if p.token.Type != TOKEN_IDENT || (p.token.Literal != "flowchart" && p.token.Literal != "graph") {
		return p.errorf(p.token.Pos, "expected flowchart or graph header, got %q", p.token.Literal)
	}
	p.advance()

	if p.token.Type == TOKEN_IDENT {
		if !isDirection(p.token.Literal) {
			return p.errorf(p.token.Pos, "unknown direction %q", p.token.Literal)
		}
		p.db.SetDirection(p.token.Literal)
		p.advance()
	}
	if p.token.Type != TOKEN_NEWLINE && p.token.Type != TOKEN_EOF {
		return p.errorf(p.token.Pos, "unexpected %s after header", p.token.Type)
	}

	p.skipSeparators()
	for p.token.Type != TOKEN_EOF {
		if err := p.parseStatement(); err != nil {
			return err
		}
		p.skipSeparators()
	}
	return nil
}

func (p *Parser) parseStatement() error {
	if p.token.Type != TOKEN_IDENT {
		return p.errorf(p.token.Pos, "unexpected %s %q", p.token.Type, p.token.Literal)
	}
	switch p.token.Literal {
	case "subgraph":
		return p.parseSubgraph()
	case "direction":
		return p.parseDirection()
	case "end":
		return p.errorf(p.token.Pos, `"end" without an open subgraph`)
	}
	return p.parseChain()
}

func (p *Parser) parseSubgraph() error {
	openPos := p.token.Pos
	p.advance() // past "subgraph"

	var words []string
	for p.token.Type == TOKEN_IDENT && !isKeyword(p.token.Literal) {
		words = append(words, p.token.Literal)
		p.advance()
	}
	title := ""
	if p.token.Type == TOKEN_SQUARE {
		title = p.token.Literal
		p.advance()
	}
	if len(words) == 0 {
		return p.errorf(openPos, "subgraph requires a name")
	}
	if p.token.Type != TOKEN_NEWLINE && p.token.Type != TOKEN_EOF {
		return p.errorf(p.token.Pos, "unexpected %s after subgraph name", p.token.Type)
	}
	p.db.PushSubgraph(strings.Join(words, " "), title)

	p.skipSeparators()
	for {
		if p.token.Type == TOKEN_EOF {
			return p.errorf(openPos, `subgraph is missing its "end"`)
		}
		if p.token.Type == TOKEN_IDENT && p.token.Literal == "end" {
			p.advance()
			p.db.PopSubgraph()
			return nil
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
		p.skipSeparators()
	}
}

func (p *Parser) parseDirection() error {
	if p.db.currentSubgraph() == nil {
		return p.errorf(p.token.Pos, `"direction" is only valid inside a subgraph`)
	}
	p.advance() // past "direction"
	if p.token.Type != TOKEN_IDENT || !isDirection(p.token.Literal) {
		return p.errorf(p.token.Pos, "unknown direction %q", p.token.Literal)
	}
	// Subgraph-local directions are accepted but not laid out
	// separately; the chart direction governs.
	p.advance()
	if p.token.Type != TOKEN_NEWLINE && p.token.Type != TOKEN_EOF {
		return p.errorf(p.token.Pos, "unexpected %s after direction", p.token.Type)
	}
	return nil
}

func (p *Parser) parseChain() error {
	from, err := p.parseNode()
	if err != nil {
		return err
	}
	for p.token.Type == TOKEN_EDGE {
		style, label, err := p.parseEdge()
		if err != nil {
			return err
		}
		to, err := p.parseNode()
		if err != nil {
			return err
		}
		p.db.AddEdge(from, to, label, style)
		from = to
	}
	if p.token.Type != TOKEN_NEWLINE && p.token.Type != TOKEN_EOF {
		return p.errorf(p.token.Pos, "unexpected %s %q in statement", p.token.Type, p.token.Literal)
	}
	return nil
}

func (p *Parser) parseNode() (string, error) {
	if p.token.Type != TOKEN_IDENT {
		return "", p.errorf(p.token.Pos, "expected a node id, got %s %q", p.token.Type, p.token.Literal)
	}
	if isKeyword(p.token.Literal) {
		return "", p.errorf(p.token.Pos, "reserved word %q cannot be a node id", p.token.Literal)
	}
	id := p.token.Literal
	p.advance()

	label := ""
	var shape NodeShape
	switch p.token.Type {
	case TOKEN_SQUARE:
		label, shape = p.token.Literal, ShapeRect
	case TOKEN_ROUND:
		label, shape = p.token.Literal, ShapeRound
	case TOKEN_STADIUM:
		label, shape = p.token.Literal, ShapeStadium
	case TOKEN_CIRCLE:
		label, shape = p.token.Literal, ShapeCircle
	case TOKEN_DIAMOND:
		label, shape = p.token.Literal, ShapeDiamond
	}
	if shape != "" {
		p.advance()
	}
	p.db.AddNode(id, label, shape)
	return id, nil
}

func (p *Parser) parseEdge() (EdgeStyle, string, error) {
	pos := p.token.Pos
	style, kind := classifyEdge(p.token.Literal)
	if kind == edgeInvalid {
		return "", "", p.errorf(pos, "invalid edge %q", p.token.Literal)
	}
	p.advance()

	label := ""
	if kind == edgeText {
		var words []string
		for p.token.Type == TOKEN_IDENT {
			words = append(words, p.token.Literal)
			p.advance()
		}
		if p.token.Type != TOKEN_EDGE {
			return "", "", p.errorf(pos, "edge text is missing its closing stroke")
		}
		closeStyle, closeKind := classifyEdge(p.token.Literal)
		if closeKind != edgeComplete || closeStyle != style {
			return "", "", p.errorf(p.token.Pos, "edge text closed with mismatched %q", p.token.Literal)
		}
		label = strings.Join(words, " ")
		p.advance()
	}
	if p.token.Type == TOKEN_LABEL {
		label = strings.TrimSpace(p.token.Literal)
		p.advance()
	}
	return style, label, nil
}

// edgeKind describes how far an edge token got.
type edgeKind int

const (
	edgeInvalid  edgeKind = iota
	edgeComplete          // a full stroke like --> or ---
	edgeText              // the opening half of "A -- text --> B"
)

func classifyEdge(lit string) (EdgeStyle, edgeKind) {
	switch lit {
	case "--":
		return EdgeArrow, edgeText
	case "==":
		return EdgeThick, edgeText
	case "-.":
		return EdgeDotted, edgeText
	}
	if strings.HasSuffix(lit, ">") {
		body := lit[:len(lit)-1]
		switch {
		case len(body) >= 2 && allOf(body, '-'):
			return EdgeArrow, edgeComplete
		case len(body) >= 2 && allOf(body, '='):
			return EdgeThick, edgeComplete
		case isDottedBody(body):
			return EdgeDotted, edgeComplete
		}
		return "", edgeInvalid
	}
	if len(lit) >= 3 && allOf(lit, '-') {
		return EdgeOpen, edgeComplete
	}
	return "", edgeInvalid
}

func allOf(s string, ch byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ch {
			return false
		}
	}
	return true
}

// isDottedBody matches the arrowless part of a dotted stroke: "-.-" and
// longer runs of dots, plus ".-" which closes a dotted text edge.
func isDottedBody(s string) bool {
	if s == ".-" {
		return true
	}
	return len(s) >= 3 && s[0] == '-' && s[len(s)-1] == '-' && allOf(s[1:len(s)-1], '.')
}

func isDirection(s string) bool {
	switch s {
	case "TB", "TD", "BT", "LR", "RL":
		return true
	}
	return false
}

func isKeyword(s string) bool {
	switch s {
	case "flowchart", "graph", "subgraph", "end", "direction":
		return true
	}
	return false
}
