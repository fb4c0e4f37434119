package flowchart

// Lexer tokenizes flowchart source text. Newlines and semicolons are
// statement separators and surface as TOKEN_NEWLINE; other whitespace
// is skipped. Shape delimiters capture their inner text in one token.
type Lexer struct {
	input   string
	pos     int // current position (points to ch)
	readPos int // next reading position
	ch      byte
	line    int
	col     int
}

// NewLexer returns a lexer positioned at the first character of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col}
}

// NextToken advances the lexer and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipSpaces()

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return Token{Type: TOKEN_EOF, Pos: pos}
	case l.ch == '\n' || l.ch == ';':
		lit := string(l.ch)
		l.readChar()
		return Token{Type: TOKEN_NEWLINE, Literal: lit, Pos: pos}
	case l.ch == '|':
		return l.readDelimited(TOKEN_LABEL, "|", pos)
	case l.ch == '{':
		return l.readDelimited(TOKEN_DIAMOND, "}", pos)
	case l.ch == '[':
		return l.readDelimited(TOKEN_SQUARE, "]", pos)
	case l.ch == '(':
		if l.peekChar() == '(' {
			l.readChar()
			return l.readDelimited(TOKEN_CIRCLE, "))", pos)
		}
		if l.peekChar() == '[' {
			l.readChar()
			return l.readDelimited(TOKEN_STADIUM, "])", pos)
		}
		return l.readDelimited(TOKEN_ROUND, ")", pos)
	case isEdgeChar(l.ch):
		return Token{Type: TOKEN_EDGE, Literal: l.readEdge(), Pos: pos}
	case isIdentChar(l.ch):
		return Token{Type: TOKEN_IDENT, Literal: l.readIdent(), Pos: pos}
	}

	tok := Token{Type: TOKEN_ILLEGAL, Literal: string(l.ch), Pos: pos}
	l.readChar()
	return tok
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// readDelimited consumes the opening delimiter (already current) and
// returns a token of typ holding the text up to the closing delimiter.
// A missing closer yields TOKEN_ILLEGAL with the unterminated text.
func (l *Lexer) readDelimited(typ TokenType, close string, pos Position) Token {
	l.readChar() // past the opener
	start := l.pos
	for l.ch != 0 && l.ch != '\n' {
		if l.ch == close[0] && l.hasPrefix(close) {
			text := l.input[start:l.pos]
			for range close {
				l.readChar()
			}
			return Token{Type: typ, Literal: text, Pos: pos}
		}
		l.readChar()
	}
	return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return l.input[l.pos:l.pos+len(s)] == s
}

func (l *Lexer) readEdge() string {
	start := l.pos
	for isEdgeChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isEdgeChar(ch byte) bool {
	return ch == '-' || ch == '=' || ch == '.' || ch == '>'
}

func isIdentChar(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}
