package flowchart

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL
	TOKEN_NEWLINE // \n or ;
	TOKEN_IDENT   // node ids and keywords
	TOKEN_EDGE    // a run of - = . > characters, e.g. -->
	TOKEN_LABEL   // |text| edge label, literal holds the inner text

	// Shape tokens carry the node text between their delimiters.
	TOKEN_SQUARE  // [text]
	TOKEN_ROUND   // (text)
	TOKEN_STADIUM // ([text])
	TOKEN_CIRCLE  // ((text))
	TOKEN_DIAMOND // {text}
)

func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ILLEGAL:
		return "ILLEGAL"
	case TOKEN_NEWLINE:
		return "NEWLINE"
	case TOKEN_IDENT:
		return "IDENT"
	case TOKEN_EDGE:
		return "EDGE"
	case TOKEN_LABEL:
		return "LABEL"
	case TOKEN_SQUARE:
		return "SQUARE"
	case TOKEN_ROUND:
		return "ROUND"
	case TOKEN_STADIUM:
		return "STADIUM"
	case TOKEN_CIRCLE:
		return "CIRCLE"
	case TOKEN_DIAMOND:
		return "DIAMOND"
	}
	return "UNKNOWN"
}

// Position is a location in the source text (1-based line and column).
type Position struct {
	Line   int
	Column int
}

// Token is one lexical unit of flowchart source.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
