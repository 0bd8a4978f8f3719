package vortlang

import "fmt"

type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos

	// set for TokenOperator
	Op Operator
	// set for TokenNumber
	Number float64
	// set for TokenString and TokenInterpolation: the source column of
	// each rune of Text
	Columns []int
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenString:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case TokenInterpolation:
		return fmt.Sprintf("%s o%q", t.Kind, t.Text)
	case TokenNewline, TokenEOF:
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %s", t.Kind, t.Text)
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenEOF
	TokenNewline
	TokenIdentifier
	TokenString
	TokenInterpolation
	TokenNumber
	TokenOperator
	TokenLeftParen
	TokenRightParen
	TokenAssign
	TokenSemicolon
	TokenLet
	TokenNum
	TokenPrint
)

var tokenKindNames = [...]string{
	TokenInvalid:       "invalid",
	TokenEOF:           "end of input",
	TokenNewline:       "newline",
	TokenIdentifier:    "identifier",
	TokenString:        "string",
	TokenInterpolation: "interpolation",
	TokenNumber:        "number",
	TokenOperator:      "operator",
	TokenLeftParen:     "'('",
	TokenRightParen:    "')'",
	TokenAssign:        "'='",
	TokenSemicolon:     "';'",
	TokenLet:           "'let'",
	TokenNum:           "'num'",
	TokenPrint:         "'print'",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

var keywords = map[string]TokenKind{
	"let":   TokenLet,
	"num":   TokenNum,
	"print": TokenPrint,
}

// endsStatement reports whether k terminates a statement span.
func (k TokenKind) endsStatement() bool {
	return k == TokenNewline || k == TokenSemicolon || k == TokenEOF
}
