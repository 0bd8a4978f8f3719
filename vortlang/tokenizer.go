package vortlang

import (
	goerrors "errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

const DefaultComment = "//"

type LexOptions struct {
	// Comment is the marker starting a line comment. Empty means DefaultComment.
	Comment string
}

func (o LexOptions) comment() string {
	if o.Comment == "" {
		return DefaultComment
	}
	return o.Comment
}

// Tokenizer produces tokens on demand. It stops at the first lex error and
// keeps returning that error.
type Tokenizer struct {
	source  *Source
	runes   []rune
	offset  int
	comment []rune
	current *Token
	err     error

	currPos Pos
}

var _ TokenStream = new(Tokenizer)

func NewTokenizer(source *Source, opts LexOptions) *Tokenizer {
	return &Tokenizer{
		source:  source,
		runes:   []rune(source.Content),
		comment: []rune(opts.comment()),
		currPos: Pos{
			Source: source,
			Line:   1,
			Column: 1,
		},
	}
}

func (t *Tokenizer) peekRune() (rune, bool) {
	if t.offset >= len(t.runes) {
		return 0, false
	}
	return t.runes[t.offset], true
}

func (t *Tokenizer) readRune() (rune, bool) {
	r, ok := t.peekRune()
	if !ok {
		return 0, false
	}
	t.offset++
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}
	return r, true
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.current == nil {
		token, err := t.parseNext()
		if err != nil {
			t.err = err
			return nil, err
		}
		t.current = token
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	t.current = nil
}

// All yields tokens up to and including TokenEOF, or the first lex error.
func (t *Tokenizer) All() iter.Seq2[*Token, error] {
	return func(yield func(*Token, error) bool) {
		for {
			token, err := t.Current()
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(token, nil) {
				return
			}
			if token.Kind == TokenEOF {
				return
			}
			t.Consume()
		}
	}
}

// Tokens returns a sequence that rescans the source on every iteration.
func (s *Source) Tokens(opts LexOptions) iter.Seq2[*Token, error] {
	return func(yield func(*Token, error) bool) {
		NewTokenizer(s, opts).All()(yield)
	}
}

// Tokenize lexes the whole source. The returned slice ends with TokenEOF.
func Tokenize(source *Source, opts LexOptions) ([]*Token, error) {
	var tokens []*Token
	for token, err := range source.Tokens(opts) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (t *Tokenizer) parseNext() (*Token, error) {
	t.skipBlank()
	if t.atComment() {
		t.skipComment()
		t.skipBlank()
	}
	startPos := t.currPos

	r, ok := t.peekRune()
	if !ok {
		return &Token{Kind: TokenEOF, Pos: startPos}, nil
	}

	switch {
	case r == '"':
		t.readRune()
		return t.parseString(TokenString, startPos)
	case isDigit(r):
		return t.parseNumber(startPos)
	case isIdentStart(r):
		return t.parseWord(startPos)
	}

	t.readRune()
	switch r {
	case '\n':
		return &Token{Kind: TokenNewline, Text: "\n", Pos: startPos}, nil
	case '(':
		return &Token{Kind: TokenLeftParen, Text: "(", Pos: startPos}, nil
	case ')':
		return &Token{Kind: TokenRightParen, Text: ")", Pos: startPos}, nil
	case '=':
		return &Token{Kind: TokenAssign, Text: "=", Pos: startPos}, nil
	case ';':
		return &Token{Kind: TokenSemicolon, Text: ";", Pos: startPos}, nil
	}
	if op, ok := operatorSymbols[r]; ok {
		return &Token{Kind: TokenOperator, Text: string(r), Op: op, Pos: startPos}, nil
	}

	return nil, newDiagnostic(ErrLex, startPos, fmt.Sprintf("unexpected character %q", r)).
		withHint("remove or replace this character")
}

func (t *Tokenizer) skipBlank() {
	for {
		r, ok := t.peekRune()
		if !ok || r == '\n' || !unicode.IsSpace(r) {
			return
		}
		t.readRune()
	}
}

func (t *Tokenizer) atComment() bool {
	if len(t.runes)-t.offset < len(t.comment) {
		return false
	}
	for i, r := range t.comment {
		if t.runes[t.offset+i] != r {
			return false
		}
	}
	return true
}

// skipComment stops before the newline so it still separates statements.
func (t *Tokenizer) skipComment() {
	for {
		r, ok := t.peekRune()
		if !ok || r == '\n' {
			return
		}
		t.readRune()
	}
}

func (t *Tokenizer) parseWord(startPos Pos) (*Token, error) {
	var sb strings.Builder
	for {
		r, ok := t.peekRune()
		if !ok || !isIdentPart(r) {
			break
		}
		t.readRune()
		sb.WriteRune(r)
	}
	word := sb.String()

	if word == "o" {
		if r, ok := t.peekRune(); ok && r == '"' {
			t.readRune()
			return t.parseString(TokenInterpolation, startPos)
		}
	}
	if kind, ok := keywords[word]; ok {
		return &Token{Kind: kind, Text: word, Pos: startPos}, nil
	}
	if op, ok := operatorWords[word]; ok {
		return &Token{Kind: TokenOperator, Text: word, Op: op, Pos: startPos}, nil
	}
	return &Token{Kind: TokenIdentifier, Text: word, Pos: startPos}, nil
}

func (t *Tokenizer) parseNumber(startPos Pos) (*Token, error) {
	var sb strings.Builder
	hasDot := false
	for {
		r, ok := t.peekRune()
		if !ok {
			break
		}
		if isDigit(r) || r == '_' {
			sb.WriteRune(r)
		} else if r == '.' && !hasDot {
			hasDot = true
			sb.WriteRune(r)
		} else {
			break
		}
		t.readRune()
	}
	text := sb.String()

	// '_' only separates digits
	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			continue
		}
		if i == len(text)-1 || !isDigit(rune(text[i-1])) || !isDigit(rune(text[i+1])) {
			pos := startPos
			pos.Column += i
			return nil, newDiagnostic(ErrLex, pos, fmt.Sprintf("misplaced '_' in number %s", text)).
				withHint("'_' may only appear between two digits, as in 1_000")
		}
	}

	value, err := ParseNumber(text)
	if err != nil {
		if goerrors.Is(err, strconv.ErrRange) {
			return nil, newDiagnostic(ErrLex, startPos, fmt.Sprintf("numeric literal %s is out of range", text)).
				withHint("numbers are 64-bit floats")
		}
		return nil, newDiagnostic(ErrLex, startPos, fmt.Sprintf("invalid number %s", text))
	}

	return &Token{
		Kind:   TokenNumber,
		Text:   text,
		Number: value,
		Pos:    startPos,
	}, nil
}

// parseString is called after the opening quote has been read.
func (t *Tokenizer) parseString(kind TokenKind, startPos Pos) (*Token, error) {
	unterminated := func() error {
		return newDiagnostic(ErrLex, startPos, "unterminated string literal").
			withHint("add a closing quote to complete the string")
	}

	var sb strings.Builder
	var columns []int
	for {
		escPos := t.currPos
		r, ok := t.peekRune()
		if !ok || r == '\n' {
			return nil, unterminated()
		}
		t.readRune()
		if r == '"' {
			break
		}
		columns = append(columns, escPos.Column)
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}

		next, ok := t.peekRune()
		if !ok || next == '\n' {
			return nil, unterminated()
		}
		t.readRune()
		switch next {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		case 'r':
			sb.WriteRune('\r')
		case '\\':
			sb.WriteRune('\\')
		case '"':
			sb.WriteRune('"')
		default:
			return nil, newDiagnostic(ErrLex, escPos, fmt.Sprintf("invalid escape sequence '\\%c'", next)).
				withHint(`valid escape sequences are \n, \t, \r, \\ and \"`)
		}
	}

	return &Token{
		Kind:    kind,
		Text:    sb.String(),
		Pos:     startPos,
		Columns: columns,
	}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
