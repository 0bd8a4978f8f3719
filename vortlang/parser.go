package vortlang

import (
	"fmt"
	"io"
)

// Parser reads one statement at a time from a token stream.
type Parser struct {
	stream TokenStream
}

func NewParser(stream TokenStream) *Parser {
	return &Parser{
		stream: stream,
	}
}

func ParseProgram(source *Source, opts LexOptions) (*Program, error) {
	tokens, err := Tokenize(source, opts)
	if err != nil {
		return nil, err
	}
	program := &Program{
		Source: source,
	}
	parser := NewParser(NewSliceTokenStream(tokens))
	for {
		stmt, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// Next returns the next statement, or io.EOF after the last one.
func (p *Parser) Next() (Statement, error) {
	// blank lines and stray ';'
	for {
		t, err := p.stream.Current()
		if err != nil {
			return nil, err
		}
		if t.Kind != TokenNewline && t.Kind != TokenSemicolon {
			break
		}
		p.stream.Consume()
	}

	t, err := p.stream.Current()
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case TokenEOF:
		return nil, io.EOF
	case TokenLet:
		p.stream.Consume()
		name, expr, err := p.parseBinding("let")
		if err != nil {
			return nil, err
		}
		return &StringDecl{
			Pos:     t.Pos,
			Name:    name.Text,
			NamePos: name.Pos,
			Expr:    expr,
		}, nil
	case TokenNum:
		p.stream.Consume()
		name, expr, err := p.parseBinding("num")
		if err != nil {
			return nil, err
		}
		return &NumberDecl{
			Pos:     t.Pos,
			Name:    name.Text,
			NamePos: name.Pos,
			Expr:    expr,
		}, nil
	case TokenIdentifier:
		p.stream.Consume()
		assign, err := p.expect(TokenAssign, fmt.Sprintf("expected '=' after '%s'", t.Text))
		if err != nil {
			if d, ok := AsDiagnostic(err); ok {
				d.withHint("declare new variables with 'let %s = ...' or 'num %s = ...'", t.Text, t.Text)
			}
			return nil, err
		}
		expr, err := p.parseExprSpan(assign)
		if err != nil {
			return nil, err
		}
		return &Assign{
			Pos:  t.Pos,
			Name: t.Text,
			Expr: expr,
		}, nil
	case TokenPrint:
		p.stream.Consume()
		return p.parsePrint(t)
	}

	return nil, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("expected statement, found %s", describeToken(t))).
		withHint("statements start with 'let', 'num', 'print' or a variable name")
}

func (p *Parser) parseBinding(keyword string) (*Token, *Expr, error) {
	name, err := p.expect(TokenIdentifier, fmt.Sprintf("expected variable name after '%s'", keyword))
	if err != nil {
		return nil, nil, err
	}
	assign, err := p.expect(TokenAssign, fmt.Sprintf("expected '=' after '%s'", name.Text))
	if err != nil {
		return nil, nil, err
	}
	expr, err := p.parseExprSpan(assign)
	if err != nil {
		return nil, nil, err
	}
	return name, expr, nil
}

// parseExprSpan collects tokens up to the statement terminator.
func (p *Parser) parseExprSpan(after *Token) (*Expr, error) {
	var span []*Token
	for {
		t, err := p.stream.Current()
		if err != nil {
			return nil, err
		}
		if t.Kind.endsStatement() {
			break
		}
		span = append(span, t)
		p.stream.Consume()
	}
	at := after.Pos
	at.Column += len([]rune(after.Text))
	expr, err := ParseExpr(span, at)
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parsePrint(keyword *Token) (Statement, error) {
	if _, err := p.expect(TokenLeftParen, "expected '(' after 'print'"); err != nil {
		return nil, err
	}

	target, err := p.stream.Current()
	if err != nil {
		return nil, err
	}
	switch target.Kind {
	case TokenString, TokenIdentifier, TokenInterpolation:
		p.stream.Consume()
	default:
		return nil, newDiagnostic(ErrParse, target.Pos, fmt.Sprintf(
			"expected string literal, variable name or interpolation literal, found %s", describeToken(target),
		)).withHint(`print takes one argument: print("text"), print(name) or print(o"{name}")`)
	}

	if _, err := p.expect(TokenRightParen, "expected ')' after print argument"); err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}

	stmt := &Print{
		Pos:    keyword.Pos,
		Target: target,
	}
	if target.Kind == TokenInterpolation {
		stmt.Template = TokenTemplate(target)
	}
	return stmt, nil
}

func (p *Parser) expect(kind TokenKind, message string) (*Token, error) {
	t, err := p.stream.Current()
	if err != nil {
		return nil, err
	}
	if t.Kind != kind {
		return nil, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("%s, found %s", message, describeToken(t))).
			withHint("check the statement syntax")
	}
	p.stream.Consume()
	return t, nil
}

// endStatement consumes an optional ';'. Newline and EOF are left for Next.
func (p *Parser) endStatement() error {
	t, err := p.stream.Current()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenSemicolon:
		p.stream.Consume()
		return nil
	case TokenNewline, TokenEOF:
		return nil
	}
	return newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("unexpected %s after statement", describeToken(t))).
		withHint("separate statements with ';' or a newline")
}
