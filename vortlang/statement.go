package vortlang

type Statement interface {
	StmtPos() Pos
}

// StringDecl is `let name = expr`.
type StringDecl struct {
	Pos     Pos
	Name    string
	NamePos Pos
	Expr    *Expr
}

// NumberDecl is `num name = expr`.
type NumberDecl struct {
	Pos     Pos
	Name    string
	NamePos Pos
	Expr    *Expr
}

// Assign is `name = expr` on an existing variable.
type Assign struct {
	Pos  Pos
	Name string
	Expr *Expr
}

// Print is `print(target)`. Template is set when Target is an interpolation literal.
type Print struct {
	Pos      Pos
	Target   *Token
	Template *Template
}

func (s *StringDecl) StmtPos() Pos { return s.Pos }
func (s *NumberDecl) StmtPos() Pos { return s.Pos }
func (s *Assign) StmtPos() Pos     { return s.Pos }
func (s *Print) StmtPos() Pos      { return s.Pos }

type Program struct {
	Source     *Source
	Statements []Statement
}
