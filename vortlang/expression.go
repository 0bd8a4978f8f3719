package vortlang

import (
	"fmt"
	"math"
)

// Expr is one expression in postfix order, as produced by ParseExpr.
type Expr struct {
	Postfix     []*Token
	Pos         Pos
	HasOperator bool
}

// ParseExpr converts an infix token span into postfix order with the
// shunting-yard algorithm. at is used as the position of an empty span.
func ParseExpr(tokens []*Token, at Pos) (*Expr, error) {
	if len(tokens) == 0 {
		return nil, newDiagnostic(ErrParse, at, "expected expression").
			withHint("write a literal, a variable name or an arithmetic expression")
	}

	expr := &Expr{
		Pos: tokens[0].Pos,
	}
	var ops []*Token
	expectOperand := true

	for _, t := range tokens {
		switch t.Kind {

		case TokenNumber, TokenString, TokenIdentifier:
			if !expectOperand {
				return nil, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("unexpected %s, expected an operator", describeToken(t))).
					withHint("operators are +, -, *, / or plus, minus, times, multiply, divide")
			}
			expr.Postfix = append(expr.Postfix, t)
			expectOperand = false

		case TokenLeftParen:
			if !expectOperand {
				return nil, newDiagnostic(ErrParse, t.Pos, "unexpected '(', expected an operator")
			}
			ops = append(ops, t)

		case TokenRightParen:
			if expectOperand {
				return nil, newDiagnostic(ErrParse, t.Pos, "expected an operand before ')'")
			}
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == TokenLeftParen {
					matched = true
					break
				}
				expr.Postfix = append(expr.Postfix, top)
			}
			if !matched {
				return nil, newDiagnostic(ErrParse, t.Pos, "mismatched parentheses: ')' has no matching '('").
					withHint("remove this ')' or add a '(' before it")
			}

		case TokenOperator:
			if expectOperand {
				return nil, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("missing operand before '%s'", t.Text))
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind != TokenOperator || top.Op.Precedence() < t.Op.Precedence() {
					break
				}
				ops = ops[:len(ops)-1]
				expr.Postfix = append(expr.Postfix, top)
			}
			ops = append(ops, t)
			expr.HasOperator = true
			expectOperand = true

		case TokenInterpolation:
			return nil, newDiagnostic(ErrParse, t.Pos, "interpolation literal is not allowed in an expression").
				withHint(`o"..." literals can only be printed`)

		default:
			return nil, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("unexpected %s in expression", describeToken(t)))
		}
	}

	if expectOperand {
		last := tokens[len(tokens)-1]
		if last.Kind == TokenOperator {
			return nil, newDiagnostic(ErrParse, last.Pos, fmt.Sprintf("missing operand after '%s'", last.Text))
		}
		return nil, newDiagnostic(ErrParse, last.Pos, "expected an operand")
	}

	// the earliest unclosed '(' is reported
	for _, op := range ops {
		if op.Kind == TokenLeftParen {
			return nil, newDiagnostic(ErrParse, op.Pos, "mismatched parentheses: '(' is never closed").
				withHint("add a ')' to close it")
		}
	}
	for i := len(ops) - 1; i >= 0; i-- {
		expr.Postfix = append(expr.Postfix, ops[i])
	}

	return expr, nil
}

// Single returns the only operand of an expression without operators.
func (e *Expr) Single() (*Token, bool) {
	if e.HasOperator || len(e.Postfix) != 1 {
		return nil, false
	}
	return e.Postfix[0], true
}

// firstOperator returns the first operator token in source order.
func (e *Expr) firstOperator() *Token {
	var first *Token
	for _, t := range e.Postfix {
		if t.Kind != TokenOperator {
			continue
		}
		if first == nil || t.Pos.Line < first.Pos.Line ||
			t.Pos.Line == first.Pos.Line && t.Pos.Column < first.Pos.Column {
			first = t
		}
	}
	return first
}

type operand struct {
	value Value
	token *Token
}

// Eval evaluates the expression against the current symbol table.
func (e *Expr) Eval(table *SymbolTable) (Value, error) {
	stack := make([]operand, 0, len(e.Postfix))

	for _, t := range e.Postfix {
		switch t.Kind {

		case TokenNumber:
			stack = append(stack, operand{NumberValue(t.Number), t})

		case TokenString:
			stack = append(stack, operand{StringValue(t.Text), t})

		case TokenIdentifier:
			v, err := table.Lookup(t.Text, t.Pos)
			if err != nil {
				return Value{}, err
			}
			stack = append(stack, operand{v.Value, t})

		case TokenOperator:
			if len(stack) < 2 {
				return Value{}, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("missing operand for '%s'", t.Text))
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			for _, o := range []operand{a, b} {
				if o.value.Kind != KindNumber {
					return Value{}, operandTypeError(t, o)
				}
			}
			if t.Op == OpDiv && b.value.Num == 0 {
				d := newDiagnostic(ErrDivisionByZero, t.Pos)
				if b.token.Kind == TokenOperator {
					return Value{}, d.withHint("the divisor evaluates to 0")
				}
				return Value{}, d.withHint("the divisor %s evaluates to 0", describeToken(b.token))
			}
			result := t.Op.Apply(a.value.Num, b.value.Num)
			if math.IsInf(result, 0) || math.IsNaN(result) {
				return Value{}, newDiagnostic(ErrNumericOverflow, t.Pos, fmt.Sprintf("'%s'", t.Text)).
					withHint("numbers are 64-bit floats")
			}
			stack = append(stack, operand{NumberValue(result), t})

		default:
			return Value{}, newDiagnostic(ErrParse, t.Pos, fmt.Sprintf("unexpected %s in expression", describeToken(t)))
		}
	}

	if len(stack) != 1 {
		return Value{}, newDiagnostic(ErrParse, e.Pos, "invalid expression")
	}
	return stack[0].value, nil
}

func operandTypeError(op *Token, o operand) *Diagnostic {
	what := describeToken(o.token)
	d := newDiagnostic(ErrType, o.token.Pos, fmt.Sprintf(
		"operand %s of '%s' is a %s, expected %s", what, op.Text, o.value.Kind, KindNumber,
	))
	if o.token.Kind == TokenIdentifier {
		return d.withHint("'%s' is a %s variable; arithmetic needs numbers", o.token.Text, o.value.Kind)
	}
	return d.withHint("arithmetic needs numbers; strings cannot be combined with operators")
}

func describeToken(t *Token) string {
	switch t.Kind {
	case TokenIdentifier:
		return fmt.Sprintf("'%s'", t.Text)
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	case TokenInterpolation:
		return fmt.Sprintf("interpolation o%q", t.Text)
	case TokenNumber:
		return "number " + t.Text
	case TokenOperator:
		return fmt.Sprintf("operator '%s'", t.Text)
	case TokenNewline:
		return "end of line"
	}
	return t.Kind.String()
}
