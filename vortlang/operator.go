package vortlang

type Operator uint8

const (
	OpInvalid Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var operatorWords = map[string]Operator{
	"plus":     OpAdd,
	"minus":    OpSub,
	"times":    OpMul,
	"multiply": OpMul,
	"divide":   OpDiv,
}

var operatorSymbols = map[rune]Operator{
	'+': OpAdd,
	'-': OpSub,
	'*': OpMul,
	'/': OpDiv,
}

func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	}
	return "invalid"
}

// Precedence is higher for operators that bind tighter.
func (o Operator) Precedence() int {
	switch o {
	case OpMul, OpDiv:
		return 2
	case OpAdd, OpSub:
		return 1
	}
	return 0
}

func (o Operator) Apply(a, b float64) float64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	}
	panic("bad operator")
}
