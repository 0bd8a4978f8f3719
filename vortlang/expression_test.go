package vortlang

import (
	"math"
	"strings"
	"testing"
)

func parseExprText(t *testing.T, text string) (*Expr, error) {
	t.Helper()
	tokens, err := Tokenize(NewSource("", text), LexOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// drop EOF
	return ParseExpr(tokens[:len(tokens)-1], Pos{Line: 1, Column: 1})
}

func postfixText(e *Expr) string {
	parts := make([]string, 0, len(e.Postfix))
	for _, t := range e.Postfix {
		if t.Kind == TokenOperator {
			parts = append(parts, t.Op.Symbol())
			continue
		}
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

func TestParseExprPostfix(t *testing.T) {
	for text, expected := range map[string]string{
		"1":                      "1",
		"2 plus 3 times 4":       "2 3 4 * +",
		"(2 plus 3) times 4":     "2 3 + 4 *",
		"10 - 4 - 3":             "10 4 - 3 -",
		"16 / 4 / 2":             "16 4 / 2 /",
		"a * (b + c) / d":        "a b c + * d /",
		"((1))":                  "1",
		"1 + 2 * 3 - 4 divide 2": "1 2 3 * + 4 2 / -",
	} {
		expr, err := parseExprText(t, text)
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if got := postfixText(expr); got != expected {
			t.Fatalf("%s: got %s, want %s", text, got, expected)
		}
	}
}

func TestEvalArithmetic(t *testing.T) {
	table := NewSymbolTable(RedeclareForbid)
	if err := table.Declare("n", NumberValue(5), Pos{}); err != nil {
		t.Fatal(err)
	}
	for text, expected := range map[string]float64{
		"2 plus 3 times 4":   14,
		"(2 plus 3) times 4": 20,
		"1_000_000":          1000000,
		"n times n minus 1":  24,
		"n / 2":              2.5,
		"(n)":                5,
	} {
		expr, err := parseExprText(t, text)
		if err != nil {
			t.Fatal(err)
		}
		v, err := expr.Eval(table)
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind != KindNumber || v.Num != expected {
			t.Fatalf("%s: got %v", text, v)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	for text, column := range map[string]int{
		"(5 plus 3":   1,
		"1 + (2 * (3": 5,
		"1 + 2)":      6,
		"1 +":         3,
		"* 2":         1,
		"1 2":         3,
		"(1)(2)":      4,
		"()":          2,
		`o"x"`:        1,
	} {
		_, err := parseExprText(t, text)
		d, ok := AsDiagnostic(err)
		if !ok || d.Kind != ErrParse || d.Stage != StageParse {
			t.Fatalf("%s: got %v", text, err)
		}
		if d.Pos.Column != column {
			t.Fatalf("%s: got column %d, want %d", text, d.Pos.Column, column)
		}
	}

	_, err := ParseExpr(nil, Pos{Line: 2, Column: 8})
	d, ok := AsDiagnostic(err)
	if !ok || d.Pos.Line != 2 || d.Pos.Column != 8 {
		t.Fatalf("got %v", err)
	}
}

func TestEvalErrors(t *testing.T) {
	table := NewSymbolTable(RedeclareForbid)
	if err := table.Declare("s", StringValue("x"), Pos{}); err != nil {
		t.Fatal(err)
	}
	if err := table.Declare("zero", NumberValue(0), Pos{}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		text   string
		kind   string
		column int
	}{
		{"10 divide 0", "division", 4},
		{"1 / zero", "division", 3},
		{"1 / (2 - 2)", "division", 3},
		{"s plus 1", "type", 1},
		{`1 + "a"`, "type", 5},
		{"missing * 2", "undefined", 1},
	}
	kinds := map[string]any{
		"division":  ErrDivisionByZero,
		"type":      ErrType,
		"undefined": ErrUndefinedVariable,
	}
	for _, c := range cases {
		expr, err := parseExprText(t, c.text)
		if err != nil {
			t.Fatal(err)
		}
		_, err = expr.Eval(table)
		d, ok := AsDiagnostic(err)
		if !ok || any(d.Kind) != kinds[c.kind] {
			t.Fatalf("%s: got %v", c.text, err)
		}
		if d.Pos.Column != c.column {
			t.Fatalf("%s: got column %d, want %d", c.text, d.Pos.Column, c.column)
		}
	}
}

func TestEvalOverflow(t *testing.T) {
	huge := &Token{Kind: TokenNumber, Text: "huge", Number: math.MaxFloat64}
	two := &Token{Kind: TokenNumber, Text: "2", Number: 2}
	times := &Token{Kind: TokenOperator, Text: "times", Op: OpMul, Pos: Pos{Line: 1, Column: 5}}
	expr := &Expr{
		Postfix:     []*Token{huge, two, times},
		HasOperator: true,
	}
	_, err := expr.Eval(NewSymbolTable(RedeclareForbid))
	if !IsKind(err, ErrNumericOverflow) {
		t.Fatalf("got %v", err)
	}
	d, _ := AsDiagnostic(err)
	if d.Stage != StageRuntime || d.Pos.Column != 5 {
		t.Fatalf("got %v", d)
	}
}

func TestEvalCountsReads(t *testing.T) {
	table := NewSymbolTable(RedeclareForbid)
	if err := table.Declare("n", NumberValue(1), Pos{}); err != nil {
		t.Fatal(err)
	}
	expr, err := parseExprText(t, "n + n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expr.Eval(table); err != nil {
		t.Fatal(err)
	}
	v, _ := table.Get("n")
	if v.Reads != 2 {
		t.Fatalf("got %d", v.Reads)
	}
}
