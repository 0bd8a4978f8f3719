package vortlang

import (
	"errors"
	"fmt"
	"testing"
)

func TestDiagnosticError(t *testing.T) {
	_, err := new(Interpreter).Run(t.Context(), NewSource("calc.vort", "num a = 1\nnum x = 10 divide 0\n"))
	expected := `Runtime Error: division by zero
  at calc.vort:(2, 12)
num x = 10 divide 0
           ^
Hint: the divisor number 0 evaluates to 0`
	if err.Error() != expected {
		t.Fatalf("got\n%s", err.Error())
	}
}

func TestDiagnosticWideRunes(t *testing.T) {
	_, err := new(Interpreter).Run(t.Context(), NewSource("", `let s = "日本" plus "x"`))
	expected := `Eval Error: string variable 's' cannot be assigned arithmetic ('plus')
  at <input>:(1, 14)
let s = "日本" plus "x"
               ^
Hint: use 'num' for numeric values; strings take a literal or a string variable`
	if err.Error() != expected {
		t.Fatalf("got\n%s", err.Error())
	}
}

func TestDiagnosticWithoutSource(t *testing.T) {
	d := newDiagnostic(ErrUndefinedVariable, Pos{Line: 1, Column: 1}, "x")
	if got := d.Error(); got != "Eval Error: undefined variable 'x'\n  at <input>:(1, 1)" {
		t.Fatalf("got %q", got)
	}
}

func TestDiagnosticKinds(t *testing.T) {
	d := newDiagnostic(ErrDivisionByZero, Pos{})
	wrapped := fmt.Errorf("run: %w", d)

	if !IsKind(wrapped, ErrDivisionByZero) {
		t.Fatal()
	}
	if IsKind(wrapped, ErrType) {
		t.Fatal()
	}
	if !ErrDivisionByZero.Is(errors.Unwrap(d)) {
		t.Fatal()
	}
	got, ok := AsDiagnostic(wrapped)
	if !ok || got != d {
		t.Fatalf("got %v", got)
	}
	if _, ok := AsDiagnostic(errors.New("plain")); ok {
		t.Fatal()
	}
	if IsKind(errors.New("plain"), ErrLex) {
		t.Fatal()
	}

	for kind, stage := range map[*Diagnostic]Stage{
		newDiagnostic(ErrLex, Pos{}, "x"):               StageLex,
		newDiagnostic(ErrParse, Pos{}, "x"):             StageParse,
		newDiagnostic(ErrType, Pos{}, "x"):              StageEval,
		newDiagnostic(ErrRedeclaration, Pos{}, "x"):     StageEval,
		newDiagnostic(ErrNumericOverflow, Pos{}, "'+'"): StageRuntime,
	} {
		if kind.Stage != stage {
			t.Fatalf("%v: got %v", kind, kind.Stage)
		}
	}
}

func TestCaretPadding(t *testing.T) {
	for _, c := range []struct {
		line     string
		column   int
		expected string
	}{
		{"abc", 1, ""},
		{"abc", 3, "  "},
		{"\tx", 2, "\t"},
		{"日x", 2, "  "},
		{"ｘy", 2, "  "},
	} {
		if got := caretPadding(c.line, c.column); got != c.expected {
			t.Fatalf("%q %d: got %q", c.line, c.column, got)
		}
	}
}
