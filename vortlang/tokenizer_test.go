package vortlang

import (
	"fmt"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize(NewSource("", `num x = (2 plus 3.5) * y_1 // done
print(o"{x}")`), LexOptions{})
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, tok := range tokens {
		got = append(got, fmt.Sprintf("%d:%d %s", tok.Pos.Line, tok.Pos.Column, tok))
	}
	expected := []string{
		"1:1 'num' num",
		"1:5 identifier x",
		"1:7 '=' =",
		"1:9 '(' (",
		"1:10 number 2",
		"1:12 operator plus",
		"1:17 number 3.5",
		"1:20 ')' )",
		"1:22 operator *",
		"1:24 identifier y_1",
		"1:35 newline",
		"2:1 'print' print",
		"2:6 '(' (",
		"2:7 interpolation o\"{x}\"",
		"2:13 ')' )",
		"2:14 end of input",
	}
	if strings.Join(got, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("got\n%s", strings.Join(got, "\n"))
	}
}

func TestTokenizeOperators(t *testing.T) {
	for text, op := range map[string]Operator{
		"+":        OpAdd,
		"plus":     OpAdd,
		"-":        OpSub,
		"minus":    OpSub,
		"*":        OpMul,
		"times":    OpMul,
		"multiply": OpMul,
		"/":        OpDiv,
		"divide":   OpDiv,
	} {
		tokens, err := Tokenize(NewSource("", text), LexOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if tokens[0].Kind != TokenOperator || tokens[0].Op != op {
			t.Fatalf("%s: got %v", text, tokens[0])
		}
	}

	// operator words are whole words only
	tokens, err := Tokenize(NewSource("", "plusx timesy"), LexOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Kind != TokenIdentifier || tokens[1].Kind != TokenIdentifier {
		t.Fatalf("got %v %v", tokens[0], tokens[1])
	}
}

func TestTokenizeNumbers(t *testing.T) {
	for text, expected := range map[string]float64{
		"0":         0,
		"42":        42,
		"1_000_000": 1000000,
		"3.25":      3.25,
		"7.":        7,
	} {
		tokens, err := Tokenize(NewSource("", text), LexOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if tokens[0].Kind != TokenNumber || tokens[0].Number != expected {
			t.Fatalf("%s: got %v", text, tokens[0])
		}
		if tokens[0].Text != text {
			t.Fatalf("got %q", tokens[0].Text)
		}
	}

	for text, column := range map[string]int{
		"1_":    2,
		"1__0":  2,
		"1._5":  3,
		"1_.5":  2,
		"12_3_": 5,
	} {
		_, err := Tokenize(NewSource("", text), LexOptions{})
		d, ok := AsDiagnostic(err)
		if !ok || d.Kind != ErrLex || !strings.Contains(err.Error(), "misplaced '_'") {
			t.Fatalf("%s: got %v", text, err)
		}
		if d.Pos.Column != column {
			t.Fatalf("%s: got %v", text, d.Pos)
		}
	}

	_, err := Tokenize(NewSource("", strings.Repeat("9", 400)), LexOptions{})
	if !IsKind(err, ErrLex) || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("got %v", err)
	}
}

func TestTokenizeStrings(t *testing.T) {
	tokens, err := Tokenize(NewSource("", `"a\nb\t\\\"\r" o"x" o`), LexOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Kind != TokenString || tokens[0].Text != "a\nb\t\\\"\r" {
		t.Fatalf("got %q", tokens[0].Text)
	}
	if tokens[1].Kind != TokenInterpolation || tokens[1].Text != "x" {
		t.Fatalf("got %v", tokens[1])
	}
	if tokens[2].Kind != TokenIdentifier || tokens[2].Text != "o" {
		t.Fatalf("got %v", tokens[2])
	}

	for src, pos := range map[string][2]int{
		`"abc`:         {1, 1},
		"x = \"ab\ncd": {1, 5},
		`"a\`:          {1, 1},
		`"\x"`:         {1, 2},
		`let s = @`:    {1, 9},
		"\n\n  日":      {3, 3},
	} {
		_, err := Tokenize(NewSource("", src), LexOptions{})
		d, ok := AsDiagnostic(err)
		if !ok || d.Kind != ErrLex || d.Stage != StageLex {
			t.Fatalf("%q: got %v", src, err)
		}
		if d.Pos.Line != pos[0] || d.Pos.Column != pos[1] {
			t.Fatalf("%q: got %v", src, d.Pos)
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	tokens, err := Tokenize(NewSource("", "-- note\nnum x = 1 -- tail"), LexOptions{Comment: "--"})
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind.String())
	}
	if got := strings.Join(kinds, ","); got != "newline,'num',identifier,'=',number,end of input" {
		t.Fatalf("got %s", got)
	}

	// a comment marker inside a string is text
	tokens, err = Tokenize(NewSource("", `"// not a comment"`), LexOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Text != "// not a comment" {
		t.Fatalf("got %q", tokens[0].Text)
	}
}

func TestTokenizerStream(t *testing.T) {
	tokenizer := NewTokenizer(NewSource("", "print(x)"), LexOptions{})
	tok, err := tokenizer.Current()
	if err != nil {
		t.Fatal(err)
	}
	again, err := tokenizer.Current()
	if err != nil {
		t.Fatal(err)
	}
	if tok != again {
		t.Fatal("Current should not advance")
	}
	tokenizer.Consume()
	tok, err = tokenizer.Current()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != TokenLeftParen {
		t.Fatalf("got %v", tok)
	}

	// Tokens restarts on every iteration
	source := NewSource("", "a b")
	for range 2 {
		n := 0
		for _, err := range source.Tokens(LexOptions{}) {
			if err != nil {
				t.Fatal(err)
			}
			n++
		}
		if n != 3 {
			t.Fatalf("got %d", n)
		}
	}
}
