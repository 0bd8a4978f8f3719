package vortlang

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v3"
)

type programCase struct {
	Name           string   `yaml:"name"`
	Source         string   `yaml:"source"`
	Comment        string   `yaml:"comment"`
	AllowRedeclare bool     `yaml:"allow_redeclare"`
	Output         []string `yaml:"output"`
	Error          string   `yaml:"error"`
	Line           int      `yaml:"line"`
	Column         int      `yaml:"column"`
	Message        string   `yaml:"message"`
}

var kindsByName = map[string]*errors.Kind{
	"LexError":           ErrLex,
	"ParseError":         ErrParse,
	"TypeError":          ErrType,
	"UndefinedVariable":  ErrUndefinedVariable,
	"RedeclarationError": ErrRedeclaration,
	"DivisionByZero":     ErrDivisionByZero,
	"NumericOverflow":    ErrNumericOverflow,
}

func loadProgramCases(t *testing.T) []programCase {
	t.Helper()
	content, err := os.ReadFile("testdata/programs.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var cases []programCase
	if err := yaml.Unmarshal(content, &cases); err != nil {
		t.Fatal(err)
	}
	if len(cases) == 0 {
		t.Fatal("no cases")
	}
	return cases
}

func TestPrograms(t *testing.T) {
	for _, c := range loadProgramCases(t) {
		t.Run(c.Name, func(t *testing.T) {
			options := Options{
				Lex: LexOptions{
					Comment: c.Comment,
				},
			}
			if c.AllowRedeclare {
				options.Redeclare = RedeclareSameKind
			}
			stdout := new(bytes.Buffer)
			interpreter := &Interpreter{
				Options: options,
				Stdout:  stdout,
			}

			result, err := interpreter.Run(t.Context(), NewSource("test.vort", c.Source))

			if !slices.Equal(result.Output, c.Output) {
				t.Fatalf("got output %q, want %q", result.Output, c.Output)
			}
			var printed []string
			if stdout.Len() > 0 {
				printed = strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
			}
			if !slices.Equal(printed, c.Output) {
				t.Fatalf("got stdout %q, want %q", stdout.String(), c.Output)
			}

			if c.Error == "" {
				if err != nil {
					t.Fatalf("got %v", err)
				}
				return
			}

			kind, ok := kindsByName[c.Error]
			if !ok {
				t.Fatalf("bad error name %s", c.Error)
			}
			if !IsKind(err, kind) {
				t.Fatalf("got %v, want %s", err, c.Error)
			}
			d, _ := AsDiagnostic(err)
			if d.Pos.Line != c.Line || d.Pos.Column != c.Column {
				t.Fatalf("got position %d:%d, want %d:%d\n%v", d.Pos.Line, d.Pos.Column, c.Line, c.Column, err)
			}
			if !strings.Contains(d.Message(), c.Message) {
				t.Fatalf("got message %q, want %q", d.Message(), c.Message)
			}
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	src := NewSource("", `
num a = 1_000 / 3
let s = "x"
print(o"{s}={a}")
num b = a times 3
print(b)
`)
	var outputs [][]string
	for range 3 {
		result, err := new(Interpreter).Run(t.Context(), src)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, result.Output)
	}
	for _, output := range outputs[1:] {
		if !slices.Equal(output, outputs[0]) {
			t.Fatalf("got %q and %q", outputs[0], output)
		}
	}
}

func TestRunInto(t *testing.T) {
	interpreter := new(Interpreter)
	result := interpreter.NewResult()
	ctx := t.Context()

	if err := interpreter.RunInto(ctx, NewSource("<1>", `num x = 2`), result); err != nil {
		t.Fatal(err)
	}
	err := interpreter.RunInto(ctx, NewSource("<2>", `print(y)`), result)
	if !IsKind(err, ErrUndefinedVariable) {
		t.Fatalf("got %v", err)
	}
	if err := interpreter.RunInto(ctx, NewSource("<3>", `x = x times 21; print(x)`), result); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(result.Output, []string{"42"}) {
		t.Fatalf("got %q", result.Output)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := new(Interpreter).Run(ctx, NewSource("", `print("x")`))
	if err != context.Canceled {
		t.Fatalf("got %v", err)
	}
}

func TestCheckCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	program, result, err := new(Interpreter).Check(ctx, NewSource("", "num x = 1\nprint(x)"))
	if err != context.Canceled {
		t.Fatalf("got %v", err)
	}
	if program == nil || len(result.Output) != 0 {
		t.Fatalf("got %v %q", program, result.Output)
	}
	if _, ok := result.Table.Get("x"); ok {
		t.Fatal("statement ran after cancel")
	}
}

func TestCheck(t *testing.T) {
	stdout := new(bytes.Buffer)
	interpreter := &Interpreter{
		Stdout: stdout,
	}
	program, result, err := interpreter.Check(t.Context(), NewSource("", `
num x = 1
print(x)
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(program.Statements) != 2 {
		t.Fatalf("got %d", len(program.Statements))
	}
	if stdout.Len() != 0 {
		t.Fatalf("got %q", stdout.String())
	}
	if !slices.Equal(result.Output, []string{"1"}) {
		t.Fatalf("got %q", result.Output)
	}

	// a parse error anywhere fails before evaluation
	_, result, err = interpreter.Check(t.Context(), NewSource("", `
num x = 10 divide 0
num y = (
`))
	if !IsKind(err, ErrParse) {
		t.Fatalf("got %v", err)
	}
	if result.Table.Len() != 0 {
		t.Fatal()
	}
}

func TestUnusedWarnings(t *testing.T) {
	logs := new(bytes.Buffer)
	interpreter := &Interpreter{
		Options: Options{
			WarnUnused: true,
		},
		Logger: slog.New(slog.NewTextHandler(logs, nil)),
	}
	result, err := interpreter.Run(t.Context(), NewSource("w.vort", `
num used = 1
let unused = "x"
num also = used
print(used)
`))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, w := range result.Warnings {
		names = append(names, w.Name)
	}
	if !slices.Equal(names, []string{"unused", "also"}) {
		t.Fatalf("got %v", names)
	}
	if result.Warnings[0].Pos.Line != 3 || result.Warnings[0].Pos.Column != 5 {
		t.Fatalf("got %v", result.Warnings[0].Pos)
	}
	if !strings.Contains(logs.String(), "unused variable 'unused'") ||
		!strings.Contains(logs.String(), "pos=\"w.vort:(3, 5)\"") {
		t.Fatalf("got %q", logs.String())
	}

	interpreter.Options.WarnUnused = false
	logs.Reset()
	result, err = interpreter.Run(t.Context(), NewSource("", `num x = 1`))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %v", result.Warnings)
	}
	if logs.Len() != 0 {
		t.Fatalf("got %q", logs.String())
	}
}
