package vortlang

import (
	goerrors "errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"
	"gopkg.in/src-d/go-errors.v1"
)

type Stage uint8

const (
	StageLex Stage = iota + 1
	StageParse
	StageEval
	StageRuntime
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "Lex"
	case StageParse:
		return "Parse"
	case StageEval:
		return "Eval"
	case StageRuntime:
		return "Runtime"
	}
	return "Unknown"
}

var (
	ErrLex               = errors.NewKind("%s")
	ErrParse             = errors.NewKind("%s")
	ErrType              = errors.NewKind("%s")
	ErrUndefinedVariable = errors.NewKind("undefined variable '%s'")
	ErrRedeclaration     = errors.NewKind("variable '%s' is already declared")
	ErrDivisionByZero    = errors.NewKind("division by zero")
	ErrNumericOverflow   = errors.NewKind("result of %s is not a finite number")
)

var kindStages = map[*errors.Kind]Stage{
	ErrLex:               StageLex,
	ErrParse:             StageParse,
	ErrType:              StageEval,
	ErrUndefinedVariable: StageEval,
	ErrRedeclaration:     StageEval,
	ErrDivisionByZero:    StageRuntime,
	ErrNumericOverflow:   StageRuntime,
}

// Diagnostic is the failure value returned by every stage of the pipeline.
type Diagnostic struct {
	Stage Stage
	Kind  *errors.Kind
	Err   error
	Pos   Pos
	Hint  string
}

var _ error = new(Diagnostic)

func newDiagnostic(kind *errors.Kind, pos Pos, args ...any) *Diagnostic {
	return &Diagnostic{
		Stage: kindStages[kind],
		Kind:  kind,
		Err:   kind.New(args...),
		Pos:   pos,
	}
}

func (d *Diagnostic) withHint(format string, args ...any) *Diagnostic {
	d.Hint = fmt.Sprintf(format, args...)
	return d
}

func (d *Diagnostic) Message() string {
	return d.Err.Error()
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Error: %s\n", d.Stage, d.Message())
	fmt.Fprintf(&sb, "  at %s\n", d.Pos)

	if d.Pos.Source != nil {
		if line, ok := d.Pos.Source.Line(d.Pos.Line); ok {
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(caretPadding(line, d.Pos.Column))
			sb.WriteString("^\n")
		}
	}

	if d.Hint != "" {
		fmt.Fprintf(&sb, "Hint: %s\n", d.Hint)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func caretPadding(line string, column int) string {
	var sb strings.Builder
	col := column - 1
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		i++
		if r == '\t' {
			sb.WriteString("\t")
			continue
		}
		for range runeWidth(r) {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func AsDiagnostic(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if goerrors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// IsKind reports whether err is a diagnostic of the given kind.
func IsKind(err error, kind *errors.Kind) bool {
	if d, ok := AsDiagnostic(err); ok {
		return d.Kind == kind
	}
	return kind.Is(err)
}
