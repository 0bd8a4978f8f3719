package vortc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reusee/vort/vortlang"
)

// Emit translates a checked program into C source.
func Emit(prog *vortlang.Program) (string, error) {
	buf := new(bytes.Buffer)
	if err := EmitTo(buf, prog); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func EmitTo(w io.Writer, prog *vortlang.Program) error {
	e := &emitter{
		kinds: make(map[string]vortlang.Kind),
	}
	for _, stmt := range prog.Statements {
		if err := e.statement(stmt); err != nil {
			return err
		}
	}

	sourceName := "<input>"
	if prog.Source != nil && prog.Source.Name != "" {
		sourceName = prog.Source.Name
	}

	out := new(bytes.Buffer)
	fmt.Fprintf(out, prelude, cString(sourceName))
	if len(e.globals) > 0 {
		out.WriteString("\n")
		for _, name := range e.globals {
			fmt.Fprintln(out, globalDecl(name, e.kinds[name]))
		}
	}
	out.WriteString("\nint main(void) {\n")
	out.WriteString(e.body.String())
	out.WriteString("\treturn 0;\n}\n")

	_, err := w.Write(out.Bytes())
	return err
}

type emitter struct {
	kinds   map[string]vortlang.Kind
	globals []string
	body    strings.Builder
}

func globalDecl(name string, kind vortlang.Kind) string {
	if kind == vortlang.KindString {
		return fmt.Sprintf("static const char *%s = \"\";", cName(name))
	}
	return fmt.Sprintf("static double %s = 0;", cName(name))
}

func cName(name string) string {
	return "v_" + name
}

func (e *emitter) line(format string, args ...any) {
	e.body.WriteString("\t")
	fmt.Fprintf(&e.body, format, args...)
	e.body.WriteString("\n")
}

func (e *emitter) declare(name string, kind vortlang.Kind, pos vortlang.Pos) error {
	if prev, ok := e.kinds[name]; ok {
		if prev != kind {
			return fmt.Errorf("%s: cannot emit '%s' as %s, declared as %s", pos, name, kind, prev)
		}
		return nil
	}
	e.kinds[name] = kind
	e.globals = append(e.globals, name)
	return nil
}

func (e *emitter) statement(stmt vortlang.Statement) error {
	switch stmt := stmt.(type) {

	case *vortlang.StringDecl:
		value, err := e.stringExpr(stmt.Expr)
		if err != nil {
			return err
		}
		if err := e.declare(stmt.Name, vortlang.KindString, stmt.Pos); err != nil {
			return err
		}
		e.line("%s = %s;", cName(stmt.Name), value)

	case *vortlang.NumberDecl:
		value, err := e.numberExpr(stmt.Expr)
		if err != nil {
			return err
		}
		if err := e.declare(stmt.Name, vortlang.KindNumber, stmt.Pos); err != nil {
			return err
		}
		e.line("%s = %s;", cName(stmt.Name), value)

	case *vortlang.Assign:
		kind, ok := e.kinds[stmt.Name]
		if !ok {
			return fmt.Errorf("%s: assignment to undeclared '%s'", stmt.Pos, stmt.Name)
		}
		var value string
		var err error
		if kind == vortlang.KindString {
			value, err = e.stringExpr(stmt.Expr)
		} else {
			value, err = e.numberExpr(stmt.Expr)
		}
		if err != nil {
			return err
		}
		e.line("%s = %s;", cName(stmt.Name), value)

	case *vortlang.Print:
		return e.print(stmt)

	default:
		return fmt.Errorf("unknown statement type %T", stmt)
	}
	return nil
}

func (e *emitter) print(stmt *vortlang.Print) error {
	switch stmt.Target.Kind {

	case vortlang.TokenString:
		e.line("puts(%s);", cString(stmt.Target.Text))

	case vortlang.TokenIdentifier:
		if err := e.printVar(stmt.Target.Text, stmt.Target.Pos); err != nil {
			return err
		}
		e.line("putchar('\\n');")

	case vortlang.TokenInterpolation:
		tpl := stmt.Template
		if tpl == nil {
			tpl = vortlang.TokenTemplate(stmt.Target)
		}
		for _, part := range tpl.Parts {
			if !part.IsPlaceholder() {
				e.line("fputs(%s, stdout);", cString(part.Literal))
				continue
			}
			if err := e.printVar(part.Name, part.Pos); err != nil {
				return err
			}
		}
		e.line("putchar('\\n');")

	default:
		return fmt.Errorf("%s: cannot emit print of %s", stmt.Target.Pos, stmt.Target.Kind)
	}
	return nil
}

func (e *emitter) printVar(name string, pos vortlang.Pos) error {
	kind, ok := e.kinds[name]
	if !ok {
		return fmt.Errorf("%s: print of undeclared '%s'", pos, name)
	}
	if kind == vortlang.KindString {
		e.line("fputs(%s, stdout);", cName(name))
	} else {
		e.line("vort_print_num(%s);", cName(name))
	}
	return nil
}

func (e *emitter) stringExpr(expr *vortlang.Expr) (string, error) {
	t, ok := expr.Single()
	if !ok {
		return "", fmt.Errorf("%s: string expressions cannot contain operators", expr.Pos)
	}
	switch t.Kind {
	case vortlang.TokenString:
		return cString(t.Text), nil
	case vortlang.TokenIdentifier:
		if e.kinds[t.Text] != vortlang.KindString {
			return "", fmt.Errorf("%s: '%s' is not a string variable", t.Pos, t.Text)
		}
		return cName(t.Text), nil
	}
	return "", fmt.Errorf("%s: unexpected %s in string expression", t.Pos, t.Kind)
}

// numberExpr rebuilds a parenthesized C expression from postfix order.
func (e *emitter) numberExpr(expr *vortlang.Expr) (string, error) {
	var stack []string
	for _, t := range expr.Postfix {
		switch t.Kind {

		case vortlang.TokenNumber:
			stack = append(stack, cNumber(t.Number))

		case vortlang.TokenIdentifier:
			if e.kinds[t.Text] != vortlang.KindNumber {
				return "", fmt.Errorf("%s: '%s' is not a number variable", t.Pos, t.Text)
			}
			stack = append(stack, cName(t.Text))

		case vortlang.TokenOperator:
			if len(stack) < 2 {
				return "", fmt.Errorf("%s: missing operand for '%s'", t.Pos, t.Text)
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			if t.Op == vortlang.OpDiv {
				stack = append(stack, fmt.Sprintf("vort_div(%s, %s, %d, %d)", a, b, t.Pos.Line, t.Pos.Column))
			} else {
				stack = append(stack, fmt.Sprintf("(%s %s %s)", a, t.Op.Symbol(), b))
			}

		default:
			return "", fmt.Errorf("%s: unexpected %s in number expression", t.Pos, t.Kind)
		}
	}
	if len(stack) != 1 {
		return "", fmt.Errorf("%s: invalid expression", expr.Pos)
	}
	return stack[0], nil
}

// cNumber renders a double literal that reads back exactly.
func cNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', 17, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

var cEscapes = map[byte]string{
	'\\': `\\`,
	'"':  `\"`,
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	'?':  `\?`,
}

func cString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range []byte(s) {
		if esc, ok := cEscapes[c]; ok {
			b.WriteString(esc)
			continue
		}
		if c < 0x20 || c == 0x7f {
			fmt.Fprintf(&b, `\%03o`, c)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
