package vortlang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type Options struct {
	Lex        LexOptions
	Redeclare  RedeclarePolicy
	WarnUnused bool
}

type Result struct {
	Output   []string
	Table    *SymbolTable
	Warnings []Warning
}

type Interpreter struct {
	Options Options
	Stdout  io.Writer // nil discards output
	Logger  *slog.Logger
}

func (i *Interpreter) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return i.Logger
}

// NewResult returns an empty result with a symbol table following the
// redeclaration policy.
func (i *Interpreter) NewResult() *Result {
	return &Result{
		Table: NewSymbolTable(i.Options.Redeclare),
	}
}

// Run lexes the whole source, then parses and executes one statement at a
// time. The first diagnostic stops the run; Result holds what was printed
// before it.
func (i *Interpreter) Run(ctx context.Context, source *Source) (*Result, error) {
	result := i.NewResult()
	if err := i.RunInto(ctx, source, result); err != nil {
		return result, err
	}
	i.finish(ctx, result)
	return result, nil
}

// RunInto executes source against the variables already in result.
// Printed lines are appended to result.Output.
func (i *Interpreter) RunInto(ctx context.Context, source *Source, result *Result) error {
	logger := i.logger()

	tokens, err := Tokenize(source, i.Options.Lex)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "lexed", "source", source.Name, "tokens", len(tokens))

	parser := NewParser(NewSliceTokenStream(tokens))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		stmt, err := parser.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line, printed, err := Exec(stmt, result.Table)
		if err != nil {
			return err
		}
		logger.DebugContext(ctx, "executed", "statement", fmt.Sprintf("%T", stmt), "pos", stmt.StmtPos().String())
		if !printed {
			continue
		}
		result.Output = append(result.Output, line)
		if i.Stdout != nil {
			if _, err := fmt.Fprintln(i.Stdout, line); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}
}

// Check parses the whole program, then evaluates it without writing output.
func (i *Interpreter) Check(ctx context.Context, source *Source) (*Program, *Result, error) {
	result := i.NewResult()
	program, err := ParseProgram(source, i.Options.Lex)
	if err != nil {
		return nil, result, err
	}
	for _, stmt := range program.Statements {
		if err := ctx.Err(); err != nil {
			return program, result, err
		}
		line, printed, err := Exec(stmt, result.Table)
		if err != nil {
			return program, result, err
		}
		if printed {
			result.Output = append(result.Output, line)
		}
	}
	i.finish(ctx, result)
	return program, result, nil
}

func (i *Interpreter) finish(ctx context.Context, result *Result) {
	result.Warnings = Analyze(result.Table)
	if !i.Options.WarnUnused {
		return
	}
	logger := i.logger()
	for _, w := range result.Warnings {
		logger.WarnContext(ctx, w.Message, "pos", w.Pos.String())
	}
}

// Exec executes one statement. For print statements it returns the line
// to print and true.
func Exec(stmt Statement, table *SymbolTable) (string, bool, error) {
	switch stmt := stmt.(type) {

	case *StringDecl:
		value, err := evalString(stmt.Expr, table, stmt.Name)
		if err != nil {
			return "", false, err
		}
		if value.Kind != KindString {
			return "", false, newDiagnostic(ErrType, stmt.Expr.Pos, fmt.Sprintf(
				"cannot declare string variable '%s' with a %s value", stmt.Name, value.Kind,
			)).withHint("use 'num %s = ...' for numbers", stmt.Name)
		}
		return "", false, table.Declare(stmt.Name, value, stmt.NamePos)

	case *NumberDecl:
		value, err := stmt.Expr.Eval(table)
		if err != nil {
			return "", false, err
		}
		if value.Kind != KindNumber {
			return "", false, newDiagnostic(ErrType, stmt.Expr.Pos, fmt.Sprintf(
				"cannot declare number variable '%s' with a %s value", stmt.Name, value.Kind,
			)).withHint("use 'let %s = ...' for strings", stmt.Name)
		}
		return "", false, table.Declare(stmt.Name, value, stmt.NamePos)

	case *Assign:
		v, ok := table.Get(stmt.Name)
		if !ok {
			return "", false, undefinedVariable(stmt.Name, stmt.Pos).
				withHint("declare it first with 'let %s = ...' or 'num %s = ...'", stmt.Name, stmt.Name)
		}
		var value Value
		var err error
		if v.Kind() == KindString {
			value, err = evalString(stmt.Expr, table, stmt.Name)
		} else {
			value, err = stmt.Expr.Eval(table)
		}
		if err != nil {
			return "", false, err
		}
		return "", false, table.Assign(stmt.Name, value, stmt.Expr.Pos)

	case *Print:
		switch stmt.Target.Kind {
		case TokenString:
			return stmt.Target.Text, true, nil
		case TokenIdentifier:
			v, err := table.Lookup(stmt.Target.Text, stmt.Target.Pos)
			if err != nil {
				return "", false, err
			}
			return v.Value.Text(), true, nil
		case TokenInterpolation:
			tpl := stmt.Template
			if tpl == nil {
				tpl = TokenTemplate(stmt.Target)
			}
			text, err := tpl.Expand(table)
			if err != nil {
				return "", false, err
			}
			return text, true, nil
		}
		return "", false, newDiagnostic(ErrParse, stmt.Target.Pos, fmt.Sprintf("cannot print %s", describeToken(stmt.Target)))
	}

	panic(fmt.Errorf("unknown statement type %T", stmt))
}

// evalString evaluates the right side of a string binding, which never
// accepts arithmetic.
func evalString(expr *Expr, table *SymbolTable, name string) (Value, error) {
	if op := expr.firstOperator(); op != nil {
		return Value{}, newDiagnostic(ErrType, op.Pos, fmt.Sprintf(
			"string variable '%s' cannot be assigned arithmetic ('%s')", name, op.Text,
		)).withHint("use 'num' for numeric values; strings take a literal or a string variable")
	}
	return expr.Eval(table)
}
