package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/vort/cmds"
	"github.com/reusee/vort/debugs"
	"github.com/reusee/vort/logs"
	"github.com/reusee/vort/modes"
	"github.com/reusee/vort/vortc"
	"github.com/reusee/vort/vortlang"
)

type action func(ctx context.Context, scope dscope.Scope) error

var todo action

var outputPath = cmds.Var[string]("-o", "output path for emit")

var checkPaths []string

func init() {
	cmds.Define("run", cmds.Func(func(path string) {
		todo = func(ctx context.Context, scope dscope.Scope) (err error) {
			source, err := readSource(path)
			if err != nil {
				return err
			}
			scope.Call(func(run vortlang.Run) {
				_, err = run(ctx, source)
			})
			return
		}
	}).Desc("interpret a program, - for stdin"))

	cmds.Define("check", cmds.Func(func(path string) {
		checkPaths = append(checkPaths, path)
		todo = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(interpreter *vortlang.Interpreter) {
				err = checkAll(ctx, interpreter, checkPaths)
			})
			return
		}
	}).Desc("evaluate programs without printing, repeatable"))

	cmds.Define("emit", cmds.Func(func(path string) {
		todo = func(ctx context.Context, scope dscope.Scope) (err error) {
			source, err := readSource(path)
			if err != nil {
				return err
			}
			var code string
			scope.Call(func(interpreter *vortlang.Interpreter) {
				code, err = vortc.Compile(ctx, source, interpreter)
			})
			if err != nil {
				return err
			}
			if *outputPath == "" {
				_, err = os.Stdout.WriteString(code)
				return err
			}
			if err := os.WriteFile(*outputPath, []byte(code), 0644); err != nil {
				return fmt.Errorf("write C source: %w", err)
			}
			return nil
		}
	}).Desc("translate a program to C, written to stdout or -o"))

	cmds.Define("tokens", cmds.Func(func(path string) {
		todo = func(ctx context.Context, scope dscope.Scope) (err error) {
			source, err := readSource(path)
			if err != nil {
				return err
			}
			scope.Call(func(options vortlang.Options) {
				for tok, e := range source.Tokens(options.Lex) {
					if e != nil {
						err = e
						return
					}
					fmt.Printf("%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
				}
			})
			return
		}
	}).Desc("print the tokens of a program"))

	cmds.Define("tap", cmds.Func(func(path string) {
		todo = func(ctx context.Context, scope dscope.Scope) (err error) {
			source, err := readSource(path)
			if err != nil {
				return err
			}
			scope.Call(func(run vortlang.Run, tap debugs.Tap) {
				var result *vortlang.Result
				result, err = run(ctx, source)
				if err != nil {
					return
				}
				tap(ctx, source.Name, result.Table)
			})
			return
		}
	}).Desc("run a program, then inspect its variables in a starlark repl"))

	cmds.Define("repl", cmds.Func(func() {
		todo = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(interpreter *vortlang.Interpreter) {
				err = runREPL(ctx, interpreter)
			})
			return
		}
	}).Desc("read and run statements interactively"))
}

func main() {
	cmds.Execute(os.Args[1:])
	if todo == nil {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	ctx := context.Background()
	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	if err := todo(ctx, scope); err != nil {
		scope.Call(func(logger logs.Logger) {
			logger.DebugContext(ctx, "failed", "error", err)
		})
		var reported reportedError
		if errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, reported.summary)
		} else {
			reportError(err)
		}
		os.Exit(1)
	}
}

// reportError prints diagnostics in their source-annotated form and other
// errors as a single line.
func reportError(err error) {
	if d, ok := vortlang.AsDiagnostic(err); ok {
		fmt.Fprintln(os.Stderr, d.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
