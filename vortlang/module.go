package vortlang

import (
	"context"
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/vort/logs"
)

// Module provides the interpreter. Options come from the enclosing scope.
type Module struct {
	dscope.Module
	Logs logs.Module
}

type Stdout io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

func (Module) Interpreter(
	options Options,
	stdout Stdout,
	logger logs.Logger,
) *Interpreter {
	return &Interpreter{
		Options: options,
		Stdout:  stdout,
		Logger:  logger,
	}
}

// Run executes a whole program in its own span.
type Run func(ctx context.Context, source *Source) (*Result, error)

func (Module) Run(
	interpreter *Interpreter,
	newSpan logs.NewSpan,
) Run {
	return func(ctx context.Context, source *Source) (*Result, error) {
		ctx, _ = newSpan(ctx, source.Name, "")
		result, err := interpreter.Run(ctx, source)
		if err != nil {
			return result, logs.WrapSpan(ctx, err)
		}
		return result, nil
	}
}
