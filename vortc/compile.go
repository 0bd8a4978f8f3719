package vortc

import (
	"context"

	"github.com/reusee/vort/vortlang"
)

// Compile checks source by evaluating it without output, then emits C.
// Programs that fail evaluation are never emitted.
func Compile(ctx context.Context, source *vortlang.Source, interpreter *vortlang.Interpreter) (string, error) {
	prog, _, err := interpreter.Check(ctx, source)
	if err != nil {
		return "", err
	}
	return Emit(prog)
}
