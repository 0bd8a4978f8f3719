package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/vort/logs"
	"github.com/reusee/vort/vortlang"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL on stdin with every program variable bound
// as a global. vars() lists variable names in declaration order and
// info(name) returns kind, value and read count.
type Tap func(ctx context.Context, what string, table *vortlang.SymbolTable)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, table *vortlang.SymbolTable) {
		globals := Globals(table)
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, globals)
	}
}

// Globals converts the symbol table into starlark globals.
func Globals(table *vortlang.SymbolTable) starlark.StringDict {
	globals := make(starlark.StringDict)
	var names []string
	for v := range table.Variables() {
		names = append(names, v.Name)
		globals[v.Name] = starlarkValue(v.Value)
	}
	globals["vars"] = goFunc("vars", func() []string {
		return names
	})
	globals["info"] = infoBuiltin(table)
	return globals
}
