package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/vort/vortlang"
	"go.starlark.net/starlark"
)

// starlarkValue maps strings to starlark strings and numbers to floats.
func starlarkValue(v vortlang.Value) starlark.Value {
	switch v.Kind {
	case vortlang.KindString:
		return starlark.String(v.Str)
	case vortlang.KindNumber:
		return starlark.Float(v.Num)
	}
	return starlark.None
}

func variableDict(v *vortlang.Variable) *starlark.Dict {
	d := starlark.NewDict(4)
	d.SetKey(starlark.String("name"), starlark.String(v.Name))
	d.SetKey(starlark.String("kind"), starlark.String(v.Kind().String()))
	d.SetKey(starlark.String("value"), starlarkValue(v.Value))
	d.SetKey(starlark.String("reads"), starlark.MakeInt(v.Reads))
	return d
}

// goFunc exposes a plain Go function as a starlark callable.
func goFunc(name string, fn any) starlark.Value {
	if t := reflect.TypeOf(fn); t == nil || t.Kind() != reflect.Func {
		panic(fmt.Errorf("%s: not a function: %T", name, fn))
	}
	return starlarkutil.MakeFunc(name, fn)
}

// infoBuiltin returns info(name), the variable as a dict, or None when the
// program never declared it.
func infoBuiltin(table *vortlang.SymbolTable) *starlark.Builtin {
	return starlark.NewBuiltin("info", func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		v, ok := table.Get(name)
		if !ok {
			return starlark.None, nil
		}
		return variableDict(v), nil
	})
}
