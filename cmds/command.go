package cmds

import (
	"fmt"
	"reflect"
)

// Command is either a function taking its arguments from the following
// args, or a set of sub commands visible after it, or both.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

// Func wraps fn, which must return nothing or a single error.
func Func(fn any) *Command {
	if err := checkFunc(reflect.TypeOf(fn)); err != nil {
		panic(err)
	}
	return &Command{
		Func: reflect.ValueOf(fn),
	}
}

func checkFunc(t reflect.Type) error {
	if t == nil || t.Kind() != reflect.Func {
		return fmt.Errorf("command must be a function, got %v", t)
	}
	switch {
	case t.NumOut() == 0:
	case t.NumOut() == 1 && t.Out(0) == errorType:
	default:
		return fmt.Errorf("command %v must return nothing or an error", t)
	}
	return nil
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}
