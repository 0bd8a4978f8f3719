package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Executor consumes args left to right, each arg naming a command that
// takes its arguments from the args following it.
type Executor struct {
	commands map[string]*Command
	// Output receives usage text. Defaults to stderr.
	Output io.Writer
}

func NewExecutor() *Executor {
	executor := &Executor{
		commands: make(map[string]*Command),
		Output:   os.Stderr,
	}
	executor.Define("-h", Func(func() {
		executor.PrintUsage()
		os.Exit(0)
	}).Desc("print this usage").Alias("help", "-help", "--help"))
	return executor
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

func (p *Executor) Execute(args []string) error {
	visible := p.commands
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		command, ok := visible[name]
		if !ok {
			return unknownCommand(name, visible)
		}

		var err error
		args, err = call(name, command, args[1:])
		if err != nil {
			return err
		}

		if len(command.Subs) > 0 {
			visible, err = withSubs(visible, name, command.Subs)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

// call runs the function of command, if any, and returns the args it did
// not consume.
func call(name string, command *Command, args []string) ([]string, error) {
	if !command.Func.IsValid() {
		return args, nil
	}
	fnType := command.Func.Type()
	in := make([]reflect.Value, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		value, err := parseArg(fnType.In(i), args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(args) > 0 {
			args = args[1:]
		}
		in = append(in, value)
	}
	out := command.Func.Call(in)
	if len(out) > 0 && !out[0].IsNil() {
		return nil, out[0].Interface().(error)
	}
	return args, nil
}

// withSubs returns the command set visible after a command with subs.
func withSubs(visible map[string]*Command, name string, subs map[string]*Command) (map[string]*Command, error) {
	ret := maps.Clone(visible)
	for subName, sub := range subs {
		if _, ok := ret[subName]; ok {
			return nil, fmt.Errorf("duplicated sub command: %s %s", name, subName)
		}
		ret[subName] = sub
	}
	return ret, nil
}

func unknownCommand(name string, visible map[string]*Command) error {
	var similar []string
	bare := strings.TrimLeft(name, "-!")
	for candidate := range visible {
		trimmed := strings.TrimLeft(candidate, "-!")
		if bare != "" && trimmed != "" &&
			(strings.HasPrefix(trimmed, bare) || strings.HasPrefix(bare, trimmed)) {
			similar = append(similar, candidate)
		}
	}
	if len(similar) == 0 {
		return fmt.Errorf("unknown command: %s (see -h)", name)
	}
	slices.Sort(similar)
	return fmt.Errorf("unknown command: %s, did you mean %s", name, strings.Join(similar, " or "))
}

// parseArg converts the next arg to t. A pointer type marks an optional
// argument, which becomes a pointer to the zero value when args run out.
func parseArg(t reflect.Type, args []string) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		if len(args) == 0 {
			return reflect.New(t.Elem()), nil
		}
		elem, err := parseArg(t.Elem(), args)
		if err != nil {
			return reflect.Value{}, err
		}
		return elem.Addr(), nil
	}
	if len(args) == 0 {
		return reflect.Value{}, fmt.Errorf("expecting %v argument, got nothing", t)
	}

	str := args[0]
	ret := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		ret.SetString(str)
	case reflect.Bool:
		v, err := parseBool(str)
		if err != nil {
			return ret, err
		}
		ret.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)
	default:
		return ret, fmt.Errorf("unsupported argument type: %v", t)
	}
	return ret, nil
}

func parseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("convert %s to bool: not a boolean", str)
}
