package cmds

import "fmt"

// Var defines `name <value>` and `name.`, which resets to the zero value.
// desc, when given, is shown in usage.
func Var[T any](name string, desc ...string) *T {
	value := new(T)
	Define(name, Func(func(v T) {
		*value = v
	}).Desc(describe(desc, "set "+name)))
	Define(name+".", Func(func() {
		var zero T
		*value = zero
	}).Desc("reset "+name))
	return value
}

// Switch defines `name` to turn the flag on and `!name` to turn it off.
func Switch(name string, desc ...string) *bool {
	value := new(bool)
	for on, prefix := range map[bool]string{true: "", false: "!"} {
		cmd := Func(func() {
			*value = on
		})
		if on {
			cmd.Desc(describe(desc, "enable "+name))
		} else {
			cmd.Desc("disable " + name)
		}
		Define(prefix+name, cmd)
	}
	return value
}

// Collect defines `name <value>`, appending on every use, and `name.`,
// which empties the list.
func Collect[T any](name string, desc ...string) *[]T {
	values := new([]T)
	Define(name, Func(func(v T) {
		*values = append(*values, v)
	}).Desc(describe(desc, fmt.Sprintf("add to %s, repeatable", name))))
	Define(name+".", Func(func() {
		*values = nil
	}).Desc("clear "+name))
	return values
}

func describe(desc []string, fallback string) string {
	if len(desc) > 0 {
		return desc[0]
	}
	return fallback
}
