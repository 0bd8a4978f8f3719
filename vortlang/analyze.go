package vortlang

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type Warning struct {
	Name    string
	Pos     Pos
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %s", w.Message, w.Pos)
}

// Analyze reports variables that were declared but never read.
func Analyze(table *SymbolTable) []Warning {
	unused := lo.Filter(slices.Collect(table.Variables()), func(v *Variable, _ int) bool {
		return v.Reads == 0
	})
	return lo.Map(unused, func(v *Variable, _ int) Warning {
		return Warning{
			Name:    v.Name,
			Pos:     v.Pos,
			Message: fmt.Sprintf("unused variable '%s'", v.Name),
		}
	})
}
