package vortlang

import (
	"fmt"
	"iter"
)

type Variable struct {
	Name  string
	Value Value
	Pos   Pos
	Reads int
}

func (v *Variable) Kind() Kind {
	return v.Value.Kind
}

type RedeclarePolicy uint8

const (
	// RedeclareForbid rejects any second declaration of a name.
	RedeclareForbid RedeclarePolicy = iota
	// RedeclareSameKind lets a declaration of the same kind overwrite the value.
	RedeclareSameKind
)

// SymbolTable holds the single global scope of one program evaluation.
type SymbolTable struct {
	policy RedeclarePolicy
	vars   map[string]*Variable
	order  []*Variable
}

func NewSymbolTable(policy RedeclarePolicy) *SymbolTable {
	return &SymbolTable{
		policy: policy,
		vars:   make(map[string]*Variable),
	}
}

func (s *SymbolTable) Declare(name string, value Value, pos Pos) error {
	if v, ok := s.vars[name]; ok {
		if v.Kind() != value.Kind {
			return newDiagnostic(ErrType, pos, fmt.Sprintf(
				"cannot redeclare %s variable '%s' as %s", v.Kind(), name, value.Kind,
			)).withHint("'%s' was declared with '%s' at %s; a variable keeps its kind", name, v.Kind().Keyword(), v.Pos)
		}
		if s.policy == RedeclareForbid {
			return newDiagnostic(ErrRedeclaration, pos, name).
				withHint("assign a new value with '%s = ...' instead", name)
		}
		v.Value = value
		return nil
	}
	v := &Variable{
		Name:  name,
		Value: value,
		Pos:   pos,
	}
	s.vars[name] = v
	s.order = append(s.order, v)
	return nil
}

func (s *SymbolTable) Assign(name string, value Value, pos Pos) error {
	v, ok := s.vars[name]
	if !ok {
		return undefinedVariable(name, pos)
	}
	if v.Kind() != value.Kind {
		return newDiagnostic(ErrType, pos, fmt.Sprintf(
			"cannot assign %s to %s variable '%s'", value.Kind, v.Kind(), name,
		)).withHint("'%s' was declared with '%s' at %s", name, v.Kind().Keyword(), v.Pos)
	}
	v.Value = value
	return nil
}

// Lookup returns the variable and counts the read.
func (s *SymbolTable) Lookup(name string, pos Pos) (*Variable, error) {
	v, ok := s.vars[name]
	if !ok {
		return nil, undefinedVariable(name, pos)
	}
	v.Reads++
	return v, nil
}

// Get returns the variable without counting a read.
func (s *SymbolTable) Get(name string) (*Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

func (s *SymbolTable) Len() int {
	return len(s.order)
}

// Variables yields variables in declaration order.
func (s *SymbolTable) Variables() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		for _, v := range s.order {
			if !yield(v) {
				return
			}
		}
	}
}

func undefinedVariable(name string, pos Pos) *Diagnostic {
	return newDiagnostic(ErrUndefinedVariable, pos, name).
		withHint("declare it with 'let' or 'num' before using it")
}
