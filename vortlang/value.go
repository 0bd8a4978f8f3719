package vortlang

import (
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	}
	return "invalid"
}

// Keyword is the declaration keyword for values of kind k.
func (k Kind) Keyword() string {
	switch k {
	case KindString:
		return "let"
	case KindNumber:
		return "num"
	}
	return ""
}

type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Text renders v the way print and interpolation show it.
func (v Value) Text() string {
	if v.Kind == KindNumber {
		return FormatNumber(v.Num)
	}
	return v.Str
}

func (v Value) String() string {
	if v.Kind == KindString {
		return strconv.Quote(v.Str)
	}
	return v.Text()
}

// FormatNumber returns the shortest decimal, without exponent, that parses
// back to f. Negative zero renders as "0".
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber parses a numeric literal, ignoring '_' separators.
func ParseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}
