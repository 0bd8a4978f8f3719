package vortlang

import (
	"iter"
	"strings"
)

// TemplatePart is either literal text or, when Name is set, a placeholder.
type TemplatePart struct {
	Literal string
	Name    string
	Pos     Pos
}

func (p TemplatePart) IsPlaceholder() bool {
	return p.Name != ""
}

type Template struct {
	Parts []TemplatePart
	Pos   Pos
}

// ParseTemplate splits the text of an o"..." literal starting at pos. Only
// `{identifier}` forms a placeholder; other braces are kept as literal text.
// The text is taken to contain no escapes.
func ParseTemplate(text string, pos Pos) *Template {
	return parseTemplate(text, pos, func(i int) int {
		// skip the o" prefix
		return pos.Column + 2 + i
	})
}

// TokenTemplate is ParseTemplate for a lexed interpolation literal, with
// placeholder columns taken from the source.
func TokenTemplate(token *Token) *Template {
	return parseTemplate(token.Text, token.Pos, func(i int) int {
		if i < len(token.Columns) {
			return token.Columns[i]
		}
		return token.Pos.Column + 2 + i
	})
}

func parseTemplate(text string, pos Pos, column func(i int) int) *Template {
	tpl := &Template{
		Pos: pos,
	}
	runes := []rune(text)
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			tpl.Parts = append(tpl.Parts, TemplatePart{Literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		if r != '{' {
			literal.WriteRune(r)
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && isIdentPart(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || runes[j] != '}' || !isIdentStart(runes[i+1]) {
			literal.WriteRune(r)
			i++
			continue
		}
		flush()
		placeholderPos := pos
		placeholderPos.Column = column(i)
		tpl.Parts = append(tpl.Parts, TemplatePart{
			Name: string(runes[i+1 : j]),
			Pos:  placeholderPos,
		})
		i = j + 1
	}
	flush()

	return tpl
}

func (t *Template) Placeholders() iter.Seq[TemplatePart] {
	return func(yield func(TemplatePart) bool) {
		for _, part := range t.Parts {
			if part.IsPlaceholder() && !yield(part) {
				return
			}
		}
	}
}

// Expand substitutes the current value of every placeholder.
func (t *Template) Expand(table *SymbolTable) (string, error) {
	var sb strings.Builder
	for _, part := range t.Parts {
		if !part.IsPlaceholder() {
			sb.WriteString(part.Literal)
			continue
		}
		v, err := table.Lookup(part.Name, part.Pos)
		if err != nil {
			if d, ok := AsDiagnostic(err); ok {
				d.withHint("'{%s}' must name a declared variable", part.Name)
			}
			return "", err
		}
		sb.WriteString(v.Value.Text())
	}
	return sb.String(), nil
}
