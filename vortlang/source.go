package vortlang

import (
	"fmt"
	"strings"
)

type Source struct {
	Name    string
	Content string
	Lines   []string
}

func NewSource(name string, content string) *Source {
	return &Source{
		Name:    name,
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}
}

// Line returns the 1-based line n without its trailing carriage return.
func (s *Source) Line(n int) (string, bool) {
	idx := n - 1
	if idx < 0 || idx >= len(s.Lines) {
		return "", false
	}
	return strings.TrimSuffix(s.Lines[idx], "\r"), true
}

type Pos struct {
	Source *Source
	Line   int
	Column int
}

func (p Pos) String() string {
	name := "<input>"
	if p.Source != nil && p.Source.Name != "" {
		name = p.Source.Name
	}
	return fmt.Sprintf("%s:(%d, %d)", name, p.Line, p.Column)
}
