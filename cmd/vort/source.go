package main

import (
	"fmt"
	"io"
	"os"

	"github.com/reusee/vort/vortlang"
)

// readSource reads a program file, or stdin when path is "-".
func readSource(path string) (*vortlang.Source, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return vortlang.NewSource("<stdin>", string(content)), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return vortlang.NewSource(path, string(content)), nil
}
