package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/reusee/vort/vortlang"
)

// runREPL executes one line at a time against a shared symbol table.
// Diagnostics are printed and the session continues.
func runREPL(ctx context.Context, interpreter *vortlang.Interpreter) error {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".vort_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "vort> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		return fmt.Errorf("start repl: %w", err)
	}
	defer rl.Close()

	result := interpreter.NewResult()
	for n := 1; ; n++ {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		source := vortlang.NewSource(fmt.Sprintf("<repl:%d>", n), line)
		if err := interpreter.RunInto(ctx, source, result); err != nil {
			reportError(err)
		}
	}
}
