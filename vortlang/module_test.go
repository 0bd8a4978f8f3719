package vortlang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/vort/logs"
	"github.com/reusee/vort/modes"
)

func TestModuleRun(t *testing.T) {
	stdout := new(bytes.Buffer)
	logBuf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(Options{
			WarnUnused: true,
		}),
		func() Stdout {
			return stdout
		},
		func() logs.Writer {
			return logBuf
		},
	).Call(func(
		run Run,
	) {
		ctx := context.Background()
		result, err := run(ctx, NewSource("m.vort", `
num x = 6 times 7
num unused = 1
print(o"x is {x}")
`))
		if err != nil {
			t.Fatal(err)
		}
		if stdout.String() != "x is 42\n" {
			t.Fatalf("got %q", stdout.String())
		}
		if len(result.Warnings) != 1 {
			t.Fatalf("got %v", result.Warnings)
		}
		if !strings.Contains(logBuf.String(), "unused variable 'unused'") {
			t.Fatalf("got %q", logBuf.String())
		}
		if !strings.Contains(logBuf.String(), " span=") {
			t.Fatalf("got %q", logBuf.String())
		}

		_, err = run(ctx, NewSource("bad.vort", `print(nope)`))
		if !IsKind(err, ErrUndefinedVariable) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("got %v", err)
		}
	})
}
