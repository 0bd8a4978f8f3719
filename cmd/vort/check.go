package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/reusee/vort/cmds"
	"github.com/reusee/vort/vortlang"
	"golang.org/x/sync/errgroup"
)

var jobs = cmds.Var[int]("-jobs", "programs checked in parallel, defaults to the CPU count")

// checkAll evaluates every file without output, at most -jobs at a time.
// Each file gets its own symbol table. A failing program does not stop the
// others; only a canceled ctx does.
func checkAll(ctx context.Context, interpreter *vortlang.Interpreter, paths []string) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(cmp.Or(*jobs, runtime.NumCPU()), 1))
	errs := make([]error, len(paths))
	for i, path := range paths {
		if groupCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			source, err := readSource(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			if _, _, err := interpreter.Check(groupCtx, source); err != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				errs[i] = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		if len(paths) > 1 {
			fmt.Fprintf(os.Stderr, "%s:\n", paths[i])
		}
		reportError(err)
	}
	if failed > 0 {
		return reportedError{
			summary: fmt.Sprintf("%d of %d programs failed", failed, len(paths)),
		}
	}
	return nil
}

// reportedError is returned after the failures themselves were printed.
type reportedError struct {
	summary string
}

func (e reportedError) Error() string {
	return e.summary
}
