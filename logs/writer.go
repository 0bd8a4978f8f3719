package logs

import (
	"io"
	"os"
	"testing"
)

// Writer receives terminal log records. Program output never goes here.
// Under test, records go to the test's output.
type Writer io.Writer

func (Module) Writer(
	t *testing.T,
) Writer {
	if t != nil {
		return t.Output()
	}
	return os.Stderr
}
