// internal/cmdutil/run.go
package cmdutil

import (
	"bufio"
	"fmt"
	"io"

	"serotyper/internal/writers"
)

// Flush flushes outw and returns code, 0 when the reader went away
// (broken pipe), or 3 when the flush failed otherwise.
func Flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	err := outw.Flush()
	switch {
	case err == nil:
		return code
	case writers.IsBrokenPipe(err):
		return 0
	default:
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
}
