// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Example is one titled command line.
type Example struct {
	Title   string
	Command string
}

// PrintExamples prints a short quickstart: a summary, the examples, and a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name, summary string, examples []Example) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	if summary != "" {
		_, _ = fmt.Fprintln(out, summary)
	}
	for _, ex := range examples {
		_, _ = fmt.Fprintf(out, "\n%s:\n  %s\n", ex.Title, ex.Command)
	}
	_, _ = fmt.Fprintln(out, "\nReference data is read from --ref-dir or $SERO_REF (a .env file is honoured).")
	_, _ = fmt.Fprintln(out, "Tip: run with --help for all flags.")
}
