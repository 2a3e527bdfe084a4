// internal/writers/trace.go
package writers

import (
	"io"

	"serotyper/internal/output"
	"serotyper/internal/trace"
)

func init() {
	RegisterTrace(output.FormatText, output.WriteTraceText)
	RegisterTrace(output.FormatJSONL, func(w io.Writer, tr trace.Trace) error {
		in, done := StartEventJSONLWriter(w, 0)
		for _, e := range tr.Events() {
			in <- e
		}
		close(in)
		return <-done
	})
}
