// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"serotyper/internal/domain"
	"serotyper/internal/trace"
)

// ReportFunc writes a whole batch report; header applies to tabular formats.
type ReportFunc func(w io.Writer, rep *domain.Report, header bool) error

// TraceFunc writes an audit trace.
type TraceFunc func(w io.Writer, tr trace.Trace) error

// Writer registries (format → handler).
// Register in init() blocks from report/trace writer files.
var (
	ReportWriters = map[string]ReportFunc{}
	TraceWriters  = map[string]TraceFunc{}
)

// Register helpers (idempotent last-wins)
func RegisterReport(format string, fn ReportFunc) { ReportWriters[format] = fn }
func RegisterTrace(format string, fn TraceFunc)   { TraceWriters[format] = fn }

// WriteReport dispatches to the writer registered for format.
func WriteReport(format string, w io.Writer, rep *domain.Report, header bool) error {
	fn, ok := ReportWriters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, rep, header)
}

// WriteTrace dispatches to the writer registered for format.
func WriteTrace(format string, w io.Writer, tr trace.Trace) error {
	fn, ok := TraceWriters[format]
	if !ok {
		return fmt.Errorf("unknown trace format %q (no writer registered)", format)
	}
	return fn(w, tr)
}
