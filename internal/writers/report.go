// internal/writers/report.go
package writers

import (
	"io"

	"serotyper/internal/domain"
	"serotyper/internal/output"
)

func init() {
	RegisterReport(output.FormatText, output.WriteTSV)
	RegisterReport(output.FormatJSON, func(w io.Writer, rep *domain.Report, _ bool) error {
		return output.WriteJSON(w, rep)
	})
	RegisterReport(output.FormatJSONL, func(w io.Writer, rep *domain.Report, _ bool) error {
		in, done := StartSampleJSONLWriter(w, 0)
		for _, r := range rep.Rows() {
			in <- r
		}
		close(in)
		return <-done
	})
}
