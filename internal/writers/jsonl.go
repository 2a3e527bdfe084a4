// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"serotyper/internal/domain"
	"serotyper/internal/jsonlutil"
	"serotyper/internal/output"
	"serotyper/internal/trace"
)

// StartSampleJSONLWriter streams each report row as one JSON line (v1).
func StartSampleJSONLWriter(out io.Writer, bufSize int) (chan<- domain.SampleResult, <-chan error) {
	return jsonlutil.Start[domain.SampleResult](out, bufSize,
		func(enc *json.Encoder, r domain.SampleResult) error {
			return enc.Encode(output.ToAPISample(r))
		},
		IsBrokenPipe,
	)
}

// StartEventJSONLWriter streams each trace event as one JSON line (v1).
func StartEventJSONLWriter(out io.Writer, bufSize int) (chan<- trace.Event, <-chan error) {
	return jsonlutil.Start[trace.Event](out, bufSize,
		func(enc *json.Encoder, e trace.Event) error {
			return enc.Encode(output.ToAPIEvent(e))
		},
		IsBrokenPipe,
	)
}
