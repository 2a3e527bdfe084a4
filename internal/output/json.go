// internal/output/json.go
package output

import (
	"io"

	"serotyper/internal/domain"
	"serotyper/internal/jsonutil"
	"serotyper/internal/trace"
	"serotyper/pkg/api"
)

// ToAPISample converts a report row to the stable wire schema (v1).
func ToAPISample(r domain.SampleResult) api.SampleV1 {
	v := api.SampleV1{Sample: r.Sample, Calls: make([]api.CallV1, 0, len(r.Loci))}
	failed := make(map[string]domain.LocusFailure, len(r.Failures))
	for _, f := range r.Failures {
		failed[f.Locus] = f
	}
	for _, l := range r.Loci {
		c := r.Call(l)
		cv := api.CallV1{Locus: l, Label: c.String(), Variant: c.Variant, Group: c.Group}
		if f, ok := failed[l]; ok && f.Err != nil {
			cv.Error = f.Err.Error()
			cv.ErrorKind = string(f.Kind)
		}
		v.Calls = append(v.Calls, cv)
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
		v.ErrorKind = string(domain.KindOf(r.Err))
	}
	return v
}

// ToAPIReport converts a batch report.
func ToAPIReport(rep *domain.Report) api.ReportV1 {
	rows := rep.Rows()
	v := api.ReportV1{RunID: rep.RunID, Loci: append([]string(nil), rep.Loci...), Samples: make([]api.SampleV1, 0, len(rows))}
	for _, r := range rows {
		v.Samples = append(v.Samples, ToAPISample(r))
	}
	return v
}

// ToAPIEvent converts one trace event.
func ToAPIEvent(e trace.Event) api.TraceEventV1 {
	return api.TraceEventV1{
		Sample: e.Sample, Locus: e.Locus, Stage: string(e.Stage), Hit: e.Hit, Line: e.Line,
		RefID: e.RefID, RefLen: e.RefLen, AlignLen: e.AlignLen, Coverage: e.Coverage,
		Score: e.Score, Decision: e.Decision, ErrorKind: string(e.Kind), Message: e.Message,
	}
}

// WriteJSON writes the report as a single indented JSON document (v1).
func WriteJSON(w io.Writer, rep *domain.Report) error {
	return jsonutil.EncodePretty(w, ToAPIReport(rep))
}
