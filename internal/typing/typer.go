package typing

import (
	"context"
	"fmt"

	"serotyper/internal/blast"
	"serotyper/internal/domain"
	"serotyper/internal/trace"
)

// LocusTyper resolves one locus from raw aligner output.
type LocusTyper struct {
	Locus       string
	MinIdentity float64 // records below are rejected by the parser; 0 disables
	MinCoverage float64
	Lengths     LengthResolver
}

// Result is the outcome for one locus. Selected is nil unless a hit
// determined the call.
type Result struct {
	Locus    string
	Call     domain.Call
	State    State
	Selected *blast.Hit
	Hits     int // records parsed
	Accepted int // hits that passed coverage
	Trace    trace.Trace
}

// Type parses every record in raw, applies the coverage gate, and selects
// the best hit. Unparseable records and unresolvable references are skipped
// and traced. The only error is *domain.MalformedReferenceIDError for the
// selected hit; the returned Result then carries an unknown call and the
// full trace.
func (lt LocusTyper) Type(ctx context.Context, raw []byte) (Result, error) {
	res := Result{Locus: lt.Locus}
	tr := &res.Trace

	recs := blast.Records(raw)
	hits := make([]blast.Hit, 0, len(recs))
	for _, rec := range recs {
		h, err := blast.ParseRecord(rec, lt.MinIdentity)
		if err != nil {
			tr.Add(trace.Event{
				Locus: lt.Locus, Stage: trace.StageParse, Hit: rec.N, Line: rec.Text,
				Decision: trace.Dropped, Kind: domain.KindOf(err), Message: err.Error(),
			})
			continue
		}
		tr.Add(trace.Event{
			Locus: lt.Locus, Stage: trace.StageHit, Hit: h.Index, Line: rec.Text,
			RefID: h.RefID, AlignLen: h.AlignLen, Score: h.Score,
		})
		hits = append(hits, h)
	}
	res.Hits = len(hits)
	tr.Add(trace.Event{
		Locus: lt.Locus, Stage: trace.StageHit,
		Message: fmt.Sprintf("%d hits found with identity >= %g %%", len(hits), lt.MinIdentity),
	})

	kept := CoverageFilter{MinCoverage: lt.MinCoverage, Lengths: lt.Lengths}.Filter(ctx, lt.Locus, hits, tr)
	res.Accepted = len(kept)

	sel := Select(kept)
	res.State = sel.State
	if sel.State == Unresolved {
		tr.Add(trace.Event{
			Locus: lt.Locus, Stage: trace.StageSelect, Decision: string(Unresolved),
			Message: fmt.Sprintf("no hit found with identity >= %g %% and coverage >= %g %%", lt.MinIdentity, lt.MinCoverage),
		})
		tr.Add(trace.Event{Locus: lt.Locus, Stage: trace.StageCall, Message: domain.UnknownLabel})
		return res, nil
	}

	h := sel.Hit
	ev := trace.Event{
		Locus: lt.Locus, Stage: trace.StageSelect, Hit: h.Index, RefID: h.RefID,
		AlignLen: h.AlignLen, Score: h.Score, Decision: trace.Selected,
	}
	if sel.State == Unique {
		ev.Message = "exactly 1 hit passed identity and coverage"
	} else {
		ev.Message = fmt.Sprintf("best of %d hits by score", len(kept))
	}
	tr.Add(ev)

	call, err := domain.CallFromRefID(h.RefID)
	if err != nil {
		tr.Fail(trace.StageCall, lt.Locus, err)
		return res, err
	}
	res.Call = call
	res.Selected = &h
	tr.Add(trace.Event{Locus: lt.Locus, Stage: trace.StageCall, Hit: h.Index, RefID: h.RefID, Message: call.String()})
	return res, nil
}
