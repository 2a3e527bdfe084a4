package typing

import (
	"context"
	"errors"
	"fmt"

	"serotyper/internal/blast"
	"serotyper/internal/domain"
	"serotyper/internal/trace"
)

// DefaultMinCoverage is the coverage gate, in percent of reference length.
const DefaultMinCoverage = 60.0

// LengthResolver returns the full length of a reference entry.
// Errors should be *domain.ReferenceLookupError; other errors are wrapped.
type LengthResolver interface {
	ReferenceLength(ctx context.Context, refID string) (int, error)
}

// LengthFunc adapts a function to LengthResolver.
type LengthFunc func(ctx context.Context, refID string) (int, error)

func (f LengthFunc) ReferenceLength(ctx context.Context, refID string) (int, error) {
	return f(ctx, refID)
}

// Coverage returns the percentage of a reference of refLen bases spanned by
// an alignment of alignLen bases.
func Coverage(alignLen, refLen int) float64 {
	return float64(alignLen) * 100 / float64(refLen)
}

// CoverageFilter drops hits spanning less than MinCoverage percent of their
// reference. It does no score-based reasoning.
type CoverageFilter struct {
	MinCoverage float64
	Lengths     LengthResolver
}

// Filter returns the hits passing the gate in their original order. Hits
// whose reference length cannot be resolved are dropped and traced. A nil
// tr discards the events.
func (f CoverageFilter) Filter(ctx context.Context, locus string, hits []blast.Hit, tr *trace.Trace) []blast.Hit {
	if tr == nil {
		tr = new(trace.Trace)
	}
	out := make([]blast.Hit, 0, len(hits))
	for _, h := range hits {
		ev := trace.Event{
			Locus: locus, Stage: trace.StageCoverage, Hit: h.Index,
			RefID: h.RefID, AlignLen: h.AlignLen, Score: h.Score,
		}
		refLen, err := f.Lengths.ReferenceLength(ctx, h.RefID)
		if err == nil && refLen <= 0 {
			err = fmt.Errorf("%w: length %d", domain.ErrUnknownReference, refLen)
		}
		if err != nil {
			var le *domain.ReferenceLookupError
			if !errors.As(err, &le) {
				err = &domain.ReferenceLookupError{RefID: h.RefID, Err: err}
			}
			ev.Decision = trace.Dropped
			ev.Kind = domain.KindOf(err)
			ev.Message = err.Error()
			tr.Add(ev)
			continue
		}
		cov := Coverage(h.AlignLen, refLen)
		ev.RefLen = refLen
		ev.Coverage = cov
		if cov < f.MinCoverage {
			ev.Decision = trace.Discarded
			ev.Message = "discarded (due to low coverage)"
			tr.Add(ev)
			continue
		}
		ev.Decision = trace.Accepted
		ev.Message = "accepted"
		tr.Add(ev)
		out = append(out, h)
	}
	return out
}
