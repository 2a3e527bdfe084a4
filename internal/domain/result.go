package domain

import "sync"

// LocusFailure records why a locus resolved to unknown for a reason other
// than lack of evidence.
type LocusFailure struct {
	Locus string
	Kind  Kind
	Err   error
}

// SampleResult maps each configured locus to exactly one Call.
type SampleResult struct {
	Sample   string
	Loci     []string
	Calls    map[string]Call
	Failures []LocusFailure

	// Err is set when the sample as a whole could not be processed.
	Err error
}

// NewSampleResult returns a result with every locus set to unknown.
func NewSampleResult(sample string, loci []string) SampleResult {
	calls := make(map[string]Call, len(loci))
	for _, l := range loci {
		calls[l] = Unknown()
	}
	return SampleResult{
		Sample: sample,
		Loci:   append([]string(nil), loci...),
		Calls:  calls,
	}
}

// Call returns the call for locus, or unknown if the locus has none.
func (r SampleResult) Call(locus string) Call {
	return r.Calls[locus]
}

// Labels returns the rendered calls in locus order.
func (r SampleResult) Labels() []string {
	out := make([]string, len(r.Loci))
	for i, l := range r.Loci {
		out[i] = r.Call(l).String()
	}
	return out
}

// HasKind reports whether any locus failure (or the sample error) is of kind k.
func (r SampleResult) HasKind(k Kind) bool {
	if r.Err != nil && KindOf(r.Err) == k {
		return true
	}
	for _, f := range r.Failures {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// Report is the append-only batch result, in processing order.
type Report struct {
	RunID string
	Loci  []string

	mu   sync.Mutex
	rows []SampleResult
}

// NewReport returns an empty report for the given loci.
func NewReport(runID string, loci []string) *Report {
	return &Report{RunID: runID, Loci: append([]string(nil), loci...)}
}

// Append adds one row.
func (r *Report) Append(res SampleResult) {
	r.mu.Lock()
	r.rows = append(r.rows, res)
	r.mu.Unlock()
}

// Rows returns a copy of the rows in insertion order.
func (r *Report) Rows() []SampleResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SampleResult(nil), r.rows...)
}

// Len returns the number of rows.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// HasKind reports whether any row carries a failure of kind k.
func (r *Report) HasKind(k Kind) bool {
	for _, row := range r.Rows() {
		if row.HasKind(k) {
			return true
		}
	}
	return false
}
