// Package trace records the audit trail of a typing run as plain data:
// every hit considered, its coverage decision, the selection, and every
// absorbed failure. Callers own the value and decide how to render it.
package trace

import "serotyper/internal/domain"

// Stage is the step that produced an event.
type Stage string

const (
	StageSample   Stage = "sample"
	StageAlign    Stage = "align"
	StageParse    Stage = "parse"
	StageHit      Stage = "hit"
	StageCoverage Stage = "coverage"
	StageSelect   Stage = "select"
	StageCall     Stage = "call"
)

// Decisions attached to coverage and selection events.
const (
	Accepted  = "accepted"
	Discarded = "discarded"
	Dropped   = "dropped"
	Selected  = "selected"
)

// Event is one audit record. Hit is the 1-based position of the hit in the
// aligner output (0 when the event is not about a single hit).
type Event struct {
	Sample   string      `json:"sample,omitempty"`
	Locus    string      `json:"locus,omitempty"`
	Stage    Stage       `json:"stage"`
	Hit      int         `json:"hit,omitempty"`
	Line     string      `json:"line,omitempty"`
	RefID    string      `json:"ref_id,omitempty"`
	RefLen   int         `json:"ref_len,omitempty"`
	AlignLen int         `json:"align_len,omitempty"`
	Coverage float64     `json:"coverage,omitempty"`
	Score    int         `json:"score,omitempty"`
	Decision string      `json:"decision,omitempty"`
	Kind     domain.Kind `json:"error_kind,omitempty"`
	Message  string      `json:"message,omitempty"`
}

// Trace is an ordered sequence of events. The zero value is ready to use.
// A Trace is not safe for concurrent use; give each goroutine its own and
// Append them in a fixed order.
type Trace struct {
	events []Event
}

// Add appends e.
func (t *Trace) Add(e Event) { t.events = append(t.events, e) }

// Fail appends an event describing err at stage.
func (t *Trace) Fail(stage Stage, locus string, err error) {
	t.Add(Event{Locus: locus, Stage: stage, Kind: domain.KindOf(err), Message: err.Error()})
}

// Append appends all events of o.
func (t *Trace) Append(o Trace) { t.events = append(t.events, o.events...) }

// Events returns the events in order. The slice must not be modified.
func (t Trace) Events() []Event { return t.events }

// Len returns the number of events.
func (t Trace) Len() int { return len(t.events) }

// WithSample returns a copy with Sample set on every event that lacks one.
func (t Trace) WithSample(sample string) Trace {
	out := Trace{events: make([]Event, len(t.events))}
	for i, e := range t.events {
		if e.Sample == "" {
			e.Sample = sample
		}
		out.events[i] = e
	}
	return out
}

// Filter returns the events matching keep.
func (t Trace) Filter(keep func(Event) bool) []Event {
	var out []Event
	for _, e := range t.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Failures returns the events that carry an error kind.
func (t Trace) Failures() []Event {
	return t.Filter(func(e Event) bool { return e.Kind != domain.KindNone })
}
