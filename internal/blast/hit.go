// Package blast adapts NCBI BLAST+ to the typing core: it parses tabular
// (-outfmt 6) alignment records into Hits and runs blastn and blastdbcmd as
// explicit subprocesses.
package blast

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"serotyper/internal/domain"
)

// Columns names the 12 fields of an -outfmt 6 record, in order.
var Columns = [...]string{
	"query id", "reference id", "% identity", "alignment length",
	"mismatches", "gap opens", "q start", "q end", "s start", "s end",
	"e-value", "score",
}

// Hit is one parsed alignment record. Index is the 1-based position of the
// record in the aligner output, 0 when unknown.
type Hit struct {
	Index      int     `json:"index,omitempty"`
	QueryID    string  `json:"query_id"`
	RefID      string  `json:"ref_id"`
	Identity   float64 `json:"identity"`
	AlignLen   int     `json:"align_len"`
	Mismatches int     `json:"mismatches"`
	GapOpens   int     `json:"gap_opens"`
	QStart     int     `json:"q_start"`
	QEnd       int     `json:"q_end"`
	SStart     int     `json:"s_start"`
	SEnd       int     `json:"s_end"`
	EValue     float64 `json:"evalue"`
	Score      int     `json:"score"`
}

// Line renders h back into a tab-separated record.
func (h Hit) Line() string {
	return strings.Join([]string{
		h.QueryID, h.RefID,
		strconv.FormatFloat(h.Identity, 'f', -1, 64),
		strconv.Itoa(h.AlignLen), strconv.Itoa(h.Mismatches), strconv.Itoa(h.GapOpens),
		strconv.Itoa(h.QStart), strconv.Itoa(h.QEnd), strconv.Itoa(h.SStart), strconv.Itoa(h.SEnd),
		strconv.FormatFloat(h.EValue, 'g', -1, 64),
		strconv.Itoa(h.Score),
	}, "\t")
}

// ParseError is a record that could not become a Hit.
type ParseError struct {
	Line   int    // 1-based, 0 when unknown
	Column string // empty for field-count errors
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "parse hit"
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": %s %q", e.Column, e.Value)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error     { return e.Err }
func (e *ParseError) Kind() domain.Kind { return domain.KindParse }

// Record is one non-blank line of aligner output and its 1-based position.
type Record struct {
	N    int
	Text string
}

// Records splits raw aligner output into non-blank lines. Trailing CR is
// removed. Positions count non-blank lines only.
func Records(raw []byte) []Record {
	var out []Record
	n := 0
	for _, ln := range bytes.Split(raw, []byte{'\n'}) {
		ln = bytes.TrimRight(ln, "\r")
		if len(bytes.TrimSpace(ln)) == 0 {
			continue
		}
		n++
		out = append(out, Record{N: n, Text: string(ln)})
	}
	return out
}

// ParseRecord parses rec and stamps its position onto the hit or the error.
func ParseRecord(rec Record, minIdentity float64) (Hit, error) {
	h, err := ParseHit(rec.Text, minIdentity)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Line = rec.N
		}
		return Hit{}, err
	}
	h.Index = rec.N
	return h, nil
}

// ParseHit parses one tab-separated record. Hits whose identity is below
// minIdentity are rejected with a ParseError wrapping ErrBelowIdentity;
// minIdentity <= 0 disables the gate.
func ParseHit(line string, minIdentity float64) (Hit, error) {
	f := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(f) != len(Columns) {
		return Hit{}, &ParseError{Err: fmt.Errorf("want %d tab-separated fields, got %d", len(Columns), len(f))}
	}
	p := fieldParser{f: f}
	h := Hit{
		QueryID:    f[0],
		RefID:      f[1],
		Identity:   p.atof(2),
		AlignLen:   p.atoi(3),
		Mismatches: p.atoi(4),
		GapOpens:   p.atoi(5),
		QStart:     p.atoi(6),
		QEnd:       p.atoi(7),
		SStart:     p.atoi(8),
		SEnd:       p.atoi(9),
		EValue:     p.atof(10),
		Score:      p.score(11),
	}
	if p.err != nil {
		return Hit{}, p.err
	}
	if h.RefID == "" {
		return Hit{}, &ParseError{Column: Columns[1], Err: errors.New("empty")}
	}
	if minIdentity > 0 && h.Identity < minIdentity {
		return Hit{}, &ParseError{
			Column: Columns[2],
			Value:  f[2],
			Err:    fmt.Errorf("%w (%g < %g)", domain.ErrBelowIdentity, h.Identity, minIdentity),
		}
	}
	return h, nil
}

// fieldParser keeps the first conversion error.
type fieldParser struct {
	f   []string
	err error
}

func (p *fieldParser) fail(i int, err error) {
	if p.err == nil {
		p.err = &ParseError{Column: Columns[i], Value: p.f[i], Err: err}
	}
}

func (p *fieldParser) atoi(i int) int {
	v, err := strconv.Atoi(strings.TrimSpace(p.f[i]))
	if err != nil {
		p.fail(i, err)
	}
	return v
}

func (p *fieldParser) atof(i int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.f[i]), 64)
	if err != nil {
		p.fail(i, err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(i, errors.New("not finite"))
	}
	return v
}

// score accepts integral bit scores and rounds fractional ones
// (blastn prints small bit scores with one decimal).
func (p *fieldParser) score(i int) int {
	s := strings.TrimSpace(p.f[i])
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return int(math.Round(p.atof(i)))
}

// ParseHits parses every record in raw. Records that fail are returned as
// errors alongside the hits that parsed, each in input order.
func ParseHits(raw []byte, minIdentity float64) ([]Hit, []error) {
	var (
		hits []Hit
		errs []error
	)
	for _, rec := range Records(raw) {
		h, err := ParseRecord(rec, minIdentity)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		hits = append(hits, h)
	}
	return hits, errs
}
