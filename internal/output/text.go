// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"serotyper/internal/domain"
	"serotyper/internal/trace"
)

// FormatRowTSV returns one report row (no trailing newline).
func FormatRowTSV(r domain.SampleResult) string {
	return r.Sample + "\t" + strings.Join(r.Labels(), "\t")
}

// WriteTSV writes the report table: an optional header, then one row per sample.
func WriteTSV(w io.Writer, rep *domain.Report, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, ReportHeader(rep.Loci)); err != nil {
			return err
		}
	}
	for _, r := range rep.Rows() {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTraceText renders tr as a human-readable log: one section per
// sample and locus with the numbered hits, the coverage table, the
// selection and the call.
func WriteTraceText(w io.Writer, tr trace.Trace) error {
	tw := &traceWriter{w: w}
	for _, e := range tr.Events() {
		tw.event(e)
	}
	return tw.err
}

type traceWriter struct {
	w        io.Writer
	err      error
	sample   string
	locus    string
	inHits   bool
	inCovTab bool
}

func (t *traceWriter) printf(format string, a ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, a...)
}

func (t *traceWriter) event(e trace.Event) {
	if e.Sample != t.sample {
		t.sample, t.locus = e.Sample, ""
		t.printf("sample: %s\n", e.Sample)
	}
	if e.Locus != t.locus {
		t.locus = e.Locus
		t.inHits, t.inCovTab = false, false
		if e.Locus != "" {
			t.printf("%s\n\n%s-type:\n", Rule, e.Locus)
		}
	}

	switch {
	case e.Stage == trace.StageHit && e.Hit > 0:
		if !t.inHits {
			t.printf("%s\n", HitHeader)
			t.inHits = true
		}
		t.printf("%d\t%s\n", e.Hit, e.Line)
	case e.Stage == trace.StageHit:
		t.printf("%s\n", e.Message)
	case e.Stage == trace.StageParse:
		t.printf("%d\tdropped (%s): %s\n", e.Hit, e.Kind, e.Message)
	case e.Stage == trace.StageCoverage:
		if !t.inCovTab {
			t.printf("\nCalculating coverage of alignments...\n\n%s\n", CoverageHeader)
			t.inCovTab = true
		}
		refLen, cov := "NA", "NA"
		if e.Decision != trace.Dropped {
			refLen = strconv.Itoa(e.RefLen)
			cov = strconv.FormatFloat(e.Coverage, 'f', 2, 64)
		}
		t.printf("%d\t%s\t%s\t%d\t%s\t%s\n", e.Hit, e.RefID, refLen, e.AlignLen, cov, e.Message)
	case e.Stage == trace.StageSelect:
		t.printf("\n%s\n", e.Message)
		if e.Decision == trace.Selected {
			t.printf("%d\t%s\tscore %d\n", e.Hit, e.RefID, e.Score)
		}
	case e.Stage == trace.StageCall && e.Kind == domain.KindNone:
		t.printf("\n'%s-type':\t%s\n", e.Locus, e.Message)
	default:
		who := e.Locus
		if who == "" {
			who = string(e.Stage)
		}
		if e.Kind != domain.KindNone {
			t.printf("error [%s] %s: %s\n", e.Kind, who, e.Message)
		} else {
			t.printf("%s\n", e.Message)
		}
	}
}
