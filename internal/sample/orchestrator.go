// Package sample types one genome assembly at every configured locus.
package sample

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"serotyper/internal/domain"
	"serotyper/internal/fasta"
	"serotyper/internal/logger"
	"serotyper/internal/trace"
	"serotyper/internal/typing"
)

// Aligner produces tabular (-outfmt 6) alignment records of query against
// the locus database.
type Aligner interface {
	Align(ctx context.Context, query string, locus domain.Locus) ([]byte, error)
}

// AlignFunc adapts a function to Aligner.
type AlignFunc func(ctx context.Context, query string, locus domain.Locus) ([]byte, error)

func (f AlignFunc) Align(ctx context.Context, query string, locus domain.Locus) ([]byte, error) {
	return f(ctx, query, locus)
}

// Input is one sample. ID defaults to the base name of Path. WorkDir is
// where decompressed input is placed; a temporary location is used when
// empty.
type Input struct {
	ID      string
	Path    string
	WorkDir string
}

// Name returns the sample identifier.
func (in Input) Name() string {
	if in.ID != "" {
		return in.ID
	}
	return filepath.Base(in.Path)
}

// Outcome is everything produced for one sample. Raw holds the aligner
// output per locus name for the loci that aligned.
type Outcome struct {
	Result domain.SampleResult
	Loci   []typing.Result
	Trace  trace.Trace
	Raw    map[string][]byte
}

// Orchestrator types samples against a fixed, ordered set of loci.
type Orchestrator struct {
	Loci        []domain.Locus
	Aligner     Aligner
	Lengths     func(database string) typing.LengthResolver
	MinIdentity float64
	MinCoverage float64
	Timeout     time.Duration // per aligner invocation; 0 = none
	Parallel    int           // concurrent loci; <= 1 runs them in order
	Logger      *slog.Logger
}

// Type runs every locus for in and always returns an Outcome with one call
// per locus. Locus-level failures are recorded in the result and the trace.
// The error is a *domain.SampleProcessingError when the input cannot be
// read or the context ends before all loci complete.
func (o *Orchestrator) Type(ctx context.Context, in Input) (Outcome, error) {
	name := in.Name()
	names := domain.LocusNames(o.Loci)
	out := Outcome{
		Result: domain.NewSampleResult(name, names),
		Loci:   make([]typing.Result, len(o.Loci)),
		Raw:    make(map[string][]byte, len(o.Loci)),
	}
	log := logger.ForRun(ctx, o.Logger).With("sample", name)

	fail := func(err error) (Outcome, error) {
		serr := &domain.SampleProcessingError{Sample: name, Path: in.Path, Err: err}
		out.Result.Err = serr
		out.Trace.Fail(trace.StageSample, "", serr)
		out.Trace = out.Trace.WithSample(name)
		log.Error("sample failed", "path", in.Path, "error", serr, "error_kind", domain.KindOf(serr))
		return out, serr
	}

	sum, err := fasta.Summarize(in.Path)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrUnreadableInput, err))
	}
	out.Trace.Add(trace.Event{
		Stage:   trace.StageSample,
		Message: fmt.Sprintf("%s: %d records, %d bases", in.Path, sum.Records, sum.Bases),
	})
	query := in.Path
	if sum.Gzip {
		dir, cleanup, err := workDir(in)
		if err != nil {
			return fail(err)
		}
		defer cleanup()
		if query, err = fasta.Materialize(in.Path, dir); err != nil {
			return fail(fmt.Errorf("%w: %w", domain.ErrUnreadableInput, err))
		}
		defer os.Remove(query)
	}

	type slot struct {
		res  typing.Result
		raw  []byte
		fail *domain.LocusFailure
		tr   trace.Trace
	}
	slots := make([]slot, len(o.Loci))

	var g errgroup.Group
	g.SetLimit(max(o.Parallel, 1))
	for i, locus := range o.Loci {
		i, locus := i, locus
		g.Go(func() error {
			s := &slots[i]
			s.res, s.raw, s.fail = o.typeLocus(ctx, query, locus, log)
			s.tr = s.res.Trace
			return nil
		})
	}
	_ = g.Wait()

	for i, s := range slots {
		locus := o.Loci[i].Name
		out.Loci[i] = s.res
		out.Trace.Append(s.tr)
		out.Result.Calls[locus] = s.res.Call
		if s.raw != nil {
			out.Raw[locus] = s.raw
		}
		if s.fail != nil {
			out.Result.Failures = append(out.Result.Failures, *s.fail)
		}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	out.Trace = out.Trace.WithSample(name)
	log.Debug("sample typed", "calls", strings.Join(out.Result.Labels(), ", "))
	return out, nil
}

func (o *Orchestrator) typeLocus(ctx context.Context, query string, locus domain.Locus, log *slog.Logger) (typing.Result, []byte, *domain.LocusFailure) {
	res := typing.Result{Locus: locus.Name}
	log = log.With("locus", locus.Name)

	actx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	raw, err := o.Aligner.Align(actx, query, locus)
	if err != nil {
		var te *domain.ExternalToolError
		if !errors.As(err, &te) {
			err = &domain.ExternalToolError{Tool: "aligner", Locus: locus.Name, ExitCode: -1, Err: err}
		}
		res.Trace.Fail(trace.StageAlign, locus.Name, err)
		res.Trace.Add(trace.Event{Locus: locus.Name, Stage: trace.StageCall, Message: domain.UnknownLabel})
		log.Warn("aligner failed", "database", locus.Database, "error", err, "error_kind", domain.KindOf(err))
		return res, nil, &domain.LocusFailure{Locus: locus.Name, Kind: domain.KindOf(err), Err: err}
	}

	lt := typing.LocusTyper{
		Locus:       locus.Name,
		MinIdentity: o.MinIdentity,
		MinCoverage: o.MinCoverage,
		Lengths:     o.Lengths(locus.Database),
	}
	res, err = lt.Type(ctx, raw)
	for _, e := range res.Trace.Failures() {
		log.Debug("hit dropped", "hit", e.Hit, "error_kind", e.Kind, "reason", e.Message)
	}
	if err != nil {
		log.Error("reference database defect", "database", locus.Database, "error", err, "error_kind", domain.KindOf(err))
		return res, raw, &domain.LocusFailure{Locus: locus.Name, Kind: domain.KindOf(err), Err: err}
	}
	return res, raw, nil
}

func workDir(in Input) (string, func(), error) {
	if in.WorkDir != "" {
		return in.WorkDir, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "serotyper-*")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}
