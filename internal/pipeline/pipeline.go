// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"serotyper/internal/domain"
	"serotyper/internal/logger"
	"serotyper/internal/runctx"
	"serotyper/internal/sample"
)

// Runner types a batch of samples.
type Runner struct {
	Typer   SampleTyper
	Threads int      // number of worker goroutines (0 = all CPUs)
	Loci    []string // report columns

	// OnSample is called by the collector for each finished sample, in
	// input order. err is the sample's processing error, if any.
	OnSample func(out sample.Outcome, err error) error

	Logger *slog.Logger
}

// Run types every input and returns the report. A failing sample becomes a
// row with all-unknown calls; the batch continues. On cancellation feeding
// stops, samples in flight are recorded as failed, and Run returns the
// partial report with the context error. Otherwise the error is the first
// one returned by OnSample.
func (r Runner) Run(ctx context.Context, inputs []sample.Input) (*domain.Report, error) {
	threads := r.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	rep := domain.NewReport(runctx.RunID(ctx), r.Loci)
	log := logger.ForRun(ctx, r.Logger)

	type job struct {
		idx int
		in  sample.Input
	}
	type result struct {
		idx int
		out sample.Outcome
		err error
	}
	jobs := make(chan job, threads*2)
	results := make(chan result, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				out, err := r.typeOne(ctx, j.in)
				results <- result{idx: j.idx, out: out, err: err}
			}
		}()
	}

	// Collector: the only writer of rep. Rows are released in input order.
	var (
		cerr    error
		cwg     sync.WaitGroup
		next    int
		pending = make(map[int]result)
	)
	emit := func(res result) {
		row := r.row(inputs[res.idx], res.out, res.err)
		if res.err != nil {
			log.Warn("sample failed", "sample", row.Sample, "error", res.err, "error_kind", domain.KindOf(res.err))
		}
		rep.Append(row)
		if r.OnSample != nil && cerr == nil {
			res.out.Result = row
			if err := r.OnSample(res.out, res.err); err != nil {
				cerr = err
			}
		}
	}
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for res := range results {
			pending[res.idx] = res
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				emit(p)
			}
		}
		// Gaps are left by inputs skipped after cancellation.
		rest := make([]int, 0, len(pending))
		for idx := range pending {
			rest = append(rest, idx)
		}
		sort.Ints(rest)
		for _, idx := range rest {
			emit(pending[idx])
		}
	}()

	// Feed work
feed:
	for i, in := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, in: in}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, cerr
}

// typeOne runs the typer for one input. A panic is contained to the
// sample and reported as its processing error.
func (r Runner) typeOne(ctx context.Context, in sample.Input) (out sample.Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = sample.Outcome{}
			err = &domain.SampleProcessingError{Sample: in.Name(), Path: in.Path, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	return r.Typer.Type(ctx, in)
}

// row normalises a typer outcome into a report row with one call per
// configured locus.
func (r Runner) row(in sample.Input, out sample.Outcome, err error) domain.SampleResult {
	row := out.Result
	if row.Sample == "" || len(row.Loci) == 0 {
		row = domain.NewSampleResult(in.Name(), r.Loci)
	}
	if row.Calls == nil {
		row.Calls = make(map[string]domain.Call, len(row.Loci))
	}
	if err != nil && row.Err == nil {
		var se *domain.SampleProcessingError
		if !errors.As(err, &se) {
			err = &domain.SampleProcessingError{Sample: row.Sample, Path: in.Path, Err: err}
		}
		row.Err = err
	}
	if row.Err != nil {
		// A failed sample reports unknown everywhere.
		for _, l := range row.Loci {
			row.Calls[l] = domain.Unknown()
		}
	}
	return row
}
