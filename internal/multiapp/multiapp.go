// internal/multiapp/multiapp.go
package multiapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"serotyper/internal/appcore"
	"serotyper/internal/clibase"
	"serotyper/internal/cmdutil"
	"serotyper/internal/common"
	"serotyper/internal/multicli"
	"serotyper/internal/pipeline"
	"serotyper/internal/runctx"
	"serotyper/internal/sample"
	"serotyper/internal/trace"
	"serotyper/internal/version"
	"serotyper/internal/writers"
)

const name = "multi-serotyper"

// DefaultOutDir is created inside the input directory (or the working
// directory for explicit files) when --outdir is unset.
const DefaultOutDir = "multi_serotyper_output"

// RunContext types every assembly in a directory and returns the exit code.
// Per-sample artifacts go into <outdir>/<stem>_serotyper_output; the batch
// report and the combined trace go into outdir; the report also goes to
// stdout.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := multicli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = multicli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, appcore.ExitOK)
	}

	opts, err := multicli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			multicli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr, appcore.ExitOK)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return cmdutil.Flush(outw, stderr, appcore.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return appcore.ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return cmdutil.Flush(outw, stderr, appcore.ExitOK)
	}

	ctx := runctx.WithRunID(parent, runctx.NewID())
	env, err := appcore.Build(opts.Common, stderr)
	if err != nil {
		return appcore.Fatalf(stderr, appcore.ExitUsage, "%v", err)
	}
	env.Announce(ctx)

	files, source := opts.Files, "the command line"
	if opts.Indir != "" {
		if files, err = pipeline.Discover(opts.Indir, nil); err != nil {
			return appcore.Fatalf(stderr, appcore.ExitUsage, "%v", err)
		}
		source = opts.Indir
		if len(files) == 0 {
			cmdutil.Warnf(stderr, opts.Quiet, "no .fasta/.fsa/.fna/.fa files in %s", opts.Indir)
		}
	}

	outdir := opts.OutDir
	if outdir == "" {
		outdir = filepath.Join(opts.Indir, DefaultOutDir)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return appcore.Fatalf(stderr, appcore.ExitIO, "output directory: %v", err)
	}
	cmdutil.Notef(stderr, opts.Quiet, "Typing %d samples from %s into %s", len(files), source, outdir)

	// Explicit files from different directories may share a base name;
	// their rows could not be told apart.
	if len(opts.Files) > 0 {
		seen := make(map[string]string, len(files))
		for _, f := range files {
			b := filepath.Base(f)
			if prev, dup := seen[b]; dup {
				return appcore.Fatalf(stderr, appcore.ExitUsage, "%s and %s have the same file name", prev, f)
			}
			seen[b] = f
		}
	}
	subdirs := common.OutputDirs(files)
	inputs := make([]sample.Input, len(files))
	dirOf := make(map[string]string, len(files))
	for i, f := range files {
		inputs[i] = sample.Input{Path: f, WorkDir: filepath.Join(outdir, subdirs[i])}
		dirOf[inputs[i].Name()] = inputs[i].WorkDir
	}

	// OnSample runs on the collector goroutine only.
	var batchLog trace.Trace
	runner := pipeline.Runner{
		Typer:   env.Orchestrator,
		Threads: opts.Threads,
		Loci:    env.Settings.LocusNames(),
		Logger:  env.Logger,
		OnSample: func(out sample.Outcome, serr error) error {
			batchLog.Append(out.Trace)
			for _, f := range out.Result.Failures {
				cmdutil.Warnf(stderr, opts.Quiet, "%s %s: %v", out.Result.Sample, f.Locus, f.Err)
			}
			if serr != nil {
				cmdutil.Warnf(stderr, opts.Quiet, "%v", serr)
			}
			return appcore.WriteSampleArtifacts(dirOf[out.Result.Sample], out, opts.Trace)
		},
	}
	rep, runErr := runner.Run(ctx, inputs)

	var werr error
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		_, _ = fmt.Fprintln(stderr, runErr)
	}
	if err := appcore.WriteReportFile(filepath.Join(outdir, appcore.BatchReport), rep); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		werr = err
	}
	if err := appcore.WriteTrace(filepath.Join(outdir, appcore.BatchLog), opts.Trace, batchLog); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		werr = err
	}
	if err := writers.WriteReport(opts.Output, outw, rep, opts.Header); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		werr = err
	}
	return cmdutil.Flush(outw, stderr, appcore.ExitCode(rep, runErr, werr))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
