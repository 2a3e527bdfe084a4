// internal/app/app.go
package app

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
	"serotyper/internal/cli"
	"serotyper/internal/clibase"
	"serotyper/internal/cmdutil"
	"serotyper/internal/common"
	"serotyper/internal/domain"
	"serotyper/internal/runctx"
	"serotyper/internal/sample"
	"serotyper/internal/version"
	"serotyper/internal/writers"
)

const name = "serotyper"

// RunContext types one assembly, writes the artifacts into the output
// directory and the report to stdout, and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, appcore.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw)
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

	outdir := opts.OutDir
	if outdir == "" {
		outdir = filepath.Join(filepath.Dir(opts.Infile), common.OutputDir(opts.Infile))
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return appcore.Fatalf(stderr, appcore.ExitIO, "output directory: %v", err)
	}
	cmdutil.Notef(stderr, opts.Quiet, "Typing %s into %s", opts.Infile, outdir)

	out, terr := env.Orchestrator.Type(ctx, sample.Input{Path: opts.Infile, WorkDir: outdir})
	for _, f := range out.Result.Failures {
		cmdutil.Warnf(stderr, opts.Quiet, "%s: %v", f.Locus, f.Err)
	}
	canceled := errors.Is(terr, context.Canceled)

	rep := domain.NewReport(runctx.RunID(ctx), out.Result.Loci)
	rep.Append(out.Result)

	werr := appcore.WriteSampleArtifacts(outdir, out, opts.Trace)
	if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
	}
	if terr != nil && !canceled {
		return appcore.Fatalf(stderr, appcore.ExitUsage, "%v", terr)
	}
	if err := writers.WriteReport(opts.Output, outw, rep, opts.Header); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		werr = err
	}

	var runErr error
	if canceled {
		runErr = terr
	}
	return cmdutil.Flush(outw, stderr, appcore.ExitCode(rep, runErr, werr))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
