// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"serotyper/internal/blast"
	"serotyper/internal/clibase"
	"serotyper/internal/config"
	"serotyper/internal/domain"
	"serotyper/internal/logger"
	"serotyper/internal/sample"
	"serotyper/internal/typing"
)

// Exit codes shared by both tools.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, configuration or input
	ExitIO       = 3 // writing results failed
	ExitDefect   = 4 // reference database defect (malformed reference id)
	ExitCanceled = 130
)

// Env is everything a run needs, built once from the command line.
type Env struct {
	Settings     config.Settings
	Logger       *slog.Logger
	Orchestrator *sample.Orchestrator
	Lengths      *blast.DBCmd
}

// Build resolves configuration and wires the blastn aligner and the cached
// blastdbcmd length resolver into an Orchestrator. Diagnostics go to stderr.
func Build(c clibase.Common, stderr io.Writer) (*Env, error) {
	s, err := config.Load(c.Overrides())
	if err != nil {
		return nil, err
	}
	log := logger.New(stderr, logger.Options{Debug: c.Debug, Quiet: c.Quiet})
	dbc, err := blast.NewDBCmd(s.BlastDBCmd, 0)
	if err != nil {
		return nil, err
	}
	o := &sample.Orchestrator{
		Loci: s.Loci,
		Aligner: blast.Blastn{
			Path:        s.Blastn,
			MinIdentity: s.MinIdentity,
			Threads:     s.BlastThreads,
		},
		Lengths: func(db string) typing.LengthResolver {
			return dbc.Resolver(db)
		},
		MinIdentity: s.MinIdentity,
		MinCoverage: s.MinCoverage,
		Timeout:     s.Timeout,
		Parallel:    c.LocusParallel,
		Logger:      log,
	}
	return &Env{Settings: s, Logger: log, Orchestrator: o, Lengths: dbc}, nil
}

// Announce logs the resolved settings at debug level.
func (e *Env) Announce(ctx context.Context) {
	l := logger.ForRun(ctx, e.Logger)
	for _, lc := range e.Settings.Loci {
		l.Debug("locus", "name", lc.Name, "database", lc.Database, "present", blast.DatabaseExists(lc.Database))
	}
	l.Debug("settings",
		"identity", e.Settings.MinIdentity, "coverage", e.Settings.MinCoverage,
		"blastn", e.Settings.Blastn, "blastdbcmd", e.Settings.BlastDBCmd,
		"blast_threads", e.Settings.BlastThreads, "timeout", e.Settings.Timeout)
}

// ExitCode maps the outcome of a run to the process exit code. Cancellation
// wins; then output errors; then reference database defects.
func ExitCode(rep *domain.Report, runErr, writeErr error) int {
	switch {
	case errors.Is(runErr, context.Canceled):
		return ExitCanceled
	case writeErr != nil || runErr != nil:
		return ExitIO
	case rep != nil && rep.HasKind(domain.KindMalformedReferenceID):
		return ExitDefect
	}
	return ExitOK
}

// Fatalf prints an error line and returns code.
func Fatalf(stderr io.Writer, code int, format string, a ...any) int {
	_, _ = fmt.Fprintf(stderr, "error: "+format+"\n", a...)
	return code
}
