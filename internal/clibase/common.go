// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"serotyper/internal/blast"
	"serotyper/internal/config"
	"serotyper/internal/typing"
)

// Common holds CLI fields shared by serotyper and multi-serotyper.
type Common struct {
	// Reference data
	RefDir     string
	LociFile   string
	Identity   float64
	Coverage   float64
	Blastn     string
	BlastDBCmd string

	// Performance
	BlastThreads  int
	Timeout       time.Duration
	Threads       int
	LocusParallel int

	// Output
	OutDir string
	Output string // text|json|jsonl
	Trace  string // text|jsonl
	Header bool

	// Misc
	Debug   bool
	Quiet   bool
	Version bool

	set map[string]bool
}

// Register wires shared flags onto fs and returns a pointer to the “no-header” bool
// that the caller can use to set Common.Header = !noHeader after parsing.
func Register(fs *flag.FlagSet, c *Common) *bool {
	// Reference data
	fs.StringVar(&c.RefDir, "ref-dir", "", "reference directory with H_database/ and O_database/ [$SERO_REF]")
	fs.StringVar(&c.LociFile, "loci", "", "YAML file with loci, thresholds and tool paths")
	fs.Float64Var(&c.Identity, "identity", blast.DefaultMinIdentity, "minimum % identity of a hit [85]")
	fs.Float64Var(&c.Coverage, "coverage", typing.DefaultMinCoverage, "minimum % coverage of the reference [60]")
	fs.StringVar(&c.Blastn, "blastn", blast.DefaultBlastn, "blastn executable [$SEROTYPER_BLASTN]")
	fs.StringVar(&c.BlastDBCmd, "blastdbcmd", blast.DefaultBlastDBCmd, "blastdbcmd executable [$SEROTYPER_BLASTDBCMD]")

	// Performance
	fs.IntVar(&c.BlastThreads, "blast-threads", blast.DefaultThreads, "threads per blastn run [4]")
	fs.DurationVar(&c.Timeout, "timeout", 0, "limit per blastn run (0 = none) [0]")
	fs.IntVar(&c.Threads, "threads", 0, "samples typed concurrently (0 = all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")
	fs.IntVar(&c.LocusParallel, "locus-parallel", 1, "loci aligned concurrently per sample [1]")

	// Output
	fs.StringVar(&c.OutDir, "outdir", "", "output directory")
	fs.StringVar(&c.OutDir, "o", "", "alias of --outdir")
	fs.StringVar(&c.Output, "output", "text", "report on stdout: text | json | jsonl [text]")
	fs.StringVar(&c.Trace, "trace", "text", "trace log format: text | jsonl [text]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")

	// Misc
	fs.BoolVar(&c.Debug, "debug", false, "debug diagnostics with source locations [false]")
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")

	return &noHeader
}

// AfterParse finalizes header, records which flags were given, then runs
// shared validation.
func AfterParse(fs *flag.FlagSet, c *Common, noHeader *bool) error {
	c.Header = !*noHeader
	c.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	return Validate(c)
}

// Validate applies shared CLI invariants used by both tools.
func Validate(c *Common) error {
	if c.Identity <= 0 || c.Identity > 100 {
		return errors.New("--identity must be in (0,100]")
	}
	if c.Coverage < 0 || c.Coverage > 100 {
		return errors.New("--coverage must be in [0,100]")
	}
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if c.BlastThreads < 0 {
		return errors.New("--blast-threads must be ≥ 0")
	}
	if c.LocusParallel < 1 {
		return errors.New("--locus-parallel must be ≥ 1")
	}
	if c.Timeout < 0 {
		return errors.New("--timeout must be ≥ 0")
	}
	switch c.Output {
	case "text", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	switch c.Trace {
	case "text", "jsonl":
	default:
		return fmt.Errorf("invalid --trace %q", c.Trace)
	}
	return nil
}

// Overrides returns the flags the user set explicitly, for config
// resolution. Unset flags leave the loci file and environment in charge.
func (c *Common) Overrides() config.Overrides {
	var o config.Overrides
	if c.set["ref-dir"] {
		o.RefDir = &c.RefDir
	}
	if c.LociFile != "" {
		o.LociFile = &c.LociFile
	}
	if c.set["identity"] {
		o.Identity = &c.Identity
	}
	if c.set["coverage"] {
		o.Coverage = &c.Coverage
	}
	if c.set["blastn"] {
		o.Blastn = &c.Blastn
	}
	if c.set["blastdbcmd"] {
		o.BlastDBCmd = &c.BlastDBCmd
	}
	if c.set["blast-threads"] {
		o.BlastThreads = &c.BlastThreads
	}
	if c.set["timeout"] {
		o.Timeout = &c.Timeout
	}
	return o
}
