// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"serotyper/internal/clibase"
	"serotyper/internal/cliutil"
)

// Options holds the serotyper command line.
type Options struct {
	clibase.Common

	Infile string
}

// NewFlagSet returns a FlagSet with the serotyper usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] -i genome.fasta\n", name)
		_, _ = fmt.Fprintf(out, "  %s [options] genome.fasta\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -i, --infile file           Assembled genome (.fasta/.fsa/.fna/.fa, optionally .gz) [required]")
		_, _ = fmt.Fprintln(out, "                              Output defaults to <input without extension>_serotyper_output")
	})
	return fs
}

// PrintExamples prints a tiny quickstart for serotyper.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "serotyper", "Type one assembly at the H and O loci.", []clibase.Example{
		{Title: "Default loci and thresholds", Command: "serotyper --ref-dir /data/serotype_db -i EC001.fasta"},
		{Title: "JSON report, custom output directory", Command: "serotyper -i EC001.fna.gz -o results/EC001 --output json"},
		{Title: "Stricter gates, bounded blastn", Command: "serotyper -i EC001.fa --identity 95 --coverage 80 --timeout 5m"},
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
// A single positional argument is accepted as the input file.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	fs.StringVar(&o.Infile, "infile", "", "assembled genome FASTA [required]")
	fs.StringVar(&o.Infile, "i", "", "alias of --infile")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	if err := clibase.AfterParse(fs, &c, noHeader); err != nil {
		return o, err
	}
	o.Common = c

	switch {
	case len(posArgs) > 1:
		return o, fmt.Errorf("expected one input file, got %d", len(posArgs))
	case len(posArgs) == 1 && o.Infile != "":
		return o, errors.New("input given both as --infile and as an argument")
	case len(posArgs) == 1:
		o.Infile = posArgs[0]
	}
	if o.Infile == "" {
		return o, errors.New("--infile is required")
	}
	return o, nil
}
