// internal/multicli/options.go
package multicli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"serotyper/internal/clibase"
	"serotyper/internal/cliutil"
)

// Options holds the multi-serotyper command line.
type Options struct {
	clibase.Common

	Indir string
	Files []string // explicit assemblies, in command-line order
}

// NewFlagSet returns a FlagSet with the multi-serotyper usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] -i assemblies/\n", name)
		_, _ = fmt.Fprintf(out, "  %s [options] a.fasta b.fasta 'more/*.fna'\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -i, --indir dir             Directory of assemblies (.fasta/.fsa/.fna/.fa, optionally .gz)")
		_, _ = fmt.Fprintln(out, "  files...                    Assemblies or globs, typed in the order given")
		_, _ = fmt.Fprintln(out, "                              Output defaults to <indir>/multi_serotyper_output,")
		_, _ = fmt.Fprintln(out, "                              or ./multi_serotyper_output for files")
	})
	return fs
}

// PrintExamples prints a tiny quickstart for multi-serotyper.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "multi-serotyper", "Type every assembly in a directory; one report row per file.", []clibase.Example{
		{Title: "Whole directory, 8 samples at a time", Command: "multi-serotyper --ref-dir /data/serotype_db -i assemblies/ -t 8"},
		{Title: "Selected assemblies", Command: "multi-serotyper -o typed/ runs/EC00*.fasta extra.fna"},
		{Title: "Stream rows as JSON lines", Command: "multi-serotyper -i assemblies/ --output jsonl | jq .calls"},
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positionals are either one input directory or a list of assemblies.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	fs.StringVar(&o.Indir, "indir", "", "directory of assemblies")
	fs.StringVar(&o.Indir, "i", "", "alias of --indir")

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

	// One directory argument stands in for --indir; anything else is a
	// list of assemblies (globs allowed).
	if len(posArgs) == 1 && o.Indir == "" && isDir(posArgs[0]) {
		o.Indir = posArgs[0]
		return o, nil
	}
	files, err := cliutil.ExpandInputs(posArgs)
	if err != nil {
		return o, err
	}
	switch {
	case len(files) > 0 && o.Indir != "":
		return o, errors.New("give either --indir or assembly files, not both")
	case len(files) == 0 && o.Indir == "":
		return o, errors.New("--indir or at least one assembly is required")
	}
	o.Files = files
	return o, nil
}

func isDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}
