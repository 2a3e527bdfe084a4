// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"serotyper/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, input block).
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s – in-silico H/O antigen typing from BLAST evidence\n\n", name)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		// Tool-specific additions (usage line, input block)
		if extra != nil {
			extra(out, def)
		}

		// Shared blocks
		fmt.Fprintln(out, "\nReference:")
		fmt.Fprintln(out, "      --ref-dir dir           Reference directory (H_database/H_type, O_database/O_type) [$SERO_REF]")
		fmt.Fprintln(out, "      --loci file             YAML loci file (loci, thresholds, tool paths)")
		fmt.Fprintf(out, "      --identity float        Minimum %% identity of a hit [%s]\n", def("identity"))
		fmt.Fprintf(out, "      --coverage float        Minimum %% coverage of the reference [%s]\n", def("coverage"))
		fmt.Fprintf(out, "      --blastn path           blastn executable [%s]\n", def("blastn"))
		fmt.Fprintf(out, "      --blastdbcmd path       blastdbcmd executable [%s]\n", def("blastdbcmd"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "      --blast-threads int     Threads per blastn run [%s]\n", def("blast-threads"))
		fmt.Fprintf(out, "      --timeout duration      Limit per blastn run (0=none) [%s]\n", def("timeout"))
		fmt.Fprintf(out, "  -t, --threads int           Samples typed concurrently (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --locus-parallel int    Loci aligned concurrently per sample [%s]\n", def("locus-parallel"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintln(out, "  -o, --outdir dir            Output directory")
		fmt.Fprintf(out, "      --output string         Report on stdout: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --trace string          Trace log format: text | jsonl [%s]\n", def("trace"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "      --debug                 Debug diagnostics on stderr [%s]\n", def("debug"))
		fmt.Fprintf(out, "  -q, --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
