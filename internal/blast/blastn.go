package blast

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"serotyper/internal/domain"
)

// Defaults for blastn invocations.
const (
	DefaultBlastn      = "blastn"
	DefaultMinIdentity = 85.0
	DefaultThreads     = 4
)

// Blastn aligns a query FASTA against a locus database with blastn.
type Blastn struct {
	Path        string  // executable; DefaultBlastn when empty
	MinIdentity float64 // -perc_identity
	Threads     int     // -num_threads; 0 leaves the blastn default
}

// Align runs blastn and returns its tabular output, reduced to the first
// record per query id.
func (b Blastn) Align(ctx context.Context, query string, locus domain.Locus) ([]byte, error) {
	if !DatabaseExists(locus.Database) {
		return nil, &domain.ExternalToolError{
			Tool: "blastn", Locus: locus.Name, ExitCode: -1,
			Err: fmt.Errorf("%w: %s", domain.ErrMissingDatabase, locus.Database),
		}
	}
	path := b.Path
	if path == "" {
		path = DefaultBlastn
	}
	out, err := run(ctx, "blastn", locus.Name, path, b.Args(query, locus.Database)...)
	if err != nil {
		return nil, err
	}
	return DedupeByQuery(out), nil
}

// Args returns the blastn argument vector.
func (b Blastn) Args(query, db string) []string {
	ident := b.MinIdentity
	if ident <= 0 {
		ident = DefaultMinIdentity
	}
	args := []string{
		"-query", query,
		"-db", db,
		"-perc_identity", strconv.FormatFloat(ident, 'f', -1, 64),
		"-outfmt", "6",
	}
	if b.Threads > 0 {
		args = append(args, "-num_threads", strconv.Itoa(b.Threads))
	}
	return args
}

// DatabaseExists reports whether a nucleotide BLAST database (volume or
// alias files) exists at prefix db.
func DatabaseExists(db string) bool {
	if db == "" {
		return false
	}
	for _, pat := range []string{db + ".n*", db + ".*.n*"} {
		if m, _ := filepath.Glob(pat); len(m) > 0 {
			return true
		}
	}
	return false
}
