// internal/common/names.go
package common

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FastaExts are the assembly suffixes accepted as sample inputs. Each also
// matches with a trailing ".gz".
var FastaExts = []string{".fasta", ".fsa", ".fna", ".fa"}

// HasExt reports whether name ends with one of exts, optionally gzipped.
func HasExt(name string, exts []string) bool {
	name = strings.TrimSuffix(name, ".gz")
	for _, x := range exts {
		if strings.HasSuffix(name, x) && len(name) > len(x) {
			return true
		}
	}
	return false
}

// Stem returns the base name of path without ".gz" and the first matching
// extension of exts (FastaExts when nil).
func Stem(path string, exts []string) string {
	if exts == nil {
		exts = FastaExts
	}
	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	for _, x := range exts {
		if strings.HasSuffix(base, x) && len(base) > len(x) {
			return strings.TrimSuffix(base, x)
		}
	}
	return base
}

// OutputDir returns the per-sample output directory name for input path:
// "<stem>_serotyper_output".
func OutputDir(path string) string {
	return Stem(path, nil) + "_serotyper_output"
}

// OutputDirs names one output directory per input, in order. The first
// input with a given stem gets OutputDir; a later one falls back to its
// full base name ("s1.fasta_serotyper_output"), then to a numbered name,
// so every input gets its own directory.
func OutputDirs(paths []string) []string {
	out := make([]string, len(paths))
	taken := make(map[string]bool, len(paths))
	for i, p := range paths {
		name := OutputDir(p)
		if taken[name] {
			name = filepath.Base(p) + "_serotyper_output"
		}
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d_serotyper_output", filepath.Base(p), n)
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
