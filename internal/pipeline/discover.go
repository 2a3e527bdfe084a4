// internal/pipeline/discover.go
package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"serotyper/internal/common"
)

// Discover lists the regular files (or symlinks to them) directly under dir whose names end in
// one of exts (or ext+".gz"), sorted by name. A nil exts uses
// common.FastaExts.
func Discover(dir string, exts []string) ([]string, error) {
	if exts == nil {
		exts = common.FastaExts
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !common.HasExt(e.Name(), exts) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		switch {
		case e.Type().IsRegular():
		case e.Type()&fs.ModeSymlink != 0:
			// Follow links; keep them when they resolve to a regular file.
			fi, err := os.Stat(p)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}
