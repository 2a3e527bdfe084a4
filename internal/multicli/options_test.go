package multicli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func TestIndirFlagAndAliases(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"-i", "assemblies", "-t", "8", "-q", "--locus-parallel", "2"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Indir != "assemblies" || o.Threads != 8 || !o.Quiet || o.LocusParallel != 2 {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestIndirPositional(t *testing.T) {
	dir := t.TempDir()
	o, err := ParseArgs(newFS(), []string{dir, "--output=jsonl"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Indir != dir || o.Output != "jsonl" || len(o.Files) != 0 {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestFilesPositional(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.fa", "a.fa"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(">x\nA\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	z := filepath.Join(dir, "z.fasta")
	o, err := ParseArgs(newFS(), []string{z, filepath.Join(dir, "*.fa")})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{z, filepath.Join(dir, "a.fa"), filepath.Join(dir, "b.fa")}
	if len(o.Files) != 3 || o.Files[0] != want[0] || o.Files[1] != want[1] || o.Files[2] != want[2] {
		t.Fatalf("files = %v, want %v", o.Files, want)
	}

	if _, err := ParseArgs(newFS(), []string{"-i", dir, z}); err == nil {
		t.Fatal("expected error for --indir plus files")
	}
}

func TestInputRequired(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--threads", "2"}); err == nil {
		t.Fatal("expected error without --indir")
	}
}
