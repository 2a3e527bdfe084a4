package blast

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeScript installs an executable /bin/sh script standing in for a
// BLAST+ tool.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stand-ins need a POSIX shell")
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// fakeDB creates the files DatabaseExists looks for.
func fakeDB(t *testing.T, dir, name string) string {
	t.Helper()
	db := filepath.Join(dir, name)
	if err := os.WriteFile(db+".nsq", nil, 0o644); err != nil {
		t.Fatalf("fake db: %v", err)
	}
	return db
}
