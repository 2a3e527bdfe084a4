// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoRecords is returned for inputs without a single '>' header.
var ErrNoRecords = errors.New("no FASTA records")

// Summary describes an input file without validating its alphabet.
type Summary struct {
	Path    string
	Records int
	Bases   int
	Gzip    bool
}

// Summarize reads path once and counts records and sequence bases.
// It fails if the file cannot be read or holds no header line.
func Summarize(path string) (Summary, error) {
	s := Summary{Path: path}
	gz, err := IsGzip(path)
	if err != nil {
		return s, err
	}
	s.Gzip = gz
	rc, err := openReader(path)
	if err != nil {
		return s, err
	}
	defer rc.Close()

	r := bufio.NewReader(rc)
	for {
		line, err := r.ReadBytes('\n')
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 {
			if line[0] == '>' {
				s.Records++
			} else if s.Records > 0 {
				s.Bases += len(bytes.TrimSpace(line))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return s, err
		}
	}
	if s.Records == 0 {
		return s, ErrNoRecords
	}
	return s, nil
}

// Materialize returns a plain-text path for path that external tools can
// read. Uncompressed inputs are returned as-is; gzip inputs are
// decompressed into dir.
func Materialize(path, dir string) (string, error) {
	gz, err := IsGzip(path)
	if err != nil {
		return "", err
	}
	if !gz {
		return path, nil
	}
	rc, err := openReader(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), ".gz"))
	if dst == path {
		return "", fmt.Errorf("refusing to overwrite %s", path)
	}
	fh, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fh, rc); err != nil {
		_ = fh.Close()
		_ = os.Remove(dst)
		return "", err
	}
	return dst, fh.Close()
}
