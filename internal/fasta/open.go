// internal/fasta/open.go
package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// IsGzip reports whether path is gzip-compressed, by magic number or suffix.
func IsGzip(path string) (bool, error) {
	if strings.HasSuffix(path, ".gz") {
		return true, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer fh.Close()
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	return n == 2 && sig[0] == 0x1f && sig[1] == 0x8b, nil
}

// openReader opens path, transparently decompressing gzip.
func openReader(path string) (io.ReadCloser, error) {
	gz, err := IsGzip(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gz {
		return fh, nil
	}
	gr, err := gzip.NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
}
