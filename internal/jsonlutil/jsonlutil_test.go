package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestStart_OneLinePerValue(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 1, func(enc *json.Encoder, v int) error { return enc.Encode(v) }, nil)
	for i := 0; i < 3; i++ {
		in <- i
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("done: %v", err)
	}
	if buf.String() != "0\n1\n2\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestStart_DrainsAfterError(t *testing.T) {
	boom := errors.New("boom")
	in, done := Start[int](&bytes.Buffer{}, 1, func(*json.Encoder, int) error { return boom }, nil)
	for i := 0; i < 100; i++ {
		in <- i // must not block
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

type brokenWriter struct{}

var errBroken = errors.New("broken")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestStart_SuppressesBrokenPipe(t *testing.T) {
	in, done := Start[int](brokenWriter{}, 1, func(enc *json.Encoder, v int) error { return enc.Encode(v) },
		func(err error) bool { return errors.Is(err, errBroken) })
	in <- 1
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe should be suppressed, got %v", err)
	}
}
