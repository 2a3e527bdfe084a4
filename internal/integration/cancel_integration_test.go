package integration

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"serotyper/internal/app"
	"serotyper/internal/multiapp"
)

// A blastn that never finishes on its own.
const hangingBlastn = `exec sleep 30`

func TestCtrlC_MidAlignment_Exit130(t *testing.T) {
	r := newRefs(t, hangingBlastn)
	work := t.TempDir()
	in := fasta(t, work, "slow.fa")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	code := app.RunContext(ctx, r.args("-i", in, "-o", filepath.Join(work, "o")), io.Discard, io.Discard)
	assert.Equal(t, 130, code)
	assert.Less(t, time.Since(start), 10*time.Second, "blastn is killed on cancel")
}

func TestCtrlC_Batch_Exit130(t *testing.T) {
	r := newRefs(t, hangingBlastn)
	indir := t.TempDir()
	for _, n := range []string{"a.fa", "b.fa", "c.fa", "d.fa"} {
		fasta(t, indir, n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	code := multiapp.RunContext(ctx, r.args("-i", indir, "-o", filepath.Join(t.TempDir(), "o"), "-t", "2"), io.Discard, io.Discard)
	assert.Equal(t, 130, code)
}
