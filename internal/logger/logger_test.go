package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotyper/internal/runctx"
)

func TestNew_LevelsAndRunID(t *testing.T) {
	var buf bytes.Buffer
	ctx := runctx.WithRunID(context.Background(), "run-1")
	l := ForRun(ctx, New(&buf, Options{}))

	l.Info("hidden")
	l.Warn("locus.failed", "locus", "H")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "locus.failed", rec["msg"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.Equal(t, "H", rec["locus"])
	assert.True(t, strings.HasSuffix(rec["time"].(string), "Z"))
}

func TestNew_QuietAndDebug(t *testing.T) {
	var q, d bytes.Buffer
	New(&q, Options{Quiet: true}).Warn("dropped")
	assert.Zero(t, q.Len())

	New(&d, Options{Debug: true}).Debug("kept")
	assert.Contains(t, d.String(), `"source"`)
}

func TestDiscardAndNilWriter(t *testing.T) {
	assert.NotNil(t, New(nil, Options{}))
	assert.NotNil(t, ForRun(context.Background(), nil))
}
