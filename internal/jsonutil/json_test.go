package jsonutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePretty(&buf, map[string]string{"sample": "R&D <1>.fasta"}))
	assert.Equal(t, "{\n  \"sample\": \"R&D <1>.fasta\"\n}\n", buf.String())
}
