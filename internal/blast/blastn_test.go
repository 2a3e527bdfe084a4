package blast

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotyper/internal/domain"
)

func TestBlastnArgs(t *testing.T) {
	b := Blastn{MinIdentity: 85, Threads: 4}
	assert.Equal(t,
		[]string{"-query", "in.fa", "-db", "ref/H_type", "-perc_identity", "85", "-outfmt", "6", "-num_threads", "4"},
		b.Args("in.fa", "ref/H_type"))

	b = Blastn{}
	assert.Equal(t,
		[]string{"-query", "q", "-db", "d", "-perc_identity", "85", "-outfmt", "6"},
		b.Args("q", "d"))
}

func TestBlastnAlign_DedupesOutput(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	bin := writeScript(t, dir, "blastn", `echo "$@" > `+argsFile+`
printf 'c1\tfliC_1_X_H7\t99\t1000\t1\t0\t1\t1000\t1\t1000\t0.0\t1800\n'
printf 'c1\tfliC_1_Y_H21\t98\t1000\t1\t0\t1\t1000\t1\t1000\t0.0\t1700\n'
printf 'c2\tflkA_1_Z_H3\t97\t900\t1\t0\t1\t900\t1\t900\t0.0\t1500\n'`)
	db := fakeDB(t, dir, "H_type")

	out, err := Blastn{Path: bin, MinIdentity: 85, Threads: 2}.Align(context.Background(), "in.fa", domain.Locus{Name: "H", Database: db})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "H7")
	assert.Contains(t, lines[1], "H3")

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-perc_identity 85")
	assert.Contains(t, string(args), "-num_threads 2")
}

func TestBlastnAlign_MissingDatabase(t *testing.T) {
	dir := t.TempDir()
	_, err := Blastn{Path: "/nonexistent/blastn"}.Align(context.Background(), "in.fa",
		domain.Locus{Name: "O", Database: filepath.Join(dir, "O_type")})
	var te *domain.ExternalToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "O", te.Locus)
	assert.ErrorIs(t, err, domain.ErrMissingDatabase)
}

func TestBlastnAlign_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "blastn", `echo "BLAST query/options error" >&2
exit 3`)
	db := fakeDB(t, dir, "H_type")

	_, err := Blastn{Path: bin}.Align(context.Background(), "in.fa", domain.Locus{Name: "H", Database: db})
	var te *domain.ExternalToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 3, te.ExitCode)
	assert.Contains(t, te.Stderr, "options error")
	assert.Equal(t, domain.KindExternalTool, domain.KindOf(err))
}

func TestBlastnAlign_Timeout(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "blastn", "exec sleep 5")
	db := fakeDB(t, dir, "H_type")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := Blastn{Path: bin}.Align(ctx, "in.fa", domain.Locus{Name: "H", Database: db})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.KindExternalTool, domain.KindOf(err))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestDatabaseExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, DatabaseExists(""))
	assert.False(t, DatabaseExists(filepath.Join(dir, "X")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "X.00.nhr"), nil, 0o644))
	assert.True(t, DatabaseExists(filepath.Join(dir, "X")))
	assert.True(t, DatabaseExists(fakeDB(t, dir, "Y")))
}
