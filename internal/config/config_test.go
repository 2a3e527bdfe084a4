package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func ptr[T any](v T) *T { return &v }

func TestResolve_Defaults(t *testing.T) {
	ref := t.TempDir()
	s, err := Resolve(Overrides{}, env(map[string]string{EnvRefDir: ref}))
	require.NoError(t, err)

	assert.Equal(t, ref, s.RefDir)
	assert.Equal(t, 85.0, s.MinIdentity)
	assert.Equal(t, 60.0, s.MinCoverage)
	assert.Equal(t, 4, s.BlastThreads)
	assert.Equal(t, "blastn", s.Blastn)
	assert.Equal(t, "blastdbcmd", s.BlastDBCmd)
	assert.Zero(t, s.Timeout)
	assert.Equal(t, []string{"H", "O"}, s.LocusNames())
	assert.Equal(t, filepath.Join(ref, "H_database", "H_type"), s.Loci[0].Database)
	assert.Equal(t, filepath.Join(ref, "O_database", "O_type"), s.Loci[1].Database)
}

func TestResolve_FlagsBeatFileBeatEnv(t *testing.T) {
	envRef, fileRef, flagRef := t.TempDir(), t.TempDir(), t.TempDir()
	loci := filepath.Join(t.TempDir(), "loci.yaml")
	require.NoError(t, os.WriteFile(loci, []byte(`
reference_dir: `+fileRef+`
identity: 90
coverage: 70
blastn: /opt/blast/bin/blastn
blast_threads: 8
timeout: 30s
loci:
  - name: O
  - name: H
    database: /db/custom_H
`), 0o644))

	e := env(map[string]string{EnvRefDir: envRef, EnvBlastn: "env-blastn", EnvBlastDBCmd: "env-dbcmd"})

	s, err := Resolve(Overrides{LociFile: &loci}, e)
	require.NoError(t, err)
	assert.Equal(t, fileRef, s.RefDir)
	assert.Equal(t, 90.0, s.MinIdentity)
	assert.Equal(t, 70.0, s.MinCoverage)
	assert.Equal(t, "/opt/blast/bin/blastn", s.Blastn)
	assert.Equal(t, "env-dbcmd", s.BlastDBCmd)
	assert.Equal(t, 8, s.BlastThreads)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, []string{"O", "H"}, s.LocusNames())
	assert.Equal(t, filepath.Join(fileRef, "O_database", "O_type"), s.Loci[0].Database)
	assert.Equal(t, "/db/custom_H", s.Loci[1].Database)

	s, err = Resolve(Overrides{
		LociFile:     &loci,
		RefDir:       &flagRef,
		Identity:     ptr(95.0),
		Coverage:     ptr(0.0),
		BlastThreads: ptr(1),
		Timeout:      ptr(time.Minute),
	}, e)
	require.NoError(t, err)
	assert.Equal(t, flagRef, s.RefDir)
	assert.Equal(t, 95.0, s.MinIdentity)
	assert.Equal(t, 0.0, s.MinCoverage)
	assert.Equal(t, 1, s.BlastThreads)
	assert.Equal(t, time.Minute, s.Timeout)
}

func TestResolve_NoRefDir(t *testing.T) {
	_, err := Resolve(Overrides{}, env(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRefDir))
}

func TestResolve_AbsoluteDatabasesNeedNoRefDir(t *testing.T) {
	loci := filepath.Join(t.TempDir(), "loci.yaml")
	require.NoError(t, os.WriteFile(loci, []byte("loci:\n  - name: K\n    database: /db/K_type\n"), 0o644))
	s, err := Resolve(Overrides{LociFile: &loci}, env(nil))
	require.NoError(t, err)
	assert.Empty(t, s.RefDir)
	assert.Equal(t, []string{"K"}, s.LocusNames())
}

func TestResolve_MissingRefDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Resolve(Overrides{RefDir: &missing}, env(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference directory")
}

func TestResolve_BadLociFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("loci: [\n"), 0o644))
	_, err := Resolve(Overrides{LociFile: &bad}, env(map[string]string{EnvRefDir: dir}))
	require.Error(t, err)

	missing := filepath.Join(dir, "missing.yaml")
	_, err = Resolve(Overrides{LociFile: &missing}, env(map[string]string{EnvRefDir: dir}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	badTimeout := filepath.Join(dir, "timeout.yaml")
	require.NoError(t, os.WriteFile(badTimeout, []byte("timeout: soon\n"), 0o644))
	_, err = Resolve(Overrides{LociFile: &badTimeout}, env(map[string]string{EnvRefDir: dir}))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok, err := Resolve(Overrides{}, env(map[string]string{EnvRefDir: t.TempDir()}))
	require.NoError(t, err)

	cases := map[string]func(*Settings){
		"no loci":           func(s *Settings) { s.Loci = nil },
		"duplicate locus":   func(s *Settings) { s.Loci[1].Name = "H" },
		"empty locus name":  func(s *Settings) { s.Loci[0].Name = " " },
		"zero identity":     func(s *Settings) { s.MinIdentity = 0 },
		"identity over 100": func(s *Settings) { s.MinIdentity = 100.5 },
		"negative coverage": func(s *Settings) { s.MinCoverage = -1 },
		"coverage over 100": func(s *Settings) { s.MinCoverage = 101 },
		"negative threads":  func(s *Settings) { s.BlastThreads = -2 },
		"negative timeout":  func(s *Settings) { s.Timeout = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := ok
			s.Loci = append(s.Loci[:0:0], ok.Loci...)
			mutate(&s)
			assert.Error(t, s.Validate())
		})
	}

	edge := ok
	edge.MinIdentity, edge.MinCoverage = 100, 0
	assert.NoError(t, edge.Validate())
}
