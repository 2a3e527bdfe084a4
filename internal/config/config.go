// Package config resolves run settings from flags, an optional YAML loci
// file, the environment (with .env support), and built-in defaults, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"serotyper/internal/blast"
	"serotyper/internal/domain"
	"serotyper/internal/typing"
)

// Environment variables consulted when flags and the loci file are silent.
const (
	EnvRefDir     = "SERO_REF"
	EnvBlastn     = "SEROTYPER_BLASTN"
	EnvBlastDBCmd = "SEROTYPER_BLASTDBCMD"
)

// ErrNoRefDir means a relative locus database needs a reference directory
// and none was configured.
var ErrNoRefDir = errors.New("reference directory not set (use --ref-dir or $" + EnvRefDir + ")")

// DefaultLoci are the flagellar and somatic antigen loci.
var DefaultLoci = []LocusSpec{{Name: "H"}, {Name: "O"}}

// LocusSpec is one locus as written in the loci file. An empty Database
// defaults to "<Name>_database/<Name>_type" under the reference directory.
type LocusSpec struct {
	Name     string `yaml:"name"`
	Database string `yaml:"database,omitempty"`
}

// File is the YAML loci file.
type File struct {
	ReferenceDir string      `yaml:"reference_dir,omitempty"`
	Identity     *float64    `yaml:"identity,omitempty"`
	Coverage     *float64    `yaml:"coverage,omitempty"`
	Blastn       string      `yaml:"blastn,omitempty"`
	BlastDBCmd   string      `yaml:"blastdbcmd,omitempty"`
	BlastThreads *int        `yaml:"blast_threads,omitempty"`
	Timeout      string      `yaml:"timeout,omitempty"`
	Loci         []LocusSpec `yaml:"loci,omitempty"`
}

// Overrides holds flag values the user set explicitly; nil means unset.
type Overrides struct {
	RefDir       *string
	LociFile     *string
	Identity     *float64
	Coverage     *float64
	Blastn       *string
	BlastDBCmd   *string
	BlastThreads *int
	Timeout      *time.Duration
}

// Settings is the resolved configuration of a run.
type Settings struct {
	RefDir       string
	Loci         []domain.Locus
	MinIdentity  float64
	MinCoverage  float64
	Blastn       string
	BlastDBCmd   string
	BlastThreads int
	Timeout      time.Duration
}

// LocusNames returns the configured locus names in order.
func (s Settings) LocusNames() []string { return domain.LocusNames(s.Loci) }

// Load reads .env (if present) into the process environment without
// overriding existing variables, then resolves settings.
func Load(o Overrides) (Settings, error) {
	_ = godotenv.Load()
	return Resolve(o, os.Getenv)
}

// Resolve builds Settings from o, the loci file it names, and getenv.
func Resolve(o Overrides, getenv func(string) string) (Settings, error) {
	var f File
	if o.LociFile != nil && *o.LociFile != "" {
		var err error
		if f, err = ReadFile(*o.LociFile); err != nil {
			return Settings{}, err
		}
	}

	s := Settings{
		MinIdentity:  blast.DefaultMinIdentity,
		MinCoverage:  typing.DefaultMinCoverage,
		Blastn:       firstNonEmpty(deref(o.Blastn), f.Blastn, getenv(EnvBlastn), blast.DefaultBlastn),
		BlastDBCmd:   firstNonEmpty(deref(o.BlastDBCmd), f.BlastDBCmd, getenv(EnvBlastDBCmd), blast.DefaultBlastDBCmd),
		BlastThreads: blast.DefaultThreads,
		RefDir:       firstNonEmpty(deref(o.RefDir), f.ReferenceDir, getenv(EnvRefDir)),
	}
	if f.Identity != nil {
		s.MinIdentity = *f.Identity
	}
	if o.Identity != nil {
		s.MinIdentity = *o.Identity
	}
	if f.Coverage != nil {
		s.MinCoverage = *f.Coverage
	}
	if o.Coverage != nil {
		s.MinCoverage = *o.Coverage
	}
	if f.BlastThreads != nil {
		s.BlastThreads = *f.BlastThreads
	}
	if o.BlastThreads != nil {
		s.BlastThreads = *o.BlastThreads
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return Settings{}, fmt.Errorf("loci file: timeout: %w", err)
		}
		s.Timeout = d
	}
	if o.Timeout != nil {
		s.Timeout = *o.Timeout
	}

	specs := f.Loci
	if len(specs) == 0 {
		specs = DefaultLoci
	}
	loci, err := resolveLoci(specs, s.RefDir)
	if err != nil {
		return Settings{}, err
	}
	s.Loci = loci
	return s, s.Validate()
}

// ReadFile parses a YAML loci file.
func ReadFile(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("loci file: %w", err)
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("loci file %s: %w", path, err)
	}
	return f, nil
}

// Validate checks the invariants a run depends on.
func (s Settings) Validate() error {
	if len(s.Loci) == 0 {
		return errors.New("at least one locus is required")
	}
	seen := make(map[string]struct{}, len(s.Loci))
	for _, l := range s.Loci {
		if strings.TrimSpace(l.Name) == "" {
			return errors.New("locus name must not be empty")
		}
		if _, dup := seen[l.Name]; dup {
			return fmt.Errorf("duplicate locus %q", l.Name)
		}
		seen[l.Name] = struct{}{}
	}
	if s.MinIdentity <= 0 || s.MinIdentity > 100 {
		return fmt.Errorf("identity %g must be in (0,100]", s.MinIdentity)
	}
	if s.MinCoverage < 0 || s.MinCoverage > 100 {
		return fmt.Errorf("coverage %g must be in [0,100]", s.MinCoverage)
	}
	if s.BlastThreads < 0 {
		return errors.New("blast threads must be ≥ 0")
	}
	if s.Timeout < 0 {
		return errors.New("timeout must be ≥ 0")
	}
	if s.RefDir != "" {
		fi, err := os.Stat(s.RefDir)
		if err != nil {
			return fmt.Errorf("reference directory: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("reference directory %s is not a directory", s.RefDir)
		}
	}
	return nil
}

func resolveLoci(specs []LocusSpec, refDir string) ([]domain.Locus, error) {
	out := make([]domain.Locus, 0, len(specs))
	for _, sp := range specs {
		db := sp.Database
		if db == "" {
			db = filepath.Join(sp.Name+"_database", sp.Name+"_type")
		}
		if !filepath.IsAbs(db) {
			if refDir == "" {
				return nil, fmt.Errorf("locus %s: %w", sp.Name, ErrNoRefDir)
			}
			db = filepath.Join(refDir, db)
		}
		out = append(out, domain.Locus{Name: sp.Name, Database: db})
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
