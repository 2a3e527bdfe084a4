package blast

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"serotyper/internal/domain"
)

// Defaults for blastdbcmd lookups.
const (
	DefaultBlastDBCmd = "blastdbcmd"
	DefaultCacheSize  = 4096
)

// DBCmd resolves reference lengths with blastdbcmd. Lengths are cached per
// (database, entry); the cache is shared by every Resolver it hands out and
// is safe for concurrent use.
type DBCmd struct {
	path  string
	cache *lru.Cache[string, int]
}

// NewDBCmd returns a DBCmd running the blastdbcmd at path (DefaultBlastDBCmd
// when empty) with an LRU of cacheSize entries (DefaultCacheSize when <= 0).
func NewDBCmd(path string, cacheSize int) (*DBCmd, error) {
	if path == "" {
		path = DefaultBlastDBCmd
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	c, err := lru.New[string, int](cacheSize)
	if err != nil {
		return nil, err
	}
	return &DBCmd{path: path, cache: c}, nil
}

// Resolver binds d to one database.
func (d *DBCmd) Resolver(db string) *Resolver { return &Resolver{cmd: d, db: db} }

// Cached returns the number of cached lengths.
func (d *DBCmd) Cached() int { return d.cache.Len() }

// Resolver answers reference-length queries against one database.
type Resolver struct {
	cmd *DBCmd
	db  string
}

// ReferenceLength returns the full length of entry refID.
func (r *Resolver) ReferenceLength(ctx context.Context, refID string) (int, error) {
	key := r.db + "\x00" + refID
	if n, ok := r.cmd.cache.Get(key); ok {
		return n, nil
	}
	out, err := run(ctx, "blastdbcmd", "", r.cmd.path, "-db", r.db, "-entry", refID, "-outfmt", "%l")
	if err != nil {
		return 0, &domain.ReferenceLookupError{RefID: refID, Err: err}
	}
	n, err := parseLength(out)
	if err != nil {
		return 0, &domain.ReferenceLookupError{RefID: refID, Err: err}
	}
	r.cmd.cache.Add(key, n)
	return n, nil
}

func parseLength(out []byte) (int, error) {
	for _, ln := range strings.Split(string(out), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		n, err := strconv.Atoi(ln)
		if err != nil {
			return 0, fmt.Errorf("unexpected blastdbcmd output %q", ln)
		}
		if n <= 0 {
			return 0, fmt.Errorf("%w: length %d", domain.ErrUnknownReference, n)
		}
		return n, nil
	}
	return 0, domain.ErrUnknownReference
}
