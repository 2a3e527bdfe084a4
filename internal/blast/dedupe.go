package blast

import (
	"bytes"
	"strings"
)

// DedupeByQuery keeps the first record per query id, preserving arrival
// order. blastn groups records by query, so this is the same as a merge-sort
// unique on the first column.
func DedupeByQuery(raw []byte) []byte {
	var out bytes.Buffer
	seen := make(map[string]struct{})
	for _, rec := range Records(raw) {
		q := rec.Text
		if i := strings.IndexByte(q, '\t'); i >= 0 {
			q = q[:i]
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out.WriteString(rec.Text)
		out.WriteByte('\n')
	}
	return out.Bytes()
}
