package typing

import (
	"context"
	"fmt"
	"strings"

	"serotyper/internal/blast"
	"serotyper/internal/domain"
)

// lengths is a fake LengthResolver backed by a map.
func lengths(m map[string]int) LengthFunc {
	return func(_ context.Context, refID string) (int, error) {
		n, ok := m[refID]
		if !ok {
			return 0, &domain.ReferenceLookupError{RefID: refID, Err: domain.ErrUnknownReference}
		}
		return n, nil
	}
}

// line renders an -outfmt 6 record.
func line(query, ref string, alignLen, score int) string {
	return fmt.Sprintf("%s\t%s\t99.50\t%d\t2\t0\t1\t%d\t1\t%d\t0.0\t%d", query, ref, alignLen, alignLen, alignLen, score)
}

func raw(lines ...string) []byte { return []byte(strings.Join(lines, "\n") + "\n") }

func hit(idx int, ref string, alignLen, score int) blast.Hit {
	return blast.Hit{Index: idx, QueryID: fmt.Sprintf("c%d", idx), RefID: ref, Identity: 99.5, AlignLen: alignLen, Score: score}
}
