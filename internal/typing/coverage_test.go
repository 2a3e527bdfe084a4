package typing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotyper/internal/blast"
	"serotyper/internal/domain"
	"serotyper/internal/trace"
)

func TestCoverage(t *testing.T) {
	assert.Equal(t, 95.0, Coverage(570, 600))
	assert.Equal(t, 60.0, Coverage(360, 600))
	assert.Equal(t, 59.9, Coverage(599, 1000))
	assert.Equal(t, 100.0, Coverage(600, 600))
}

func TestCoverageFilter_BoundaryInclusive(t *testing.T) {
	f := CoverageFilter{MinCoverage: DefaultMinCoverage, Lengths: lengths(map[string]int{
		"a_1_x_H1": 1000, "b_1_x_H2": 1000, "c_1_x_H3": 600,
	})}
	in := []blast.Hit{
		hit(1, "a_1_x_H1", 599, 2000), // 59.9 %
		hit(2, "b_1_x_H2", 600, 100),  // 60.0 %
		hit(3, "c_1_x_H3", 360, 50),   // 60.0 %
	}
	var tr trace.Trace
	out := f.Filter(context.Background(), "H", in, &tr)

	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Index)
	assert.Equal(t, 3, out[1].Index)

	ev := tr.Events()
	require.Len(t, ev, 3)
	assert.Equal(t, trace.Discarded, ev[0].Decision)
	assert.InDelta(t, 59.9, ev[0].Coverage, 1e-9)
	assert.Equal(t, trace.Accepted, ev[1].Decision)
	assert.Equal(t, 1000, ev[1].RefLen)
}

func TestCoverageFilter_PreservesOrder(t *testing.T) {
	f := CoverageFilter{MinCoverage: 60, Lengths: lengths(map[string]int{"r_1_x_A": 100})}
	in := []blast.Hit{hit(5, "r_1_x_A", 90, 1), hit(2, "r_1_x_A", 95, 3), hit(9, "r_1_x_A", 99, 2)}
	out := f.Filter(context.Background(), "H", in, &trace.Trace{})
	assert.Equal(t, in, out)
}

func TestCoverageFilter_NilTrace(t *testing.T) {
	f := CoverageFilter{MinCoverage: 60, Lengths: lengths(map[string]int{"r_1_x_A": 100})}
	in := []blast.Hit{hit(1, "r_1_x_A", 90, 1), hit(2, "r_1_x_A", 10, 3), hit(3, "missing_1_x_B", 99, 2)}
	var out []blast.Hit
	require.NotPanics(t, func() { out = f.Filter(context.Background(), "H", in, nil) })
	assert.Equal(t, in[:1], out)
}

func TestCoverageFilter_Empty(t *testing.T) {
	f := CoverageFilter{MinCoverage: 60, Lengths: lengths(nil)}
	var tr trace.Trace
	out := f.Filter(context.Background(), "O", nil, &tr)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Zero(t, tr.Len())
}

func TestCoverageFilter_LookupFailureDropsHitOnly(t *testing.T) {
	f := CoverageFilter{MinCoverage: 60, Lengths: LengthFunc(func(_ context.Context, id string) (int, error) {
		switch id {
		case "gone_1_x_O1":
			return 0, errors.New("blastdbcmd exploded")
		case "zero_1_x_O2":
			return 0, nil
		}
		return 100, nil
	})}
	in := []blast.Hit{hit(1, "gone_1_x_O1", 90, 9), hit(2, "zero_1_x_O2", 90, 9), hit(3, "ok_1_x_O3", 90, 1)}
	var tr trace.Trace
	out := f.Filter(context.Background(), "O", in, &tr)

	require.Len(t, out, 1)
	assert.Equal(t, "ok_1_x_O3", out[0].RefID)
	fails := tr.Failures()
	require.Len(t, fails, 2)
	for _, e := range fails {
		assert.Equal(t, domain.KindReferenceLookup, e.Kind)
		assert.Equal(t, trace.Dropped, e.Decision)
	}
	assert.Contains(t, fails[0].Message, "exploded")
}
