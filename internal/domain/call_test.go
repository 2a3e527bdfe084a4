package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallFromRefID(t *testing.T) {
	c, err := CallFromRefID("fliC_1_AB028471_H19")
	require.NoError(t, err)
	assert.Equal(t, Call{Variant: "H19", Group: "fliC"}, c)
	assert.Equal(t, "H19 (fliC)", c.String())
}

func TestCallFromRefID_ExtraFieldsIgnored(t *testing.T) {
	c, err := CallFromRefID("wzx_208_AF125322_O157_extra")
	require.NoError(t, err)
	assert.Equal(t, "O157 (wzx)", c.String())
}

func TestCallFromRefID_Malformed(t *testing.T) {
	for _, id := range []string{"", "fliC", "fliC_1_AB028471", "_1_2_H7", "fliC_1_2_"} {
		_, err := CallFromRefID(id)
		var me *MalformedReferenceIDError
		require.True(t, errors.As(err, &me), "id %q: %v", id, err)
		assert.Equal(t, KindMalformedReferenceID, KindOf(err))
	}
}

func TestUnknownCall(t *testing.T) {
	assert.False(t, Unknown().Known())
	assert.Equal(t, UnknownLabel, Unknown().String())
	assert.Equal(t, UnknownLabel, Call{}.String())
}

func TestSampleResult_DefaultsToUnknown(t *testing.T) {
	r := NewSampleResult("a.fa", []string{"H", "O"})
	r.Calls["O"] = Call{Variant: "O157", Group: "wzx"}

	assert.Equal(t, []string{"unknown", "O157 (wzx)"}, r.Labels())
	assert.False(t, r.Call("missing").Known())
}

func TestSampleResult_HasKind(t *testing.T) {
	r := NewSampleResult("a.fa", []string{"H"})
	assert.False(t, r.HasKind(KindExternalTool))

	r.Failures = append(r.Failures, LocusFailure{Locus: "H", Kind: KindExternalTool})
	assert.True(t, r.HasKind(KindExternalTool))

	r2 := NewSampleResult("b.fa", []string{"H"})
	r2.Err = &SampleProcessingError{Sample: "b.fa", Err: ErrUnreadableInput}
	assert.True(t, r2.HasKind(KindSampleProcessing))
}

func TestReport_AppendOrder(t *testing.T) {
	rep := NewReport("run", []string{"H", "O"})
	for _, s := range []string{"c", "a", "b"} {
		rep.Append(NewSampleResult(s, rep.Loci))
	}
	rows := rep.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0].Sample)
	assert.Equal(t, "a", rows[1].Sample)
	assert.Equal(t, "b", rows[2].Sample)
}
