package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tool := &ExternalToolError{Tool: "blastn", Locus: "H", ExitCode: 2, Err: ErrMissingDatabase}
	cases := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{errors.New("plain"), KindOther},
		{&ReferenceLookupError{RefID: "x", Err: ErrUnknownReference}, KindReferenceLookup},
		{&MalformedReferenceIDError{RefID: "x"}, KindMalformedReferenceID},
		{tool, KindExternalTool},
		{fmt.Errorf("wrapped: %w", tool), KindExternalTool},
		{&SampleProcessingError{Sample: "s", Err: ErrUnreadableInput}, KindSampleProcessing},
		{&ExternalToolError{Tool: "blastn", Err: context.Canceled}, KindCanceled},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, KindOf(c.err), "%v", c.err)
	}
}

func TestExternalToolError_Unwrap(t *testing.T) {
	err := &ExternalToolError{Tool: "blastn", Locus: "O", ExitCode: 2, Stderr: "BLAST Database error", Err: ErrMissingDatabase}
	assert.ErrorIs(t, err, ErrMissingDatabase)
	assert.Equal(t, "blastn (O): exit status 2: reference database missing: BLAST Database error", err.Error())
}

func TestSampleProcessingError_Message(t *testing.T) {
	err := &SampleProcessingError{Sample: "s.fa", Path: "/in/s.fa", Err: ErrUnreadableInput}
	assert.Equal(t, "sample s.fa (path=/in/s.fa): input unreadable", err.Error())
	assert.ErrorIs(t, err, ErrUnreadableInput)
}
