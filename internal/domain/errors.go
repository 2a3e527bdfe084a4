package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel causes wrapped by the typed errors below.
var (
	ErrBelowIdentity    = errors.New("identity below threshold")
	ErrUnknownReference = errors.New("unknown reference id")
	ErrMissingDatabase  = errors.New("reference database missing")
	ErrUnreadableInput  = errors.New("input unreadable")
)

// Kind is a coarse classification used in trace events and exit codes.
type Kind string

const (
	KindNone                 Kind = ""
	KindParse                Kind = "parse"
	KindReferenceLookup      Kind = "reference_lookup"
	KindMalformedReferenceID Kind = "malformed_reference_id"
	KindExternalTool         Kind = "external_tool"
	KindSampleProcessing     Kind = "sample_processing"
	KindCanceled             Kind = "canceled"
	KindOther                Kind = "other"
)

type kinded interface{ Kind() Kind }

// KindOf classifies err. Context cancellation wins over the wrapping type so
// that cancelled work is not reported as a tool failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindOther
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// ReferenceLookupError means the length of a reference entry could not be
// resolved. The hit is dropped; the locus continues.
type ReferenceLookupError struct {
	RefID string
	Err   error
}

func (e *ReferenceLookupError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reference lookup %q: %v", e.RefID, e.Err)
}

func (e *ReferenceLookupError) Unwrap() error { return e.Err }
func (e *ReferenceLookupError) Kind() Kind    { return KindReferenceLookup }

// MalformedReferenceIDError means a reference id does not follow the
// group_x_x_variant convention. It points at a broken reference database.
type MalformedReferenceIDError struct {
	RefID  string
	Fields int
}

func (e *MalformedReferenceIDError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("malformed reference id %q: %d %q-delimited fields, need at least %d",
		e.RefID, e.Fields, RefIDDelimiter, refVariantField+1)
}

func (e *MalformedReferenceIDError) Kind() Kind { return KindMalformedReferenceID }

// ExternalToolError means an aligner or lookup tool could not be run to
// completion for a locus.
type ExternalToolError struct {
	Tool     string
	Locus    string
	ExitCode int    // -1 when the process did not exit normally
	Stderr   string // trimmed, possibly truncated
	Err      error
}

func (e *ExternalToolError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Tool
	if e.Locus != "" {
		msg += " (" + e.Locus + ")"
	}
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
func (e *ExternalToolError) Kind() Kind    { return KindExternalTool }

// SampleProcessingError means a whole sample could not be typed. In batch
// mode the sample is reported unknown at every locus.
type SampleProcessingError struct {
	Sample string
	Path   string
	Err    error
}

func (e *SampleProcessingError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := "sample " + e.Sample
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *SampleProcessingError) Unwrap() error { return e.Err }
func (e *SampleProcessingError) Kind() Kind    { return KindSampleProcessing }
