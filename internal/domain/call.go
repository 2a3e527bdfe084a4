package domain

import (
	"fmt"
	"strings"
)

// UnknownLabel is the rendered form of a call with no confident evidence.
const UnknownLabel = "unknown"

// RefIDDelimiter separates the fields of a reference id.
const RefIDDelimiter = "_"

const (
	refGroupField   = 0
	refVariantField = 3
)

// Call is the resolved antigen type of one locus for one sample.
// The zero value is the unknown sentinel.
type Call struct {
	Variant string `json:"variant,omitempty"`
	Group   string `json:"group,omitempty"`
}

// Unknown returns the sentinel call.
func Unknown() Call { return Call{} }

// Known reports whether c carries a variant.
func (c Call) Known() bool { return c.Variant != "" }

// String renders "<variant> (<group>)" or UnknownLabel.
func (c Call) String() string {
	if !c.Known() {
		return UnknownLabel
	}
	return fmt.Sprintf("%s (%s)", c.Variant, c.Group)
}

// CallFromRefID derives a call from a reference id such as
// "fliC_1_AB028471_H19" (group "fliC", variant "H19").
func CallFromRefID(refID string) (Call, error) {
	f := strings.Split(refID, RefIDDelimiter)
	if len(f) <= refVariantField {
		return Call{}, &MalformedReferenceIDError{RefID: refID, Fields: len(f)}
	}
	group, variant := f[refGroupField], f[refVariantField]
	if group == "" || variant == "" {
		return Call{}, &MalformedReferenceIDError{RefID: refID, Fields: len(f)}
	}
	return Call{Variant: variant, Group: group}, nil
}
