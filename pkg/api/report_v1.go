// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON schema for a batch report.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	RunID   string     `json:"run_id,omitempty"`
	Loci    []string   `json:"loci"`
	Samples []SampleV1 `json:"samples"`
}

// SampleV1 is one report row; also the JSONL line schema.
type SampleV1 struct {
	Sample    string   `json:"sample"`
	Calls     []CallV1 `json:"calls"`
	Error     string   `json:"error,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

// CallV1 is the call at one locus. Label is "unknown" or "<variant> (<group>)".
type CallV1 struct {
	Locus     string `json:"locus"`
	Label     string `json:"label"`
	Variant   string `json:"variant,omitempty"`
	Group     string `json:"group,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}
