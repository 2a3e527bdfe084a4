// pkg/api/trace_v1.go
package api

// TraceEventV1 is the stable JSONL schema for audit trace events.
type TraceEventV1 struct {
	Sample    string  `json:"sample,omitempty"`
	Locus     string  `json:"locus,omitempty"`
	Stage     string  `json:"stage"`
	Hit       int     `json:"hit,omitempty"`
	Line      string  `json:"line,omitempty"`
	RefID     string  `json:"ref_id,omitempty"`
	RefLen    int     `json:"ref_len,omitempty"`
	AlignLen  int     `json:"align_len,omitempty"`
	Coverage  float64 `json:"coverage,omitempty"`
	Score     int     `json:"score,omitempty"`
	Decision  string  `json:"decision,omitempty"`
	ErrorKind string  `json:"error_kind,omitempty"`
	Message   string  `json:"message,omitempty"`
}
