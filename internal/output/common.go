package output

import "strings"

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// FileColumn is the first header cell of the report table.
const FileColumn = "File:"

// ReportHeader returns the canonical header row for text reports:
// "File:\t<L1>-type:\t<L2>-type:...".
func ReportHeader(loci []string) string {
	cells := make([]string, 0, len(loci)+1)
	cells = append(cells, FileColumn)
	for _, l := range loci {
		cells = append(cells, l+"-type:")
	}
	return strings.Join(cells, "\t")
}

// HitHeader labels the columns of a numbered aligner record.
const HitHeader = "id:\tquery seq:\treference seq:\t% identity:\talignment length:\tmismatches:\tgap opens:\tq start:\tq end:\ts start:\ts end:\te-value:\tscore:"

// CoverageHeader labels the coverage table of the text trace.
const CoverageHeader = "id:\tgene name:\tgene size:\talignment size:\t% coverage:\tstatus:"

// Rule separates locus sections in the text trace.
var Rule = strings.Repeat("_", 80)
