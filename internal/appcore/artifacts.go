// internal/appcore/artifacts.go
package appcore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"serotyper/internal/domain"
	"serotyper/internal/output"
	"serotyper/internal/sample"
	"serotyper/internal/trace"
	"serotyper/internal/writers"
)

// Artifact names inside an output directory.
const (
	SampleLog    = "serotyper.log"
	SampleReport = "serotyper_output.txt"
	BatchLog     = "multi_serotyper.log"
	BatchReport  = "multi_serotyper_output.txt"
)

// RawName returns the file name of the aligner output for locus.
func RawName(locus string) string { return "blastn_results_" + locus + "_type.txt" }

// WriteFileAtomic writes path through a temporary file in the same
// directory and renames it into place, so readers never see a partial file.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// WriteSampleArtifacts writes the per-locus aligner output, the trace log
// and the single-row report of one sample into dir.
func WriteSampleArtifacts(dir string, out sample.Outcome, traceFormat string) error {
	for _, locus := range out.Result.Loci {
		raw, ok := out.Raw[locus]
		if !ok {
			continue
		}
		if err := WriteFileAtomic(filepath.Join(dir, RawName(locus)), func(w io.Writer) error {
			_, err := w.Write(raw)
			return err
		}); err != nil {
			return err
		}
	}
	if err := WriteTrace(filepath.Join(dir, SampleLog), traceFormat, out.Trace); err != nil {
		return err
	}
	rep := domain.NewReport("", out.Result.Loci)
	rep.Append(out.Result)
	return WriteReportFile(filepath.Join(dir, SampleReport), rep)
}

// WriteTrace writes tr to path in format.
func WriteTrace(path, format string, tr trace.Trace) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return writers.WriteTrace(format, w, tr)
	})
}

// WriteReportFile writes rep to path as a text table with header.
func WriteReportFile(path string, rep *domain.Report) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return writers.WriteReport(output.FormatText, w, rep, true)
	})
}
