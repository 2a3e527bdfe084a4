package blast

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"serotyper/internal/domain"
)

// maxStderr bounds the tool stderr kept in an ExternalToolError.
const maxStderr = 2048

// run executes name with args (no shell) and returns stdout. Any failure is
// an *domain.ExternalToolError; a context error takes precedence over the
// kill signal it caused.
func run(ctx context.Context, tool, locus, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = 2 * time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	te := &domain.ExternalToolError{Tool: tool, Locus: locus, ExitCode: -1, Stderr: trimStderr(stderr.String())}
	if cerr := ctx.Err(); cerr != nil {
		te.Err = cerr
		return nil, te
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		te.ExitCode = ee.ExitCode()
		if te.ExitCode < 0 {
			te.Err = err
		}
		return nil, te
	}
	te.Err = err
	return nil, te
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = s[:maxStderr] + "…"
	}
	return strings.ReplaceAll(s, "\n", " | ")
}
