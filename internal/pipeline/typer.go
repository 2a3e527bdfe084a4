// internal/pipeline/typer.go
package pipeline

import (
	"context"

	"serotyper/internal/sample"
)

// SampleTyper is the minimal capability the pipeline needs.
// *sample.Orchestrator (and fakes in tests) satisfy it.
type SampleTyper interface {
	Type(ctx context.Context, in sample.Input) (sample.Outcome, error)
}

var _ SampleTyper = (*sample.Orchestrator)(nil)
