// Package checker wraps a single external tool invocation behind a
// small interface so the gate engine can be tested without spawning
// real processes.
package checker

import (
	"context"
	"io"

	"github.com/epmk/buildgate/internal/types"
)

// Checker runs one gate step's tool and reduces it to pass/fail.
// Tool output is streamed to out as it is produced; a failing check
// returns a *Failure carrying the captured diagnostic text.
type Checker interface {
	Check(ctx context.Context, out io.Writer) error
}

// ForStep returns the checker matching a step definition. Probe steps
// get a toolchain probe; everything else is a plain command.
func ForStep(step types.Step, dir string) Checker {
	if step.Kind == types.KindProbe {
		return &ProbeChecker{Step: step, Dir: dir}
	}
	return &CommandChecker{Step: step, Dir: dir}
}
