package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/epmk/buildgate/internal/types"
)

// CommandChecker runs a step's shell command. Output is streamed to
// the caller's writer as the tool produces it, so long-running steps
// show partial progress; a captured copy becomes the failure
// diagnostic.
type CommandChecker struct {
	Step types.Step
	Dir  string
}

func (c *CommandChecker) Check(ctx context.Context, out io.Writer) error {
	if c.Step.Command == "" {
		return &Failure{
			Step: c.Step.Name,
			Kind: CheckFailed,
			Err:  fmt.Errorf("no command specified"),
		}
	}
	diag, err := runShell(ctx, c.Dir, c.Step.Command, out)
	if err == nil {
		return nil
	}
	kind := kindForStep(c.Step.Kind)
	if errors.Is(err, exec.ErrNotFound) {
		kind = ToolMissing
	}
	return &Failure{
		Step:       c.Step.Name,
		Kind:       kind,
		Diagnostic: diag,
		Err:        err,
	}
}

// runShell executes command via sh -c, teeing combined output to out
// while capturing it for diagnostics.
func runShell(ctx context.Context, dir, command string, out io.Writer) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var captured bytes.Buffer
	w := io.MultiWriter(out, &captured)
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	return captured.String(), err
}
