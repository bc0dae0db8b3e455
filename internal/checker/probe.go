package checker

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/epmk/buildgate/internal/types"
)

// ProbeChecker verifies a required tool is present before the gate
// spends time on real checks. It resolves the binary on PATH, then
// runs the step's version command so the toolchain version lands in
// the report.
type ProbeChecker struct {
	Step types.Step
	Dir  string
}

func (p *ProbeChecker) Check(ctx context.Context, out io.Writer) error {
	tool := p.Step.Tool
	if tool == "" {
		return &Failure{
			Step: p.Step.Name,
			Kind: CheckFailed,
			Err:  fmt.Errorf("probe step has no tool"),
		}
	}

	if _, err := exec.LookPath(tool); err != nil {
		return &Failure{
			Step: p.Step.Name,
			Kind: ToolMissing,
			Err:  fmt.Errorf("%s not found on PATH: %w", tool, err),
		}
	}

	command := p.Step.Command
	if command == "" {
		command = tool + " --version"
	}
	diag, err := runShell(ctx, p.Dir, command, out)
	if err != nil {
		return &Failure{
			Step:       p.Step.Name,
			Kind:       ToolMissing,
			Diagnostic: diag,
			Err:        err,
		}
	}
	return nil
}
