package checker

import (
	"fmt"

	"github.com/epmk/buildgate/internal/types"
)

// FailureKind labels why a step failed, for the operator-facing report.
type FailureKind string

const (
	ToolMissing            FailureKind = "tool missing"
	FormatViolation        FailureKind = "format violation"
	LintViolation          FailureKind = "lint violation"
	UnitTestFailure        FailureKind = "unit test failure"
	IntegrationTestFailure FailureKind = "integration test failure"
	EndToEndFailure        FailureKind = "end-to-end test failure"
	CheckFailed            FailureKind = "check failed"
)

// kindForStep maps a step kind to the failure label its tool's
// non-zero exit gets.
func kindForStep(k types.StepKind) FailureKind {
	switch k {
	case types.KindProbe:
		return ToolMissing
	case types.KindFormat:
		return FormatViolation
	case types.KindLint:
		return LintViolation
	case types.KindUnitTest:
		return UnitTestFailure
	case types.KindIntegrationTest:
		return IntegrationTestFailure
	case types.KindEndToEnd:
		return EndToEndFailure
	}
	return CheckFailed
}

// Failure is the error a checker returns when its tool reports failure.
// Diagnostic holds the tool's own output, passed through unmodified.
type Failure struct {
	Step       string
	Kind       FailureKind
	Diagnostic string
	Err        error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Step, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Step, f.Kind)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
