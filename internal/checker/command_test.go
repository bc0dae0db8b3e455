package checker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/epmk/buildgate/internal/types"
)

func TestCommandCheckerPass(t *testing.T) {
	c := &CommandChecker{Step: types.Step{Name: "ok", Command: "true"}}
	if err := c.Check(context.Background(), io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCommandCheckerStreamsOutput(t *testing.T) {
	var buf bytes.Buffer
	c := &CommandChecker{Step: types.Step{Name: "echo", Command: "echo hello; echo oops >&2"}}
	if err := c.Check(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("stdout not streamed: %q", out)
	}
	if !strings.Contains(out, "oops") {
		t.Errorf("stderr not streamed: %q", out)
	}
}

func TestCommandCheckerFailureKinds(t *testing.T) {
	tests := []struct {
		name string
		kind types.StepKind
		want FailureKind
	}{
		{"format step", types.KindFormat, FormatViolation},
		{"lint step", types.KindLint, LintViolation},
		{"unit test step", types.KindUnitTest, UnitTestFailure},
		{"integration test step", types.KindIntegrationTest, IntegrationTestFailure},
		{"e2e step", types.KindEndToEnd, EndToEndFailure},
		{"custom step", types.KindCustom, CheckFailed},
		{"unset kind", "", CheckFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CommandChecker{Step: types.Step{Name: "x", Kind: tt.kind, Command: "false"}}
			err := c.Check(context.Background(), io.Discard)
			var f *Failure
			if !errors.As(err, &f) {
				t.Fatalf("expected *Failure, got %v", err)
			}
			if f.Kind != tt.want {
				t.Errorf("expected kind %q, got %q", tt.want, f.Kind)
			}
		})
	}
}

func TestCommandCheckerCapturesDiagnostic(t *testing.T) {
	c := &CommandChecker{Step: types.Step{
		Name:    "lint",
		Kind:    types.KindLint,
		Command: "echo 'warning: unused variable'; exit 1",
	}}
	err := c.Check(context.Background(), io.Discard)
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected *Failure, got %v", err)
	}
	if !strings.Contains(f.Diagnostic, "unused variable") {
		t.Errorf("diagnostic should pass tool output through, got %q", f.Diagnostic)
	}
}

func TestCommandCheckerNoCommand(t *testing.T) {
	c := &CommandChecker{Step: types.Step{Name: "empty"}}
	err := c.Check(context.Background(), io.Discard)
	var f *Failure
	if !errors.As(err, &f) || f.Kind != CheckFailed {
		t.Errorf("expected CheckFailed, got %v", err)
	}
}

func TestProbeCheckerToolMissing(t *testing.T) {
	c := &ProbeChecker{Step: types.Step{
		Name: "toolchain",
		Kind: types.KindProbe,
		Tool: "definitely-not-a-real-tool-7f3a",
	}}
	err := c.Check(context.Background(), io.Discard)
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected *Failure, got %v", err)
	}
	if f.Kind != ToolMissing {
		t.Errorf("expected ToolMissing, got %q", f.Kind)
	}
}

func TestProbeCheckerPass(t *testing.T) {
	c := &ProbeChecker{Step: types.Step{
		Name:    "toolchain",
		Kind:    types.KindProbe,
		Tool:    "sh",
		Command: "echo probe ok",
	}}
	var buf bytes.Buffer
	if err := c.Check(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "probe ok") {
		t.Errorf("probe output not streamed: %q", buf.String())
	}
}

func TestForStep(t *testing.T) {
	if _, ok := ForStep(types.Step{Kind: types.KindProbe, Tool: "sh"}, ".").(*ProbeChecker); !ok {
		t.Error("probe steps should get a ProbeChecker")
	}
	if _, ok := ForStep(types.Step{Kind: types.KindLint, Command: "true"}, ".").(*CommandChecker); !ok {
		t.Error("non-probe steps should get a CommandChecker")
	}
}
