package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/run"
)

func newTestConsole(buf *bytes.Buffer) *Console {
	return &Console{w: buf}
}

func TestBannerAndStepLabels(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)
	c.Banner("release", 5)
	c.StepStart(2, 5, "format")
	out := buf.String()
	if !strings.Contains(out, `gate "release"`) {
		t.Errorf("banner missing gate name: %q", out)
	}
	if !strings.Contains(out, "[Step 2/5] format") {
		t.Errorf("missing step label: %q", out)
	}
}

func TestStepPassMarker(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)
	c.StepPass(1, 5, "toolchain", 1500*time.Millisecond)
	out := buf.String()
	if !strings.Contains(out, "✔") || !strings.Contains(out, "toolchain") {
		t.Errorf("missing success marker: %q", out)
	}
	if !strings.Contains(out, "1.5s") {
		t.Errorf("missing duration: %q", out)
	}
}

func TestStepFailShowsDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)
	c.StepFail(3, 5, "lint", "lint violation", "warning: unused\nerror: bad\n")
	out := buf.String()
	if !strings.Contains(out, "FATAL") {
		t.Errorf("missing fatal marker: %q", out)
	}
	for _, line := range []string{"warning: unused", "error: bad"} {
		if !strings.Contains(out, line) {
			t.Errorf("diagnostic line %q not rendered: %q", line, out)
		}
	}
}

func TestStepWarnOptional(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)
	c.StepWarn(4, 5, "e2e", errors.New("harness flake"))
	out := buf.String()
	if !strings.Contains(out, "⚠") || !strings.Contains(out, "optional") {
		t.Errorf("missing warning marker: %q", out)
	}
}

func TestAuditGroupsFindings(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)
	rules := audit.DefaultRules()
	groups := audit.GroupByRule(rules, []audit.Finding{
		{Rule: "unsafe-block", Severity: audit.SeverityWarning, File: "src/a.rs", Line: 12},
		{Rule: "unchecked-unwrap", Severity: audit.SeverityWarning, File: "src/b.rs", Line: 7},
	})
	c.Audit(groups)
	out := buf.String()
	if !strings.Contains(out, "src/a.rs:12") || !strings.Contains(out, "src/b.rs:7") {
		t.Errorf("findings not rendered as file:line: %q", out)
	}
	if !strings.Contains(out, "[unsafe-block]") || !strings.Contains(out, "[unchecked-unwrap]") {
		t.Errorf("findings not grouped by rule: %q", out)
	}
}

func TestAuditNoFindings(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)
	c.Audit(nil)
	if !strings.Contains(buf.String(), "no findings") {
		t.Errorf("empty scan should still be reported: %q", buf.String())
	}
}

func TestVerdictRendering(t *testing.T) {
	var buf bytes.Buffer
	c := newTestConsole(&buf)

	passed := run.New("release")
	passed.Complete()
	c.Verdict(passed)
	if !strings.Contains(buf.String(), "GATE PASSED") {
		t.Errorf("missing pass verdict: %q", buf.String())
	}

	buf.Reset()
	failed := run.New("release")
	failed.Fail("lint")
	c.Verdict(failed)
	if !strings.Contains(buf.String(), "GATE FAILED at lint") {
		t.Errorf("missing fail verdict: %q", buf.String())
	}
}

func TestJSONReporterEmitsRunRecord(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSON(&buf)
	r := run.New("release")
	r.AddStep(run.StepResult{Name: "unit", Outcome: run.Pass})
	r.Complete()

	// progress events are silent in machine mode
	j.Banner("release", 1)
	j.StepStart(1, 1, "unit")
	j.StepPass(1, 1, "unit", time.Second)
	j.Verdict(r)

	out := buf.String()
	if !strings.Contains(out, `"gate": "release"`) {
		t.Errorf("JSON report missing gate: %q", out)
	}
	if !strings.Contains(out, `"passed": true`) {
		t.Errorf("JSON report missing verdict: %q", out)
	}
}
