// Package run holds the record of a single gate execution. A Run is
// created fresh per invocation and lives only in memory: the gate
// deliberately keeps no history across runs. Only the engine mutates
// it; checkers and the audit scanner return values.
package run

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/epmk/buildgate/internal/audit"
)

// Outcome of one executed step.
type Outcome string

const (
	Pass Outcome = "pass"
	Fail Outcome = "fail"
)

// StepResult records the outcome of a single step, produced exactly
// once per executed step. Diagnostic carries the tool's own output on
// failure.
type StepResult struct {
	Name       string  `json:"name"`
	Outcome    Outcome `json:"outcome"`
	Diagnostic string  `json:"diagnostic,omitempty"`
	DurationMS int64   `json:"duration_ms"`
}

// Verdict is the gate's terminal state: all required steps passed, or
// the run stopped at a named step.
type Verdict struct {
	Passed     bool   `json:"passed"`
	FailedStep string `json:"failed_step,omitempty"`
}

func (v Verdict) String() string {
	if v.Passed {
		return "all passed"
	}
	return fmt.Sprintf("failed at %s", v.FailedStep)
}

// Run accumulates step results and audit findings for one invocation.
type Run struct {
	Gate      string          `json:"gate"`
	StartedAt time.Time       `json:"started_at"`
	Steps     []StepResult    `json:"steps"`
	Findings  []audit.Finding `json:"findings"`
	Verdict   Verdict         `json:"verdict"`
}

// New starts the record for a gate invocation.
func New(gate string) *Run {
	return &Run{Gate: gate, StartedAt: time.Now()}
}

// AddStep appends a completed step's result in execution order.
func (r *Run) AddStep(sr StepResult) {
	r.Steps = append(r.Steps, sr)
}

// AddFindings folds audit findings into the record. Findings never
// touch the verdict.
func (r *Run) AddFindings(fs []audit.Finding) {
	r.Findings = append(r.Findings, fs...)
}

// Fail fixes the verdict at the named step. The failing step's result
// is the terminal entry in Steps.
func (r *Run) Fail(step string) {
	r.Verdict = Verdict{Passed: false, FailedStep: step}
}

// Complete fixes a passing verdict.
func (r *Run) Complete() {
	r.Verdict = Verdict{Passed: true}
}

// Duration is the elapsed time since the run started.
func (r *Run) Duration() time.Duration {
	return time.Since(r.StartedAt)
}

// WriteReport emits the machine-readable form of the run.
func (r *Run) WriteReport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}
	return nil
}
