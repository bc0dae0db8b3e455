package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/checker"
	"github.com/epmk/buildgate/internal/log"
	"github.com/epmk/buildgate/internal/report"
	"github.com/epmk/buildgate/internal/run"
)

// Engine is the stage sequencer: it executes gate steps in declared
// order, stops at the first required-step failure, and runs the audit
// scan after every step has passed. Checkers are injected by step
// name so tests can substitute deterministic fakes.
type Engine struct {
	Gate     *Gate
	Checkers map[string]checker.Checker
	Run      *run.Run
	Reporter report.Reporter
	Scanner  *audit.Scanner

	// StrictAudit promotes a non-empty finding set to a failure.
	// Off by default: findings are advisory.
	StrictAudit bool
}

// Execute drives the full gate. A returned error means the run failed;
// the verdict on e.Run is fixed either way.
func (e *Engine) Execute(ctx context.Context) error {
	total := len(e.Gate.Steps)
	e.Reporter.Banner(e.Gate.Name, total)

	for i, step := range e.Gate.Steps {
		select {
		case <-ctx.Done():
			e.Run.Fail(step.Name)
			return ctx.Err()
		default:
		}

		e.Reporter.StepStart(i+1, total, step.Name)

		chk, ok := e.Checkers[step.Name]
		if !ok {
			e.Run.AddStep(run.StepResult{Name: step.Name, Outcome: run.Fail})
			e.Run.Fail(step.Name)
			err := fmt.Errorf("no checker for step %q", step.Name)
			e.Reporter.StepFail(i+1, total, step.Name, string(checker.CheckFailed), "")
			e.Reporter.Verdict(e.Run)
			return err
		}

		start := time.Now()
		err := chk.Check(ctx, e.Reporter.ToolWriter())
		elapsed := time.Since(start)

		if err == nil {
			e.Run.AddStep(run.StepResult{
				Name:       step.Name,
				Outcome:    run.Pass,
				DurationMS: elapsed.Milliseconds(),
			})
			e.Reporter.StepPass(i+1, total, step.Name, elapsed)
			continue
		}

		kind := checker.CheckFailed
		diag := ""
		var failure *checker.Failure
		if errors.As(err, &failure) {
			kind = failure.Kind
			diag = failure.Diagnostic
		}
		e.Run.AddStep(run.StepResult{
			Name:       step.Name,
			Outcome:    run.Fail,
			Diagnostic: diag,
			DurationMS: elapsed.Milliseconds(),
		})

		if !step.Required() {
			log.Warn("optional step failed", "step", step.Name, "err", err)
			e.Reporter.StepWarn(i+1, total, step.Name, err)
			continue
		}

		e.Run.Fail(step.Name)
		e.Reporter.StepFail(i+1, total, step.Name, string(kind), diag)
		e.Reporter.Verdict(e.Run)
		return fmt.Errorf("step %q failed: %w", step.Name, err)
	}

	// The audit scan runs after every step has passed, always in
	// full. Findings are folded into the run but leave the verdict
	// alone unless strict mode is on.
	findings, err := e.Scanner.Scan()
	if err != nil {
		e.Run.Fail("audit")
		e.Reporter.Verdict(e.Run)
		return fmt.Errorf("audit scan: %w", err)
	}
	e.Run.AddFindings(findings)
	e.Reporter.Audit(audit.GroupByRule(e.Scanner.Rules, findings))

	if e.StrictAudit && len(findings) > 0 {
		e.Run.Fail("audit")
		e.Reporter.Verdict(e.Run)
		return fmt.Errorf("strict audit: %d finding(s)", len(findings))
	}

	e.Run.Complete()
	e.Reporter.Verdict(e.Run)
	return nil
}
