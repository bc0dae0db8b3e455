// Package report renders gate progress and results. Reporters are
// purely presentational: nothing here feeds back into the verdict,
// and the engine works against the interface so automated contexts
// can swap the console renderer for the JSON one.
package report

import (
	"io"
	"time"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/run"
)

// Reporter receives gate events in execution order.
type Reporter interface {
	// Banner opens the report for a named gate of total steps.
	Banner(gate string, total int)
	// StepStart opens the block for step i of total.
	StepStart(i, total int, name string)
	// ToolWriter is where a step's tool output streams while it runs.
	ToolWriter() io.Writer
	// StepPass closes a step block with a success marker.
	StepPass(i, total int, name string, d time.Duration)
	// StepWarn reports a failed optional step; the run continues.
	StepWarn(i, total int, name string, err error)
	// StepFail closes a step block with a fatal error marker.
	StepFail(i, total int, name, kind, diagnostic string)
	// Audit renders the scan findings grouped by rule.
	Audit(groups []audit.Group)
	// Verdict closes the report with the run's terminal state.
	Verdict(r *run.Run)
}
