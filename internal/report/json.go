package report

import (
	"io"
	"time"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/log"
	"github.com/epmk/buildgate/internal/run"
)

// JSON emits the full run record as one JSON document at verdict
// time. Progress events are not rendered; tool output is discarded
// because every diagnostic the run produced is already in the record.
type JSON struct {
	w io.Writer
}

// NewJSON returns a machine-readable reporter writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (j *JSON) Banner(gate string, total int)                       {}
func (j *JSON) StepStart(i, total int, name string)                 {}
func (j *JSON) ToolWriter() io.Writer                               { return io.Discard }
func (j *JSON) StepPass(i, total int, name string, d time.Duration) {}
func (j *JSON) StepWarn(i, total int, name string, err error)       {}
func (j *JSON) StepFail(i, total int, name, kind, diag string)      {}
func (j *JSON) Audit(groups []audit.Group)                          {}

func (j *JSON) Verdict(r *run.Run) {
	if err := r.WriteReport(j.w); err != nil {
		log.Error("failed to write run report", "err", err)
	}
}
