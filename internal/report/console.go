package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/run"
)

// Semantic styles for the console renderer.
var (
	styleBanner = lipgloss.NewStyle().Bold(true)
	styleStep   = lipgloss.NewStyle().Bold(true)
	stylePass   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	styleFail   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

const ruleWidth = 72

// Console renders human-readable, semantically colored output. Color
// is dropped automatically when stdout is not a terminal.
type Console struct {
	w     io.Writer
	color bool
}

// NewConsole returns a console reporter on stdout.
func NewConsole() *Console {
	return &Console{
		w:     os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func (c *Console) render(st lipgloss.Style, s string) string {
	if !c.color {
		return s
	}
	return st.Render(s)
}

func (c *Console) Banner(gate string, total int) {
	fmt.Fprintf(c.w, "\n%s\n", c.render(styleBanner, fmt.Sprintf("⛩ buildgate — gate %q (%d steps)", gate, total)))
	fmt.Fprintln(c.w, strings.Repeat("─", ruleWidth))
}

func (c *Console) StepStart(i, total int, name string) {
	fmt.Fprintf(c.w, "%s\n", c.render(styleStep, fmt.Sprintf("[Step %d/%d] %s", i, total, name)))
}

func (c *Console) ToolWriter() io.Writer {
	return c.w
}

func (c *Console) StepPass(i, total int, name string, d time.Duration) {
	fmt.Fprintf(c.w, "  %s %s %s\n",
		c.render(stylePass, "✔"), name,
		c.render(styleMuted, fmt.Sprintf("(%.1fs)", d.Seconds())))
}

func (c *Console) StepWarn(i, total int, name string, err error) {
	fmt.Fprintf(c.w, "  %s %s (optional): %v\n", c.render(styleWarn, "⚠"), name, err)
}

func (c *Console) StepFail(i, total int, name, kind, diagnostic string) {
	fmt.Fprintf(c.w, "  %s %s\n", c.render(styleFail, "✘ FATAL"), c.render(styleFail, fmt.Sprintf("%s: %s", name, kind)))
	if diagnostic != "" {
		for _, line := range strings.Split(strings.TrimRight(diagnostic, "\n"), "\n") {
			fmt.Fprintf(c.w, "  %s %s\n", c.render(styleMuted, "│"), line)
		}
	}
}

func (c *Console) Audit(groups []audit.Group) {
	total := 0
	for _, g := range groups {
		total += len(g.Findings)
	}
	fmt.Fprintln(c.w, strings.Repeat("─", ruleWidth))
	if total == 0 {
		fmt.Fprintf(c.w, "%s\n", c.render(styleMuted, "Audit scan: no findings"))
		return
	}
	fmt.Fprintf(c.w, "%s\n", c.render(styleWarn, fmt.Sprintf("Audit scan: %d finding(s)", total)))
	for _, g := range groups {
		fmt.Fprintf(c.w, "  [%s] %s — %d\n", g.Rule.ID, g.Rule.Severity, len(g.Findings))
		for _, f := range g.Findings {
			fmt.Fprintf(c.w, "    %s %s:%d\n", c.render(styleWarn, "⚠"), f.File, f.Line)
		}
	}
}

func (c *Console) Verdict(r *run.Run) {
	fmt.Fprintln(c.w, strings.Repeat("─", ruleWidth))
	if r.Verdict.Passed {
		fmt.Fprintf(c.w, "%s %s\n\n",
			c.render(stylePass, "✔ GATE PASSED"),
			c.render(styleMuted, fmt.Sprintf("(%.1fs)", r.Duration().Seconds())))
		return
	}
	fmt.Fprintf(c.w, "%s\n\n", c.render(styleFail, fmt.Sprintf("✘ GATE FAILED at %s", r.Verdict.FailedStep)))
}
