package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/epmk/buildgate/internal/checker"
	"github.com/epmk/buildgate/internal/config"
	"github.com/epmk/buildgate/internal/gate"
	"github.com/epmk/buildgate/internal/harness"
	vlog "github.com/epmk/buildgate/internal/log"
	"github.com/epmk/buildgate/internal/report"
	"github.com/epmk/buildgate/internal/run"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full quality gate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGate(cmd.Context())
	},
}

// runGate is the shared entry point for the bare invocation and the
// run subcommand.
func runGate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if flagStrict {
		cfg.StrictAudit = true
	}

	logFile := openLogFile()
	vlog.Init(cfg.LogLevel, logFile)
	if logFile != nil {
		defer logFile.Close()
	}

	name := cfg.Gate
	if flagGate != "" {
		name = flagGate
	}
	g, err := gate.Load(name)
	if err != nil {
		return fmt.Errorf("loading gate %q: %w", name, err)
	}

	// The browser harness, when enabled, is one more step at the end
	// of the gate. Its config file is written up front so the
	// external runner consumes a deterministic snapshot.
	if cfg.Harness.Enabled {
		hc := cfg.Harness.Resolve(harness.InCI())
		if err := os.MkdirAll(".buildgate", 0755); err != nil {
			return fmt.Errorf("creating .buildgate: %w", err)
		}
		cfgPath := filepath.Join(".buildgate", "harness.config.json")
		if err := hc.WriteFile(cfgPath); err != nil {
			return fmt.Errorf("writing harness config: %w", err)
		}
		vlog.Debug("harness config written", "path", cfgPath, "ci", harness.InCI())
		g.Steps = append(g.Steps, hc.Step())
	}

	scanner, err := cfg.Audit.Scanner(cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("building audit scanner: %w", err)
	}

	var rep report.Reporter = report.NewConsole()
	if flagFormat == "json" {
		rep = report.NewJSON(os.Stdout)
	}

	engine := &gate.Engine{
		Gate:        g,
		Checkers:    buildCheckers(g, cfg.ProjectRoot),
		Run:         run.New(g.Name),
		Reporter:    rep,
		Scanner:     scanner,
		StrictAudit: cfg.StrictAudit,
	}
	return engine.Execute(ctx)
}

func buildCheckers(g *gate.Gate, dir string) map[string]checker.Checker {
	checkers := make(map[string]checker.Checker, len(g.Steps))
	for _, s := range g.Steps {
		checkers[s.Name] = checker.ForStep(s, dir)
	}
	return checkers
}

func openLogFile() *os.File {
	dir := ".buildgate"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(dir+"/buildgate.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
