package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epmk/buildgate/internal/config"
	"github.com/epmk/buildgate/internal/gate"
	"github.com/epmk/buildgate/internal/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check buildgate prerequisites and configuration",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Printf("✔ %s\n", label)
		} else {
			fmt.Printf("✘ %s — %s\n", label, hint)
			allOK = false
		}
	}

	// 1. shell
	_, err := exec.LookPath("sh")
	check("sh available", err == nil, "a POSIX shell is required to run gate steps")

	// 2. config
	cfg, cfgErr := config.Load()
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr != nil {
		fmt.Println()
		fmt.Println("Some checks failed. Fix the issues above before running buildgate.")
		return nil
	}
	check("config valid", cfg.Validate() == nil, fmt.Sprintf("%v", cfg.Validate()))

	// 3. gate definition
	name := cfg.Gate
	if flagGate != "" {
		name = flagGate
	}
	g, gateErr := gate.Load(name)
	check(fmt.Sprintf("gate %q resolvable", name), gateErr == nil, fmt.Sprintf("%v", gateErr))

	// 4. tools the gate's steps invoke
	if gateErr == nil {
		for _, tool := range gateTools(g) {
			_, err := exec.LookPath(tool)
			check(fmt.Sprintf("%s installed", tool), err == nil, fmt.Sprintf("install %s", tool))
		}
	}

	// 5. harness runner
	if cfg.Harness.Enabled {
		runner := firstWord(cfg.Harness.Command)
		_, err := exec.LookPath(runner)
		check(fmt.Sprintf("harness runner %s installed", runner), err == nil, "install the browser-test harness")
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed. buildgate is ready.")
	} else {
		fmt.Println("Some checks failed. Fix the issues above before running buildgate.")
	}
	return nil
}

// gateTools lists the distinct binaries the gate's steps invoke.
func gateTools(g *gate.Gate) []string {
	seen := map[string]bool{}
	var tools []string
	for _, s := range g.Steps {
		tool := s.Tool
		if tool == "" && s.Kind != types.KindProbe {
			tool = firstWord(s.Command)
		}
		if tool == "" || seen[tool] {
			continue
		}
		seen[tool] = true
		tools = append(tools, tool)
	}
	return tools
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
