package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/config"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run only the compliance audit scan",
	Long: `Scans the source tree for configured risk patterns and prints the
findings. Findings are advisory: the command exits zero regardless of how
many there are. Only an unreadable source tree is an error.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	scanner, err := cfg.Audit.Scanner(cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("building audit scanner: %w", err)
	}
	findings, err := scanner.Scan()
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	groups := audit.GroupByRule(scanner.Rules, findings)
	if len(groups) == 0 {
		fmt.Println("No findings.")
		return nil
	}
	for _, g := range groups {
		fmt.Printf("[%s] %s — %d finding(s)\n", g.Rule.ID, g.Rule.Severity, len(g.Findings))
		for _, f := range g.Findings {
			fmt.Printf("  %s:%d\n", f.File, f.Line)
		}
	}
	return nil
}
