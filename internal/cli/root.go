package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epmk/buildgate/pkg/version"
)

var (
	flagGate   string
	flagFormat string
	flagStrict bool
)

var rootCmd = &cobra.Command{
	Use:   "buildgate",
	Short: "Quality gate for regulated builds",
	Long: `buildgate runs an ordered sequence of quality checks — toolchain probe,
formatting, static analysis, unit and integration tests — followed by a
compliance audit scan, and reduces everything to one pass/fail verdict.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGate(cmd.Context())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagGate, "gate", "", "gate definition to run (defaults to config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "console", "report format: console or json")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict-audit", false, "treat audit findings as fatal")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buildgate %s\n", version.Version)
	},
}
