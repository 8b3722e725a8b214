package cli

import (
	"fmt"
	"os"

	"github.com/moddle-labs/moddle/internal/branding"
	"github.com/moddle-labs/moddle/internal/config"
	"github.com/moddle-labs/moddle/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagPackages []string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` loads metamodel package definitions (YAML, JSON or TOML), resolves
the effective descriptor of each type and creates elements from them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logging.Configure(loggerConfig())
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&flagPackages, "packages", nil, "Package definition files or directories (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
