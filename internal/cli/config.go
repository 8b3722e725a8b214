package cli

import (
	"fmt"
	"strings"

	"github.com/moddle-labs/moddle/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.moddle/config.yaml.

Keys:
  packages    package definition files or directories (path-list separated)
  log_level   trace, debug, info, warn, error or off
  output      table or json`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !config.IsKnown(key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		if key == config.KeyPackages {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.GetStringSlice(key), "\n"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(key))
		return nil
	},
}
