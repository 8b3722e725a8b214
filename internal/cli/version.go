package cli

import (
	"fmt"
	"strings"

	"github.com/moddle-labs/moddle/internal/branding"
	"github.com/moddle-labs/moddle/internal/loader"
	"github.com/moddle-labs/moddle/internal/types"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, schema and supported formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		}
		return writeVersion(cmd, versionJSON)
	},
}

type versionInfo struct {
	Version      string   `json:"version"`
	Commit       string   `json:"commit"`
	Date         string   `json:"date"`
	Schema       string   `json:"schema"`
	Dialect      string   `json:"dialect"`
	Formats      []string `json:"formats"`
	BuiltinTypes []string `json:"builtinTypes"`
}

func currentVersion() versionInfo {
	title, dialect := loader.SchemaInfo()
	info := versionInfo{
		Version:      buildVersion,
		Commit:       buildCommit,
		Date:         buildDate,
		Schema:       title,
		Dialect:      dialect,
		BuiltinTypes: types.BuiltIns(),
	}
	for _, f := range loader.Formats() {
		info.Formats = append(info.Formats, string(f))
	}
	return info
}

func writeVersion(cmd *cobra.Command, asJSON bool) error {
	info := currentVersion()
	out := cmd.OutOrStdout()
	if asJSON {
		return printJSON(out, info)
	}

	fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
	fmt.Fprintf(out, "  schema:   %s (%s)\n", info.Schema, info.Dialect)
	fmt.Fprintf(out, "  formats:  %s\n", strings.Join(info.Formats, ", "))
	fmt.Fprintf(out, "  built-in: %s\n", strings.Join(info.BuiltinTypes, ", "))
	return nil
}
