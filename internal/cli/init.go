package cli

import (
	"fmt"

	"github.com/moddle-labs/moddle/internal/loader"
	"github.com/moddle-labs/moddle/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	initPrefix  string
	initURI     string
	initExtends string
	initFormat  string
	initDir     string
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Generate a new package definition file",
	Long: `Write a starter package definition named <name> to <dir>/<prefix>.<format>.
With --extends the package also declares a type that extends the given
qualified type as a trait.`,
	Example: `  moddle init Shapes --prefix s
  moddle init Colors --prefix col --extends s:Shape --format toml`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initPrefix, "prefix", "", "Package prefix (required)")
	initCmd.Flags().StringVar(&initURI, "uri", "", "Package uri (default http://<prefix>)")
	initCmd.Flags().StringVar(&initExtends, "extends", "", "Qualified type to extend")
	initCmd.Flags().StringVar(&initFormat, "format", string(loader.FormatYAML), "File format: yaml, json or toml")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Output directory")
	_ = initCmd.MarkFlagRequired("prefix")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	format, ok := loader.FormatOf("x." + initFormat)
	if !ok {
		return fmt.Errorf("unsupported format %q", initFormat)
	}

	data := scaffold.NewData(args[0], initPrefix, initURI, initExtends)
	result, err := scaffold.Generate(data, format, initDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", result.Path)
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", w)
	}
	return nil
}
