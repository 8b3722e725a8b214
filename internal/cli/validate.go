package cli

import (
	"fmt"
	"io"

	"github.com/moddle-labs/moddle/internal/loader"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|dir...]",
	Short: "Validate package definition files",
	Long: `Check package definition files against the package schema, then register
the valid ones together to catch duplicate packages and unresolved
extends. With no arguments the configured package paths are validated.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = packagePaths()
	}

	files, err := loader.Discover(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No package files found.")
		return nil
	}

	pkgs, failed := validateFiles(cmd.OutOrStdout(), files)
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(files))
	}

	sorted, err := loader.SortByExtends(pkgs)
	if err != nil {
		return err
	}
	if _, err := buildModel(sorted, log.Logger); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d package(s) valid.\n", len(pkgs))
	return nil
}

// validateFiles schema-checks and parses each file, reporting per file.
// It returns the parsed packages and the number of failures.
func validateFiles(w io.Writer, files []string) ([]*meta.Package, int) {
	var pkgs []*meta.Package
	failed := 0

	for _, f := range files {
		res, err := loader.ValidateFile(f)
		if err != nil {
			fmt.Fprintf(w, "✗ %s\n    %v\n", f, err)
			failed++
			continue
		}
		if !res.Valid {
			fmt.Fprintf(w, "✗ %s\n", f)
			for _, issue := range res.Issues {
				fmt.Fprintf(w, "    %s\n", issue)
			}
			failed++
			continue
		}

		pkg, err := loader.ParseFile(f)
		if err != nil {
			fmt.Fprintf(w, "✗ %s\n    %v\n", f, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "✓ %s\n", f)
		pkgs = append(pkgs, pkg)
	}
	return pkgs, failed
}
