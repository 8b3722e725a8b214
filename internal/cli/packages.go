package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var packagesJSON bool

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List registered packages",
	RunE:  runPackages,
}

func init() {
	packagesCmd.Flags().BoolVar(&packagesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(packagesCmd)
}

type packageEntry struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	URI    string `json:"uri"`
	Types  int    `json:"types"`
	Source string `json:"source,omitempty"`
}

func runPackages(cmd *cobra.Command, args []string) error {
	m, err := loadModel()
	if err != nil {
		return err
	}

	var entries []packageEntry
	for _, p := range m.Packages() {
		entries = append(entries, packageEntry{
			Name:   p.Name,
			Prefix: p.Prefix,
			URI:    p.URI,
			Types:  len(p.Types),
			Source: p.Source,
		})
	}

	if wantJSON(packagesJSON) {
		return printJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No packages found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PREFIX\tNAME\tURI\tTYPES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Prefix, e.Name, e.URI, e.Types)
	}
	return w.Flush()
}
