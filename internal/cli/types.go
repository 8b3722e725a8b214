package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/moddle-labs/moddle/internal/moddle"
	"github.com/spf13/cobra"
)

var (
	typesPackage string
	typesJSON    bool
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered types",
	Long:  `List the raw registered types, optionally limited to one package (by prefix or uri).`,
	RunE:  runTypes,
}

func init() {
	typesCmd.Flags().StringVar(&typesPackage, "package", "", "Only list types of this package (prefix or uri)")
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(typesCmd)
}

type typeEntry struct {
	Name       string   `json:"name"`
	SuperClass []string `json:"superClass,omitempty"`
	Extends    []string `json:"extends,omitempty"`
	Traits     []string `json:"traits,omitempty"`
	IsAbstract bool     `json:"isAbstract,omitempty"`
	Properties int      `json:"properties"`
}

func runTypes(cmd *cobra.Command, args []string) error {
	m, err := loadModel()
	if err != nil {
		return err
	}

	entries, err := listTypes(m, typesPackage)
	if err != nil {
		return err
	}

	if wantJSON(typesJSON) {
		return printJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No types found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSUPERCLASS\tEXTENDS\tPROPERTIES")
	for _, e := range entries {
		name := e.Name
		if e.IsAbstract {
			name += " (abstract)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, orDash(e.SuperClass), orDash(e.Extends), e.Properties)
	}
	return w.Flush()
}

func listTypes(m *moddle.Moddle, pkgFilter string) ([]typeEntry, error) {
	prefix := ""
	if pkgFilter != "" {
		pkg, ok := m.Package(pkgFilter)
		if !ok {
			return nil, fmt.Errorf("unknown package %q", pkgFilter)
		}
		prefix = pkg.Prefix
	}

	var entries []typeEntry
	for _, name := range m.Registry().TypeNames() {
		t, _ := m.TypeDescriptor(name)
		if prefix != "" && t.NS.Prefix != prefix {
			continue
		}
		entries = append(entries, typeEntry{
			Name:       name,
			SuperClass: t.SuperClass,
			Extends:    t.Extends,
			Traits:     t.Traits,
			IsAbstract: t.IsAbstract,
			Properties: len(t.Properties),
		})
	}
	return entries, nil
}

func orDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
