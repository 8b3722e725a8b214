package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/moddle-labs/moddle/internal/descriptor"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/moddle"
	"github.com/moddle-labs/moddle/internal/registry"
	"github.com/spf13/cobra"
)

var (
	describeJSON bool
	describeTree bool
)

var describeCmd = &cobra.Command{
	Use:   "describe <type>",
	Short: "Show the effective descriptor of a type",
	Long: `Resolve a type through its superclasses and traits and print the merged
property list, the id and body properties and every type it is an instance of.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "Output in JSON format")
	describeCmd.Flags().BoolVar(&describeTree, "tree", false, "Print the inheritance tree instead")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	m, err := loadModel()
	if err != nil {
		return err
	}
	return describe(cmd.OutOrStdout(), m, args[0])
}

func describe(w io.Writer, m *moddle.Moddle, name string) error {
	if describeTree {
		root, err := m.Registry().BuildHierarchy(name)
		if err != nil {
			return err
		}
		registry.PrintHierarchy(w, root, "", true, true)
		return nil
	}

	typ, err := m.GetType(name)
	if err != nil {
		return err
	}
	if wantJSON(describeJSON) {
		return printJSON(w, typ.Descriptor())
	}
	return writeDescriptor(w, typ.Descriptor())
}

// writeDescriptor prints d as a header followed by a property table.
func writeDescriptor(w io.Writer, d *descriptor.Descriptor) error {
	fmt.Fprintf(w, "Type:     %s\n", d.Name)
	if d.Package != nil {
		fmt.Fprintf(w, "Package:  %s (%s)\n", d.Package.Prefix, d.Package.URI)
	}
	fmt.Fprintf(w, "Types:    %s\n", strings.Join(d.TypeNames(), ", "))
	if d.IDProperty != nil {
		fmt.Fprintf(w, "Id:       %s\n", d.IDProperty.NS.Name)
	}
	if d.BodyProperty != nil {
		fmt.Fprintf(w, "Body:     %s\n", d.BodyProperty.NS.Name)
	}

	if len(d.Properties) == 0 {
		fmt.Fprintln(w, "\nNo properties.")
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "PROPERTY\tTYPE\tFLAGS\tDEFAULT\tDEFINED BY")
	for _, p := range d.Properties {
		def := "-"
		if p.Default != nil {
			def = fmt.Sprint(p.Default)
		}
		definedBy := "-"
		if p.DefinedBy != nil {
			definedBy = p.DefinedBy.QualifiedName()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.NS.Name, p.Type, propertyFlags(p), def, definedBy)
	}
	return tw.Flush()
}

func propertyFlags(p *meta.Property) string {
	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{p.IsAttr, "attr"},
		{p.IsID, "id"},
		{p.IsBody, "body"},
		{p.IsMany, "many"},
		{p.IsReference, "ref"},
		{p.Inherited, "inherited"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
