package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/moddle-labs/moddle/internal/loader"
)

//go:embed scaffolds/*.tmpl
var scaffoldFS embed.FS

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name     string // e.g., "Shapes"
	Prefix   string // e.g., "s"
	URI      string // e.g., "http://example.com/shapes"
	RootType string // first type in the package, e.g., "Shape"
	Extends  string // optional qualified type to extend, e.g., "b:Root"
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewData creates Data with derived fields populated. uri defaults to
// http://<prefix>.
func NewData(name, prefix, uri, extends string) *Data {
	d := &Data{
		Name:    name,
		Prefix:  prefix,
		URI:     uri,
		Extends: extends,
	}
	if d.URI == "" {
		d.URI = "http://" + prefix
	}
	d.RootType = rootTypeName(name)
	return d
}

// rootTypeName derives a singular type name from the package name.
func rootTypeName(name string) string {
	base := strings.TrimSuffix(name, "s")
	if base == "" {
		base = name
	}
	return strings.ToUpper(base[:1]) + base[1:]
}

// Generate writes <dir>/<prefix>.<format> from the matching template and
// validates it. Existing files are never overwritten.
func Generate(data *Data, format loader.Format, dir string) (*Result, error) {
	tmplPath := "scaffolds/package." + string(format) + ".tmpl"
	tmplBytes, err := scaffoldFS.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("template for format %q not found: %w", format, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	outPath := filepath.Join(dir, data.Prefix+"."+string(format))
	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", outPath)
	}

	tmpl, err := template.New(filepath.Base(tmplPath)).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}

	valResult, valErr := loader.Validate(buf.Bytes(), format)
	if valErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate package: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
