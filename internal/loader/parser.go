package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/moddle-labs/moddle/internal/meta"
	"go.yaml.in/yaml/v3"
)

// Format is a definition file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats returns the supported definition file formats.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatTOML}
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// ParseFile reads and decodes the package definition at path.
func ParseFile(path string) (*meta.Package, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("unsupported package file %s", path)
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	pkg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing package %s: %w", path, err)
	}
	pkg.Source = path
	return pkg, nil
}

// Parse decodes a package definition. JSON is decoded as YAML, of which it
// is a subset. Keys the model does not use (serialization hints and the
// like) are ignored.
func Parse(data []byte, format Format) (*meta.Package, error) {
	var pkg meta.Package

	switch format {
	case FormatYAML, FormatJSON:
		if err := yaml.Unmarshal(data, &pkg); err != nil {
			return nil, fmt.Errorf("unmarshaling %s: %w", format, err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &pkg); err != nil {
			return nil, fmt.Errorf("unmarshaling toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if pkg.Prefix == "" {
		return nil, fmt.Errorf("package %q missing required 'prefix' field", pkg.Name)
	}
	return &pkg, nil
}

// decodeGeneric decodes data into plain maps and slices for schema
// validation.
func decodeGeneric(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		raw = m
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return normalize(raw), nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
