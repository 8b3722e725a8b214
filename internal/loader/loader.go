package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidPackage is returned when a definition fails schema validation.
	ErrInvalidPackage = errors.New("loader: invalid package definition")
	// ErrExtendsCycle is returned when packages extend each other's types
	// in a cycle, so no registration order exists.
	ErrExtendsCycle = errors.New("loader: cyclic extends between packages")
)

// Options controls Load.
type Options struct {
	// Validate checks each file against the package schema before decoding.
	Validate bool
	Logger   zerolog.Logger
}

// Load discovers, parses and orders the package definitions under paths.
func Load(paths []string, opts Options) ([]*meta.Package, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, err
	}

	pkgs := make([]*meta.Package, 0, len(files))
	for _, f := range files {
		if opts.Validate {
			res, err := ValidateFile(f)
			if err != nil {
				return nil, err
			}
			if !res.Valid {
				return nil, fmt.Errorf("%w %s: %s", ErrInvalidPackage, f, joinIssues(res.Issues))
			}
		}

		pkg, err := ParseFile(f)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug().
			Str("file", f).
			Str("prefix", pkg.Prefix).
			Int("types", len(pkg.Types)).
			Msg("loaded package")
		pkgs = append(pkgs, pkg)
	}

	return SortByExtends(pkgs)
}

// SortByExtends orders packages so that every package comes after the
// packages whose types it extends. Packages with no such dependency keep
// their relative order.
func SortByExtends(pkgs []*meta.Package) ([]*meta.Package, error) {
	byPrefix := make(map[string]int, len(pkgs))
	for i, p := range pkgs {
		byPrefix[p.Prefix] = i
	}

	deps := make([][]int, len(pkgs))
	for i, p := range pkgs {
		for _, prefix := range extendedPrefixes(p) {
			if j, ok := byPrefix[prefix]; ok && j != i {
				deps[i] = append(deps[i], j)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(pkgs))
	sorted := make([]*meta.Package, 0, len(pkgs))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w at %s", ErrExtendsCycle, pkgs[i].Prefix)
		}
		state[i] = visiting
		for _, j := range deps[i] {
			if err := visit(j); err != nil {
				return err
			}
		}
		state[i] = done
		sorted = append(sorted, pkgs[i])
		return nil
	}

	for i := range pkgs {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// extendedPrefixes returns the foreign package prefixes named in the
// extends lists of p's types.
func extendedPrefixes(p *meta.Package) []string {
	var out []string
	for _, t := range p.Types {
		for _, ext := range t.Extends {
			name, err := ns.ParseName(ext, p.Prefix)
			if err != nil || name.Prefix == p.Prefix {
				continue
			}
			out = append(out, name.Prefix)
		}
	}
	return out
}

func joinIssues(issues []ValidationIssue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}
