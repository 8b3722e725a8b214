package registry

import (
	"fmt"
	"slices"

	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
	"github.com/moddle-labs/moddle/internal/types"
	"github.com/rs/zerolog"
)

// Registry holds registered packages and types. It is built once and read
// afterwards; concurrent registration must be serialized by the caller.
type Registry struct {
	packageMap map[string]*meta.Package // uri and prefix -> package
	typeMap    map[string]*meta.Type    // qualified name -> type
	packages   []*meta.Package
	builtIns   map[string]*meta.Type
	log        zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// New registers packages in order. On error the returned registry is nil;
// the tables built so far are not rolled back and must be discarded.
func New(packages []*meta.Package, opts ...Option) (*Registry, error) {
	r := &Registry{
		packageMap: make(map[string]*meta.Package),
		typeMap:    make(map[string]*meta.Type),
		builtIns:   make(map[string]*meta.Type),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, name := range types.BuiltIns() {
		r.builtIns[name] = &meta.Type{Name: name}
	}

	for _, pkg := range packages {
		if err := r.RegisterPackage(pkg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Package returns the package registered under uriOrPrefix.
func (r *Registry) Package(uriOrPrefix string) (*meta.Package, bool) {
	pkg, ok := r.packageMap[uriOrPrefix]
	return pkg, ok
}

// Packages returns the registered packages in registration order.
func (r *Registry) Packages() []*meta.Package {
	return slices.Clone(r.packages)
}

// Type returns the registered (raw) type named name.
func (r *Registry) Type(name string) (*meta.Type, bool) {
	t, ok := r.typeMap[name]
	return t, ok
}

// TypeNames returns the qualified names of all registered types, sorted.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.typeMap))
	for name := range r.typeMap {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterPackage registers every type of pkg and indexes pkg under both
// its uri and prefix. Prefix and uri must not be in use yet.
func (r *Registry) RegisterPackage(pkg *meta.Package) error {
	pkg = pkg.Clone()

	if err := r.ensureAvailable("prefix", pkg.Prefix); err != nil {
		return err
	}
	if err := r.ensureAvailable("uri", pkg.URI); err != nil {
		return err
	}

	registered := make([]*meta.Type, 0, len(pkg.Types))
	for _, t := range pkg.Types {
		rt, err := r.RegisterType(t, pkg)
		if err != nil {
			return fmt.Errorf("registering package %s: %w", pkg.Prefix, err)
		}
		registered = append(registered, rt)
	}
	pkg.Types = registered

	r.packageMap[pkg.URI] = pkg
	r.packageMap[pkg.Prefix] = pkg
	r.packages = append(r.packages, pkg)

	r.log.Debug().Str("prefix", pkg.Prefix).Str("uri", pkg.URI).Int("types", len(registered)).Msg("registered package")
	return nil
}

// RegisterType qualifies t within pkg and stores it, replacing any type
// registered under the same name. Every type t extends must already be
// registered; t is appended to their traits.
func (r *Registry) RegisterType(t *meta.Type, pkg *meta.Package) (*meta.Type, error) {
	t = t.Clone()

	typeNs, err := ns.ParseName(t.Name, pkg.Prefix)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", t.Name, err)
	}
	name := typeNs.Name

	for _, p := range t.Properties {
		propNs, err := ns.ParseName(p.Name, typeNs.Prefix)
		if err != nil {
			return nil, fmt.Errorf("property %s#%s: %w", name, p.Name, err)
		}

		if p.Type != "" && !types.IsBuiltIn(p.Type) {
			propType, err := ns.ParseName(p.Type, propNs.Prefix)
			if err != nil {
				return nil, fmt.Errorf("property %s#%s: %w", name, p.Name, err)
			}
			p.Type = propType.Name
		}

		p.NS = propNs
		p.Name = propNs.Name
	}

	t.NS = typeNs
	t.Name = name
	t.Package = pkg

	for _, extendsName := range t.Extends {
		target, err := ns.ParseName(extendsName, typeNs.Prefix)
		if err != nil {
			return nil, fmt.Errorf("type %s extends: %w", name, err)
		}
		extended, ok := r.typeMap[target.Name]
		if !ok {
			return nil, fmt.Errorf("%w: type <%s> extends unknown type <%s>", ErrUnresolvedExtends, name, target.Name)
		}
		if extended.Name != name {
			extended.Traits = append(extended.Traits, name)
		}
	}

	if _, exists := r.typeMap[name]; exists {
		r.log.Debug().Str("type", name).Msg("replacing registered type")
	}
	r.typeMap[name] = t
	return t, nil
}

func (r *Registry) ensureAvailable(key, value string) error {
	if _, ok := r.packageMap[value]; ok {
		return fmt.Errorf("%w: package with %s <%s> already defined", ErrDuplicatePackage, key, value)
	}
	return nil
}
