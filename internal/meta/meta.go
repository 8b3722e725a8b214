// Package meta holds the declarative package/type/property definitions the
// registry consumes. The same structs carry the registered (raw) form once
// the registry has qualified their names and linked them to their package.
package meta

import (
	"maps"
	"slices"

	"github.com/moddle-labs/moddle/internal/ns"
)

// Package is a named, prefixed set of type definitions.
type Package struct {
	Name   string  `yaml:"name" json:"name" toml:"name"`
	URI    string  `yaml:"uri" json:"uri" toml:"uri"`
	Prefix string  `yaml:"prefix" json:"prefix" toml:"prefix"`
	Types  []*Type `yaml:"types,omitempty" json:"types,omitempty" toml:"types,omitempty"`

	// Source is the file the package was loaded from, if any.
	Source string `yaml:"-" json:"-" toml:"-"`
}

// Type is a type definition. SuperClass entries are ordinary ancestors;
// Extends entries inject this type into the named types as a trait.
type Type struct {
	Name       string         `yaml:"name" json:"name" toml:"name"`
	SuperClass []string       `yaml:"superClass,omitempty" json:"superClass,omitempty" toml:"superClass,omitempty"`
	Extends    []string       `yaml:"extends,omitempty" json:"extends,omitempty" toml:"extends,omitempty"`
	IsAbstract bool           `yaml:"isAbstract,omitempty" json:"isAbstract,omitempty" toml:"isAbstract,omitempty"`
	IsGeneric  bool           `yaml:"isGeneric,omitempty" json:"isGeneric,omitempty" toml:"isGeneric,omitempty"`
	Meta       map[string]any `yaml:"meta,omitempty" json:"meta,omitempty" toml:"meta,omitempty"`
	Properties []*Property    `yaml:"properties,omitempty" json:"properties,omitempty" toml:"properties,omitempty"`

	// Registration state.
	NS      ns.QualifiedName `yaml:"-" json:"ns" toml:"-"`
	Traits  []string         `yaml:"-" json:"traits,omitempty" toml:"-"`
	Package *Package         `yaml:"-" json:"-" toml:"-"`
}

// Property is a property definition.
type Property struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	Type        string `yaml:"type" json:"type" toml:"type"`
	IsAttr      bool   `yaml:"isAttr,omitempty" json:"isAttr,omitempty" toml:"isAttr,omitempty"`
	IsID        bool   `yaml:"isId,omitempty" json:"isId,omitempty" toml:"isId,omitempty"`
	IsBody      bool   `yaml:"isBody,omitempty" json:"isBody,omitempty" toml:"isBody,omitempty"`
	IsMany      bool   `yaml:"isMany,omitempty" json:"isMany,omitempty" toml:"isMany,omitempty"`
	IsReference bool   `yaml:"isReference,omitempty" json:"isReference,omitempty" toml:"isReference,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty" toml:"default,omitempty"`
	Redefines   string `yaml:"redefines,omitempty" json:"redefines,omitempty" toml:"redefines,omitempty"`

	NS        ns.QualifiedName `yaml:"-" json:"ns" toml:"-"`
	Inherited bool             `yaml:"-" json:"inherited" toml:"-"`
	DefinedBy *Type            `yaml:"-" json:"-" toml:"-"`
}

// Clone returns a copy of p with its own slices and maps. Type links are
// shared.
func (p *Package) Clone() *Package {
	c := *p
	c.Types = slices.Clone(p.Types)
	return &c
}

// Clone returns a copy of t whose slices and meta map can be modified
// without affecting t. Properties are cloned one level deep.
func (t *Type) Clone() *Type {
	c := *t
	c.SuperClass = slices.Clone(t.SuperClass)
	c.Extends = slices.Clone(t.Extends)
	c.Traits = slices.Clone(t.Traits)
	c.Meta = maps.Clone(t.Meta)
	if c.Meta == nil {
		c.Meta = map[string]any{}
	}
	c.Properties = make([]*Property, len(t.Properties))
	for i, p := range t.Properties {
		c.Properties[i] = p.Clone()
	}
	return &c
}

// Clone returns a shallow copy of p.
func (p *Property) Clone() *Property {
	c := *p
	return &c
}

// QualifiedName returns the type's registered name.
func (t *Type) QualifiedName() string {
	if t.NS.Name != "" {
		return t.NS.Name
	}
	return t.Name
}

// Property returns the property declared on t under name (bare or
// namespaced).
func (t *Type) Property(name string) *Property {
	for _, p := range t.Properties {
		if p.Name == name || p.NS.Name == name || p.NS.LocalName == name {
			return p
		}
	}
	return nil
}
