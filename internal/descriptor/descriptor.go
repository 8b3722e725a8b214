// Package descriptor merges a linearized stream of raw types into the
// effective descriptor of a type: its ordered properties, a name index that
// answers to both bare and namespaced property names, the distinguished id
// and body properties, and the set of types it is an instance of.
package descriptor

import (
	"encoding/json"

	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
)

// Descriptor is the effective descriptor of a type. It is immutable once
// built and shared by every element of the type.
type Descriptor struct {
	Name             string
	NS               ns.QualifiedName
	IsGeneric        bool
	Properties       []*meta.Property
	PropertiesByName map[string]*meta.Property
	IDProperty       *meta.Property
	BodyProperty     *meta.Property
	AllTypes         []*meta.Type
	AllTypesByName   map[string]*meta.Type

	// Package is the package of the most derived contributing type.
	Package *meta.Package
}

// NewGeneric returns a single-type descriptor for elements that live outside
// the registered model. It answers HasType for its own name only.
func NewGeneric(name ns.QualifiedName) *Descriptor {
	self := &meta.Type{Name: name.Name, NS: name, IsGeneric: true}
	return &Descriptor{
		Name:             name.Name,
		NS:               name,
		IsGeneric:        true,
		PropertiesByName: map[string]*meta.Property{},
		AllTypes:         []*meta.Type{self},
		AllTypesByName:   map[string]*meta.Type{name.Name: self},
	}
}

// Property returns the property known under name, bare or namespaced.
func (d *Descriptor) Property(name string) (*meta.Property, bool) {
	p, ok := d.PropertiesByName[name]
	return p, ok
}

// HasType reports whether typeName is the type itself or one of its
// ancestors or traits.
func (d *Descriptor) HasType(typeName string) bool {
	_, ok := d.AllTypesByName[typeName]
	return ok
}

// QualifiedName returns the descriptor's type name.
func (d *Descriptor) QualifiedName() string { return d.Name }

// TypeNames returns the names of AllTypes in linearization order.
func (d *Descriptor) TypeNames() []string {
	names := make([]string, len(d.AllTypes))
	for i, t := range d.AllTypes {
		names[i] = t.QualifiedName()
	}
	return names
}

type descriptorJSON struct {
	Name         string           `json:"name"`
	NS           ns.QualifiedName `json:"ns"`
	IsGeneric    bool             `json:"isGeneric,omitempty"`
	Properties   []*meta.Property `json:"properties,omitempty"`
	IDProperty   string           `json:"idProperty,omitempty"`
	BodyProperty string           `json:"bodyProperty,omitempty"`
	AllTypes     []string         `json:"allTypes,omitempty"`
	Package      string           `json:"package,omitempty"`
}

// MarshalJSON writes the descriptor with type and package links reduced to
// their names.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	out := descriptorJSON{
		Name:       d.Name,
		NS:         d.NS,
		IsGeneric:  d.IsGeneric,
		Properties: d.Properties,
		AllTypes:   d.TypeNames(),
	}
	if d.IDProperty != nil {
		out.IDProperty = d.IDProperty.Name
	}
	if d.BodyProperty != nil {
		out.BodyProperty = d.BodyProperty.Name
	}
	if d.Package != nil {
		out.Package = d.Package.Prefix
	}
	return json.Marshal(out)
}
