// Package factory turns effective descriptors into element constructors and
// implements the element runtime: property access by bare or namespaced
// name, default values, lazily created collections and the extension
// bucket for undeclared attributes.
package factory

import (
	"sort"

	"github.com/moddle-labs/moddle/internal/descriptor"
	"github.com/moddle-labs/moddle/internal/props"
)

// Attr is a single constructor attribute.
type Attr struct {
	Name  string
	Value any
}

// Attrs are constructor attributes, applied in order.
type Attrs []Attr

// FromMap converts m into Attrs sorted by name.
func FromMap(m map[string]any) Attrs {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make(Attrs, len(names))
	for i, name := range names {
		attrs[i] = Attr{Name: name, Value: m[name]}
	}
	return attrs
}

// NamedValue overrides the attribute key when passed to NewGeneric.
type NamedValue struct {
	Name  string
	Value any
}

// Factory creates element types for one model.
type Factory struct {
	props *props.Manager
}

// New returns a Factory linking elements to the model behind pm.
func New(pm *props.Manager) *Factory {
	return &Factory{props: pm}
}

// Type constructs elements of one resolved descriptor.
type Type struct {
	descriptor *descriptor.Descriptor
	factory    *Factory
}

// CreateType returns the constructor for d. Callers cache the result.
func (f *Factory) CreateType(d *descriptor.Descriptor) *Type {
	return &Type{descriptor: d, factory: f}
}

// Descriptor returns the descriptor shared by all elements of t.
func (t *Type) Descriptor() *descriptor.Descriptor {
	if t == nil {
		return nil
	}
	return t.descriptor
}

// Name returns the type name.
func (t *Type) Name() string { return t.descriptor.Name }

// Model returns the owning model.
func (t *Type) Model() any { return t.factory.props.Model() }

// New creates an element. Attributes are applied in order through Set,
// then defaults fill declared single-valued properties left unset.
func (t *Type) New(attrs Attrs) *Element {
	e := t.factory.newElement(t.descriptor, false)

	for _, a := range attrs {
		e.Set(a.Name, a.Value)
	}

	for _, p := range t.descriptor.Properties {
		if p.IsMany || p.Default == nil || e.fields.Has(p.Name) {
			continue
		}
		e.fields.Set(p.Name, p.Default)
	}
	return e
}

// NewGeneric creates an element of a generic descriptor. Its type name and
// attributes are own enumerable fields.
func (f *Factory) NewGeneric(d *descriptor.Descriptor, attrs Attrs) *Element {
	e := f.newElement(d, true)

	for _, a := range attrs {
		if nv, ok := a.Value.(NamedValue); ok && nv.Value != nil {
			e.fields.Set(nv.Name, nv.Value)
			continue
		}
		e.fields.Set(a.Name, a.Value)
	}
	return e
}

func (f *Factory) newElement(d *descriptor.Descriptor, typeVisible bool) *Element {
	e := &Element{fields: props.NewBag()}

	f.props.Define(e, props.KeyType, props.Options{Value: d.Name, Enumerable: typeVisible})
	f.props.DefineDescriptor(e, d)
	f.props.DefineModel(e)
	f.props.Define(e, props.KeyParent, props.Options{Writable: true})
	return e
}
