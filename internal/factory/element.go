package factory

import (
	"bytes"
	"encoding/json"

	"github.com/moddle-labs/moddle/internal/descriptor"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/props"
)

// Element is an instance of a resolved type. Declared properties live in
// its own fields; names the descriptor does not know go to the extension
// bucket ($attrs).
type Element struct {
	fields *props.Bag
	attrs  *props.Bag
}

// Fields exposes the element's field storage to the property manager.
func (e *Element) Fields() *props.Bag { return e.fields }

// Type returns the element's type name ($type).
func (e *Element) Type() string {
	v, _ := e.fields.Get(props.KeyType)
	s, _ := v.(string)
	return s
}

// Descriptor returns the shared descriptor of the element's type.
func (e *Element) Descriptor() *descriptor.Descriptor {
	if e == nil {
		return nil
	}
	v, _ := e.fields.Get(props.KeyDescriptor)
	d, _ := v.(*descriptor.Descriptor)
	return d
}

// Model returns the model that created the element.
func (e *Element) Model() any {
	v, _ := e.fields.Get(props.KeyModel)
	return v
}

// Parent returns the containing element, if one was assigned.
func (e *Element) Parent() *Element {
	v, _ := e.fields.Get(props.KeyParent)
	p, _ := v.(*Element)
	return p
}

// SetParent records the containing element.
func (e *Element) SetParent(parent *Element) {
	e.fields.Set(props.KeyParent, parent)
}

// InstanceOf reports whether the element's type is typeName or derives
// from it.
func (e *Element) InstanceOf(typeName string) bool {
	d := e.Descriptor()
	return d != nil && d.HasType(typeName)
}

// Get returns the value of the property name (bare or namespaced). An unset
// many-valued property is initialized to an empty collection on first read.
// Unknown names are read from the extension bucket.
func (e *Element) Get(name string) any {
	p, declared := e.resolve(name)
	if !declared {
		return e.getExtension(name)
	}

	v, ok := e.fields.Get(p.Name)
	if !ok && p.IsMany {
		c := NewCollection()
		e.fields.Set(p.Name, c)
		return c
	}
	return v
}

// Set assigns value to the property name. A nil value removes the key.
func (e *Element) Set(name string, value any) {
	if value == nil {
		e.Unset(name)
		return
	}

	p, declared := e.resolve(name)
	if !declared {
		e.setExtension(name, value)
		return
	}
	if p.IsMany {
		value = toCollection(value)
	}
	e.fields.Set(p.Name, value)
}

// Unset removes the property name from wherever it is stored.
func (e *Element) Unset(name string) {
	p, declared := e.resolve(name)
	if !declared {
		if e.isGeneric() {
			e.fields.Delete(name)
		} else if e.attrs != nil {
			e.attrs.Delete(name)
		}
		return
	}
	e.fields.Delete(p.Name)
}

// Lookup reads an own field directly, without lazy initialization.
func (e *Element) Lookup(field string) (any, bool) {
	if !e.hasOwn(field) {
		return nil, false
	}
	return e.fields.Get(field)
}

// Keys returns the element's own enumerable keys in insertion order.
func (e *Element) Keys() []string {
	return e.fields.Keys()
}

// Attrs returns a copy of the extension bucket.
func (e *Element) Attrs() map[string]any {
	out := make(map[string]any)
	if e.attrs == nil {
		return out
	}
	for _, k := range e.attrs.Keys() {
		out[k], _ = e.attrs.Get(k)
	}
	return out
}

// AttrKeys returns the extension bucket keys in insertion order.
func (e *Element) AttrKeys() []string {
	if e.attrs == nil {
		return nil
	}
	return e.attrs.Keys()
}

// MarshalJSON writes own enumerable keys followed by extension attributes.
func (e *Element) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	write := func(bag *props.Bag, key string) error {
		v, _ := bag.Get(key)
		kb, err := json.Marshal(key)
		if err != nil {
			return err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return nil
	}

	for _, k := range e.fields.Keys() {
		if err := write(e.fields, k); err != nil {
			return nil, err
		}
	}
	for _, k := range e.AttrKeys() {
		if e.fields.Has(k) {
			continue
		}
		if err := write(e.attrs, k); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// resolve decides once whether name is a declared property or an extension
// slot.
func (e *Element) resolve(name string) (*meta.Property, bool) {
	d := e.Descriptor()
	if d == nil {
		return nil, false
	}
	return d.Property(name)
}

func (e *Element) isGeneric() bool {
	d := e.Descriptor()
	return d != nil && d.IsGeneric
}

func (e *Element) hasOwn(key string) bool {
	for _, k := range e.fields.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func (e *Element) getExtension(name string) any {
	if e.isGeneric() {
		if !e.hasOwn(name) {
			return nil
		}
		v, _ := e.fields.Get(name)
		return v
	}
	if e.attrs == nil {
		return nil
	}
	v, _ := e.attrs.Get(name)
	return v
}

func (e *Element) setExtension(name string, value any) {
	if e.isGeneric() {
		e.fields.Set(name, value)
		return
	}
	if e.attrs == nil {
		e.attrs = props.NewBag()
	}
	e.attrs.Set(name, value)
}
