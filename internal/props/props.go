// Package props stores instance fields with per-field visibility so that
// bookkeeping entries ($descriptor, $model, $parent) live next to ordinary
// values without showing up when an instance's own keys are enumerated.
package props

// Reserved bookkeeping keys.
const (
	KeyType       = "$type"
	KeyDescriptor = "$descriptor"
	KeyModel      = "$model"
	KeyParent     = "$parent"
	KeyAttrs      = "$attrs"
)

// Field describes a single entry in a Bag.
type Field struct {
	Value      any
	Writable   bool
	Enumerable bool
}

// Bag is an insertion-ordered set of fields.
type Bag struct {
	order  []string
	fields map[string]*Field
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{fields: make(map[string]*Field)}
}

// Define installs or replaces the field name with f.
func (b *Bag) Define(name string, f Field) {
	if _, ok := b.fields[name]; !ok {
		b.order = append(b.order, name)
	}
	field := f
	b.fields[name] = &field
}

// Get returns the value stored under name.
func (b *Bag) Get(name string) (any, bool) {
	f, ok := b.fields[name]
	if !ok {
		return nil, false
	}
	return f.Value, true
}

// Has reports whether name is present, visible or not.
func (b *Bag) Has(name string) bool {
	_, ok := b.fields[name]
	return ok
}

// Set assigns value to name. A missing field is created writable and
// enumerable. It returns false if the field exists and is read-only.
func (b *Bag) Set(name string, value any) bool {
	f, ok := b.fields[name]
	if !ok {
		b.Define(name, Field{Value: value, Writable: true, Enumerable: true})
		return true
	}
	if !f.Writable {
		return false
	}
	f.Value = value
	return true
}

// Delete removes a writable field. Read-only fields are kept.
func (b *Bag) Delete(name string) bool {
	f, ok := b.fields[name]
	if !ok || !f.Writable {
		return false
	}
	delete(b.fields, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the enumerable field names in insertion order.
func (b *Bag) Keys() []string {
	keys := make([]string, 0, len(b.order))
	for _, name := range b.order {
		if b.fields[name].Enumerable {
			keys = append(keys, name)
		}
	}
	return keys
}

// Len returns the number of enumerable fields.
func (b *Bag) Len() int {
	n := 0
	for _, f := range b.fields {
		if f.Enumerable {
			n++
		}
	}
	return n
}
