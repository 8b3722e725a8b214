// Package moddle is the model facade. A Moddle owns one registry and one
// element factory, resolves types on demand and caches the resulting
// constructors by name.
package moddle

import (
	"fmt"
	"sync"

	"github.com/moddle-labs/moddle/internal/descriptor"
	"github.com/moddle-labs/moddle/internal/factory"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
	"github.com/moddle-labs/moddle/internal/props"
	"github.com/moddle-labs/moddle/internal/registry"
	"github.com/rs/zerolog"
)

// Resolution errors surfaced by the facade.
var (
	ErrUnknownType      = registry.ErrUnknownType
	ErrDuplicatePackage = registry.ErrDuplicatePackage
)

// Named is anything that identifies a type by qualified name, such as a
// *descriptor.Descriptor or a registered *meta.Type.
type Named interface {
	QualifiedName() string
}

// Described is anything carrying an effective descriptor: elements and
// element types.
type Described interface {
	Descriptor() *descriptor.Descriptor
}

// Moddle resolves and instantiates the types of a fixed set of packages.
type Moddle struct {
	props    *props.Manager
	factory  *factory.Factory
	registry *registry.Registry
	log      zerolog.Logger

	// typeCache memoizes name -> *factory.Type. Concurrent misses may both
	// resolve; the first stored value wins.
	typeCache sync.Map
}

// Option configures a Moddle.
type Option func(*Moddle)

// WithLogger sets the logger for the facade and its registry.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Moddle) { m.log = l }
}

// New registers packages and returns the model. A registration error leaves
// nothing usable behind.
func New(packages []*meta.Package, opts ...Option) (*Moddle, error) {
	m := &Moddle{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(m)
	}

	m.props = props.NewManager(m)
	m.factory = factory.New(m.props)

	r, err := registry.New(packages, registry.WithLogger(m.log))
	if err != nil {
		return nil, err
	}
	m.registry = r
	return m, nil
}

// Create instantiates typ (a type name or Named) with attrs.
func (m *Moddle) Create(typ any, attrs factory.Attrs) (*factory.Element, error) {
	t, err := m.GetType(typ)
	if err != nil {
		return nil, err
	}
	return t.New(attrs), nil
}

// GetType returns the cached constructor for typ, resolving it on first use.
func (m *Moddle) GetType(typ any) (*factory.Type, error) {
	var name string
	switch v := typ.(type) {
	case string:
		name = v
	case Named:
		name = v.QualifiedName()
	default:
		return nil, fmt.Errorf("%w <%v>", ErrUnknownType, typ)
	}

	if cached, ok := m.typeCache.Load(name); ok {
		return cached.(*factory.Type), nil
	}

	m.log.Debug().Str("type", name).Msg("resolving type")
	d, err := m.registry.EffectiveDescriptor(name)
	if err != nil {
		return nil, err
	}

	actual, _ := m.typeCache.LoadOrStore(name, m.factory.CreateType(d))
	return actual.(*factory.Type), nil
}

// CreateAny creates an element of a type outside the model, such as a
// vendor extension. The element answers InstanceOf for name only.
func (m *Moddle) CreateAny(name, nsURI string, attrs factory.Attrs) (*factory.Element, error) {
	nameNs, err := ns.ParseName(name)
	if err != nil {
		return nil, err
	}
	nameNs.URI = nsURI

	return m.factory.NewGeneric(descriptor.NewGeneric(nameNs), attrs), nil
}

// Package returns a registered package by uri or prefix.
func (m *Moddle) Package(uriOrPrefix string) (*meta.Package, bool) {
	return m.registry.Package(uriOrPrefix)
}

// Packages returns all registered packages in registration order.
func (m *Moddle) Packages() []*meta.Package {
	return m.registry.Packages()
}

// ElementDescriptor returns the descriptor of an element or element type,
// or nil for a nil el.
func (m *Moddle) ElementDescriptor(el Described) *descriptor.Descriptor {
	if el == nil {
		return nil
	}
	return el.Descriptor()
}

// PropertyDescriptor returns the property name of el's type.
func (m *Moddle) PropertyDescriptor(el Described, name string) (*meta.Property, bool) {
	d := m.ElementDescriptor(el)
	if d == nil {
		return nil, false
	}
	return d.Property(name)
}

// TypeDescriptor returns the registered (unmerged) definition of name.
func (m *Moddle) TypeDescriptor(name string) (*meta.Type, bool) {
	return m.registry.Type(name)
}

// HasType reports whether el is an instance of typeName. A nil el is never
// an instance.
func (m *Moddle) HasType(el Described, typeName string) bool {
	d := m.ElementDescriptor(el)
	return d != nil && d.HasType(typeName)
}

// Registry returns the underlying registry.
func (m *Moddle) Registry() *registry.Registry { return m.registry }
