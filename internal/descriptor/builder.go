package descriptor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
)

// ErrUnknownProperty is returned when a property redefines a property the
// type does not have.
var ErrUnknownProperty = errors.New("descriptor: unknown property")

// Builder accumulates the types visited by a linearization pass. Feed it
// ancestors before descendants and call Build once.
type Builder struct {
	name             ns.QualifiedName
	properties       []*meta.Property
	propertiesByName map[string]*meta.Property
	idProperty       *meta.Property
	bodyProperty     *meta.Property
	allTypes         []*meta.Type
	allTypesByName   map[string]*meta.Type
}

// NewBuilder returns a Builder for the type called name.
func NewBuilder(name ns.QualifiedName) *Builder {
	return &Builder{
		name:             name,
		propertiesByName: make(map[string]*meta.Property),
		allTypesByName:   make(map[string]*meta.Type),
	}
}

// AddTrait merges the properties of t, recording inherited as given. A
// property of the type being built that overwrites an existing entry is
// not inherited. A type already added is ignored.
func (b *Builder) AddTrait(t *meta.Type, inherited bool) error {
	typeName := t.QualifiedName()
	if _, ok := b.allTypesByName[typeName]; ok {
		return nil
	}
	leaf := typeName == b.name.Name

	for _, raw := range t.Properties {
		p := raw.Clone()
		p.Name = localName(raw)
		p.Inherited = inherited
		p.DefinedBy = t

		var overwrote bool
		if p.Redefines != "" {
			if err := b.redefineProperty(p); err != nil {
				return fmt.Errorf("%s: %w", typeName, err)
			}
			p.Redefines = ""
			overwrote = true
		} else {
			overwrote = b.addProperty(p)
		}
		if leaf && overwrote {
			p.Inherited = false
		}

		if p.IsID {
			b.idProperty = p
		}
		if p.IsBody {
			b.bodyProperty = p
		}
	}

	b.allTypes = append(b.allTypes, t)
	b.allTypesByName[typeName] = t
	return nil
}

// Build returns the merged descriptor.
func (b *Builder) Build() *Descriptor {
	return &Descriptor{
		Name:             b.name.Name,
		NS:               b.name,
		Properties:       b.properties,
		PropertiesByName: b.propertiesByName,
		IDProperty:       b.idProperty,
		BodyProperty:     b.bodyProperty,
		AllTypes:         b.allTypes,
		AllTypesByName:   b.allTypesByName,
	}
}

// addProperty appends p, or replaces the property already known under one
// of p's names at its current position. It reports whether p replaced one.
func (b *Builder) addProperty(p *meta.Property) bool {
	existing, ok := b.propertiesByName[p.NS.Name]
	if !ok {
		existing, ok = b.propertiesByName[p.NS.LocalName]
	}

	if ok {
		idx := slices.Index(b.properties, existing)
		b.properties[idx] = p
		b.relink(existing, p)
	} else {
		b.properties = append(b.properties, p)
	}
	b.index(p)
	return ok
}

// redefineProperty removes the property named by p.Redefines and appends p
// in its place at the end of the list. The old names keep resolving to p.
func (b *Builder) redefineProperty(p *meta.Property) error {
	typePart, propPart, found := strings.Cut(p.Redefines, "#")
	if !found {
		typePart, propPart = "", p.Redefines
	}

	prefix := p.NS.Prefix
	if typePart != "" {
		typeName, err := ns.ParseName(typePart, p.NS.Prefix)
		if err != nil {
			return err
		}
		prefix = typeName.Prefix
	}
	attrName, err := ns.ParseName(propPart, prefix)
	if err != nil {
		return err
	}

	redefined, ok := b.propertiesByName[attrName.Name]
	if !ok {
		return fmt.Errorf("%w: redefined property <%s> not found", ErrUnknownProperty, attrName.Name)
	}

	if idx := slices.Index(b.properties, redefined); idx >= 0 {
		b.properties = slices.Delete(b.properties, idx, idx+1)
	}
	b.relink(redefined, p)

	// a same-named property may already exist under p's own names
	if other, ok := b.propertiesByName[p.NS.Name]; ok && other != p {
		if idx := slices.Index(b.properties, other); idx >= 0 {
			b.properties = slices.Delete(b.properties, idx, idx+1)
		}
		b.relink(other, p)
	}

	b.properties = append(b.properties, p)
	b.index(p)
	return nil
}

// relink points every name resolving to from at to. The id and body
// singletons follow only when to carries the flag; otherwise they are
// cleared.
func (b *Builder) relink(from, to *meta.Property) {
	for key, p := range b.propertiesByName {
		if p == from {
			b.propertiesByName[key] = to
		}
	}
	if b.idProperty == from {
		b.idProperty = nil
		if to.IsID {
			b.idProperty = to
		}
	}
	if b.bodyProperty == from {
		b.bodyProperty = nil
		if to.IsBody {
			b.bodyProperty = to
		}
	}
}

func (b *Builder) index(p *meta.Property) {
	b.propertiesByName[p.NS.Name] = p
	b.propertiesByName[p.NS.LocalName] = p
}

func localName(p *meta.Property) string {
	if p.NS.LocalName != "" {
		return p.NS.LocalName
	}
	return p.Name
}
