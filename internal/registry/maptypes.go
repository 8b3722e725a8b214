package registry

import (
	"fmt"

	"github.com/moddle-labs/moddle/internal/descriptor"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
	"github.com/moddle-labs/moddle/internal/types"
)

// VisitFunc receives each type of a linearization. inherited is false for
// types reached through a trait.
type VisitFunc func(t *meta.Type, inherited bool) error

// MapTypes walks the ancestry of name: superclasses (base first), then the
// type itself, then its traits. A trait's own superclass chain is walked as
// trait as well.
func (r *Registry) MapTypes(name ns.QualifiedName, visit VisitFunc) error {
	return r.mapTypes(name, visit, false, make(map[string]bool))
}

func (r *Registry) mapTypes(name ns.QualifiedName, visit VisitFunc, trait bool, path map[string]bool) error {
	t, err := r.lookup(name)
	if err != nil {
		return err
	}

	if path[t.QualifiedName()] {
		return fmt.Errorf("%w: <%s>", ErrCyclicInheritance, t.QualifiedName())
	}
	path[t.QualifiedName()] = true
	defer delete(path, t.QualifiedName())

	for _, superName := range t.SuperClass {
		parent, err := r.parseRef(superName, name.Prefix)
		if err != nil {
			return err
		}
		if err := r.mapTypes(parent, visit, trait, path); err != nil {
			return err
		}
	}

	if err := visit(t, !trait); err != nil {
		return err
	}

	for _, traitName := range t.Traits {
		tn, err := r.parseRef(traitName, name.Prefix)
		if err != nil {
			return err
		}
		if err := r.mapTypes(tn, visit, true, path); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveDescriptor resolves the merged descriptor of the type name.
func (r *Registry) EffectiveDescriptor(name string) (*descriptor.Descriptor, error) {
	nsName, err := ns.ParseName(name)
	if err != nil {
		return nil, err
	}

	builder := descriptor.NewBuilder(nsName)
	err = r.MapTypes(nsName, func(t *meta.Type, inherited bool) error {
		return builder.AddTrait(t, inherited)
	})
	if err != nil {
		return nil, err
	}

	d := builder.Build()
	d.Package = r.packageOf(d)

	r.log.Debug().Str("type", d.Name).Int("properties", len(d.Properties)).Int("types", len(d.AllTypes)).Msg("resolved effective descriptor")
	return d, nil
}

// packageOf returns the package of the queried type, or of the last
// contributing type if the query named a built-in.
func (r *Registry) packageOf(d *descriptor.Descriptor) *meta.Package {
	if t, ok := d.AllTypesByName[d.Name]; ok && t.Package != nil {
		return t.Package
	}
	for i := len(d.AllTypes) - 1; i >= 0; i-- {
		if pkg := d.AllTypes[i].Package; pkg != nil {
			return pkg
		}
	}
	return nil
}

func (r *Registry) lookup(name ns.QualifiedName) (*meta.Type, error) {
	if types.IsBuiltIn(name.Name) {
		return r.builtIns[name.Name], nil
	}

	t, ok := r.typeMap[name.Name]
	if !ok {
		return nil, fmt.Errorf("%w <%s>", ErrUnknownType, name.Name)
	}
	return t, nil
}

func (r *Registry) parseRef(ref, prefix string) (ns.QualifiedName, error) {
	if types.IsBuiltIn(ref) {
		return ns.ParseName(ref)
	}
	return ns.ParseName(ref, prefix)
}
