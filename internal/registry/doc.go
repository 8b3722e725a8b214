// Package registry owns the package and type tables of a model. It qualifies
// type and property names on registration, links traits back into the types
// they extend, linearizes a type's ancestry (superclasses first, then the
// type, then its traits) and folds that linearization into an effective
// descriptor.
package registry
