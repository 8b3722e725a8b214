package registry

import "errors"

var (
	ErrDuplicatePackage  = errors.New("registry: duplicate package")
	ErrUnresolvedExtends = errors.New("registry: unresolved extends")
	ErrUnknownType       = errors.New("registry: unknown type")
	ErrCyclicInheritance = errors.New("registry: cyclic inheritance")
)
