// Package types knows the built-in primitive type names and converts
// string attribute values into their typed form.
package types

import (
	"fmt"
	"strconv"
)

// Built-in type names. They carry no namespace.
const (
	String  = "String"
	Boolean = "Boolean"
	Integer = "Integer"
	Real    = "Real"
	Element = "Element"
)

var builtIns = map[string]bool{
	String:  true,
	Boolean: true,
	Integer: true,
	Real:    true,
	Element: true,
}

var simpleTypes = map[string]bool{
	String:  true,
	Boolean: true,
	Integer: true,
	Real:    true,
}

// BuiltIns returns the built-in type names.
func BuiltIns() []string {
	return []string{String, Boolean, Integer, Real, Element}
}

// IsBuiltIn reports whether name is one of the built-in types.
func IsBuiltIn(name string) bool { return builtIns[name] }

// IsSimple reports whether name is a built-in primitive value type.
func IsSimple(name string) bool { return simpleTypes[name] }

// Coerce converts a string value to the Go representation of typ. Values of
// other types, and values for non-primitive types, pass through unchanged.
func Coerce(typ string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}

	switch typ {
	case Real:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("coercing %q to %s: %w", s, typ, err)
		}
		return f, nil
	case Integer:
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("coercing %q to %s: %w", s, typ, err)
		}
		return i, nil
	case Boolean:
		return s == "true", nil
	default:
		return value, nil
	}
}
