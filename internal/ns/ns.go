// Package ns parses namespaced names of the form prefix:localName. Every
// namespace decision made by the registry and the element runtime goes
// through ParseName.
package ns

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is returned for names that contain more than one colon.
var ErrParse = errors.New("ns: malformed name")

// QualifiedName is a parsed prefix:localName identifier.
type QualifiedName struct {
	Name      string `json:"name" yaml:"name"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	LocalName string `json:"localName" yaml:"localName"`
	URI       string `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// ParseName parses value into a qualified name. A value without a colon is
// placed in defaultPrefix (if any); a value with one colon keeps its own
// prefix and ignores the default.
func ParseName(value string, defaultPrefix ...string) (QualifiedName, error) {
	parts := strings.Split(value, ":")

	switch len(parts) {
	case 1:
		var prefix string
		if len(defaultPrefix) > 0 {
			prefix = defaultPrefix[0]
		}
		name := value
		if prefix != "" {
			name = prefix + ":" + value
		}
		return QualifiedName{Name: name, Prefix: prefix, LocalName: value}, nil
	case 2:
		return QualifiedName{Name: value, Prefix: parts[0], LocalName: parts[1]}, nil
	default:
		return QualifiedName{}, fmt.Errorf("%w: expected <prefix:localName>, got <%s>", ErrParse, value)
	}
}

// MustParseName is like ParseName but panics on malformed input. Intended
// for names known at compile time.
func MustParseName(value string, defaultPrefix ...string) QualifiedName {
	q, err := ParseName(value, defaultPrefix...)
	if err != nil {
		panic(err)
	}
	return q
}

// String returns the full name.
func (q QualifiedName) String() string { return q.Name }

// HasPrefix reports whether the name is namespaced.
func (q QualifiedName) HasPrefix() bool { return q.Prefix != "" }
