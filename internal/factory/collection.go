package factory

import (
	"encoding/json"
	"reflect"
)

// Collection is the ordered value of a many-valued property. Elements hold
// a pointer to it, so every read returns the same instance.
type Collection struct {
	items []any
}

// NewCollection returns a collection holding items.
func NewCollection(items ...any) *Collection {
	return &Collection{items: append([]any(nil), items...)}
}

// Add appends items.
func (c *Collection) Add(items ...any) {
	c.items = append(c.items, items...)
}

// Remove deletes the first occurrence of item and reports whether it was
// present. Values that cannot be compared, such as maps and slices, are
// never found.
func (c *Collection) Remove(item any) bool {
	if item != nil && !reflect.ValueOf(item).Comparable() {
		return false
	}
	for i, v := range c.items {
		if v == item {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// At returns the item at index i.
func (c *Collection) At(i int) any { return c.items[i] }

// Items returns a copy of the items.
func (c *Collection) Items() []any {
	return append([]any(nil), c.items...)
}

// MarshalJSON writes the collection as a JSON array.
func (c *Collection) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// toCollection wraps slice values assigned to many-valued properties.
func toCollection(value any) any {
	switch v := value.(type) {
	case *Collection:
		return v
	case []any:
		return NewCollection(v...)
	case []*Element:
		c := &Collection{items: make([]any, len(v))}
		for i, e := range v {
			c.items[i] = e
		}
		return c
	case []string:
		c := &Collection{items: make([]any, len(v))}
		for i, s := range v {
			c.items[i] = s
		}
		return c
	default:
		return value
	}
}
