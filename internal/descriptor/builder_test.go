package descriptor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
)

// rawType builds a registered-looking type in package prefix "r".
func rawType(name string, props ...*meta.Property) *meta.Type {
	t := &meta.Type{Name: "r:" + name, NS: ns.MustParseName(name, "r")}
	for _, p := range props {
		p.NS = ns.MustParseName(p.Name, "r")
		p.Name = p.NS.Name
		t.Properties = append(t.Properties, p)
	}
	return t
}

func prop(name, typ string) *meta.Property {
	return &meta.Property{Name: name, Type: typ}
}

func propertyNames(d *Descriptor) []string {
	var names []string
	for _, p := range d.Properties {
		names = append(names, p.Name)
	}
	return names
}

func build(t *testing.T, leaf string, chain ...*meta.Type) *Descriptor {
	t.Helper()
	b := NewBuilder(ns.MustParseName(leaf))
	for _, typ := range chain {
		if err := b.AddTrait(typ, true); err != nil {
			t.Fatalf("AddTrait(%s): %v", typ.Name, err)
		}
	}
	return b.Build()
}

func TestBuilderReplaceKeepsPosition(t *testing.T) {
	base := rawType("Base", prop("name", "String"), prop("value", "String"), prop("id", "String"))
	ext := rawType("Extension", prop("id", "Integer"))

	d := build(t, "r:Extension", base, ext)

	if got, want := propertyNames(d), []string{"name", "value", "id"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("properties = %v, want %v", got, want)
	}
	if d.PropertiesByName["r:id"].Type != "Integer" || d.PropertiesByName["id"].Type != "Integer" {
		t.Error("r:id / id should resolve to the Integer property")
	}
	if d.PropertiesByName["r:id"] != d.PropertiesByName["id"] {
		t.Error("r:id and id should resolve to the same descriptor")
	}
}

func TestBuilderRedefineMovesToDeclaration(t *testing.T) {
	base := rawType("Base", prop("id", "String"))
	redefining := prop("id", "Integer")
	redefining.Redefines = "r:Base#id"
	ext := rawType("Extension", redefining, prop("name", "String"), prop("value", "String"))

	d := build(t, "r:Extension", base, ext)

	if got, want := propertyNames(d), []string{"id", "name", "value"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("properties = %v, want %v", got, want)
	}
	if d.PropertiesByName["r:id"].Type != "Integer" || d.PropertiesByName["id"].Type != "Integer" {
		t.Error("r:id / id should resolve to the Integer property")
	}
	if d.PropertiesByName["id"].Redefines != "" {
		t.Error("applied redefinition should be cleared on the merged property")
	}
}

func TestBuilderRedefineRenamed(t *testing.T) {
	base := rawType("Base", prop("key", "String"), prop("name", "String"), prop("value", "String"))
	numeric := prop("idNumeric", "Integer")
	numeric.Redefines = "r:Base#key"
	ext := rawType("Extension", numeric)

	d := build(t, "r:Extension", base, ext)

	if got, want := propertyNames(d), []string{"name", "value", "idNumeric"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("properties = %v, want %v", got, want)
	}
	survivor := d.PropertiesByName["idNumeric"]
	for _, key := range []string{"key", "r:key", "idNumeric", "r:idNumeric"} {
		if d.PropertiesByName[key] != survivor {
			t.Errorf("PropertiesByName[%q] does not resolve to the redefining property", key)
		}
	}
}

func TestBuilderRedefineUnknown(t *testing.T) {
	p := prop("id", "Integer")
	p.Redefines = "r:Base#missing"
	ext := rawType("Extension", p)

	err := NewBuilder(ns.MustParseName("r:Extension")).AddTrait(ext, true)
	if !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("AddTrait error = %v, want ErrUnknownProperty", err)
	}
}

func TestBuilderIDAndBody(t *testing.T) {
	id := prop("id", "String")
	id.IsID = true
	body := prop("body", "String")
	body.IsBody = true

	d := build(t, "r:Complex", rawType("Complex", id, body))

	if d.IDProperty == nil || d.IDProperty != d.PropertiesByName["id"] {
		t.Error("IDProperty should be the id property")
	}
	if d.BodyProperty == nil || d.BodyProperty != d.PropertiesByName["body"] {
		t.Error("BodyProperty should be the body property")
	}
}

func TestBuilderInheritedFlag(t *testing.T) {
	base := rawType("Base", prop("name", "String"), prop("id", "String"))
	leaf := rawType("Root", prop("id", "Integer"), prop("ownAttr", "String"))
	trait := rawType("CustomRoot", prop("customAttr", "Integer"))

	b := NewBuilder(ns.MustParseName("r:Root"))
	for _, step := range []struct {
		typ       *meta.Type
		inherited bool
	}{{base, true}, {leaf, true}, {trait, false}} {
		if err := b.AddTrait(step.typ, step.inherited); err != nil {
			t.Fatal(err)
		}
	}
	d := b.Build()

	tests := []struct {
		name string
		want bool
	}{
		{"name", true},
		{"id", false},
		{"ownAttr", true},
		{"customAttr", false},
	}
	for _, tt := range tests {
		if got := d.PropertiesByName[tt.name].Inherited; got != tt.want {
			t.Errorf("%s.Inherited = %v, want %v", tt.name, got, tt.want)
		}
	}
	if base.Properties[1].Inherited || leaf.Properties[0].Inherited {
		t.Error("raw properties must not be mutated")
	}
}

func TestBuilderLeafRedefineNotInherited(t *testing.T) {
	base := rawType("Base", prop("id", "String"))
	redefining := prop("key", "Integer")
	redefining.Redefines = "r:Base#id"
	leaf := rawType("Root", redefining)

	d := build(t, "r:Root", base, leaf)

	if d.PropertiesByName["key"].Inherited {
		t.Error("leaf redefinition should not be inherited")
	}
	if base.Properties[0].Inherited {
		t.Error("raw ancestor property must not be mutated")
	}
}

func TestBuilderReplaceDropsIDWithoutFlag(t *testing.T) {
	id := prop("id", "String")
	id.IsID = true
	body := prop("text", "String")
	body.IsBody = true
	base := rawType("Base", id, body)
	sub := rawType("Sub", prop("id", "Integer"), prop("text", "String"))

	d := build(t, "r:Sub", base, sub)

	if d.IDProperty != nil {
		t.Errorf("IDProperty = %+v, want nil", d.IDProperty)
	}
	if d.BodyProperty != nil {
		t.Errorf("BodyProperty = %+v, want nil", d.BodyProperty)
	}
}

func TestBuilderReplaceKeepsIDWithFlag(t *testing.T) {
	id := prop("id", "String")
	id.IsID = true
	narrowed := prop("id", "Integer")
	narrowed.IsID = true

	d := build(t, "r:Sub", rawType("Base", id), rawType("Sub", narrowed))

	if d.IDProperty == nil || d.IDProperty.Type != "Integer" || !d.IDProperty.IsID {
		t.Errorf("IDProperty = %+v, want the Integer id", d.IDProperty)
	}
}

func TestBuilderSkipsDuplicateTypes(t *testing.T) {
	base := rawType("Base", prop("name", "String"))

	d := build(t, "r:Base", base, base)

	if len(d.AllTypes) != 1 || len(d.Properties) != 1 {
		t.Errorf("AllTypes = %d, Properties = %d, want 1 and 1", len(d.AllTypes), len(d.Properties))
	}
	if !d.HasType("r:Base") {
		t.Error("HasType(r:Base) = false")
	}
}

func TestNewGeneric(t *testing.T) {
	name := ns.MustParseName("vendor:Foo")
	name.URI = "http://vendor"

	d := NewGeneric(name)

	if !d.IsGeneric || !d.HasType("vendor:Foo") || d.HasType("Element") {
		t.Errorf("unexpected generic descriptor %+v", d)
	}
	if d.NS.URI != "http://vendor" {
		t.Errorf("NS.URI = %q", d.NS.URI)
	}
}
