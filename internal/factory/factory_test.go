package factory

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/moddle-labs/moddle/internal/descriptor"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
	"github.com/moddle-labs/moddle/internal/props"
	"github.com/moddle-labs/moddle/internal/registry"
)

type testModel struct{ name string }

func propsPackage() *meta.Package {
	return &meta.Package{
		Name:   "Properties",
		URI:    "http://properties",
		Prefix: "props",
		Types: []*meta.Type{
			{
				Name: "Base",
				Properties: []*meta.Property{
					{Name: "id", Type: "String", IsAttr: true, IsID: true},
				},
			},
			{
				Name:       "Attributes",
				SuperClass: []string{"Base"},
				Properties: []*meta.Property{
					{Name: "booleanValue", Type: "Boolean", IsAttr: true},
					{Name: "integerValue", Type: "Integer", IsAttr: true},
					{Name: "defaultBooleanValue", Type: "Boolean", IsAttr: true, Default: true},
				},
			},
			{
				Name:       "Root",
				Properties: []*meta.Property{{Name: "any", Type: "Element", IsMany: true}},
			},
			{
				Name:       "BaseWithNumericId",
				SuperClass: []string{"Base"},
				Properties: []*meta.Property{
					{Name: "idNumeric", Type: "Integer", IsAttr: true, IsID: true, Redefines: "Base#id"},
				},
			},
		},
	}
}

func newType(t *testing.T, name string) (*Type, *testModel) {
	t.Helper()
	r, err := registry.New([]*meta.Package{propsPackage()})
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	d, err := r.EffectiveDescriptor(name)
	if err != nil {
		t.Fatalf("EffectiveDescriptor(%s): %v", name, err)
	}
	model := &testModel{name: "test"}
	return New(props.NewManager(model)).CreateType(d), model
}

func TestNewSetsMetadata(t *testing.T) {
	typ, model := newType(t, "props:Attributes")

	e := typ.New(nil)

	if e.Type() != "props:Attributes" {
		t.Errorf("Type() = %q", e.Type())
	}
	if e.Descriptor() != typ.Descriptor() {
		t.Error("element should share the type descriptor")
	}
	if e.Model() != model {
		t.Error("element should link to its model")
	}
	if e.Parent() != nil {
		t.Error("parent should be unset")
	}
	for _, k := range e.Keys() {
		if k[0] == '$' {
			t.Errorf("bookkeeping key %q is enumerable", k)
		}
	}
}

func TestNewAppliesAttrsAndDefaults(t *testing.T) {
	typ, _ := newType(t, "props:Attributes")

	e := typ.New(Attrs{
		{"id", "ATTR_1"},
		{"booleanValue", false},
		{"props:integerValue", -1000},
	})

	if e.Get("id") != "ATTR_1" || e.Get("booleanValue") != false || e.Get("integerValue") != -1000 {
		t.Errorf("unexpected values: id=%v bool=%v int=%v", e.Get("id"), e.Get("booleanValue"), e.Get("integerValue"))
	}
	if e.Get("defaultBooleanValue") != true {
		t.Errorf("defaultBooleanValue = %v, want true", e.Get("defaultBooleanValue"))
	}
}

func TestDefaultDoesNotOverrideAttr(t *testing.T) {
	typ, _ := newType(t, "props:Attributes")

	e := typ.New(Attrs{{"defaultBooleanValue", false}})

	if e.Get("defaultBooleanValue") != false {
		t.Errorf("defaultBooleanValue = %v, want false", e.Get("defaultBooleanValue"))
	}
}

func TestSetExtension(t *testing.T) {
	typ, _ := newType(t, "props:Attributes")
	e := typ.New(nil)

	e.Set("foo", "bar")
	e.Set("namespace:foo", "baz")

	if got := e.Attrs(); got["foo"] != "bar" || got["namespace:foo"] != "baz" {
		t.Errorf("Attrs() = %v", got)
	}
	for _, k := range []string{"foo", "namespace:foo"} {
		if _, ok := e.Lookup(k); ok {
			t.Errorf("extension %q stored as own field", k)
		}
	}
	if e.Get("namespace:foo") != "baz" {
		t.Error("Get should read extension attributes")
	}
}

func TestUnset(t *testing.T) {
	typ, _ := newType(t, "props:Attributes")
	e := typ.New(Attrs{{"id", "ATTR_1"}, {"props:integerValue", -1000}, {"foo:bar", 42}})

	e.Set("id", nil)
	e.Set("props:integerValue", nil)
	e.Unset("foo:bar")

	for _, k := range e.Keys() {
		if k == "id" || k == "integerValue" {
			t.Errorf("key %q still enumerated", k)
		}
	}
	if _, ok := e.Attrs()["foo:bar"]; ok {
		t.Error("extension foo:bar still present")
	}
	if e.Get("id") != nil {
		t.Error("Get(id) should be nil after unset")
	}
}

func TestLazyCollection(t *testing.T) {
	typ, _ := newType(t, "props:Root")
	e := typ.New(nil)

	if _, ok := e.Lookup("any"); ok {
		t.Fatal("collection should not be materialized at construction")
	}
	if len(e.Keys()) != 0 {
		t.Errorf("Keys() = %v, want none", e.Keys())
	}

	first, ok := e.Get("props:any").(*Collection)
	if !ok || first.Len() != 0 {
		t.Fatalf("Get(props:any) = %v, want empty collection", e.Get("props:any"))
	}
	if e.Get("any") != first {
		t.Error("second Get should return the same collection")
	}
	if v, _ := e.Lookup("any"); v != first {
		t.Error("direct field read should return the same collection")
	}
}

func TestCollectionFromSlice(t *testing.T) {
	typ, _ := newType(t, "props:Root")
	child := typ.New(nil)

	e := typ.New(Attrs{{"any", []*Element{child}}})

	c, ok := e.Get("any").(*Collection)
	if !ok || c.Len() != 1 || c.At(0) != child {
		t.Fatalf("any = %v, want collection with child", e.Get("any"))
	}
}

func TestCollectionRemove(t *testing.T) {
	child := &Element{}
	attrs := map[string]any{"a": 1}
	c := NewCollection("x", child, attrs, []any{1}, nil)

	tests := []struct {
		name string
		item any
		want bool
	}{
		{"string", "x", true},
		{"pointer", child, true},
		{"equal map", map[string]any{"a": 1}, false},
		{"same map", attrs, false},
		{"slice", []any{1}, false},
		{"nil", nil, true},
		{"absent", "y", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Remove(tt.item); got != tt.want {
				t.Errorf("Remove(%v) = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2 (map and slice left)", c.Len())
	}
}

func TestRedefinedAccess(t *testing.T) {
	typ, _ := newType(t, "props:BaseWithNumericId")

	e := typ.New(Attrs{{"id", 1000}})

	if v, _ := e.Lookup("idNumeric"); v != 1000 {
		t.Errorf("idNumeric = %v, want 1000", v)
	}
	if e.Get("props:id") != 1000 || e.Get("props:idNumeric") != 1000 {
		t.Error("both names should read the redefined property")
	}

	e.Set("unknown", "UNKNOWN")
	if e.Get("unknown") != "UNKNOWN" {
		t.Error("undeclared names should fall back to the extension bucket")
	}
}

func TestInstanceOf(t *testing.T) {
	typ, _ := newType(t, "props:BaseWithNumericId")
	e := typ.New(nil)

	if !e.InstanceOf("props:BaseWithNumericId") || !e.InstanceOf("props:Base") {
		t.Error("InstanceOf should include the type and its ancestors")
	}
	if e.InstanceOf("props:Root") {
		t.Error("InstanceOf(props:Root) = true")
	}
}

func TestSetParent(t *testing.T) {
	typ, _ := newType(t, "props:Root")
	parent, child := typ.New(nil), typ.New(nil)

	child.SetParent(parent)

	if child.Parent() != parent {
		t.Error("Parent() should return the assigned parent")
	}
	if len(child.Keys()) != 0 {
		t.Error("$parent should not be enumerable")
	}
}

func TestNewGeneric(t *testing.T) {
	name := ns.MustParseName("vendor:Foo")
	name.URI = "http://vendor"
	f := New(props.NewManager(nil))

	e := f.NewGeneric(descriptor.NewGeneric(name), Attrs{
		{"value", "bar"},
		{"ignored", NamedValue{Name: "named", Value: 1}},
	})

	if got, want := e.Keys(), []string{"$type", "value", "named"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if !e.InstanceOf("vendor:Foo") {
		t.Error("InstanceOf(vendor:Foo) = false")
	}
	if e.Get("value") != "bar" {
		t.Errorf("Get(value) = %v", e.Get("value"))
	}
}

func TestMarshalJSON(t *testing.T) {
	typ, _ := newType(t, "props:Attributes")
	e := typ.New(Attrs{{"id", "A"}, {"foo", "bar"}})

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"A","defaultBooleanValue":true,"foo":"bar"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestFromMapSorted(t *testing.T) {
	attrs := FromMap(map[string]any{"b": 2, "a": 1})
	if attrs[0].Name != "a" || attrs[1].Name != "b" {
		t.Errorf("FromMap = %v", attrs)
	}
}
