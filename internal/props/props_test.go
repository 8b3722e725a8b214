package props

import (
	"reflect"
	"testing"
)

type holder struct{ bag *Bag }

func (h *holder) Fields() *Bag { return h.bag }

func TestBagHiddenFieldsNotEnumerated(t *testing.T) {
	h := &holder{bag: NewBag()}
	m := NewManager("model")

	h.bag.Set("id", "A")
	m.DefineDescriptor(h, "descriptor")
	m.DefineModel(h)
	m.Define(h, KeyParent, Options{Writable: true})
	h.bag.Set("name", "N")

	if got, want := h.bag.Keys(), []string{"id", "name"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if h.bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.bag.Len())
	}

	if v, _ := h.bag.Get(KeyModel); v != "model" {
		t.Errorf("$model = %v, want model", v)
	}
	if v, _ := h.bag.Get(KeyDescriptor); v != "descriptor" {
		t.Errorf("$descriptor = %v, want descriptor", v)
	}
	if !h.bag.Has(KeyParent) {
		t.Error("expected $parent to be defined")
	}
}

func TestBagReadOnly(t *testing.T) {
	h := &holder{bag: NewBag()}
	NewManager(nil).DefineDescriptor(h, "d")

	if h.bag.Set(KeyDescriptor, "other") {
		t.Error("Set on read-only field returned true")
	}
	if h.bag.Delete(KeyDescriptor) {
		t.Error("Delete on read-only field returned true")
	}
	if v, _ := h.bag.Get(KeyDescriptor); v != "d" {
		t.Errorf("$descriptor = %v, want d", v)
	}
}

func TestBagDeletePreservesOrder(t *testing.T) {
	b := NewBag()
	b.Set("a", 1)
	b.Set("b", 2)
	b.Set("c", 3)

	if !b.Delete("b") {
		t.Fatal("Delete(b) = false")
	}
	if b.Has("b") {
		t.Error("b still present")
	}
	if got, want := b.Keys(), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	b.Set("b", 4)
	if got, want := b.Keys(), []string{"a", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after re-add = %v, want %v", got, want)
	}
}

func TestDefineEnumerable(t *testing.T) {
	h := &holder{bag: NewBag()}
	NewManager(nil).Define(h, KeyType, Options{Value: "other:Foo", Enumerable: true})

	if got := h.bag.Keys(); !reflect.DeepEqual(got, []string{KeyType}) {
		t.Errorf("Keys() = %v, want [$type]", got)
	}
}
