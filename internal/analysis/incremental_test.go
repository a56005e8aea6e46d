package analysis

import (
	"reflect"
	"testing"

	"github.com/jengzang/movetank-go/internal/scene"
)

func objects(keys ...string) []scene.Object {
	out := make([]scene.Object, len(keys))
	for i, k := range keys {
		out[i] = scene.Object{Key: k, Children: []scene.Primitive{scene.Circle("c", 0, 0, 1, "#000000", "")}}
	}
	return out
}

func TestKeyedDiff(t *testing.T) {
	d := KeyedDiff([]string{"a", "b", "c"}, []string{"c", "d", "a", "d"})
	if !reflect.DeepEqual(d.Enter, []string{"d"}) {
		t.Errorf("expected enter [d], got %v", d.Enter)
	}
	if !reflect.DeepEqual(d.Update, []string{"c", "a"}) {
		t.Errorf("expected update [c a], got %v", d.Update)
	}
	if !reflect.DeepEqual(d.Exit, []string{"b"}) {
		t.Errorf("expected exit [b], got %v", d.Exit)
	}
}

func TestKeyedDiffDisjoint(t *testing.T) {
	prev := []string{"a", "b", "x"}
	next := []string{"b", "y", "z"}
	d := KeyedDiff(prev, next)

	seen := make(map[string]int)
	for _, set := range [][]string{d.Enter, d.Update, d.Exit} {
		for _, k := range set {
			seen[k]++
		}
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("key %s appears in %d sets", k, n)
		}
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct keys, got %d", len(seen))
	}
}

func TestReconcilerWithoutFade(t *testing.T) {
	c := scene.NewCanvas()
	r := NewReconciler(c, "nodes", 0, "#ce1256")

	d := r.Apply(objects("a", "b"))
	if len(d.Enter) != 2 || c.Len() != 2 {
		t.Fatalf("expected 2 entered objects, got %+v (%d on canvas)", d, c.Len())
	}

	d = r.Apply(objects("b", "c"))
	if !reflect.DeepEqual(d.Exit, []string{"a"}) || !reflect.DeepEqual(d.Enter, []string{"c"}) {
		t.Errorf("unexpected diff %+v", d)
	}
	if _, ok := c.Get("nodes", "a"); ok {
		t.Error("a should have been removed")
	}

	d = r.Apply(objects("b", "c"))
	if !d.Empty() || len(d.Update) != 2 {
		t.Errorf("expected a pure update, got %+v", d)
	}

	r.Clear()
	if !c.Empty() {
		t.Error("canvas should be empty after Clear")
	}
}

func TestReconcilerFade(t *testing.T) {
	c := scene.NewCanvas()
	r := NewReconciler(c, "entities", 1, "#ce1256")

	r.Apply(objects("a", "b"))
	d := r.Apply(objects("a"))
	if !reflect.DeepEqual(d.Exit, []string{"b"}) {
		t.Fatalf("expected b to exit, got %+v", d)
	}

	obj, ok := c.Get("entities", "b")
	if !ok {
		t.Fatal("b should stay during its fade")
	}
	if !obj.Exiting || obj.Children[0].Fill != "#ce1256" {
		t.Errorf("expected b restyled for exit, got %+v", obj)
	}
	if !r.Fading("b") {
		t.Error("b should be fading")
	}

	d = r.Apply(objects("a"))
	if len(d.Exit) != 0 {
		t.Errorf("a finished fade should not be reported again, got %+v", d)
	}
	if _, ok := c.Get("entities", "b"); ok {
		t.Error("b should be removed once its fade is over")
	}
}

func TestReconcilerRevivesFadingKey(t *testing.T) {
	c := scene.NewCanvas()
	r := NewReconciler(c, "entities", 2, "#ce1256")

	r.Apply(objects("a", "b"))
	r.Apply(objects("a"))

	d := r.Apply(objects("a", "b"))
	if len(d.Enter) != 0 {
		t.Errorf("expected no entering keys, got %v", d.Enter)
	}
	if !reflect.DeepEqual(d.Update, []string{"a", "b"}) {
		t.Errorf("expected b revived as update, got %v", d.Update)
	}
	obj, _ := c.Get("entities", "b")
	if obj.Exiting || obj.Children[0].Fill != "#000000" {
		t.Errorf("revived object should carry its normal style, got %+v", obj)
	}
	if r.Fading("b") {
		t.Error("b should no longer fade")
	}
}

func TestReconcilerKeysStable(t *testing.T) {
	c := scene.NewCanvas()
	r := NewReconciler(c, "nodes", 0, "")

	r.Apply(objects("a", "b", "c"))
	before := c.Ops()
	r.Apply(objects("a", "b", "c"))
	after := c.Ops()

	if after.Created != before.Created || after.Removed != before.Removed {
		t.Errorf("redrawing the same keys should only update, got %+v -> %+v", before, after)
	}
	if !reflect.DeepEqual(r.Keys(), []string{"a", "b", "c"}) {
		t.Errorf("unexpected keys %v", r.Keys())
	}
}
