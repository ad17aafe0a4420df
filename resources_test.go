package nbody

import (
	"testing"
)

func TestResources(t *testing.T) {
	t.Run("Add and Get", func(t *testing.T) {
		r := &Resources{}
		dt := &DeltaTime{Seconds: 0.1}
		id := r.Add(dt)
		if id != 0 {
			t.Errorf("expected id 0, got %d", id)
		}
		if got := r.Get(0); got != dt {
			t.Errorf("expected %v, got %v", dt, got)
		}
	})

	t.Run("Has", func(t *testing.T) {
		r := &Resources{}
		r.Add(&DeltaTime{})
		if !r.Has(0) {
			t.Error("expected true")
		}
		if r.Has(1) || r.Has(-1) {
			t.Error("expected false")
		}
	})

	t.Run("Add same type panics", func(t *testing.T) {
		r := &Resources{}
		r.Add(&Gravity{})
		expectPanic(t, "duplicate", func() { r.Add(&Gravity{}) })
	})

	t.Run("Add nil panics", func(t *testing.T) {
		r := &Resources{}
		expectPanic(t, "nil", func() { r.Add(nil) })
	})

	t.Run("Remove and reuse ID", func(t *testing.T) {
		r := &Resources{}
		id0 := r.Add(&DeltaTime{})
		id1 := r.Add(&Gravity{})
		r.Remove(id0)
		if r.Has(id0) || r.Get(id0) != nil {
			t.Error("expected removed resource to be gone")
		}
		id2 := r.Add(&Cutoff{})
		if id2 != id0 {
			t.Errorf("expected reused id %d, got %d", id0, id2)
		}
		if !r.Has(id1) {
			t.Error("expected other resource to survive")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		r := &Resources{}
		r.Add(&DeltaTime{})
		r.Add(&Gravity{})
		r.Clear()
		if len(r.items) != 0 || len(r.types) != 0 || len(r.freeIds) != 0 {
			t.Error("expected empty store")
		}
		if ok, _ := HasResource[DeltaTime](r); ok {
			t.Error("expected DeltaTime to be gone")
		}
	})
}

func TestTypedResources(t *testing.T) {
	r := &Resources{}
	if res, id := GetResource[Cutoff](r); res != nil || id != -1 {
		t.Errorf("expected nil and -1, got %v and %d", res, id)
	}
	expectPanic(t, "MustGetResource", func() { MustGetResource[Gravity](r) })

	g := &Gravity{G: 1e-5}
	id := SetResource(r, g)
	if got := MustGetResource[Gravity](r); got != g {
		t.Errorf("expected same pointer %p, got %p", g, got)
	}
	g2 := &Gravity{G: 2e-5}
	if id2 := SetResource(r, g2); id2 != id {
		t.Errorf("expected replaced resource to keep id %d, got %d", id, id2)
	}
	if got, _ := GetResource[Gravity](r); got.G != 2e-5 {
		t.Errorf("expected replaced value 2e-5, got %v", got.G)
	}
	if ok, _ := HasResource[DeltaTime](r); ok {
		t.Error("expected DeltaTime to be absent")
	}
}
