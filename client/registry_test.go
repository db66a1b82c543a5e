package client

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_AddDuplicateRefused(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add(Puppet{ID: "p1", X: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_, err := r.Add(Puppet{ID: "p1", X: 99})
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("second Add() error = %v, want ErrDuplicateEntity", err)
	}
	if p, _ := r.Get("p1"); p.X != 1 {
		t.Errorf("p1.X = %v, want original 1", p.X)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_RemoveMissing(t *testing.T) {
	r := NewRegistry()
	r.Add(Puppet{ID: "p1"})
	if err := r.Remove("ghost"); !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("Remove() error = %v, want ErrDanglingReference", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if err := r.Remove("p1"); err != nil {
		t.Fatalf("Remove(p1) error = %v", err)
	}
	if r.Has("p1") || len(r.Order()) != 0 {
		t.Errorf("p1 still present after Remove")
	}
}

func TestRegistry_ClearReleasesEveryEntry(t *testing.T) {
	r := NewRegistry()
	for _, id := range []PuppetID{"a", "b", "c"} {
		r.Add(Puppet{ID: id})
	}

	var released []PuppetID
	r.Clear(func(p *Puppet) {
		if !r.Has(p.ID) {
			t.Errorf("%s released after being dropped", p.ID)
		}
		released = append(released, p.ID)
	})

	if want := []PuppetID{"a", "b", "c"}; !reflect.DeepEqual(released, want) {
		t.Errorf("released %v, want %v", released, want)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_DepthOrderStable(t *testing.T) {
	r := NewRegistry()
	r.Add(Puppet{ID: "low", Y: 50})
	r.Add(Puppet{ID: "tie1", Y: 10})
	r.Add(Puppet{ID: "high", Y: 0})
	r.Add(Puppet{ID: "tie2", Y: 10})

	want := []PuppetID{"high", "tie1", "tie2", "low"}
	if got := r.DepthOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("DepthOrder() = %v, want %v", got, want)
	}

	p, _ := r.Get("tie2")
	p.Y = 0
	want = []PuppetID{"high", "tie2", "tie1", "low"}
	if got := r.DepthOrder(); !reflect.DeepEqual(got, want) {
		t.Errorf("DepthOrder() after move = %v, want %v", got, want)
	}
}
