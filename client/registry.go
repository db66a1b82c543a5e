package client

import (
	"fmt"
	"sort"
)

// Registry owns the puppets of the current instance. It also keeps the
// visual stacking order, which only the depth sort rearranges.
type Registry struct {
	puppets map[PuppetID]*Puppet
	order   []PuppetID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{puppets: make(map[PuppetID]*Puppet)}
}

// Add stores p under its ID. An ID already present is refused rather than
// overwritten, since the old entry still owns a visual.
func (r *Registry) Add(p Puppet) (*Puppet, error) {
	if _, ok := r.puppets[p.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntity, p.ID)
	}
	stored := p
	r.puppets[p.ID] = &stored
	r.order = append(r.order, p.ID)
	return &stored, nil
}

// Remove deletes id.
func (r *Registry) Remove(id PuppetID) error {
	if _, ok := r.puppets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDanglingReference, id)
	}
	delete(r.puppets, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the live puppet for id.
func (r *Registry) Get(id PuppetID) (*Puppet, bool) {
	p, ok := r.puppets[id]
	return p, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id PuppetID) bool {
	_, ok := r.puppets[id]
	return ok
}

// Len is the number of registered puppets.
func (r *Registry) Len() int { return len(r.puppets) }

// Clear drops every puppet in stacking order, calling release on each
// before it is forgotten.
func (r *Registry) Clear(release func(*Puppet)) {
	for _, id := range r.order {
		if release != nil {
			release(r.puppets[id])
		}
		delete(r.puppets, id)
	}
	r.order = r.order[:0]
}

// DepthOrder stably sorts the stacking order by placed Y, so puppets
// higher on screen are drawn first, and returns a copy of it.
func (r *Registry) DepthOrder() []PuppetID {
	sort.SliceStable(r.order, func(i, j int) bool {
		return r.puppets[r.order[i]].Y < r.puppets[r.order[j]].Y
	})
	return r.Order()
}

// Order returns a copy of the current stacking order.
func (r *Registry) Order() []PuppetID {
	out := make([]PuppetID, len(r.order))
	copy(out, r.order)
	return out
}

// Snapshot copies every puppet in stacking order.
func (r *Registry) Snapshot() []Puppet {
	out := make([]Puppet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.puppets[id])
	}
	return out
}
