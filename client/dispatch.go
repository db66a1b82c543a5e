package client

import "fmt"

// Dispatcher applies decoded server events to the world. Every event is
// checked in full before anything is mutated, so a rejected event leaves
// the world as it was.
type Dispatcher struct {
	world  *WorldState
	camera Camera
}

// NewDispatcher binds a dispatcher to world and camera.
func NewDispatcher(world *WorldState, camera Camera) *Dispatcher {
	return &Dispatcher{world: world, camera: camera}
}

// Dispatch applies ev and returns the effects the renderer must make, in
// order. UnknownEvent yields no effects and no error.
func (d *Dispatcher) Dispatch(ev Event) ([]Effect, error) {
	switch e := ev.(type) {
	case AttributePuppet:
		d.world.LocalPuppet = e.PuppetKey
		return nil, nil
	case InstanceDigest:
		return d.instanceDigest(e), nil
	case PuppetStarts:
		p, err := d.lookup(e)
		if err != nil {
			return nil, err
		}
		p.IsMoving = true
		return []Effect{PlayAnimation{ID: p.ID}}, nil
	case PuppetStops:
		p, err := d.lookup(e)
		if err != nil {
			return nil, err
		}
		p.IsMoving = false
		return []Effect{StopAnimation{ID: p.ID}}, nil
	case PuppetEnters:
		return d.puppetEnters(e)
	case PuppetLeaves:
		if err := d.world.Puppets.Remove(e.PuppetKey); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Opcode(), err)
		}
		return []Effect{RemoveVisual{ID: e.PuppetKey}}, nil
	case PuppetMoves:
		p, err := d.lookup(e)
		if err != nil {
			return nil, err
		}
		d.world.Place(p, e.To)
		effects := []Effect{MoveVisual{ID: p.ID, X: p.X, Y: p.Y}}
		return d.follow(p, effects), nil
	case PuppetDirection:
		p, err := d.lookup(e)
		if err != nil {
			return nil, err
		}
		p.Facing = e.Direction
		effects := []Effect{SwapFrames{ID: p.ID, Facing: p.Facing, Action: ActionWalk}}
		if p.IsMoving {
			effects = append(effects, PlayAnimation{ID: p.ID})
		}
		return effects, nil
	case UnknownEvent:
		return nil, nil
	default:
		return nil, fmt.Errorf("unhandled event type %T", ev)
	}
}

// keyed is every event that names exactly one existing puppet.
type keyed interface {
	Event
	key() PuppetID
}

func (e PuppetStarts) key() PuppetID    { return e.PuppetKey }
func (e PuppetStops) key() PuppetID     { return e.PuppetKey }
func (e PuppetMoves) key() PuppetID     { return e.PuppetKey }
func (e PuppetDirection) key() PuppetID { return e.PuppetKey }

func (d *Dispatcher) lookup(e keyed) (*Puppet, error) {
	p, ok := d.world.Puppets.Get(e.key())
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", e.Opcode(), ErrDanglingReference, e.key())
	}
	return p, nil
}

func (d *Dispatcher) instanceDigest(e InstanceDigest) []Effect {
	effects := make([]Effect, 0, d.world.Puppets.Len()+2*len(e.Puppets)+3)

	d.world.Puppets.Clear(func(p *Puppet) {
		effects = append(effects, RemoveVisual{ID: p.ID})
	})

	d.world.Replace(e.Instance, e.MapKey, e.Width, e.Height)
	effects = append(effects, LoadMap{MapKey: e.MapKey, Width: d.world.MapWidth, Height: d.world.MapHeight})

	// IDs in a digest are unique and the registry was just emptied, so Add
	// cannot fail here.
	for _, entry := range e.Puppets {
		p, _ := d.world.Puppets.Add(d.world.NewPuppet(entry.ID, entry.At))
		effects = append(effects, AddVisual{Puppet: *p})
		effects = d.follow(p, effects)
	}

	d.world.Visible = true
	return append(effects, ShowScene{})
}

func (d *Dispatcher) puppetEnters(e PuppetEnters) ([]Effect, error) {
	if !d.world.Active() {
		return nil, fmt.Errorf("%s: %w: %s", e.Opcode(), ErrNoInstance, e.PuppetKey)
	}
	p, err := d.world.Puppets.Add(d.world.NewPuppet(e.PuppetKey, e.At))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Opcode(), err)
	}
	return d.follow(p, []Effect{AddVisual{Puppet: *p}}), nil
}

// follow appends a camera move when p is the local puppet.
func (d *Dispatcher) follow(p *Puppet, effects []Effect) []Effect {
	if !d.world.IsLocal(p.ID) {
		return effects
	}
	return append(effects, MoveCamera{Offset: d.camera.Recompute(p)})
}

// CameraOffset is the current viewport offset, if a local puppet is placed.
func (d *Dispatcher) CameraOffset() (Offset, bool) {
	if !d.world.HasLocal() {
		return Offset{}, false
	}
	p, ok := d.world.Puppets.Get(d.world.LocalPuppet)
	if !ok {
		return Offset{}, false
	}
	return d.camera.Recompute(p), true
}
