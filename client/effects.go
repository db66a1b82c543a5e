package client

// Effect is a change the render collaborator must make to mirror the
// world. Dispatch returns effects in the order they must be applied.
type Effect interface {
	isEffect()
}

// LoadMap replaces the scene with the tile map named MapKey.
type LoadMap struct {
	MapKey string
	Width  float64 // world units
	Height float64
}

type AddVisual struct {
	Puppet Puppet
}

type RemoveVisual struct {
	ID PuppetID
}

type MoveVisual struct {
	ID   PuppetID
	X, Y float64
}

// PlayAnimation restarts the walk cycle at Frame.
type PlayAnimation struct {
	ID    PuppetID
	Frame int
}

// StopAnimation halts the walk cycle and shows Frame.
type StopAnimation struct {
	ID    PuppetID
	Frame int
}

// SwapFrames selects the frame set for (Facing, Action).
type SwapFrames struct {
	ID     PuppetID
	Facing Direction
	Action string
}

// MoveCamera translates the viewport container to Offset.
type MoveCamera struct {
	Offset Offset
}

type ShowScene struct{}

func (LoadMap) isEffect()       {}
func (AddVisual) isEffect()     {}
func (RemoveVisual) isEffect()  {}
func (MoveVisual) isEffect()    {}
func (PlayAnimation) isEffect() {}
func (StopAnimation) isEffect() {}
func (SwapFrames) isEffect()    {}
func (MoveCamera) isEffect()    {}
func (ShowScene) isEffect()     {}

// ActionWalk is the only animation action the protocol drives.
const ActionWalk = "walk"

// Renderer applies effects. Implementations must not call back into the
// session.
type Renderer interface {
	Apply(Effect)
}

// NopRenderer discards every effect.
type NopRenderer struct{}

func (NopRenderer) Apply(Effect) {}
