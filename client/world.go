package client

// WorldState is the client's mirror of the active instance.
type WorldState struct {
	Instance  string
	MapKey    string
	MapWidth  float64
	MapHeight float64
	Visible   bool

	// LocalPuppet is empty until the server attributes one. It survives
	// instance changes.
	LocalPuppet PuppetID

	Puppets *Registry

	TileSize     float64
	PuppetWidth  float64
	PuppetHeight float64
}

// NewWorldState builds an empty world using the given asset geometry.
func NewWorldState(tileSize, puppetWidth, puppetHeight float64) *WorldState {
	return &WorldState{
		Puppets:      NewRegistry(),
		TileSize:     tileSize,
		PuppetWidth:  puppetWidth,
		PuppetHeight: puppetHeight,
	}
}

// Active reports whether an instance digest has been applied.
func (w *WorldState) Active() bool {
	return w.MapKey != ""
}

// HasLocal reports whether a local puppet has been attributed.
func (w *WorldState) HasLocal() bool {
	return w.LocalPuppet != ""
}

// IsLocal reports whether id is the locally controlled puppet.
func (w *WorldState) IsLocal(id PuppetID) bool {
	return w.HasLocal() && w.LocalPuppet == id
}

// Replace switches to a new instance. widthTiles and heightTiles are
// scaled by the tile size.
func (w *WorldState) Replace(instance, mapKey string, widthTiles, heightTiles int) {
	w.Instance = instance
	w.MapKey = mapKey
	w.MapWidth = float64(widthTiles) * w.TileSize
	w.MapHeight = float64(heightTiles) * w.TileSize
}

// Place moves p to the server position at. The server's origin is
// bottom-left and the render origin is top-left, so y is flipped against
// the map height and offset by the puppet's own height.
func (w *WorldState) Place(p *Puppet, at Point) {
	p.X = at.X
	p.Y = w.MapHeight - at.Y - p.Height
}

// NewPuppet builds a standing, down-facing puppet placed at at.
func (w *WorldState) NewPuppet(id PuppetID, at Point) Puppet {
	p := Puppet{
		ID:     id,
		Width:  w.PuppetWidth,
		Height: w.PuppetHeight,
		Facing: DirDown,
	}
	w.Place(&p, at)
	return p
}
