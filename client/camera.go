package client

// Offset is the viewport translation that centres the local puppet.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Camera derives viewport offsets for a fixed screen size.
type Camera struct {
	ScreenWidth  float64
	ScreenHeight float64
}

// Recompute centres p on screen.
func (c Camera) Recompute(p *Puppet) Offset {
	return Offset{
		X: c.ScreenWidth/2 - p.X,
		Y: c.ScreenHeight/2 - p.Y,
	}
}
