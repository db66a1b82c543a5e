package display

import (
	"image/color"

	"puppetclient/client"
)

// framesPerSet is the length of every walk cycle.
const framesPerSet = 4

var facingBase = map[client.Direction]color.RGBA{
	client.DirUp:    {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	client.DirDown:  {R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	client.DirLeft:  {R: 0xea, G: 0xb3, B: 0x08, A: 0xff},
	client.DirRight: {R: 0xef, G: 0x44, B: 0x44, A: 0xff},
}

// FrameSet stands in for the sprite sheet: it returns the frames for a
// (facing, action) pair. Frame 0 is the standing pose.
func FrameSet(facing client.Direction, action string) []color.RGBA {
	base, ok := facingBase[facing]
	if !ok {
		base = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	frames := make([]color.RGBA, framesPerSet)
	for i := range frames {
		if action != client.ActionWalk {
			frames[i] = base
			continue
		}
		shade := uint8(i * 0x18)
		frames[i] = color.RGBA{R: sat(base.R, shade), G: sat(base.G, shade), B: sat(base.B, shade), A: base.A}
	}
	return frames
}

func sat(v, add uint8) uint8 {
	if int(v)+int(add) > 0xff {
		return 0xff
	}
	return v + add
}
