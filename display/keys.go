package display

import "github.com/hajimehoshi/ebiten/v2"

// keyByName maps configuration key names to ebiten keys.
var keyByName = map[string]ebiten.Key{
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"W":          ebiten.KeyW,
	"A":          ebiten.KeyA,
	"S":          ebiten.KeyS,
	"D":          ebiten.KeyD,
	"I":          ebiten.KeyI,
	"J":          ebiten.KeyJ,
	"K":          ebiten.KeyK,
	"L":          ebiten.KeyL,
}

// LookupKey resolves a configured key name.
func LookupKey(name string) (ebiten.Key, bool) {
	k, ok := keyByName[name]
	return k, ok
}
