package display

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"puppetclient/client"
)

var (
	backgroundColor = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	tileColors      = [2]color.RGBA{{R: 0x2a, G: 0x3a, B: 0x2a, A: 0xff}, {R: 0x30, G: 0x42, B: 0x30, A: 0xff}}
)

type sprite struct {
	x, y, w, h float64
	facing     client.Direction
	frames     []color.RGBA
	frame      float64
	playing    bool
}

// Game is the ebiten window. It is the session's renderer and its
// keyboard source.
type Game struct {
	screenWidth  int
	screenHeight int
	tileSize     float64
	animSpeed    float64

	keys     []string
	keyCodes map[string]ebiten.Key

	session *client.Session
	inbound <-chan []byte
	done    <-chan struct{}

	mapKey     string
	mapW, mapH float64
	visible    bool
	camera     client.Offset
	sprites    map[client.PuppetID]*sprite
	order      []client.PuppetID
}

// NewGame builds a window sized and keyed from cfg.
func NewGame(cfg *client.Config) (*Game, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}
	g := &Game{
		screenWidth:  cfg.Screen.Width,
		screenHeight: cfg.Screen.Height,
		tileSize:     cfg.TileSize,
		animSpeed:    cfg.AnimationSpeed,
		keyCodes:     make(map[string]ebiten.Key, len(bindings)),
		sprites:      make(map[client.PuppetID]*sprite),
	}
	for dir, name := range bindings {
		code, ok := LookupKey(name)
		if !ok {
			return nil, fmt.Errorf("key %q for %s is not supported", name, dir)
		}
		g.keyCodes[name] = code
		g.keys = append(g.keys, name)
	}
	sort.Strings(g.keys)
	return g, nil
}

// Bind attaches the session and its inbound stream. done closing marks
// the connection as lost.
func (g *Game) Bind(s *client.Session, inbound <-chan []byte, done <-chan struct{}) {
	g.session = s
	g.inbound = inbound
	g.done = done
}

// Apply mirrors one world change.
func (g *Game) Apply(e client.Effect) {
	switch e := e.(type) {
	case client.LoadMap:
		g.mapKey, g.mapW, g.mapH = e.MapKey, e.Width, e.Height
	case client.AddVisual:
		p := e.Puppet
		g.sprites[p.ID] = &sprite{
			x: p.X, y: p.Y, w: p.Width, h: p.Height,
			facing: p.Facing,
			frames: FrameSet(p.Facing, client.ActionWalk),
		}
	case client.RemoveVisual:
		delete(g.sprites, e.ID)
	case client.MoveVisual:
		if sp, ok := g.sprites[e.ID]; ok {
			sp.x, sp.y = e.X, e.Y
		}
	case client.PlayAnimation:
		if sp, ok := g.sprites[e.ID]; ok {
			sp.playing, sp.frame = true, float64(e.Frame)
		}
	case client.StopAnimation:
		if sp, ok := g.sprites[e.ID]; ok {
			sp.playing, sp.frame = false, float64(e.Frame)
		}
	case client.SwapFrames:
		if sp, ok := g.sprites[e.ID]; ok {
			sp.facing = e.Facing
			sp.frames = FrameSet(e.Facing, e.Action)
		}
	case client.MoveCamera:
		g.camera = e.Offset
	case client.ShowScene:
		g.visible = true
	}
}

// Update polls the bound keys, applies waiting server events and advances
// animations.
func (g *Game) Update() error {
	if g.session == nil {
		return nil
	}
	for _, name := range g.keys {
		if ebiten.IsKeyPressed(g.keyCodes[name]) {
			g.session.KeyDown(name)
		} else {
			g.session.KeyUp(name)
		}
	}

	g.order = g.session.Tick(g.inbound)

	for _, sp := range g.sprites {
		if !sp.playing || len(sp.frames) == 0 {
			continue
		}
		sp.frame = math.Mod(sp.frame+g.animSpeed, float64(len(sp.frames)))
	}
	return nil
}

func (g *Game) connected() bool {
	if g.done == nil {
		return false
	}
	select {
	case <-g.done:
		return false
	default:
		return true
	}
}

// Draw renders the tile grid and puppets through the camera offset.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if g.visible {
		g.drawMap(screen)
		for _, id := range g.order {
			sp, ok := g.sprites[id]
			if !ok {
				continue
			}
			clr := color.RGBA{A: 0xff}
			if n := len(sp.frames); n > 0 {
				clr = sp.frames[int(sp.frame)%n]
			}
			x := float32(sp.x + g.camera.X)
			y := float32(sp.y + g.camera.Y)
			vector.DrawFilledRect(screen, x, y, float32(sp.w), float32(sp.h), clr, false)
			vector.StrokeRect(screen, x, y, float32(sp.w), float32(sp.h), 1, color.Black, false)
		}
	}

	status := "connected"
	if !g.connected() {
		status = "disconnected"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  map:%s  puppets:%d  fps:%.0f",
		status, g.mapKey, len(g.sprites), ebiten.ActualFPS()))
}

func (g *Game) drawMap(screen *ebiten.Image) {
	if g.tileSize <= 0 {
		return
	}
	cols := int(g.mapW / g.tileSize)
	rows := int(g.mapH / g.tileSize)
	ts := float32(g.tileSize)
	for ty := 0; ty < rows; ty++ {
		y := float32(float64(ty)*g.tileSize + g.camera.Y)
		if y+ts < 0 || y > float32(g.screenHeight) {
			continue
		}
		for tx := 0; tx < cols; tx++ {
			x := float32(float64(tx)*g.tileSize + g.camera.X)
			if x+ts < 0 || x > float32(g.screenWidth) {
				continue
			}
			vector.DrawFilledRect(screen, x, y, ts, ts, tileColors[(tx+ty)%2], false)
		}
	}
}

// Layout fixes the logical screen to the configured size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}
