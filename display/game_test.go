package display

import (
	"testing"

	"puppetclient/client"
)

func TestFrameSet(t *testing.T) {
	walk := FrameSet(client.DirLeft, client.ActionWalk)
	if len(walk) != framesPerSet {
		t.Fatalf("len = %d, want %d", len(walk), framesPerSet)
	}
	if walk[0] != facingBase[client.DirLeft] {
		t.Errorf("frame 0 = %v, want base colour", walk[0])
	}
	if walk[1] == walk[0] {
		t.Error("walk frames should differ")
	}
	if up := FrameSet(client.DirUp, client.ActionWalk); up[0] == walk[0] {
		t.Error("facings should have distinct frame sets")
	}
}

func TestNewGame_UnsupportedKey(t *testing.T) {
	cfg := client.DefaultConfig()
	cfg.Keys["UP"] = "F13"
	if _, err := NewGame(cfg); err == nil {
		t.Fatal("expected error for unsupported key")
	}
}

func TestGame_AppliesEffects(t *testing.T) {
	g, err := NewGame(client.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	p := client.Puppet{ID: "p1", X: 4, Y: 8, Width: 32, Height: 32, Facing: client.DirDown}
	for _, e := range []client.Effect{
		client.LoadMap{MapKey: "m1", Width: 320, Height: 320},
		client.AddVisual{Puppet: p},
		client.MoveVisual{ID: "p1", X: 10, Y: 20},
		client.SwapFrames{ID: "p1", Facing: client.DirRight, Action: client.ActionWalk},
		client.PlayAnimation{ID: "p1"},
		client.MoveCamera{Offset: client.Offset{X: 5, Y: 6}},
		client.ShowScene{},
		client.MoveVisual{ID: "ghost", X: 1, Y: 1},
	} {
		g.Apply(e)
	}

	sp, ok := g.sprites["p1"]
	if !ok {
		t.Fatal("p1 sprite missing")
	}
	if sp.x != 10 || sp.y != 20 || sp.facing != client.DirRight || !sp.playing {
		t.Errorf("sprite = %+v", sp)
	}
	if !g.visible || g.mapKey != "m1" || g.camera != (client.Offset{X: 5, Y: 6}) {
		t.Errorf("scene visible=%v map=%q camera=%+v", g.visible, g.mapKey, g.camera)
	}

	g.Apply(client.StopAnimation{ID: "p1"})
	if sp.playing || sp.frame != 0 {
		t.Errorf("stopped sprite = %+v", sp)
	}

	g.Apply(client.RemoveVisual{ID: "p1"})
	if len(g.sprites) != 0 {
		t.Errorf("sprites = %v, want none", g.sprites)
	}
}

func TestGame_KeysSorted(t *testing.T) {
	g, err := NewGame(client.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	want := []string{"ArrowDown", "ArrowLeft", "ArrowRight", "ArrowUp"}
	for i, k := range want {
		if g.keys[i] != k {
			t.Fatalf("keys = %v, want %v", g.keys, want)
		}
	}
}
