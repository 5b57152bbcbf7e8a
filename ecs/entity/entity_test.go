package entity

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/levels"
	"github.com/milk9111/stargather/prefabs"
)

func loadSpecs(t *testing.T) *prefabs.GameSpecs {
	t.Helper()
	specs, err := prefabs.LoadGameSpecs()
	if err != nil {
		t.Fatalf("LoadGameSpecs: %v", err)
	}
	return specs
}

func TestNewStarsRow(t *testing.T) {
	specs := loadSpecs(t)
	w := ecs.NewWorld()
	group := ecs.NewGroup()

	if err := NewStars(w, specs.Stars, rand.New(rand.NewPCG(1, 2)), nil, group); err != nil {
		t.Fatalf("NewStars: %v", err)
	}
	if group.Len() != 12 || group.CountActive() != 12 {
		t.Fatalf("expected 12 active stars, got %d/%d", group.CountActive(), group.Len())
	}

	group.Each(func(i int, e ecs.Entity) {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if want := 12 + 70*float64(i); tr.X != want || tr.Y != 0 {
			t.Errorf("star %d at (%v, %v), want (%v, 0)", i, tr.X, tr.Y, want)
		}
		c, _ := ecs.Get(w, e, component.CollectibleComponent.Kind())
		if c.BounceY < 0.4 || c.BounceY >= 0.8 {
			t.Errorf("star %d bounce %v outside [0.4, 0.8)", i, c.BounceY)
		}
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if body.Kind != component.BodyStar || body.Bounce != c.BounceY {
			t.Errorf("star %d body %+v", i, *body)
		}
	})
}

func TestRespawnStar(t *testing.T) {
	specs := loadSpecs(t)
	w := ecs.NewWorld()
	group := ecs.NewGroup()
	rng := rand.New(rand.NewPCG(9, 9))
	if err := NewStars(w, specs.Stars, rng, nil, group); err != nil {
		t.Fatal(err)
	}

	e := group.At(3)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X, tr.Y = 1, 500
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	vel.Y = 90

	RespawnStar(w, e, specs.Stars, rng)

	if tr.X != 222 || tr.Y != 0 {
		t.Fatalf("respawned at (%v, %v), want (222, 0)", tr.X, tr.Y)
	}
	if vel.X != 0 || vel.Y != 0 {
		t.Fatalf("velocity not cleared: %+v", *vel)
	}
	c, _ := ecs.Get(w, e, component.CollectibleComponent.Kind())
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if c.BounceY < 0.4 || c.BounceY >= 0.8 || body.Bounce != c.BounceY {
		t.Fatalf("bounce %v / body %v", c.BounceY, body.Bounce)
	}
}

func TestNewPlayer(t *testing.T) {
	specs := loadSpecs(t)
	w := ecs.NewWorld()

	e, err := NewPlayer(w, specs.Player, levels.Point{X: 100, Y: 450}, nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 100 || tr.Y != 450 {
		t.Fatalf("player at (%v, %v)", tr.X, tr.Y)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Kind != component.BodyPlayer || body.Bounce != 0.2 || !body.CollideWorldBounds {
		t.Fatalf("player body %+v", *body)
	}
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	if anim.Current != "turn" || anim.SheetFrame() != 4 {
		t.Fatalf("player should face the camera, got %s frame %d", anim.Current, anim.SheetFrame())
	}
	if got := anim.Defs["right"].Frames; len(got) != 4 || got[0] != 5 || got[3] != 8 {
		t.Fatalf("right frames = %v", got)
	}
	for _, has := range []bool{
		ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		ecs.Has(w, e, component.InputComponent.Kind()),
		ecs.Has(w, e, component.PlayerCollisionComponent.Kind()),
		ecs.Has(w, e, component.VelocityComponent.Kind()),
	} {
		if !has {
			t.Fatal("player is missing a component")
		}
	}
}

func TestNewPlatforms(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("arena.json")
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()

	platforms, err := NewPlatforms(w, lvl, 0, nil)
	if err != nil {
		t.Fatalf("NewPlatforms: %v", err)
	}
	if len(platforms) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(platforms))
	}
	ground, _ := ecs.Get(w, platforms[0], component.PhysicsBodyComponent.Kind())
	if ground.Width != 800 || ground.Height != 64 || !ground.Static {
		t.Fatalf("ground body %+v", *ground)
	}
	ledge, _ := ecs.Get(w, platforms[1], component.TransformComponent.Kind())
	if ledge.X != 600 || ledge.Y != 400 || ledge.ScaleX != 1 {
		t.Fatalf("ledge transform %+v", *ledge)
	}
}

func TestNewSessionAudio(t *testing.T) {
	w := ecs.NewWorld()
	clips := []prefabs.AudioSpec{{Name: "collect", Volume: 0.6}, {Name: "gameover"}}

	e, err := NewSession(w, clips, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s, _ := ecs.Get(w, e, component.SessionComponent.Kind())
	if s.State != component.SessionNotStarted {
		t.Fatalf("session starts in %v", s.State)
	}
	a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	if len(a.Names) != 2 || a.Volume[1] != 1 || a.Players[0] != nil {
		t.Fatalf("audio %+v", *a)
	}
	if !a.Trigger("gameover") {
		t.Fatal("gameover cue should be registered")
	}
}
