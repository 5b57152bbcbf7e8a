package system

import (
	"math"
	"testing"

	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

func addBody(t *testing.T, w *ecs.World, x, y float64, body component.PhysicsBody) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Static {
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func position(w *ecs.World, e ecs.Entity) (float64, float64) {
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	return tr.X, tr.Y
}

func step(w *ecs.World, ps *PhysicsSystem, n int) {
	for range n {
		ps.Update(w)
	}
}

func TestPhysicsPlayerLandsOnPlatform(t *testing.T) {
	rules := NewCollisionRules()
	rules.Collider(component.BodyPlayer, component.BodyPlatform, nil)
	ps := NewPhysicsSystem(rules, 200)
	w := ecs.NewWorld()

	addBody(t, w, 400, 568, component.PhysicsBody{Kind: component.BodyPlatform, Width: 800, Height: 64, Static: true, Bounce: 1})
	player := addBody(t, w, 400, 400, component.PhysicsBody{Kind: component.BodyPlayer, Width: 32, Height: 48, Bounce: 0.2})
	if err := ecs.Add(w, player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}); err != nil {
		t.Fatal(err)
	}

	step(w, ps, 5)
	if pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); pc.Grounded {
		t.Fatal("player should not be grounded mid-air")
	}

	step(w, ps, 300)

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatal("player should be grounded after landing")
	}
	// Platform top is 568-32 = 536, so the player's center rests at 512.
	if _, y := position(w, player); math.Abs(y-512) > 1.5 {
		t.Fatalf("player y = %.2f, want ~512", y)
	}
	if vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind()); math.Abs(vel.Y) > 5 {
		t.Fatalf("player should be at rest, vy = %.2f", vel.Y)
	}
}

func TestPhysicsOverlapDispatchesWithoutResponse(t *testing.T) {
	rules := NewCollisionRules()
	type hit struct{ a, b ecs.Entity }
	var hits []hit
	rules.Overlap(component.BodyPlayer, component.BodyStar, func(_ *ecs.World, a, b ecs.Entity) {
		hits = append(hits, hit{a, b})
	})
	ps := NewPhysicsSystem(rules, 0)
	w := ecs.NewWorld()

	star := addBody(t, w, 105, 100, component.PhysicsBody{Kind: component.BodyStar, Width: 24, Height: 22})
	player := addBody(t, w, 100, 100, component.PhysicsBody{Kind: component.BodyPlayer, Width: 32, Height: 48})

	step(w, ps, 10)

	if len(hits) != 1 {
		t.Fatalf("expected one overlap callback, got %d", len(hits))
	}
	if hits[0].a != player || hits[0].b != star {
		t.Fatalf("callback got (%v, %v), want (player %v, star %v)", hits[0].a, hits[0].b, player, star)
	}
	if x, y := position(w, star); x != 105 || y != 100 {
		t.Fatalf("star moved to (%v, %v)", x, y)
	}
	if x, y := position(w, player); x != 100 || y != 100 {
		t.Fatalf("player moved to (%v, %v)", x, y)
	}
}

func TestPhysicsColliderHandlerCanPause(t *testing.T) {
	rules := NewCollisionRules()
	calls := 0
	var ps *PhysicsSystem
	rules.Collider(component.BodyPlayer, component.BodyBomb, func(_ *ecs.World, a, b ecs.Entity) {
		calls++
		ps.Pause()
	})
	ps = NewPhysicsSystem(rules, 0)
	w := ecs.NewWorld()

	addBody(t, w, 100, 100, component.PhysicsBody{Kind: component.BodyPlayer, Width: 32, Height: 48})
	bomb := addBody(t, w, 100, 60, component.PhysicsBody{Kind: component.BodyBomb, Radius: 7, Bounce: 1})
	vel, _ := ecs.Get(w, bomb, component.VelocityComponent.Kind())
	vel.Y = 200

	for i := 0; i < 60 && calls == 0; i++ {
		ps.Update(w)
	}
	if calls != 1 {
		t.Fatalf("expected the bomb to hit the player once, got %d", calls)
	}
	if !ps.Paused() {
		t.Fatal("handler should have paused the simulation")
	}

	_, y := position(w, bomb)
	step(w, ps, 30)
	if _, after := position(w, bomb); after != y {
		t.Fatalf("paused bomb moved from %v to %v", y, after)
	}
	if calls != 1 {
		t.Fatalf("no callbacks expected while paused, got %d", calls)
	}
}

func TestPhysicsPausedDoesNotMove(t *testing.T) {
	ps := NewPhysicsSystem(nil, 200)
	w := ecs.NewWorld()
	e := addBody(t, w, 100, 100, component.PhysicsBody{Kind: component.BodyStar, Width: 24, Height: 22})

	ps.Pause()
	step(w, ps, 20)
	if _, y := position(w, e); y != 100 {
		t.Fatalf("paused body moved to y=%v", y)
	}

	ps.Resume()
	step(w, ps, 5)
	if _, y := position(w, e); y <= 100 {
		t.Fatalf("resumed body should fall, y=%v", y)
	}
}

func TestPhysicsUnregisteredPairsPassThrough(t *testing.T) {
	rules := NewCollisionRules()
	rules.Collider(component.BodyBomb, component.BodyPlatform, nil)
	ps := NewPhysicsSystem(rules, 0)
	w := ecs.NewWorld()

	a := addBody(t, w, 200, 200, component.PhysicsBody{Kind: component.BodyBomb, Radius: 7, Bounce: 1})
	b := addBody(t, w, 203, 200, component.PhysicsBody{Kind: component.BodyBomb, Radius: 7, Bounce: 1})

	step(w, ps, 30)
	if x, _ := position(w, a); x != 200 {
		t.Fatalf("bomb a pushed to x=%v", x)
	}
	if x, _ := position(w, b); x != 203 {
		t.Fatalf("bomb b pushed to x=%v", x)
	}
}

func TestPhysicsWorldBoundsAreOptIn(t *testing.T) {
	ps := NewPhysicsSystem(NewCollisionRules(), 200)
	w := ecs.NewWorld()

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 800, Height: 600}); err != nil {
		t.Fatal(err)
	}

	bomb := addBody(t, w, 300, 560, component.PhysicsBody{Kind: component.BodyBomb, Radius: 7, Bounce: 1, CollideWorldBounds: true})
	star := addBody(t, w, 500, 560, component.PhysicsBody{Kind: component.BodyStar, Width: 24, Height: 22})

	for range 240 {
		ps.Update(w)
		if _, y := position(w, bomb); y > 600 {
			t.Fatalf("bomb left the arena, y=%v", y)
		}
	}
	if _, y := position(w, star); y <= 600 {
		t.Fatalf("star should fall through the floor, y=%v", y)
	}
}

func TestPhysicsDisabledBodiesLeaveTheSpace(t *testing.T) {
	rules := NewCollisionRules()
	calls := 0
	rules.Overlap(component.BodyPlayer, component.BodyStar, func(*ecs.World, ecs.Entity, ecs.Entity) { calls++ })
	ps := NewPhysicsSystem(rules, 0)
	w := ecs.NewWorld()

	group := ecs.NewGroup()
	star := addBody(t, w, 304, 100, component.PhysicsBody{Kind: component.BodyStar, Width: 24, Height: 22})
	group.Add(star)
	addBody(t, w, 300, 100, component.PhysicsBody{Kind: component.BodyPlayer, Width: 32, Height: 48})

	group.Disable(w, star)
	step(w, ps, 3)
	if calls != 0 {
		t.Fatalf("disabled star should not be touched, calls=%d", calls)
	}
	body, _ := ecs.Get(w, star, component.PhysicsBodyComponent.Kind())
	if body.Body != nil {
		t.Fatal("disabled star should have no body")
	}

	group.Enable(w, star)
	step(w, ps, 1)
	if body.Body == nil {
		t.Fatal("re-enabled star should get a body back")
	}
	if calls != 1 {
		t.Fatalf("re-enabled star should overlap the player, calls=%d", calls)
	}
}

func TestPhysicsResetRebuildsFromTransform(t *testing.T) {
	ps := NewPhysicsSystem(nil, 0)
	w := ecs.NewWorld()
	e := addBody(t, w, 100, 100, component.PhysicsBody{Kind: component.BodyStar, Width: 24, Height: 22})
	step(w, ps, 1)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X, tr.Y = 250, 0
	ps.Reset(w, e)
	step(w, ps, 2)

	if x, y := position(w, e); x != 250 || y != 0 {
		t.Fatalf("body should restart at (250, 0), got (%v, %v)", x, y)
	}
}
