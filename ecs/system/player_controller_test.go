package system

import (
	"testing"

	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

func newControllerWorld(t *testing.T, state component.SessionState) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	session := ecs.CreateEntity(w)
	if err := ecs.Add(w, session, component.SessionComponent.Kind(), &component.Session{State: state}); err != nil {
		t.Fatal(err)
	}

	player := ecs.CreateEntity(w)
	anim := &component.Animation{
		FrameW: 32, FrameH: 48, Columns: 9,
		Defs: map[string]component.AnimationDef{
			"left":  {Name: "left", Frames: []int{0, 1, 2, 3}, FPS: 10, Loop: true},
			"turn":  {Name: "turn", Frames: []int{4}, FPS: 20},
			"right": {Name: "right", Frames: []int{5, 6, 7, 8}, FPS: 10, Loop: true},
		},
		Current: "turn",
	}
	for _, err := range []error{
		ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 160, JumpSpeed: 330}),
		ecs.Add(w, player, component.VelocityComponent.Kind(), &component.Velocity{}),
		ecs.Add(w, player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}),
		ecs.Add(w, player, component.AnimationComponent.Kind(), anim),
		ecs.Add(w, player, component.SpriteComponent.Kind(), &component.Sprite{}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return w, player
}

func TestPlayerControllerInput(t *testing.T) {
	cases := []struct {
		name     string
		input    component.Input
		grounded bool
		startVY  float64
		wantVX   float64
		wantVY   float64
		wantAnim string
	}{
		{"idle", component.Input{}, true, 0, 0, 0, "turn"},
		{"left", component.Input{Left: true}, true, 0, -160, 0, "left"},
		{"right", component.Input{Right: true}, true, 0, 160, 0, "right"},
		{"left wins over right", component.Input{Left: true, Right: true}, true, 0, -160, 0, "left"},
		{"jump when grounded", component.Input{Up: true}, true, 0, 0, -330, "turn"},
		{"no jump in the air", component.Input{Up: true}, false, 50, 0, 50, "turn"},
		{"run and jump", component.Input{Right: true, Up: true}, true, 0, 160, -330, "right"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, player := newControllerWorld(t, component.SessionPlaying)
			input, _ := ecs.Get(w, player, component.InputComponent.Kind())
			*input = c.input
			pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
			pc.Grounded = c.grounded
			vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
			vel.Y = c.startVY

			NewPlayerControllerSystem().Update(w)

			if vel.X != c.wantVX || vel.Y != c.wantVY {
				t.Fatalf("velocity = (%v, %v), want (%v, %v)", vel.X, vel.Y, c.wantVX, c.wantVY)
			}
			anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
			if anim.Current != c.wantAnim {
				t.Fatalf("animation = %q, want %q", anim.Current, c.wantAnim)
			}
		})
	}
}

func TestPlayerControllerIgnoresInputUnlessPlaying(t *testing.T) {
	for _, state := range []component.SessionState{component.SessionNotStarted, component.SessionGameOver} {
		t.Run(state.String(), func(t *testing.T) {
			w, player := newControllerWorld(t, state)
			input, _ := ecs.Get(w, player, component.InputComponent.Kind())
			input.Right = true
			input.Up = true
			pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
			pc.Grounded = true

			NewPlayerControllerSystem().Update(w)

			vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
			if vel.X != 0 || vel.Y != 0 {
				t.Fatalf("velocity changed to %+v", *vel)
			}
		})
	}
}

func TestPlayerControllerKeepsRunningAnimation(t *testing.T) {
	w, player := newControllerWorld(t, component.SessionPlaying)
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	input.Left = true

	controller := NewPlayerControllerSystem()
	animation := NewAnimationSystem()
	for range 12 {
		controller.Update(w)
		animation.Update(w)
	}

	anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
	if anim.Current != "left" || anim.Frame != 2 {
		t.Fatalf("after 12 ticks at 10fps expected left frame 2, got %s frame %d", anim.Current, anim.Frame)
	}
	sprite, _ := ecs.Get(w, player, component.SpriteComponent.Kind())
	if !sprite.UseSource || sprite.Source.Min.X != 2*32 || sprite.Source.Dy() != 48 {
		t.Fatalf("sprite source = %v", sprite.Source)
	}
}
