package system

import (
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

// PlayerControllerSystem turns Input into player velocity and animation.
// Left wins over right when both are held.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || !currentSession(w).Playing() {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.VelocityComponent.Kind(),
	)
	for _, e := range entities {
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())

		switch {
		case input.Left:
			vel.X = -player.MoveSpeed
			anim.Play("left", true)
		case input.Right:
			vel.X = player.MoveSpeed
			anim.Play("right", true)
		default:
			vel.X = 0
			anim.Play("turn", true)
		}

		if input.Up {
			if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok && pc.Grounded {
				vel.Y = -player.JumpSpeed
			}
		}
	}
}

// currentSession returns the session singleton, or nil when the world has none.
func currentSession(w *ecs.World) *component.Session {
	e, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return nil
	}
	s, _ := ecs.Get(w, e, component.SessionComponent.Kind())
	return s
}
