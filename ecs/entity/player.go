package entity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/levels"
	"github.com/milk9111/stargather/prefabs"
)

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, spawn levels.Point, sheet *ebiten.Image) (ecs.Entity, error) {
	anim := AnimationFromSpec(spec.Animation)
	anim.Play(spec.Animation.Current, false)

	b := newBuilder(w, "player")
	with(b, component.PlayerTagComponent, &component.PlayerTag{})
	with(b, component.PlayerComponent, &component.Player{MoveSpeed: spec.MoveSpeed, JumpSpeed: spec.JumpSpeed})
	with(b, component.InputComponent, &component.Input{})
	with(b, component.PlayerCollisionComponent, &component.PlayerCollision{})
	with(b, component.TransformComponent, &component.Transform{X: spawn.X, Y: spawn.Y, ScaleX: 1, ScaleY: 1})
	with(b, component.VelocityComponent, &component.Velocity{})
	with(b, component.PhysicsBodyComponent, &component.PhysicsBody{
		Kind:               component.BodyPlayer,
		Width:              spec.Collider.Width,
		Height:             spec.Collider.Height,
		Radius:             spec.Collider.Radius,
		Bounce:             spec.Bounce,
		CollideWorldBounds: spec.CollideWorldBounds,
	})
	with(b, component.AnimationComponent, anim)
	with(b, component.SpriteComponent, &component.Sprite{
		Image:     sheet,
		Source:    anim.FrameRect(anim.SheetFrame()),
		UseSource: true,
		OriginX:   float64(anim.FrameW) / 2,
		OriginY:   float64(anim.FrameH) / 2,
	})
	with(b, component.RenderLayerComponent, &component.RenderLayer{Index: spec.RenderLayer.Index})
	return b.build()
}

// AnimationFromSpec expands prefab animation definitions.
func AnimationFromSpec(spec prefabs.AnimationSpec) *component.Animation {
	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:   name,
			Frames: def.FrameList(),
			FPS:    def.FPS,
			Loop:   def.Loop,
		}
	}
	return &component.Animation{
		FrameW:  spec.FrameW,
		FrameH:  spec.FrameH,
		Columns: spec.Columns,
		Defs:    defs,
		Current: spec.Current,
	}
}
