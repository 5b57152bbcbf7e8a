package entity

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargather/common"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/prefabs"
)

// NewStars creates the row of stars and adds each to group.
func NewStars(w *ecs.World, spec prefabs.StarSpec, rng *rand.Rand, img *ebiten.Image, group *ecs.Group) error {
	for i := range spec.Count {
		bounce := common.FloatBetween(rng, spec.BounceMin, spec.BounceMax)

		b := newBuilder(w, "star")
		with(b, component.CollectibleComponent, &component.Collectible{Index: i, BounceY: bounce, Points: spec.Points})
		with(b, component.TransformComponent, &component.Transform{X: StarX(spec, i), Y: spec.StartY, ScaleX: 1, ScaleY: 1})
		with(b, component.VelocityComponent, &component.Velocity{})
		with(b, component.SpriteComponent, centeredSprite(img))
		with(b, component.RenderLayerComponent, &component.RenderLayer{Index: spec.RenderLayer.Index})
		with(b, component.PhysicsBodyComponent, &component.PhysicsBody{
			Kind:   component.BodyStar,
			Width:  spec.Collider.Width,
			Height: spec.Collider.Height,
			Radius: spec.Collider.Radius,
			Bounce: bounce,
		})
		e, err := b.build()
		if err != nil {
			return err
		}
		group.Add(e)
	}
	return nil
}

// StarX is the column of star i.
func StarX(spec prefabs.StarSpec, i int) float64 {
	return spec.StartX + float64(i)*spec.StepX
}

// RespawnStar puts a star back at the top of its column with a fresh bounce.
// The caller re-enables it and rebuilds its body.
func RespawnStar(w *ecs.World, e ecs.Entity, spec prefabs.StarSpec, rng *rand.Rand) {
	c, ok := ecs.Get(w, e, component.CollectibleComponent.Kind())
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = StarX(spec, c.Index)
		t.Y = 0
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = 0, 0
	}
	c.BounceY = common.FloatBetween(rng, spec.BounceMin, spec.BounceMax)
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Bounce = c.BounceY
	}
}
