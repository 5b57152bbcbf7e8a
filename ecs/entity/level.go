package entity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/levels"
	"github.com/milk9111/stargather/prefabs"
)

// NewLevelBounds creates the arena bounds entity the physics walls hang off.
func NewLevelBounds(w *ecs.World, lvl *levels.Level) (ecs.Entity, error) {
	b := newBuilder(w, "level bounds")
	with(b, component.LevelBoundsComponent, &component.LevelBounds{
		Width:  float64(lvl.Width),
		Height: float64(lvl.Height),
	})
	return b.build()
}

func NewBackground(w *ecs.World, spec prefabs.ImageSpec, layer int, img *ebiten.Image) (ecs.Entity, error) {
	b := newBuilder(w, "background")
	with(b, component.BackgroundTagComponent, &component.BackgroundTag{})
	with(b, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1})
	with(b, component.SpriteComponent, centeredSprite(img))
	with(b, component.RenderLayerComponent, &component.RenderLayer{Index: layer})
	return b.build()
}

// NewPlatforms creates one static platform per level entry. Platforms draw
// just above the background.
func NewPlatforms(w *ecs.World, lvl *levels.Level, layer int, img *ebiten.Image) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(lvl.Platforms))
	for _, p := range lvl.Platforms {
		width, height := p.Size()
		sx, sy := p.ScaleX, p.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}

		b := newBuilder(w, "platform")
		with(b, component.PlatformTagComponent, &component.PlatformTag{})
		with(b, component.TransformComponent, &component.Transform{X: p.X, Y: p.Y, ScaleX: sx, ScaleY: sy})
		with(b, component.SpriteComponent, centeredSprite(img))
		with(b, component.RenderLayerComponent, &component.RenderLayer{Index: layer + 1})
		with(b, component.PhysicsBodyComponent, &component.PhysicsBody{
			Kind:   component.BodyPlatform,
			Width:  width,
			Height: height,
			Static: true,
			Bounce: 1,
		})
		e, err := b.build()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
