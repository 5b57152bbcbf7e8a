// Package entity turns prefab specs and level data into world entities.
package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

// builder collects the first error of a chain of component adds.
type builder struct {
	w    *ecs.World
	e    ecs.Entity
	name string
	err  error
}

func newBuilder(w *ecs.World, name string) *builder {
	return &builder{w: w, e: ecs.CreateEntity(w), name: name}
}

func with[T any](b *builder, handle component.ComponentHandle[T], value *T) *builder {
	if b.err != nil {
		return b
	}
	if err := ecs.Add(b.w, b.e, handle.Kind(), value); err != nil {
		b.err = fmt.Errorf("%s: add %T: %w", b.name, *value, err)
	}
	return b
}

func (b *builder) build() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}

// centeredSprite anchors img at its center.
func centeredSprite(img *ebiten.Image) *component.Sprite {
	s := &component.Sprite{Image: img}
	if img != nil {
		b := img.Bounds()
		s.OriginX = float64(b.Dx()) / 2
		s.OriginY = float64(b.Dy()) / 2
	}
	return s
}
