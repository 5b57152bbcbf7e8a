package system

import (
	"github.com/milk9111/stargather/common"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || len(def.Frames) == 0 {
			return
		}

		if anim.Playing && def.FPS > 0 {
			ticksPerFrame := int(common.TPS / def.FPS)
			if ticksPerFrame < 1 {
				ticksPerFrame = 1
			}

			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= len(def.Frames) {
					if def.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = len(def.Frames) - 1
						anim.Playing = false
					}
				}
			}
		}

		sprite.Source = anim.FrameRect(anim.SheetFrame())
		sprite.UseSource = true
		sprite.OriginX = float64(anim.FrameW) / 2
		sprite.OriginY = float64(anim.FrameH) / 2
	})
}
