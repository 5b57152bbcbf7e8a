package entity

import (
	"image/color"

	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/prefabs"
)

func NewScoreLabel(w *ecs.World, spec prefabs.ScoreLabelSpec) (ecs.Entity, error) {
	b := newBuilder(w, "score label")
	with(b, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y})
	with(b, component.ScoreLabelComponent, &component.ScoreLabel{
		Prefix:   spec.Prefix,
		FontSize: spec.FontSize,
		Color:    spec.Color.Or(color.Black),
	})
	return b.build()
}
