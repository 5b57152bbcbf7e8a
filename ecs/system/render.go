package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/stargather/assets"
	"github.com/milk9111/stargather/common"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

// RenderSystem draws sprites by layer, then the HUD.
type RenderSystem struct {
	Debug bool
	// Physics, when set, has its collision shapes outlined in debug mode.
	Physics *PhysicsSystem

	faces map[float64]text.Face
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{faces: make(map[float64]text.Face)}
}

func (r *RenderSystem) face(size float64) text.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := assets.Face(size)
	r.faces[size] = f
	return f
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := renderLayer(w, entities[i]), renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Image == nil {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)
		if s.Tint != nil {
			op.ColorScale.ScaleWithColor(s.Tint)
		}

		screen.DrawImage(img, op)
	}

	r.drawHUD(w, screen)
	if r.Debug {
		r.drawDebug(w, screen)
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.ScoreLabelComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, label *component.ScoreLabel, t *component.Transform) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(t.X, t.Y)
		clr := label.Color
		if clr == nil {
			clr = color.Black
		}
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, label.Text(), r.face(label.FontSize), op)
	})

	session := currentSession(w)
	if !session.GameOver() {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{A: 96}, false)
	r.drawCentered(screen, "GAME OVER", 48, common.BaseHeight/2-30)
	r.drawCentered(screen, "press R to play again", 20, common.BaseHeight/2+20)
}

func (r *RenderSystem) drawCentered(screen *ebiten.Image, msg string, size, y float64) {
	face := r.face(size)
	width, _ := text.Measure(msg, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((common.BaseWidth-width)/2, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, face, op)
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	bombs := len(w.Query(component.ObstacleComponent.Kind()))
	state := "none"
	if s := currentSession(w); s != nil {
		state = s.State.String()
	}
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f  bombs: %d  state: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), bombs, state)
	ebitenutil.DebugPrintAt(screen, msg, 4, common.BaseHeight-18)

	if r.Physics != nil {
		DrawPhysicsDebug(r.Physics.Space(), screen)
	}
}
