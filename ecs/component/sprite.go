package component

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	// Tint multiplies the sprite colour when set.
	Tint color.Color
}

var SpriteComponent = NewComponent[Sprite]()
