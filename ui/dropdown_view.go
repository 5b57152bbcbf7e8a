package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/stargather/assets"
)

var (
	dropdownFill      = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	dropdownItemFill  = color.NRGBA{R: 0x9a, G: 0x9a, B: 0x9a, A: 0xff}
	dropdownHighlight = color.NRGBA{R: 0xb8, G: 0xb8, B: 0xb8, A: 0xff}
	dropdownText      = color.Black
)

var dropdownFace text.Face

func DrawDropdown(screen *ebiten.Image, d *Dropdown) {
	if screen == nil || d == nil {
		return
	}
	if dropdownFace == nil {
		dropdownFace = assets.Face(DropdownFontSize)
	}

	fillRect(screen, d.ButtonRect(), dropdownFill)
	drawLabel(screen, d.ButtonRect(), d.Label())
	if !d.open {
		return
	}

	for i, opt := range d.options {
		r := d.ItemRect(i)
		fill := dropdownItemFill
		if i == d.selected {
			fill = dropdownHighlight
		}
		fillRect(screen, r, fill)
		drawLabel(screen, r, opt)
	}
}

func fillRect(screen *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func drawLabel(screen *ebiten.Image, r image.Rectangle, label string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.Min.X+DropdownTextInset), float64(r.Min.Y)+float64(r.Dy()-DropdownFontSize)/2)
	op.ColorScale.ScaleWithColor(dropdownText)
	text.Draw(screen, label, dropdownFace, op)
}
