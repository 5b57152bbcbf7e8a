package ui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/stargather/assets"
	"github.com/milk9111/stargather/common"
)

// MenuAction is a labelled button on a menu panel.
type MenuAction struct {
	Label   string
	OnClick func()
}

var (
	panelColor  = color.NRGBA{A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonHover = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// NewStartMenu is shown before the first round. A non-positive highScore
// hides the best-score line.
func NewStartMenu(highScore int, onStart func()) *ebitenui.UI {
	lines := []string{"Collect the stars, dodge the bombs"}
	if highScore > 0 {
		lines = append(lines, fmt.Sprintf("Best: %d", highScore))
	}
	return newMenu("Star Gather", lines, MenuAction{Label: "Start Game", OnClick: onStart})
}

func NewPauseMenu(onResume, onRestart func()) *ebitenui.UI {
	return newMenu("Paused", nil,
		MenuAction{Label: "Resume", OnClick: onResume},
		MenuAction{Label: "Restart", OnClick: onRestart},
	)
}

func newMenu(title string, lines []string, actions ...MenuAction) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(panelColor)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(buttonColor),
		Hover:   imageui.NewNineSliceColor(buttonHover),
		Pressed: imageui.NewNineSliceColor(buttonHover),
	}

	titleFace := assets.Face(32)
	bodyFace := assets.BasicFace()
	btnText := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &titleFace, white),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, line := range lines {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &bodyFace, white),
			widget.TextOpts.WidgetOpts(center),
		))
	}
	for _, action := range actions {
		onClick := action.OnClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(action.Label, &bodyFace, btnText),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 16, Right: 16}),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
