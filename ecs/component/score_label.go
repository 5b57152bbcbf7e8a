package component

import (
	"fmt"
	"image/color"
)

// ScoreLabel is the HUD score readout and the owner of the score value.
type ScoreLabel struct {
	Score    int
	Prefix   string
	FontSize float64
	Color    color.Color
}

// Add increments the score and returns the new value.
func (l *ScoreLabel) Add(points int) int {
	l.Score += points
	return l.Score
}

func (l *ScoreLabel) Text() string {
	return fmt.Sprintf("%s%d", l.Prefix, l.Score)
}

var ScoreLabelComponent = NewComponent[ScoreLabel]()
