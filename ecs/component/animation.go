package component

import "image"

type AnimationDef struct {
	Name   string
	Frames []int // sheet frame indexes, row-major
	FPS    float64
	Loop   bool
}

// Animation plays named frame sequences from a sprite sheet laid out in
// Columns columns of FrameW x FrameH frames.
type Animation struct {
	FrameW     int
	FrameH     int
	Columns    int
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

// Play switches to the named animation. With ignoreIfPlaying set, a request
// for the animation already playing keeps its current frame.
func (a *Animation) Play(name string, ignoreIfPlaying bool) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	if ignoreIfPlaying && a.Playing && a.Current == name {
		return true
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

// SheetFrame returns the sheet frame index currently shown.
func (a *Animation) SheetFrame() int {
	def, ok := a.Defs[a.Current]
	if !ok || len(def.Frames) == 0 {
		return 0
	}
	f := a.Frame
	if f >= len(def.Frames) {
		f = len(def.Frames) - 1
	}
	return def.Frames[f]
}

// FrameRect returns the sheet rectangle of a frame index.
func (a *Animation) FrameRect(frame int) image.Rectangle {
	cols := a.Columns
	if cols <= 0 {
		cols = 1
	}
	x := (frame % cols) * a.FrameW
	y := (frame / cols) * a.FrameH
	return image.Rect(x, y, x+a.FrameW, y+a.FrameH)
}

var AnimationComponent = NewComponent[Animation]()
