package ui

import (
	"errors"
	"fmt"
	"image"
	"slices"
)

const (
	DropdownWidth        = 200
	DropdownButtonHeight = 40
	DropdownItemHeight   = 30
	DropdownTextInset    = 10
	DropdownFontSize     = 16
)

var (
	ErrNoOptions     = errors.New("dropdown: no options")
	ErrUnknownOption = errors.New("dropdown: unknown option")
)

// Dropdown is a button showing the selected option plus a list of options
// that opens beneath it. It holds no drawing state; see DrawDropdown.
type Dropdown struct {
	x, y     float64
	options  []string
	selected int
	open     bool
	onChange func(string)
}

func NewDropdown(x, y float64, options []string, def string) (*Dropdown, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	d := &Dropdown{x: x, y: y, options: slices.Clone(options)}
	if def != "" {
		idx := slices.Index(d.options, def)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, def)
		}
		d.selected = idx
	}
	return d, nil
}

// OnChange registers fn to run after every selection, including re-selecting
// the current option.
func (d *Dropdown) OnChange(fn func(string)) {
	d.onChange = fn
}

func (d *Dropdown) Toggle() { d.open = !d.open }
func (d *Dropdown) Close()  { d.open = false }
func (d *Dropdown) IsOpen() bool {
	return d.open
}

func (d *Dropdown) Selected() string { return d.options[d.selected] }

// Label is the text shown on the button.
func (d *Dropdown) Label() string { return d.Selected() }

func (d *Dropdown) Options() []string { return slices.Clone(d.options) }

// Select sets the selection by value and closes the list.
func (d *Dropdown) Select(option string) error {
	idx := slices.Index(d.options, option)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	d.choose(idx)
	return nil
}

func (d *Dropdown) choose(idx int) {
	d.selected = idx
	d.open = false
	if d.onChange != nil {
		d.onChange(d.options[idx])
	}
}

func (d *Dropdown) ButtonRect() image.Rectangle {
	return rect(d.x, d.y, DropdownWidth, DropdownButtonHeight)
}

func (d *Dropdown) ItemRect(i int) image.Rectangle {
	return rect(d.x, d.y+DropdownButtonHeight+float64(i*DropdownItemHeight), DropdownWidth, DropdownItemHeight)
}

// Bounds covers the button and, while open, the list.
func (d *Dropdown) Bounds() image.Rectangle {
	h := DropdownButtonHeight
	if d.open {
		h += len(d.options) * DropdownItemHeight
	}
	return rect(d.x, d.y, DropdownWidth, float64(h))
}

// HandlePointerDown routes a press at (px, py). It reports whether the
// dropdown consumed the press. A press outside an open list closes it but is
// not consumed.
func (d *Dropdown) HandlePointerDown(px, py int) bool {
	p := image.Pt(px, py)
	if p.In(d.ButtonRect()) {
		d.Toggle()
		return true
	}
	if !d.open {
		return false
	}
	for i := range d.options {
		if p.In(d.ItemRect(i)) {
			d.choose(i)
			return true
		}
	}
	d.Close()
	return false
}

func rect(x, y, w, h float64) image.Rectangle {
	return image.Rect(int(x), int(y), int(x+w), int(y+h))
}
