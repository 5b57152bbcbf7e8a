package assets

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faceSourceErr  error
)

// FaceSource returns the shared Go Regular font source.
func FaceSource() (*text.GoTextFaceSource, error) {
	faceSourceOnce.Do(func() {
		faceSource, faceSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if faceSourceErr != nil {
			faceSourceErr = fmt.Errorf("assets: font source: %w", faceSourceErr)
		}
	})
	return faceSource, faceSourceErr
}

// Face returns a Go Regular face of the given size, falling back to the
// fixed 7x13 bitmap face when the source cannot be parsed.
func Face(size float64) text.Face {
	src, err := FaceSource()
	if err != nil || size <= 0 {
		return BasicFace()
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// BasicFace is the small bitmap face used by menus and debug text.
func BasicFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}
