package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.png
var assetsFS embed.FS

// ImageFiles maps the image keys prefabs refer to onto embedded files.
var ImageFiles = map[string]string{
	"sky":    "sky.png",
	"ground": "platform.png",
	"star":   "star.png",
	"bomb":   "bomb.png",
	"dude":   "dude.png",
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// DecodeImage decodes an embedded image without uploading it to the GPU.
func DecodeImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadImages loads every image in ImageFiles keyed by its prefab key.
func LoadImages() (map[string]*ebiten.Image, error) {
	out := make(map[string]*ebiten.Image, len(ImageFiles))
	for key, file := range ImageFiles {
		img, err := LoadImage(file)
		if err != nil {
			return nil, fmt.Errorf("assets: image %q: %w", key, err)
		}
		out[key] = img
	}
	return out, nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadSound returns a player for the named cue. An embedded WAV file wins;
// otherwise the cue is synthesized.
func LoadSound(ctx *audio.Context, name, file string) (*audio.Player, error) {
	if ctx == nil {
		return nil, errors.New("assets: nil audio context")
	}

	if file != "" {
		b, err := LoadFile(file)
		switch {
		case err == nil && strings.HasSuffix(strings.ToLower(file), ".wav"):
			stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
			if err != nil {
				return nil, fmt.Errorf("decode wav %q: %w", file, err)
			}
			return ctx.NewPlayer(stream)
		case err == nil:
			// Already-decoded PCM in Ebiten's native format.
			return ctx.NewPlayerFromBytes(b), nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("assets: load %s: %w", file, err)
		}
	}

	pcm, err := SynthesizeCue(name, ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	return ctx.NewPlayerFromBytes(pcm), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
