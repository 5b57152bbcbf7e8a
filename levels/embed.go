package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the static arena layout. Coordinates are entity centers.
type Level struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	PlayerSpawn Point      `json:"player_spawn"`
	Platforms   []Platform `json:"platforms"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Platform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scale_x,omitempty"`
	ScaleY float64 `json:"scale_y,omitempty"`
}

// Size returns the scaled platform extent.
func (p Platform) Size() (float64, float64) {
	sx, sy := p.ScaleX, p.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return p.Width * sx, p.Height * sy
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %s: invalid size %dx%d", name, lvl.Width, lvl.Height)
	}
	return &lvl, nil
}
