package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpecs bundles every prefab the game scene is built from.
type GameSpecs struct {
	Scene  SceneSpec
	Player PlayerSpec
	Stars  StarSpec
	Bombs  BombSpec
}

// SpecFiles lists the prefab files LoadGameSpecs reads.
var SpecFiles = []string{"scene.yaml", "player.yaml", "stars.yaml", "bombs.yaml"}

func LoadGameSpecs() (*GameSpecs, error) {
	scene, err := LoadSpec[SceneSpec]("scene.yaml")
	if err != nil {
		return nil, err
	}
	player, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	stars, err := LoadSpec[StarSpec]("stars.yaml")
	if err != nil {
		return nil, err
	}
	bombs, err := LoadSpec[BombSpec]("bombs.yaml")
	if err != nil {
		return nil, err
	}
	return &GameSpecs{Scene: scene, Player: player, Stars: stars, Bombs: bombs}, nil
}

type SceneSpec struct {
	Name          string          `yaml:"name"`
	Level         string          `yaml:"level"`
	GravityY      float64         `yaml:"gravity_y"`
	Background    ImageSpec       `yaml:"background"`
	Backgrounds   []string        `yaml:"backgrounds"`
	PlatformImage string          `yaml:"platform_image"`
	ScoreLabel    ScoreLabelSpec  `yaml:"score_label"`
	GameOverTint  *YAMLColor      `yaml:"game_over_tint"`
	Audio         []AudioSpec     `yaml:"audio"`
	Dropdown      DropdownSpec    `yaml:"dropdown"`
	RenderLayer   RenderLayerSpec `yaml:"render_layer"`
}

type ImageSpec struct {
	Image string  `yaml:"image"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

type ScoreLabelSpec struct {
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	FontSize float64    `yaml:"font_size"`
	Prefix   string     `yaml:"prefix"`
	Color    *YAMLColor `yaml:"color"`
}

type DropdownSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerSpec struct {
	Name               string          `yaml:"name"`
	Image              string          `yaml:"image"`
	MoveSpeed          float64         `yaml:"move_speed"`
	JumpSpeed          float64         `yaml:"jump_speed"`
	Bounce             float64         `yaml:"bounce"`
	CollideWorldBounds bool            `yaml:"collide_world_bounds"`
	Collider           ColliderSpec    `yaml:"collider"`
	Animation          AnimationSpec   `yaml:"animation"`
	RenderLayer        RenderLayerSpec `yaml:"render_layer"`
}

type StarSpec struct {
	Name        string          `yaml:"name"`
	Image       string          `yaml:"image"`
	Count       int             `yaml:"count"`
	StartX      float64         `yaml:"start_x"`
	StartY      float64         `yaml:"start_y"`
	StepX       float64         `yaml:"step_x"`
	BounceMin   float64         `yaml:"bounce_min"`
	BounceMax   float64         `yaml:"bounce_max"`
	Points      int             `yaml:"points"`
	Collider    ColliderSpec    `yaml:"collider"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

// BombSpec drives BombSpawner. X ranges are half-open [min, max).
type BombSpec struct {
	Name               string          `yaml:"name"`
	Image              string          `yaml:"image"`
	MinCount           int             `yaml:"min_count"`
	MaxCount           int             `yaml:"max_count"`
	SplitX             float64         `yaml:"split_x"`
	NearRange          RangeSpec       `yaml:"near_range"`
	FarRange           RangeSpec       `yaml:"far_range"`
	SpawnY             float64         `yaml:"spawn_y"`
	VelocityX          RangeSpec       `yaml:"velocity_x"`
	VelocityY          float64         `yaml:"velocity_y"`
	Bounce             float64         `yaml:"bounce"`
	CollideWorldBounds *bool           `yaml:"collide_world_bounds"`
	Collider           ColliderSpec    `yaml:"collider"`
	RenderLayer        RenderLayerSpec `yaml:"render_layer"`
}

// CollidesWithWorld defaults to true when the field is absent.
func (s BombSpec) CollidesWithWorld() bool {
	return s.CollideWorldBounds == nil || *s.CollideWorldBounds
}

type RangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

type AnimationSpec struct {
	FrameW  int                         `yaml:"frame_w"`
	FrameH  int                         `yaml:"frame_h"`
	Columns int                         `yaml:"columns"`
	Current string                      `yaml:"current"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
}

// AnimationDefSpec lists frames explicitly, or as the inclusive range
// start..end when frames is empty.
type AnimationDefSpec struct {
	Frames []int   `yaml:"frames"`
	Start  int     `yaml:"start"`
	End    int     `yaml:"end"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// FrameList expands the definition into sheet frame indexes.
func (d AnimationDefSpec) FrameList() []int {
	if len(d.Frames) > 0 {
		return append([]int(nil), d.Frames...)
	}
	if d.End < d.Start {
		return []int{d.Start}
	}
	out := make([]int, 0, d.End-d.Start+1)
	for f := d.Start; f <= d.End; f++ {
		out = append(out, f)
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed colour, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
