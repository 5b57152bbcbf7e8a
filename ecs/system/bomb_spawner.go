package system

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargather/common"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/prefabs"
)

// BombSpawner drops batches of bouncing bombs on the side of the arena away
// from the player. Bombs are never removed; they accumulate in Group.
type BombSpawner struct {
	spec   prefabs.BombSpec
	rng    *rand.Rand
	logger *log.Logger
	image  *ebiten.Image
	group  *ecs.Group
}

// NewBombSpawner fills unset spec fields with the arena defaults.
func NewBombSpawner(spec prefabs.BombSpec, rng *rand.Rand, logger *log.Logger, image *ebiten.Image) *BombSpawner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &BombSpawner{
		spec:   withBombDefaults(spec),
		rng:    rng,
		logger: logger,
		image:  image,
		group:  ecs.NewGroup(),
	}
}

func withBombDefaults(spec prefabs.BombSpec) prefabs.BombSpec {
	if spec.MinCount <= 0 {
		spec.MinCount = 1
	}
	if spec.MaxCount < spec.MinCount {
		spec.MaxCount = max(10, spec.MinCount)
	}
	if spec.SplitX == 0 {
		spec.SplitX = common.BaseWidth / 2
	}
	if spec.NearRange == (prefabs.RangeSpec{}) {
		spec.NearRange = prefabs.RangeSpec{Min: 0, Max: common.BaseWidth / 2}
	}
	if spec.FarRange == (prefabs.RangeSpec{}) {
		spec.FarRange = prefabs.RangeSpec{Min: common.BaseWidth / 2, Max: common.BaseWidth}
	}
	if spec.SpawnY == 0 {
		spec.SpawnY = 16
	}
	if spec.VelocityX == (prefabs.RangeSpec{}) {
		spec.VelocityX = prefabs.RangeSpec{Min: -200, Max: 200}
	}
	if spec.VelocityY == 0 {
		spec.VelocityY = 20
	}
	if spec.Bounce == 0 {
		spec.Bounce = 1
	}
	if spec.Collider.Radius <= 0 && (spec.Collider.Width <= 0 || spec.Collider.Height <= 0) {
		spec.Collider.Radius = 7
	}
	return spec
}

func (s *BombSpawner) Spec() prefabs.BombSpec {
	return s.spec
}

// Group is the collection every spawned bomb joins.
func (s *BombSpawner) Group() *ecs.Group {
	return s.group
}

// Spawn creates a batch of bombs and returns the last one. Players left of
// the split get bombs on the far side, everyone else on the near side.
func (s *BombSpawner) Spawn(w *ecs.World, playerX float64) ecs.Entity {
	count := common.Between(s.rng, s.spec.MinCount, s.spec.MaxCount)

	xRange := s.spec.NearRange
	if playerX < s.spec.SplitX {
		xRange = s.spec.FarRange
	}

	var last ecs.Entity
	for range count {
		x := float64(common.BetweenExclusive(s.rng, xRange.Min, xRange.Max))
		vx := float64(common.Between(s.rng, s.spec.VelocityX.Min, s.spec.VelocityX.Max))
		vy := s.spec.VelocityY

		last = s.spawnOne(w, x, s.spec.SpawnY, vx, vy)
		s.logger.Debug("bomb spawned", "entity", last, "x", x, "vx", vx, "vy", vy)
	}

	s.logger.Info("bombs spawned", "count", count, "playerX", playerX, "total", s.group.Len())
	return last
}

func (s *BombSpawner) spawnOne(w *ecs.World, x, y, vx, vy float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy})
	_ = ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:               component.BodyBomb,
		Width:              s.spec.Collider.Width,
		Height:             s.spec.Collider.Height,
		Radius:             s.spec.Collider.Radius,
		Bounce:             s.spec.Bounce,
		CollideWorldBounds: s.spec.CollidesWithWorld(),
	})
	_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: s.spec.RenderLayer.Index})

	sprite := &component.Sprite{Image: s.image}
	if s.image != nil {
		b := s.image.Bounds()
		sprite.OriginX = float64(b.Dx()) / 2
		sprite.OriginY = float64(b.Dy()) / 2
	}
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)

	s.group.Add(e)
	return e
}
