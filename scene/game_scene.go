// Package scene wires the star-collecting arena: entities, collision rules
// and the session state machine.
package scene

import (
	"errors"
	"image/color"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/ecs/entity"
	"github.com/milk9111/stargather/ecs/system"
	"github.com/milk9111/stargather/levels"
	"github.com/milk9111/stargather/prefabs"
)

// Event types pushed onto the world queue.
const (
	EventStarCollected = "star_collected"
	EventBombsSpawned  = "bombs_spawned"
	EventGameOver      = "game_over"
)

type StarCollected struct {
	Score     int
	Remaining int
}

type BombsSpawned struct {
	Count int
	Total int
}

type GameOver struct {
	Score int
	Stars int
	Bombs int
}

var (
	ErrNoSpecs = errors.New("scene: prefab specs are required")
	ErrNoLevel = errors.New("scene: level is required")
)

type Options struct {
	Specs  *prefabs.GameSpecs
	Level  *levels.Level
	Images map[string]*ebiten.Image
	Sounds map[string]component.Sound
	Rand   *rand.Rand
	Logger *log.Logger
	// Input samples devices into component.Input. Defaults to the keyboard
	// and gamepad system.
	Input ecs.System
	Debug bool
}

type GameScene struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	spawner   *system.BombSpawner
	stars     *ecs.Group

	specs  *prefabs.GameSpecs
	rng    *rand.Rand
	logger *log.Logger

	player    ecs.Entity
	session   ecs.Entity
	label     ecs.Entity
	collected int
}

func NewGameScene(opts Options) (*GameScene, error) {
	if opts.Specs == nil {
		return nil, ErrNoSpecs
	}
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Input == nil {
		opts.Input = system.NewInputSystem()
	}

	specs := opts.Specs
	s := &GameScene{
		world:  ecs.NewWorld(),
		stars:  ecs.NewGroup(),
		specs:  specs,
		rng:    opts.Rand,
		logger: opts.Logger,
		render: system.NewRenderSystem(),
	}
	s.render.Debug = opts.Debug

	rules := system.NewCollisionRules()
	rules.Collider(component.BodyPlayer, component.BodyPlatform, nil)
	rules.Collider(component.BodyStar, component.BodyPlatform, nil)
	rules.Collider(component.BodyBomb, component.BodyPlatform, nil)
	rules.Collider(component.BodyPlayer, component.BodyBomb, s.hitBomb)
	rules.Overlap(component.BodyPlayer, component.BodyStar, s.collectStar)

	s.physics = system.NewPhysicsSystem(rules, specs.Scene.GravityY)
	s.physics.Pause()
	s.render.Physics = s.physics

	s.spawner = system.NewBombSpawner(specs.Bombs, s.rng, s.logger.WithPrefix("bombs"), opts.Images[specs.Bombs.Image])

	if err := s.build(opts); err != nil {
		return nil, err
	}

	s.scheduler = ecs.NewScheduler(
		opts.Input,
		system.NewPlayerControllerSystem(),
		s.physics,
		system.NewAnimationSystem(),
		system.NewAudioSystem(),
	)

	s.logger.Debug("scene built", "name", specs.Scene.Name, "stars", s.stars.Len(), "platforms", len(opts.Level.Platforms))
	return s, nil
}

func (s *GameScene) build(opts Options) error {
	w, specs, lvl := s.world, opts.Specs, opts.Level
	layer := specs.Scene.RenderLayer.Index

	if _, err := entity.NewLevelBounds(w, lvl); err != nil {
		return err
	}
	if _, err := entity.NewBackground(w, specs.Scene.Background, layer, opts.Images[specs.Scene.Background.Image]); err != nil {
		return err
	}
	if _, err := entity.NewPlatforms(w, lvl, layer, opts.Images[specs.Scene.PlatformImage]); err != nil {
		return err
	}

	player, err := entity.NewPlayer(w, specs.Player, lvl.PlayerSpawn, opts.Images[specs.Player.Image])
	if err != nil {
		return err
	}
	s.player = player

	if err := entity.NewStars(w, specs.Stars, s.rng, opts.Images[specs.Stars.Image], s.stars); err != nil {
		return err
	}

	label, err := entity.NewScoreLabel(w, specs.Scene.ScoreLabel)
	if err != nil {
		return err
	}
	s.label = label

	session, err := entity.NewSession(w, specs.Scene.Audio, opts.Sounds)
	if err != nil {
		return err
	}
	s.session = session
	return nil
}

// Start leaves the start screen. It is a no-op in any other state.
func (s *GameScene) Start() {
	session := s.sessionState()
	if session == nil || session.State != component.SessionNotStarted {
		return
	}
	session.State = component.SessionPlaying
	s.physics.Resume()
	s.logger.Info("game started")
}

func (s *GameScene) Update() error {
	if session := s.sessionState(); session != nil {
		session.Frames++
	}
	s.scheduler.Update(s.world)
	return nil
}

func (s *GameScene) Draw(screen *ebiten.Image) {
	s.render.Draw(s.world, screen)
}

// Events drains the events pushed since the last call.
func (s *GameScene) Events() []ecs.Event {
	return s.world.Events().Drain()
}

func (s *GameScene) collectStar(w *ecs.World, player, star ecs.Entity) {
	if s.sessionState().GameOver() || !s.stars.IsActive(star) {
		return
	}

	s.stars.Disable(w, star)
	s.collected++

	points := 10
	if c, ok := ecs.Get(w, star, component.CollectibleComponent.Kind()); ok && c.Points > 0 {
		points = c.Points
	}
	score := s.scoreLabel().Add(points)
	s.trigger("collect")

	remaining := s.stars.CountActive()
	w.Events().Push(ecs.Event{Type: EventStarCollected, Data: StarCollected{Score: score, Remaining: remaining}})
	s.logger.Debug("star collected", "score", score, "remaining", remaining)

	if remaining > 0 {
		return
	}

	s.stars.Each(func(_ int, e ecs.Entity) {
		entity.RespawnStar(w, e, s.specs.Stars, s.rng)
		s.stars.Enable(w, e)
		s.physics.Reset(w, e)
	})

	playerX := 0.0
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		playerX = t.X
	}
	before := s.spawner.Group().Len()
	s.spawner.Spawn(w, playerX)
	w.Events().Push(ecs.Event{Type: EventBombsSpawned, Data: BombsSpawned{
		Count: s.spawner.Group().Len() - before,
		Total: s.spawner.Group().Len(),
	}})
}

func (s *GameScene) hitBomb(w *ecs.World, player, _ ecs.Entity) {
	session := s.sessionState()
	if session == nil || session.GameOver() {
		return
	}

	s.physics.Pause()
	if sprite, ok := ecs.Get(w, player, component.SpriteComponent.Kind()); ok {
		sprite.Tint = s.specs.Scene.GameOverTint.Or(color.NRGBA{R: 0xff, A: 0xff})
	}
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		anim.Play("turn", false)
	}
	session.State = component.SessionGameOver
	s.trigger("gameover")

	over := GameOver{Score: s.Score(), Stars: s.collected, Bombs: s.BombCount()}
	w.Events().Push(ecs.Event{Type: EventGameOver, Data: over})
	s.logger.Info("game over", "score", over.Score, "stars", over.Stars, "bombs", over.Bombs)
}

func (s *GameScene) trigger(cue string) {
	a, ok := ecs.Get(s.world, s.session, component.AudioComponent.Kind())
	if !ok || !a.Trigger(cue) {
		s.logger.Debug("no sound for cue", "cue", cue)
	}
}

func (s *GameScene) sessionState() *component.Session {
	session, _ := ecs.Get(s.world, s.session, component.SessionComponent.Kind())
	return session
}

func (s *GameScene) scoreLabel() *component.ScoreLabel {
	label, ok := ecs.Get(s.world, s.label, component.ScoreLabelComponent.Kind())
	if !ok {
		return &component.ScoreLabel{}
	}
	return label
}

func (s *GameScene) State() component.SessionState {
	if session := s.sessionState(); session != nil {
		return session.State
	}
	return component.SessionNotStarted
}

func (s *GameScene) Score() int {
	return s.scoreLabel().Score
}

func (s *GameScene) ActiveStars() int {
	return s.stars.CountActive()
}

func (s *GameScene) BombCount() int {
	return s.spawner.Group().Len()
}

// StarsCollected counts every star picked up this session.
func (s *GameScene) StarsCollected() int {
	return s.collected
}

func (s *GameScene) World() *ecs.World {
	return s.world
}

func (s *GameScene) Player() ecs.Entity {
	return s.player
}

func (s *GameScene) Physics() *system.PhysicsSystem {
	return s.physics
}
