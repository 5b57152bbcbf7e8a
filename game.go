package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stargather/assets"
	"github.com/milk9111/stargather/common"
	"github.com/milk9111/stargather/ecs/component"
	"github.com/milk9111/stargather/levels"
	"github.com/milk9111/stargather/prefabs"
	"github.com/milk9111/stargather/scene"
	"github.com/milk9111/stargather/storage"
	"github.com/milk9111/stargather/ui"
)

const sampleRate = 44100

type GameConfig struct {
	// Seed drives every scene's RNG. Zero picks one at random.
	Seed       uint64
	Debug      bool
	Background string
	DBPath     string
	Logger     *log.Logger
}

// Game owns everything that outlives a single round: assets, the score store,
// the background dropdown and the menus. Each round is a fresh GameScene.
type Game struct {
	cfg    GameConfig
	logger *log.Logger
	rng    *rand.Rand

	specs  *prefabs.GameSpecs
	level  *levels.Level
	images map[string]*ebiten.Image
	audio  *audio.Context
	sounds map[string]component.Sound

	store   *storage.Store
	watcher *prefabs.Watcher
	reload  bool

	scene     *scene.GameScene
	sceneSeed uint64
	recorded  bool
	paused    bool
	highScore int

	dropdown   *ui.Dropdown
	background string
	startMenu  *ebitenui.UI
	pauseMenu  *ebitenui.UI
}

func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Game{
		cfg:    cfg,
		logger: cfg.Logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sounds: make(map[string]component.Sound),
	}
	g.logger.Debug("seeded", "seed", seed)

	specs, err := prefabs.LoadGameSpecs()
	if err != nil {
		return nil, err
	}
	g.specs = specs

	g.level, err = levels.LoadLevelFromFS(specs.Scene.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", specs.Scene.Level, err)
	}

	g.images, err = assets.LoadImages()
	if err != nil {
		return nil, err
	}

	g.audio = audio.NewContext(sampleRate)
	g.loadSounds()

	if err := g.initDropdown(); err != nil {
		return nil, err
	}

	g.openStore()
	if cfg.Debug {
		g.watchPrefabs()
	}

	g.startMenu = ui.NewStartMenu(g.highScore, g.start)
	g.pauseMenu = ui.NewPauseMenu(g.resume, g.restart)

	if err := g.newScene(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadSounds() {
	for _, clip := range g.specs.Scene.Audio {
		if _, ok := g.sounds[clip.Name]; ok {
			continue
		}
		p, err := assets.LoadSound(g.audio, clip.Name, clip.File)
		if err != nil {
			g.logger.Warn("sound unavailable", "cue", clip.Name, "err", err)
			continue
		}
		g.sounds[clip.Name] = p
	}
}

func (g *Game) initDropdown() error {
	options := g.specs.Scene.Backgrounds
	if len(options) == 0 {
		options = []string{g.specs.Scene.Background.Image}
	}
	def := g.cfg.Background
	if def == "" {
		def = g.specs.Scene.Background.Image
	}

	pos := g.specs.Scene.Dropdown
	d, err := ui.NewDropdown(pos.X, pos.Y, options, def)
	if errors.Is(err, ui.ErrUnknownOption) && g.cfg.Background == "" {
		d, err = ui.NewDropdown(pos.X, pos.Y, options, "")
	}
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	d.OnChange(func(choice string) {
		g.background = choice
		g.logger.Info("background selected", "background", choice)
	})
	g.dropdown = d
	g.background = d.Selected()
	return nil
}

func (g *Game) openStore() {
	store, err := storage.Open(g.cfg.DBPath)
	if err != nil {
		g.logger.Warn("scores disabled", "err", err)
		return
	}
	g.store = store

	best, err := store.HighScore()
	if err != nil {
		g.logger.Warn("read high score", "err", err)
		return
	}
	g.highScore = best
}

func (g *Game) watchPrefabs() {
	if _, err := os.Stat(prefabs.Dir); err != nil {
		g.logger.Debug("prefab hot reload off", "dir", prefabs.Dir, "err", err)
		return
	}
	w, err := prefabs.NewWatcher(prefabs.Dir)
	if err != nil {
		g.logger.Warn("prefab watcher", "err", err)
		return
	}
	g.watcher = w
	g.logger.Debug("watching prefabs", "dir", prefabs.Dir)
}

func (g *Game) newScene() error {
	g.sceneSeed = g.rng.Uint64()
	s, err := scene.NewGameScene(scene.Options{
		Specs:  g.specs,
		Level:  g.level,
		Images: g.images,
		Sounds: g.sounds,
		Rand:   rand.New(rand.NewPCG(g.sceneSeed, g.sceneSeed)),
		Logger: g.logger,
		Debug:  g.cfg.Debug,
	})
	if err != nil {
		return err
	}
	g.scene = s
	g.recorded = false
	g.paused = false
	return nil
}

func (g *Game) start() {
	g.scene.Start()
}

func (g *Game) resume() {
	g.paused = false
}

// restart replaces the round, applying any prefab edits picked up since the
// last one, and starts it straight away.
func (g *Game) restart() {
	if g.reload {
		g.reload = false
		specs, err := prefabs.LoadGameSpecs()
		if err != nil {
			g.logger.Warn("prefab reload failed, keeping previous specs", "err", err)
		} else {
			g.specs = specs
			g.loadSounds()
			g.logger.Info("prefabs reloaded")
		}
	}

	if err := g.newScene(); err != nil {
		g.logger.Error("restart", "err", err)
		return
	}
	g.scene.Start()
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload = true
			g.logger.Debug("prefab changed", "file", name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.dropdown.HandlePointerDown(x, y) {
			return nil
		}
	}

	switch g.scene.State() {
	case component.SessionNotStarted:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.start()
		}
		g.startMenu.Update()
	case component.SessionPlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.paused = !g.paused
		}
		if g.paused {
			g.pauseMenu.Update()
			return nil
		}
	case component.SessionGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.restart()
			return nil
		}
	}

	if err := g.scene.Update(); err != nil {
		return err
	}
	g.handleEvents()
	return nil
}

func (g *Game) handleEvents() {
	for _, ev := range g.scene.Events() {
		if ev.Type != scene.EventGameOver {
			continue
		}
		over, ok := ev.Data.(scene.GameOver)
		if !ok {
			continue
		}
		g.recordRun(over)
	}
}

func (g *Game) recordRun(over scene.GameOver) {
	if g.recorded {
		return
	}
	g.recorded = true

	if over.Score > g.highScore {
		g.highScore = over.Score
		g.startMenu = ui.NewStartMenu(g.highScore, g.start)
	}
	if g.store == nil {
		return
	}
	id, err := g.store.SaveRun(storage.Run{
		Score:      over.Score,
		Stars:      over.Stars,
		Bombs:      over.Bombs,
		Seed:       g.sceneSeed,
		Background: g.background,
	})
	if err != nil {
		g.logger.Warn("save run", "err", err)
		return
	}
	g.logger.Debug("run saved", "id", id, "score", over.Score)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	ui.DrawDropdown(screen, g.dropdown)

	switch {
	case g.scene.State() == component.SessionNotStarted:
		g.startMenu.Draw(screen)
	case g.paused:
		g.pauseMenu.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.store != nil {
		errs = append(errs, g.store.Close())
	}
	return errors.Join(errs...)
}
