package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagSeed       uint64
	flagDebug      bool
	flagBackground string
	flagFullscreen bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the game window.

Examples:
  stargather play
  stargather play --seed 42
  stargather play --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Debug overlay, debug logging and prefab hot reload")
	cmd.Flags().StringVar(&flagBackground, "background", "", "Initial background choice")
	cmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start fullscreen")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger := newLogger(flagDebug)

	game, err := NewGame(GameConfig{
		Seed:       flagSeed,
		Debug:      flagDebug,
		Background: flagBackground,
		DBPath:     flagDBPath,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowTitle("stargather")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(flagFullscreen)

	return ebiten.RunGame(game)
}
