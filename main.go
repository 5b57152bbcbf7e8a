// stargather is a single-screen platformer: collect the stars, dodge the
// bombs that fall after every cleared round.
//
// Usage:
//
//	stargather [play]        - Play the game (default)
//	stargather scores        - Show the best recorded runs
//
// Global flags:
//
//	--db <path>     - Scores database (default: ~/.stargather/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stargather/storage"
	"github.com/spf13/cobra"
)

var flagDBPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stargather",
	Short: "Collect the stars, dodge the bombs",
	Long: `stargather is a single-screen platformer. Every star you pick up is
worth 10 points; clearing the screen brings the stars back along with
a fresh batch of bouncing bombs. Touch a bomb and the run is over.

Controls:
  arrows / A D W     move and jump
  gamepad            left stick and south button
  Esc                pause
  R                  play again after a game over`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "stargather",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
