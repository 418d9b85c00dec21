package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

The snake waits on the centre of the board until the first arrow key.

Controls:
  ↑ ↓ ← →    - Steer (also WASD and HJKL)
  R          - Restart at any time
  ?          - Toggle full help
  Ctrl+S     - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C   - Quit

Examples:
  snake play
  snake play --tick 150ms
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.Seed = cfg.Game.Seed

	if err := tui.Run(cfg.Session(), rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
