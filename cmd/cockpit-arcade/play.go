package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suoak/cockpit-tools-sub002/internal/config"
	"github.com/suoak/cockpit-tools-sub002/internal/core"
	"github.com/suoak/cockpit-tools-sub002/internal/history"
	"github.com/suoak/cockpit-tools-sub002/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout",
	Long: `Start a breakout session in the current terminal.

Controls:
  A/D, Arrows - Move paddle
  Space       - Start / launch ball
  P/Esc       - Pause
  N/Enter     - Next level (after clearing)
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Fast paddle, slower balls, more drops, one starting shield
  normal - Balanced defaults
  hard   - Slower paddle, faster balls, fewer drops
  fixed  - Use the config file's values verbatim

Examples:
  cockpit-arcade play
  cockpit-arcade play --seed 12345
  cockpit-arcade play --difficulty hard
  cockpit-arcade play --config ./my-breakout.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyBreakoutPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	kv, err := history.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without persistence - game still works
		kv = nil
	}

	var backend history.KV
	if kv != nil {
		backend = kv
	}

	runErr := tui.Run(backend, rt, cfg.Tuning())

	if kv != nil {
		kv.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
