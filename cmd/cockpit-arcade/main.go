// cockpit-arcade is a terminal breakout game with procedural levels.
//
// Usage:
//
//	cockpit-arcade play        - Play in the current terminal
//	cockpit-arcade history     - Browse past runs and rankings
//	cockpit-arcade serve       - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set run seed for reproducible levels
//	--db <path>     - Set database path (default: ~/.cockpit-arcade/history.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   uint32
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cockpit-arcade",
	Short: "Terminal breakout with procedural levels",
	Long: `cockpit-arcade is a terminal breakout game. Every run generates its
levels from a seed, so the same seed always produces the same layouts.

Available commands:
  play     - Play in the current terminal
  history  - Browse past runs and rankings
  serve    - Start SSH server for remote play

Examples:
  cockpit-arcade play
  cockpit-arcade play --seed 12345 --difficulty hard
  cockpit-arcade history
  cockpit-arcade serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Run seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cockpit-arcade/history.db", "Path to history database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
