package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suoak/cockpit-tools-sub002/internal/history"
	"github.com/suoak/cockpit-tools-sub002/internal/platform/tui"
)

var flagClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past runs",
	Long: `Open the run history browser.

Shows the most recent runs with their rank among all recorded runs.
Tab toggles between recency order and rank order.

Examples:
  cockpit-arcade history
  cockpit-arcade history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runHistory(_ *cobra.Command, _ []string) {
	kv, err := history.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open history database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := history.NewStore(kv)

	if flagClear {
		fmt.Print("Delete all recorded runs? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted.")
			return
		}
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
