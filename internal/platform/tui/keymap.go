package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game input flags.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey updates the input frame from a key message. Terminals deliver no
// key-release events, so held movement arrives as repeated keypresses and
// the frame is cleared after every tick. Returns true on a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, in *core.Input) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		in.Exit = true
		return true
	case "a", "left", "h":
		in.Left = true
	case "d", "right", "l":
		in.Right = true
	case " ", "up", "w":
		in.Launch = true
	case "p", "esc":
		in.Pause = true
	case "r":
		in.Restart = true
	case "n", "enter":
		in.Next = true
	}
	return false
}
