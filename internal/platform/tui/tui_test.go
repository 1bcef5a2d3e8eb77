package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/suoak/cockpit-tools-sub002/internal/breakout"
	"github.com/suoak/cockpit-tools-sub002/internal/core"
	"github.com/suoak/cockpit-tools-sub002/internal/history"
)

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperBindings(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key   string
		check func(core.Input) bool
	}{
		{"a", func(in core.Input) bool { return in.Left }},
		{"h", func(in core.Input) bool { return in.Left }},
		{"d", func(in core.Input) bool { return in.Right }},
		{"l", func(in core.Input) bool { return in.Right }},
		{" ", func(in core.Input) bool { return in.Launch }},
		{"w", func(in core.Input) bool { return in.Launch }},
		{"p", func(in core.Input) bool { return in.Pause }},
		{"r", func(in core.Input) bool { return in.Restart }},
		{"n", func(in core.Input) bool { return in.Next }},
	}

	for _, tc := range tests {
		var in core.Input
		if quit := km.MapKey(keyMsg(tc.key), &in); quit {
			t.Errorf("key %q reported quit", tc.key)
		}
		if !tc.check(in) {
			t.Errorf("key %q did not set its flag: %+v", tc.key, in)
		}
	}
}

func TestKeyMapperQuit(t *testing.T) {
	km := NewKeyMapper()

	var in core.Input
	if !km.MapKey(keyMsg("q"), &in) || !in.Exit {
		t.Error("q should request quit")
	}

	in.Clear()
	if !km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlC}, &in) || !in.Exit {
		t.Error("ctrl+c should request quit")
	}

	in.Clear()
	if km.MapKey(keyMsg("x"), &in) || in.Any() {
		t.Error("unbound key changed state")
	}
}

func TestIconSetCoversAllDropTypes(t *testing.T) {
	set := LoadIconSet(nil)
	for _, dt := range breakout.DropTypes() {
		r, _ := set.For(dt)
		if r == 0 || r == '?' {
			t.Errorf("drop %v has no icon", dt)
		}
	}
}

func TestIconSetPersists(t *testing.T) {
	kv := history.NewMemoryKV()

	first := LoadIconSet(kv)
	second := LoadIconSet(kv)
	for _, dt := range breakout.DropTypes() {
		r1, c1 := first.For(dt)
		r2, c2 := second.For(dt)
		if r1 != r2 || c1 != c2 {
			t.Errorf("icon for %v changed across loads: %c/%c", dt, r1, r2)
		}
	}
}

func TestIconSetRebuildsCorrupt(t *testing.T) {
	kv := history.NewMemoryKV()
	if err := kv.Put("breakout:dropicons", []byte("not json")); err != nil {
		t.Fatal(err)
	}

	set := LoadIconSet(kv)
	for _, dt := range breakout.DropTypes() {
		if r, _ := set.For(dt); r == '?' {
			t.Errorf("drop %v left without icon after corrupt blob", dt)
		}
	}
}

func TestBoardViewScaling(t *testing.T) {
	// A big terminal fits the full-scale board.
	v := newBoardView(200, 80)
	if !v.fits() {
		t.Errorf("%dx%d board does not fit a large terminal", v.cols, v.rows)
	}
	if v.scale != 1 {
		t.Errorf("large terminal scale = %v, want 1", v.scale)
	}

	// A standard terminal still fits, scaled down.
	v = newBoardView(80, 24)
	if !v.fits() {
		t.Errorf("standard terminal should fit, got %dx%d", v.cols, v.rows)
	}
	if v.scale >= 1 {
		t.Errorf("standard terminal scale = %v, want < 1", v.scale)
	}

	// A tiny terminal reports too-small.
	if v := newBoardView(20, 8); v.fits() {
		t.Error("tiny terminal claims to fit")
	}
}

func TestBoardViewCellClamped(t *testing.T) {
	v := newBoardView(80, 24)

	x0, y0 := v.cell(0, 0)
	if x0 < v.offsetX || y0 < v.offsetY {
		t.Errorf("origin mapped before the board area: (%d,%d)", x0, y0)
	}

	x1, y1 := v.cell(breakout.BoardW*2, breakout.BoardH*2)
	if x1 >= v.offsetX+v.cols+1 || y1 >= v.offsetY+v.rows+1 {
		t.Errorf("out-of-board point escaped the view: (%d,%d)", x1, y1)
	}
}

func TestTickCmdEmitsTickMsg(t *testing.T) {
	cmd := tickCmd(240)
	if cmd == nil {
		t.Fatal("tickCmd returned nil")
	}
	if _, ok := cmd().(TickMsg); !ok {
		t.Error("tick command did not produce a TickMsg")
	}
}

func TestDrawGameSmokeTest(t *testing.T) {
	g := breakout.NewGame(12345, nil)
	icons := LoadIconSet(nil)

	// Too small: a message, not a panic.
	s := core.NewScreen(10, 5)
	drawGame(s, g, icons, newBoardView(10, 5))

	// Normal size renders without panicking in every phase.
	s = core.NewScreen(100, 40)
	v := newBoardView(100, 40)
	drawGame(s, g, icons, v)

	g.Step(1, time.Unix(1700000000, 0), core.Input{Launch: true})
	drawGame(s, g, icons, v)
	if s.String() == "" {
		t.Error("empty render")
	}
}
