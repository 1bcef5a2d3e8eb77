package tui

import (
	"fmt"

	"github.com/suoak/cockpit-tools-sub002/internal/breakout"
	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

// A terminal cell is roughly twice as tall as wide, so one cell covers
// 8x16 logical board units at full scale.
const (
	charUnitW = 8.0
	charUnitH = 16.0

	hudRows  = 1
	helpRows = 1

	minBoardCols = 24
	minBoardRows = 12
)

var brickBandColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
}

// boardView projects the fixed logical board onto the available screen area.
// The simulation always runs at full size; only presentation scales.
type boardView struct {
	scale   float64
	cols    int
	rows    int
	offsetX int
	offsetY int
}

func newBoardView(screenW, screenH int) boardView {
	availW := screenW
	availH := screenH - hudRows - helpRows

	scale := core.ViewScale(
		float64(availW)*charUnitW,
		float64(availH)*charUnitH,
		breakout.BoardW,
		breakout.BoardH,
	)
	cols := int(breakout.BoardW * scale / charUnitW)
	rows := int(breakout.BoardH * scale / charUnitH)

	return boardView{
		scale:   scale,
		cols:    cols,
		rows:    rows,
		offsetX: (availW - cols) / 2,
		offsetY: hudRows + (availH-rows)/2,
	}
}

func (v boardView) fits() bool {
	return v.cols >= minBoardCols && v.rows >= minBoardRows
}

// cell maps a board coordinate to a screen cell.
func (v boardView) cell(x, y float64) (int, int) {
	cx := int(x * v.scale / charUnitW)
	cy := int(y * v.scale / charUnitH)
	return v.offsetX + core.Clamp(cx, 0, v.cols-1), v.offsetY + core.Clamp(cy, 0, v.rows-1)
}

// drawGame renders the full play view: HUD, board, entities and help line.
func drawGame(s *core.Screen, g *breakout.Game, icons *IconSet, v boardView) {
	s.Clear()

	if !v.fits() {
		s.DrawTextCenteredColor(s.Height()/2, "Terminal too small", core.ColorBrightRed)
		return
	}

	drawHUD(s, g)
	drawFieldRect(s, v)

	for _, w := range g.Walls() {
		drawBoardRect(s, v, w.Rect, '█', core.ColorGray)
	}
	for _, b := range g.Bricks() {
		if !b.Alive {
			continue
		}
		color := brickBandColors[(b.CellY/10)%len(brickBandColors)]
		x, y := v.cell(b.Rect.CenterX(), b.Rect.CenterY())
		s.SetColor(x, y, '▒', color)
	}
	for _, d := range g.Drops() {
		r, color := icons.For(d.Type)
		x, y := v.cell(d.X, d.Y)
		s.SetColor(x, y, r, color)
	}

	paddle := g.PaddleRect()
	py := v.offsetY + int(paddle.Y*v.scale/charUnitH)
	px0 := v.offsetX + int(paddle.X*v.scale/charUnitW)
	px1 := v.offsetX + int(paddle.Right()*v.scale/charUnitW)
	for x := px0; x <= px1 && x < v.offsetX+v.cols; x++ {
		s.SetColor(x, py, '▬', core.ColorBrightYellow)
	}

	for _, b := range g.Balls() {
		x, y := v.cell(b.X, b.Y)
		s.SetColor(x, y, '●', core.ColorBrightWhite)
	}

	drawOverlay(s, g)
	drawHelp(s, g)
}

func drawHUD(s *core.Screen, g *breakout.Game) {
	hud := fmt.Sprintf(" Score %d  Level %d  Bricks %d  Shields %d  Balls %d",
		g.Score(), g.Level(), g.AliveBricks(), g.Shields(), len(g.Balls()))
	s.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
}

// drawBoardRect fills the screen cells covered by a board-space rectangle.
// Thin rects still occupy at least one cell so walls never vanish at small
// scales.
func drawBoardRect(s *core.Screen, v boardView, r core.Rect, ch rune, c core.Color) {
	x0, y0 := v.cell(r.X, r.Y)
	x1, y1 := v.cell(r.Right()-0.001, r.Bottom()-0.001)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.SetColor(x, y, ch, c)
		}
	}
}

// drawFieldRect outlines the board area so the open bottom edge reads as
// part of the play field.
func drawFieldRect(s *core.Screen, v boardView) {
	s.DrawBox(v.offsetX-1, v.offsetY-1, v.cols+2, v.rows+2, core.ColorGray)
}

func drawOverlay(s *core.Screen, g *breakout.Game) {
	mid := s.Height() / 2
	switch g.Phase() {
	case breakout.PhaseIdle:
		s.DrawTextCenteredColor(mid, "B R E A K O U T", core.ColorBrightCyan)
		s.DrawTextCenteredColor(mid+2, "space to start", core.ColorWhite)
	case breakout.PhasePaused:
		s.DrawTextCenteredColor(mid, "PAUSED", core.ColorBrightYellow)
	case breakout.PhaseCleared:
		s.DrawTextCenteredColor(mid, fmt.Sprintf("LEVEL %d CLEARED", g.Level()), core.ColorBrightGreen)
		s.DrawTextCenteredColor(mid+2, "n for next level", core.ColorWhite)
	case breakout.PhaseOver:
		s.DrawTextCenteredColor(mid, "GAME OVER", core.ColorBrightRed)
		s.DrawTextCenteredColor(mid+2, fmt.Sprintf("final score %d", g.Score()), core.ColorWhite)
		s.DrawTextCenteredColor(mid+3, "r to restart", core.ColorGray)
	}
}

func drawHelp(s *core.Screen, g *breakout.Game) {
	help := "a/d move  space launch  p pause  q quit"
	switch g.Phase() {
	case breakout.PhaseCleared:
		help = "n next level  q quit"
	case breakout.PhaseOver:
		help = "r restart  q quit"
	}
	s.DrawTextColor(1, s.Height()-1, help, core.ColorGray)
}
