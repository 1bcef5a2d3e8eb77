package breakout

import "github.com/suoak/cockpit-tools-sub002/internal/core"

// Logical board dimensions. The simulation always runs on this fixed size;
// display scaling is purely presentational.
const (
	BoardW = 760.0
	BoardH = 1080.0

	// CellSize is the generation grid pitch: bricks, walls and the frame are
	// all snapped to this pitch so stamping and overlap checks share one grid.
	CellSize = 8.0

	GridCols = int(BoardW / CellSize) // 95
	GridRows = int(BoardH / CellSize) // 135
)

// Gameplay limits and tunables that are structural rather than configurable.
const (
	MaxBalls   = 300
	MaxDrops   = 60
	MaxShields = 3

	BallRadius = 5.0

	PaddleH = 14.0
	PaddleY = BoardH - 48

	// LostMargin is how far below the board a ball must travel before it is
	// considered lost, and how far a drop may fall before being discarded.
	LostMargin = 24.0
)

// Cell-key encoding for the brick lookup. Wall layering can push stamped
// cells a few cells outside [0, GridCols)×[0, GridRows); the offset covers
// the full negative/positive range the generator can produce for the fixed
// board, and the stride keeps rows disjoint (4096 > GridCols + 2*keyOffset).
const (
	keyOffset = 64
	keyStride = 4096
)

// CellKey packs a grid cell coordinate into a single lookup key.
func CellKey(cx, cy int) int64 {
	return int64(cy+keyOffset)*keyStride + int64(cx+keyOffset)
}

// Ball is a moving ball. Radius is constant for its lifetime.
type Ball struct {
	ID     int
	X, Y   float64
	VX, VY float64
	Radius float64
}

func (b *Ball) pos() core.Vec2 { return core.Vec2{X: b.X, Y: b.Y} }
func (b *Ball) vel() core.Vec2 { return core.Vec2{X: b.VX, Y: b.VY} }

// Brick is a destructible cell-sized block. Bricks are never repositioned;
// destruction only flips Alive.
type Brick struct {
	ID     int
	Rect   core.Rect
	CellX  int
	CellY  int
	Alive  bool
	Points int
}

// Wall is a static rectangle, immutable for the lifetime of a level.
// Solid walls (the outer frame) are exempt from decorative layering.
type Wall struct {
	Rect  core.Rect
	Solid bool
}

// DropType identifies a power-up carried by a falling drop.
type DropType int

const (
	DropSplit DropType = iota
	DropTriple
	DropExpand
	DropShield
	dropTypeCount
)

// String returns the stable identifier used for persistence and display.
func (d DropType) String() string {
	switch d {
	case DropSplit:
		return "split"
	case DropTriple:
		return "triple"
	case DropExpand:
		return "expand"
	case DropShield:
		return "shield"
	default:
		return "unknown"
	}
}

// DropTypes lists all spawnable drop types in stable order.
func DropTypes() []DropType {
	return []DropType{DropSplit, DropTriple, DropExpand, DropShield}
}

// DropItem is a falling power-up spawned from a destroyed brick.
type DropItem struct {
	ID   int
	Type DropType
	X, Y float64
	VY   float64
}
