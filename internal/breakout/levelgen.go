package breakout

import (
	"sort"

	"github.com/kamstrup/intmap"

	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

// Generation limits. Procedural density can occasionally miss the brick
// floor purely by chance; bounded retries plus a deterministic fallback keep
// generation both balanced and finite.
const (
	MinBricks   = 2400
	maxAttempts = 10

	brickPoints = 10

	wallLayers    = 3
	minIslandSize = 12
)

// Style names a decorative wall-and-brick pattern family.
type Style int

const (
	StyleBandsH Style = iota
	StyleBandsV
	StyleRings
	StyleTriangles
	StyleDiamonds
	StyleMixed
	styleCount
)

// String returns the style's display name.
func (s Style) String() string {
	switch s {
	case StyleBandsH:
		return "bandsHorizontal"
	case StyleBandsV:
		return "bandsVertical"
	case StyleRings:
		return "rings"
	case StyleTriangles:
		return "triangles"
	case StyleDiamonds:
		return "diamonds"
	case StyleMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// SeparatorMode describes the bottom separator wall of a level frame.
type SeparatorMode int

const (
	SeparatorNone SeparatorMode = iota
	SeparatorSingle
	SeparatorDouble
)

// String returns the mode's display name.
func (m SeparatorMode) String() string {
	switch m {
	case SeparatorNone:
		return "none"
	case SeparatorSingle:
		return "single"
	case SeparatorDouble:
		return "double"
	default:
		return "unknown"
	}
}

// frameSpec positions the level frame on the cell grid.
type frameSpec struct {
	leftM  int // Side margin columns
	rightM int
	topM   int // Top margin rows
	sepY   int // Separator row
	mode   SeparatorMode
}

// cellRect is a rectangle in grid cell units, converted to board units only
// when the final wall list is built.
type cellRect struct {
	x, y, w, h int
}

func (c cellRect) toBoard() core.Rect {
	return core.NewRect(
		float64(c.x)*CellSize,
		float64(c.y)*CellSize,
		float64(c.w)*CellSize,
		float64(c.h)*CellSize,
	)
}

// Layout is the generated content of one level: static walls, destructible
// bricks, and the cell-key lookup used by the physics engine for O(1)
// collision candidate queries.
type Layout struct {
	Level     int
	Style     Style
	Separator SeparatorMode
	Walls     []Wall
	Bricks    []Brick
	Lookup    *intmap.Map[int64, int32]
	BrickArea core.Rect
	Fallback  bool
}

// GenerateLevel builds the layout for a level. Output depends only on
// (runSeed, level): regenerating level N never depends on level N-1.
func GenerateLevel(runSeed uint32, level int) *Layout {
	seed := levelSeed(runSeed, level)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		rng := NewRand(attemptSeed(seed, attempt))
		layout := tryGenerate(rng, level)
		if len(layout.Bricks) >= MinBricks {
			finalize(layout)
			return layout
		}
	}

	layout := fallbackLayout(level)
	finalize(layout)
	return layout
}

// tryGenerate runs one attempt of the generate-and-check loop.
func tryGenerate(rng *Rand, level int) *Layout {
	style := Style(rng.Pick(int(styleCount)))
	frame := genFrame(rng, level)

	walls := frameWalls(rng, frame)
	area := genBrickArea(rng, frame)
	deco := styleWalls(rng, style, area)
	walls = append(walls, layerWalls(deco)...)

	layout := &Layout{
		Level:     level,
		Style:     style,
		Separator: frame.mode,
		Walls:     walls,
		BrickArea: area.toBoard(),
	}

	stampBricks(layout, brickZones(rng, style, area, level), area)
	return layout
}

// genFrame picks margins, separator position and separator mode, all snapped
// to the cell grid. Double separators are withheld from early levels.
func genFrame(rng *Rand, level int) frameSpec {
	f := frameSpec{
		leftM:  rng.IntRange(1, 3),
		rightM: rng.IntRange(1, 3),
		topM:   rng.IntRange(2, 4),
		sepY:   rng.IntRange(100, 114),
	}

	roll := rng.Float()
	switch {
	case level < 3:
		if roll < 0.35 {
			f.mode = SeparatorNone
		} else {
			f.mode = SeparatorSingle
		}
	case roll < 0.25:
		f.mode = SeparatorNone
	case roll < 0.70:
		f.mode = SeparatorSingle
	default:
		f.mode = SeparatorDouble
	}
	return f
}

// frameWalls builds the perimeter: top border, side walls down to the
// separator, and the separator row as segments around its openings.
func frameWalls(rng *Rand, f frameSpec) []Wall {
	spanStart := f.leftM
	spanEnd := GridCols - f.rightM // Exclusive

	walls := []Wall{
		{Rect: cellRect{x: spanStart, y: f.topM, w: spanEnd - spanStart, h: 1}.toBoard(), Solid: true},
		{Rect: cellRect{x: spanStart, y: f.topM, w: 1, h: f.sepY - f.topM + 1}.toBoard(), Solid: true},
		{Rect: cellRect{x: spanEnd - 1, y: f.topM, w: 1, h: f.sepY - f.topM + 1}.toBoard(), Solid: true},
	}

	// The separator row runs between the side walls.
	rowStart := spanStart + 1
	rowEnd := spanEnd - 1

	if f.mode == SeparatorNone {
		// Open bottom with two short end-caps.
		capLen := rng.IntRange(4, 8)
		capLen = min(capLen, (rowEnd-rowStart)/2)
		walls = append(walls,
			Wall{Rect: cellRect{x: rowStart, y: f.sepY, w: capLen, h: 1}.toBoard(), Solid: true},
			Wall{Rect: cellRect{x: rowEnd - capLen, y: f.sepY, w: capLen, h: 1}.toBoard(), Solid: true},
		)
		return walls
	}

	openings := genOpenings(rng, f.mode, rowStart, rowEnd)

	// Split the separator row into segments around the openings.
	x := rowStart
	for _, o := range openings {
		if o.x > x {
			walls = append(walls, Wall{Rect: cellRect{x: x, y: f.sepY, w: o.x - x, h: 1}.toBoard(), Solid: true})
		}
		x = o.x + o.w
	}
	if x < rowEnd {
		walls = append(walls, Wall{Rect: cellRect{x: x, y: f.sepY, w: rowEnd - x, h: 1}.toBoard(), Solid: true})
	}
	return walls
}

type opening struct {
	x, w int
}

// genOpenings places one or two gaps in the separator row with randomized
// width and position, merging any pair closer than the minimum clearance.
func genOpenings(rng *Rand, mode SeparatorMode, rowStart, rowEnd int) []opening {
	const minClearance = 4

	count := 1
	if mode == SeparatorDouble {
		count = 2
	}

	openings := make([]opening, 0, count)
	for i := 0; i < count; i++ {
		w := rng.IntRange(8, 16)
		maxX := rowEnd - w - 2
		if maxX <= rowStart+2 {
			w = (rowEnd - rowStart) / 2
			maxX = rowEnd - w - 2
		}
		x := rng.IntRange(rowStart+2, maxX)
		openings = append(openings, opening{x: x, w: w})
	}

	sort.Slice(openings, func(i, j int) bool { return openings[i].x < openings[j].x })

	merged := openings[:1]
	for _, o := range openings[1:] {
		last := &merged[len(merged)-1]
		if o.x <= last.x+last.w+minClearance {
			end := max(last.x+last.w, o.x+o.w)
			last.w = end - last.x
		} else {
			merged = append(merged, o)
		}
	}
	return merged
}

// genBrickArea computes the interior rectangle bricks may occupy, inset from
// the frame by randomized padding.
func genBrickArea(rng *Rand, f frameSpec) cellRect {
	padL := rng.IntRange(2, 4)
	padR := rng.IntRange(2, 4)
	padT := rng.IntRange(2, 4)
	padB := rng.IntRange(3, 6)

	x0 := f.leftM + 1 + padL
	x1 := GridCols - f.rightM - 1 - padR
	y0 := f.topM + 1 + padT
	y1 := f.sepY - padB

	return cellRect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

// styleWalls places a handful of decorative obstacle rectangles whose
// geometry depends on the chosen style. Returned in cell units, unlayered.
func styleWalls(rng *Rand, style Style, area cellRect) []cellRect {
	switch style {
	case StyleBandsH:
		return bandWallsH(rng, area)
	case StyleBandsV:
		return bandWallsV(rng, area)
	case StyleRings:
		return ringWalls(rng, area)
	case StyleTriangles:
		return cornerWalls(rng, area)
	case StyleDiamonds:
		return diamondPointWalls(rng, area)
	case StyleMixed:
		// Randomly omit or combine primitives.
		var walls []cellRect
		if rng.Chance(0.6) {
			walls = append(walls, bandWallsH(rng, area)...)
		}
		if rng.Chance(0.4) {
			walls = append(walls, diamondPointWalls(rng, area)...)
		}
		return walls
	default:
		return nil
	}
}

func bandWallsH(rng *Rand, area cellRect) []cellRect {
	n := rng.IntRange(2, 3)
	walls := make([]cellRect, 0, n)
	for i := 0; i < n; i++ {
		w := rng.IntRange(area.w/4, area.w/2)
		x := area.x + rng.IntRange(0, area.w-w)
		y := area.y + (i+1)*area.h/(n+1)
		walls = append(walls, cellRect{x: x, y: y, w: w, h: 1})
	}
	return walls
}

func bandWallsV(rng *Rand, area cellRect) []cellRect {
	n := rng.IntRange(2, 3)
	walls := make([]cellRect, 0, n)
	for i := 0; i < n; i++ {
		h := rng.IntRange(area.h/5, area.h/3)
		y := area.y + rng.IntRange(0, area.h-h)
		x := area.x + (i+1)*area.w/(n+1)
		walls = append(walls, cellRect{x: x, y: y, w: 1, h: h})
	}
	return walls
}

func ringWalls(rng *Rand, area cellRect) []cellRect {
	// Four short bars framing the area center.
	cx := area.x + area.w/2
	cy := area.y + area.h/2
	arm := rng.IntRange(area.w/8, area.w/5)
	gap := rng.IntRange(4, 7)
	return []cellRect{
		{x: cx - arm/2, y: cy - gap, w: arm, h: 1},
		{x: cx - arm/2, y: cy + gap, w: arm, h: 1},
		{x: cx - gap, y: cy - arm/2, w: 1, h: arm},
		{x: cx + gap, y: cy - arm/2, w: 1, h: arm},
	}
}

func cornerWalls(rng *Rand, area cellRect) []cellRect {
	n := rng.IntRange(2, 3)
	walls := make([]cellRect, 0, n)
	for i := 0; i < n; i++ {
		w := rng.IntRange(5, 10)
		x := area.x + rng.IntRange(0, area.w-w)
		y := area.y + area.h - rng.IntRange(2, area.h/4)
		walls = append(walls, cellRect{x: x, y: y, w: w, h: 1})
	}
	return walls
}

func diamondPointWalls(rng *Rand, area cellRect) []cellRect {
	cx := area.x + area.w/2
	cy := area.y + area.h/2
	r := rng.IntRange(area.h/5, area.h/3)
	bar := rng.IntRange(4, 8)
	return []cellRect{
		{x: cx - bar/2, y: cy - r, w: bar, h: 1},
		{x: cx - bar/2, y: cy + r, w: bar, h: 1},
		{x: cx - r, y: cy, w: 1, h: bar},
		{x: cx + r - 1, y: cy, w: 1, h: bar},
	}
}

// layerWalls thickens decorative walls by stamping each one wallLayers times
// with a one-cell perpendicular offset, direction picked toward the board
// center by which half the wall sits in, then re-rasterizes the result into
// merged rectangles.
func layerWalls(deco []cellRect) []Wall {
	if len(deco) == 0 {
		return nil
	}

	grid := NewGrid(GridCols, GridRows)
	for _, w := range deco {
		horizontal := w.w >= w.h

		var dx, dy int
		if horizontal {
			dy = 1
			if w.y+w.h/2 > GridRows/2 {
				dy = -1
			}
		} else {
			dx = 1
			if w.x+w.w/2 > GridCols/2 {
				dx = -1
			}
		}

		for layer := 0; layer < wallLayers; layer++ {
			grid.FillRect(w.x+dx*layer, w.y+dy*layer, w.w, w.h)
		}
	}

	zones := grid.Zones()
	walls := make([]Wall, 0, len(zones))
	for _, z := range zones {
		walls = append(walls, Wall{Rect: cellRect{x: z.X, y: z.Y, w: z.W, h: z.H}.toBoard()})
	}
	return walls
}

// brickZones draws the style's brick pattern into an area-sized grid and
// compresses it to zones after island removal and density normalization.
func brickZones(rng *Rand, style Style, area cellRect, level int) []Zone {
	g := NewGrid(area.w, area.h)

	switch style {
	case StyleBandsH:
		bandH := rng.IntRange(4, 8)
		gap := rng.IntRange(1, 3)
		for y := 0; y < area.h; y += bandH + gap {
			g.FillRect(0, y, area.w, bandH)
		}
	case StyleBandsV:
		bandW := rng.IntRange(4, 8)
		gap := rng.IntRange(1, 3)
		for x := 0; x < area.w; x += bandW + gap {
			g.FillRect(x, 0, bandW, area.h)
		}
	case StyleRings:
		cx := float64(area.w) / 2
		cy := float64(area.h) / 2
		outer := float64(min(area.w, area.h)) / 2
		for outer > 6 {
			g.FillRing(cx, cy, outer, outer-float64(rng.IntRange(3, 5)))
			outer -= float64(rng.IntRange(7, 10))
		}
		g.FillEllipse(cx, cy, 5, 5)
	case StyleTriangles:
		n := rng.IntRange(2, 4)
		triW := area.w / n
		for i := 0; i < n; i++ {
			g.FillTriangle(i*triW, 0, triW, area.h, i%2 == 0)
		}
	case StyleDiamonds:
		r := rng.IntRange(7, 11)
		pitch := 2*r + rng.IntRange(2, 4)
		for cy := r; cy < area.h+r; cy += pitch {
			for cx := r; cx < area.w+r; cx += pitch {
				g.FillDiamond(cx, cy, r)
			}
		}
	case StyleMixed:
		n := rng.IntRange(3, 6)
		for i := 0; i < n; i++ {
			x := rng.IntRange(0, area.w-1)
			y := rng.IntRange(0, area.h-1)
			switch rng.Pick(4) {
			case 0:
				g.FillRect(x, y, rng.IntRange(8, 20), rng.IntRange(6, 14))
			case 1:
				g.FillEllipse(float64(x), float64(y), float64(rng.IntRange(5, 12)), float64(rng.IntRange(4, 9)))
			case 2:
				g.FillDiamond(x, y, rng.IntRange(5, 10))
			case 3:
				g.FillTriangle(x, y, rng.IntRange(8, 18), rng.IntRange(6, 12), rng.Chance(0.5))
			}
		}
	}

	g.RemoveSmallIslands(minIslandSize)
	g.EnsureDensity(rng, level)
	return g.Zones()
}

// stampBricks places one brick per zone cell, skipping cells outside the
// brick area, cells already claimed by an earlier zone (zone list order is
// priority), and cells overlapping any wall.
func stampBricks(layout *Layout, zones []Zone, area cellRect) {
	used := intmap.New[int64, struct{}](4096)

	for _, z := range zones {
		for dy := 0; dy < z.H; dy++ {
			for dx := 0; dx < z.W; dx++ {
				cx := area.x + z.X + dx
				cy := area.y + z.Y + dy
				if cx < area.x || cx >= area.x+area.w || cy < area.y || cy >= area.y+area.h {
					continue
				}

				key := CellKey(cx, cy)
				if _, taken := used.Get(key); taken {
					continue
				}

				rect := cellRect{x: cx, y: cy, w: 1, h: 1}.toBoard()
				if overlapsAnyWall(rect, layout.Walls) {
					continue
				}

				used.Put(key, struct{}{})
				layout.Bricks = append(layout.Bricks, Brick{
					Rect:   rect,
					CellX:  cx,
					CellY:  cy,
					Alive:  true,
					Points: brickPoints,
				})
			}
		}
	}
}

func overlapsAnyWall(r core.Rect, walls []Wall) bool {
	for _, w := range walls {
		if r.Intersects(w.Rect) {
			return true
		}
	}
	return false
}

// fallbackLayout is the hand-specified deterministic layout used when all
// attempts miss the brick floor. Fixed frame, a single centered opening, and
// a fully filled brick area guarantee enough bricks with no randomness.
func fallbackLayout(level int) *Layout {
	f := frameSpec{leftM: 2, rightM: 2, topM: 3, sepY: 108, mode: SeparatorSingle}
	area := cellRect{x: 7, y: 7, w: GridCols - 14, h: 95}

	spanStart := f.leftM
	spanEnd := GridCols - f.rightM
	rowStart := spanStart + 1
	rowEnd := spanEnd - 1
	gapW := 12
	gapX := (rowStart + rowEnd - gapW) / 2

	walls := []Wall{
		{Rect: cellRect{x: spanStart, y: f.topM, w: spanEnd - spanStart, h: 1}.toBoard(), Solid: true},
		{Rect: cellRect{x: spanStart, y: f.topM, w: 1, h: f.sepY - f.topM + 1}.toBoard(), Solid: true},
		{Rect: cellRect{x: spanEnd - 1, y: f.topM, w: 1, h: f.sepY - f.topM + 1}.toBoard(), Solid: true},
		{Rect: cellRect{x: rowStart, y: f.sepY, w: gapX - rowStart, h: 1}.toBoard(), Solid: true},
		{Rect: cellRect{x: gapX + gapW, y: f.sepY, w: rowEnd - gapX - gapW, h: 1}.toBoard(), Solid: true},
	}

	layout := &Layout{
		Level:     level,
		Style:     StyleBandsH,
		Separator: f.mode,
		Walls:     walls,
		BrickArea: area.toBoard(),
		Fallback:  true,
	}

	g := NewGrid(area.w, area.h)
	g.FillRect(0, 0, area.w, area.h)
	stampBricks(layout, g.Zones(), area)
	return layout
}

// finalize sorts bricks into stable (y, x) order, assigns sequential ids and
// rebuilds the cell-key lookup.
func finalize(layout *Layout) {
	sort.Slice(layout.Bricks, func(i, j int) bool {
		a, b := layout.Bricks[i], layout.Bricks[j]
		if a.CellY != b.CellY {
			return a.CellY < b.CellY
		}
		return a.CellX < b.CellX
	})

	layout.Lookup = intmap.New[int64, int32](len(layout.Bricks))
	for i := range layout.Bricks {
		layout.Bricks[i].ID = i
		layout.Lookup.Put(CellKey(layout.Bricks[i].CellX, layout.Bricks[i].CellY), int32(i))
	}
}
