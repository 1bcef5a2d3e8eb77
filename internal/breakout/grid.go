package breakout

// Grid is a dense boolean raster used to stamp shapes and compress the
// result back into rectangular zones. Coordinates are grid cells.
type Grid struct {
	Cols, Rows int
	cells      []bool
}

// NewGrid creates an empty grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, cells: make([]bool, cols*rows)}
}

// InBounds reports whether (x, y) is a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// Get returns the cell value, false out of bounds.
func (g *Grid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.Cols+x]
}

// Set writes the cell value. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, v bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.Cols+x] = v
}

// FilledCount returns the number of set cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// FillRatio returns the share of set cells in [0, 1].
func (g *Grid) FillRatio() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	return float64(g.FilledCount()) / float64(len(g.cells))
}

// FillRect sets all cells inside the rectangle [x, x+w) × [y, y+h).
func (g *Grid) FillRect(x, y, w, h int) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			g.Set(cx, cy, true)
		}
	}
}

// FillEllipse sets cells whose centers fall inside an axis-aligned ellipse.
func (g *Grid) FillEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x0 := int(cx - rx)
	x1 := int(cx + rx + 1)
	y0 := int(cy - ry)
	y1 := int(cy + ry + 1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				g.Set(x, y, true)
			}
		}
	}
}

// FillRing sets cells between an inner and outer ellipse radius.
func (g *Grid) FillRing(cx, cy, outer, inner float64) {
	if outer <= 0 || inner >= outer {
		return
	}
	x0 := int(cx - outer)
	x1 := int(cx + outer + 1)
	y0 := int(cy - outer)
	y1 := int(cy + outer + 1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d2 := dx*dx + dy*dy
			if d2 <= outer*outer && d2 >= inner*inner {
				g.Set(x, y, true)
			}
		}
	}
}

// FillDiamond sets cells within Manhattan distance r of the center.
func (g *Grid) FillDiamond(cx, cy int, r int) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if abs(x-cx)+abs(y-cy) <= r {
				g.Set(x, y, true)
			}
		}
	}
}

// FillTriangle sets cells forming an isoceles triangle of the given base
// width and height. pointUp selects whether the apex is at the top.
func (g *Grid) FillTriangle(x, y, w, h int, pointUp bool) {
	if w <= 0 || h <= 0 {
		return
	}
	for row := 0; row < h; row++ {
		// Row width narrows linearly toward the apex.
		t := float64(row) / float64(h)
		if pointUp {
			t = 1 - t
		}
		rowW := int(float64(w) * (1 - t))
		if rowW < 1 {
			rowW = 1
		}
		start := x + (w-rowW)/2
		for cx := start; cx < start+rowW; cx++ {
			g.Set(cx, y+row, true)
		}
	}
}

// RemoveSmallIslands flood-fills 4-connected components and clears any
// smaller than minSize, eliminating insignificant fragments left behind by
// shape composition.
func (g *Grid) RemoveSmallIslands(minSize int) {
	if minSize <= 1 {
		return
	}
	visited := make([]bool, len(g.cells))
	component := make([]int, 0, minSize*4)
	queue := make([]int, 0, minSize*4)

	for start := range g.cells {
		if !g.cells[start] || visited[start] {
			continue
		}

		component = component[:0]
		queue = append(queue[:0], start)
		visited[start] = true

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			component = append(component, idx)

			x := idx % g.Cols
			y := idx / g.Cols
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				nidx := ny*g.Cols + nx
				if g.cells[nidx] && !visited[nidx] {
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}

		if len(component) < minSize {
			for _, idx := range component {
				g.cells[idx] = false
			}
		}
	}
}

// Pattern density bounds. Levels should be neither sparse scatter nor solid
// blocks; the target rises slightly with level.
const (
	densityBase    = 0.52
	densityPerLvl  = 0.02
	densityMax     = 0.68
	densityCeiling = 0.74
)

func densityTarget(level int) float64 {
	t := densityBase + float64(level)*densityPerLvl
	if t > densityMax {
		t = densityMax
	}
	return t
}

// EnsureDensity stamps random rectangular chunks while the fill ratio is
// below the level-scaled target, and carves random holes while it exceeds
// the ceiling. Iteration counts are bounded; close enough is good enough.
func (g *Grid) EnsureDensity(rng *Rand, level int) {
	target := densityTarget(level)

	for i := 0; i < 220 && g.FillRatio() < target; i++ {
		w := rng.IntRange(3, g.Cols/3+1)
		h := rng.IntRange(2, g.Rows/4+1)
		x := rng.IntRange(0, g.Cols-1)
		y := rng.IntRange(0, g.Rows-1)
		g.FillRect(x, y, w, h)
	}

	for i := 0; i < 120 && g.FillRatio() > densityCeiling; i++ {
		w := rng.IntRange(2, g.Cols/5+1)
		h := rng.IntRange(2, g.Rows/6+1)
		x := rng.IntRange(0, g.Cols-1)
		y := rng.IntRange(0, g.Rows-1)
		for cy := y; cy < y+h; cy++ {
			for cx := x; cx < x+w; cx++ {
				g.Set(cx, cy, false)
			}
		}
	}
}

// Zone is a maximal rectangular run of filled cells, in grid cell units.
type Zone struct {
	X, Y, W, H int
}

// Zones compresses the grid into rectangles: per-row horizontal runs, then
// vertical merging of runs with identical start and width on consecutive
// rows. This is a row-major decomposition, not minimal rectangle cover, but
// bricks are stamped on the same pitch so minimality does not matter.
func (g *Grid) Zones() []Zone {
	type run struct {
		x, w int
		zone int // Index into zones, -1 if not yet assigned
	}

	zones := make([]Zone, 0, 64)
	var prev []run

	for y := 0; y < g.Rows; y++ {
		var cur []run
		x := 0
		for x < g.Cols {
			if !g.Get(x, y) {
				x++
				continue
			}
			start := x
			for x < g.Cols && g.Get(x, y) {
				x++
			}
			cur = append(cur, run{x: start, w: x - start, zone: -1})
		}

		// Merge runs that exactly continue a run from the previous row.
		for i := range cur {
			for j := range prev {
				if prev[j].x == cur[i].x && prev[j].w == cur[i].w {
					cur[i].zone = prev[j].zone
					zones[cur[i].zone].H++
					break
				}
			}
			if cur[i].zone == -1 {
				zones = append(zones, Zone{X: cur[i].x, Y: y, W: cur[i].w, H: 1})
				cur[i].zone = len(zones) - 1
			}
		}
		prev = cur
	}

	return zones
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
