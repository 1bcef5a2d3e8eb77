package breakout

import (
	"math"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

// Tuning constants. dt is frame-normalized, so speeds are units per nominal
// frame. The resolution pass count is an empirical bound, not a proof.
const (
	maxFrameDt = 3.0

	subStepLen    = 3.5
	resolvePasses = 4
	contactEps    = 0.01

	paddleSpeed = 9.0
	PaddleBaseW = 96.0
	PaddleMaxW  = 150.0
	expandStep  = 18.0

	launchVX   = 2.4
	launchVY   = -6.4
	maxDeflect = 10.0
	minRise    = 2.5

	ballRestitution = 0.96
	hashCellSize    = 18.0

	expandDuration = 10 * time.Second
)

// stepPhysics advances paddle, balls and drops by one capped frame.
func (g *Game) stepPhysics(dt float64, now time.Time, in core.Input) {
	if !g.expandUntil.IsZero() && now.After(g.expandUntil) {
		g.paddleW = PaddleBaseW
		g.expandUntil = time.Time{}
		g.clampPaddle()
	}

	g.movePaddle(dt, in)

	if !g.launched {
		// Ready ball rides the paddle center.
		if len(g.balls) > 0 {
			g.balls[0].X = g.paddleX + g.paddleW/2
			g.balls[0].Y = PaddleY - BallRadius
		}
		g.advanceDrops(dt, now)
		return
	}

	for i := range g.balls {
		g.moveBall(&g.balls[i], dt, now)
	}
	g.dropLostBalls()

	g.advanceDrops(dt, now)
	g.collideBalls()
}

func (g *Game) movePaddle(dt float64, in core.Input) {
	if in.Left {
		g.paddleX -= g.tun.PaddleSpeed * dt
	}
	if in.Right {
		g.paddleX += g.tun.PaddleSpeed * dt
	}
	g.clampPaddle()
}

func (g *Game) clampPaddle() {
	g.paddleX = core.ClampF(g.paddleX, 0, BoardW-g.paddleW)
}

// moveBall integrates one ball over the frame in fixed-size sub-steps so
// fast balls cannot tunnel through thin walls or bricks.
func (g *Game) moveBall(b *Ball, dt float64, now time.Time) {
	dist := b.vel().Len() * dt
	steps := int(math.Ceil(dist / subStepLen))
	if steps < 1 {
		steps = 1
	}
	stepDt := dt / float64(steps)

	for s := 0; s < steps; s++ {
		b.X += b.VX * stepDt
		b.Y += b.VY * stepDt

		g.reflectEdges(b)
		g.resolveWalls(b)
		g.resolvePaddle(b)
		g.resolveBricks(b, now)
	}
}

// reflectEdges bounces the ball off the left/right/top board edges. The
// bottom edge is open: falling past it is the ball-lost condition.
func (g *Game) reflectEdges(b *Ball) {
	if b.X < b.Radius {
		b.X = b.Radius
		b.VX = math.Abs(b.VX)
	} else if b.X > BoardW-b.Radius {
		b.X = BoardW - b.Radius
		b.VX = -math.Abs(b.VX)
	}
	if b.Y < b.Radius {
		b.Y = b.Radius
		b.VY = math.Abs(b.VY)
	}
}

// resolveWalls pushes the ball out of overlapping walls along the axis of
// minimum penetration, up to a fixed number of passes per sub-step.
func (g *Game) resolveWalls(b *Ball) {
	for pass := 0; pass < resolvePasses; pass++ {
		hit := false
		for i := range g.walls {
			if g.pushOut(b, g.walls[i].Rect) {
				hit = true
			}
		}
		if !hit {
			return
		}
	}
}

// pushOut resolves one circle-vs-rect contact. The circle is treated as its
// bounding box for penetration depth: approximate, but stable under the
// sub-stepping granularity. On an exact overlap tie the y axis wins.
func (g *Game) pushOut(b *Ball, r core.Rect) bool {
	if !r.OverlapsCircle(b.X, b.Y, b.Radius) {
		return false
	}

	left := b.X + b.Radius - r.X
	right := r.Right() - (b.X - b.Radius)
	top := b.Y + b.Radius - r.Y
	bottom := r.Bottom() - (b.Y - b.Radius)

	overlapX := math.Min(left, right)
	overlapY := math.Min(top, bottom)

	if overlapX < overlapY {
		if left < right {
			b.X -= overlapX + contactEps
			b.VX = -math.Abs(b.VX)
		} else {
			b.X += overlapX + contactEps
			b.VX = math.Abs(b.VX)
		}
	} else {
		if top < bottom {
			b.Y -= overlapY + contactEps
			b.VY = -math.Abs(b.VY)
		} else {
			b.Y += overlapY + contactEps
			b.VY = math.Abs(b.VY)
		}
	}
	return true
}

// resolvePaddle deflects a downward-moving ball off the paddle, with the
// exit angle biased by where on the paddle it struck.
func (g *Game) resolvePaddle(b *Ball) {
	if b.VY <= 0 {
		return
	}
	paddle := g.PaddleRect()
	if !paddle.OverlapsCircle(b.X, b.Y, b.Radius) {
		return
	}

	hit := core.ClampF((b.X-paddle.CenterX())/(paddle.W/2), -1, 1)
	speed := b.vel().Len()

	b.VX = core.ClampF(hit*maxDeflect, -maxDeflect, maxDeflect)
	rise := speed*speed - b.VX*b.VX
	if rise < minRise*minRise {
		rise = minRise * minRise
	}
	b.VY = -math.Sqrt(rise)
	b.Y = paddle.Y - b.Radius - contactEps
}

// resolveBricks checks the 3x3 cell neighborhood around the ball and kills
// at most one brick per sub-step.
func (g *Game) resolveBricks(b *Ball, now time.Time) {
	cx := int(b.X / CellSize)
	cy := int(b.Y / CellSize)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			key := CellKey(cx+dx, cy+dy)
			idx, ok := g.lookup.Get(key)
			if !ok {
				continue
			}
			brick := &g.bricks[idx]
			if !brick.Alive || !brick.Rect.OverlapsCircle(b.X, b.Y, b.Radius) {
				continue
			}

			g.pushOut(b, brick.Rect)
			g.killBrick(brick, key, now)
			return
		}
	}
}

func (g *Game) killBrick(brick *Brick, key int64, now time.Time) {
	brick.Alive = false
	g.lookup.Del(key)
	g.aliveBricks--
	g.score += brick.Points
	g.levelScore += brick.Points
	g.maybeSpawnDrop(brick)
}

// dropLostBalls removes balls that fell past the bottom margin.
func (g *Game) dropLostBalls() {
	kept := g.balls[:0]
	for _, b := range g.balls {
		if b.Y <= BoardH+LostMargin {
			kept = append(kept, b)
		}
	}
	g.balls = kept
}

// collideBalls resolves ball-vs-ball contacts through a uniform spatial
// hash. Each ball is tested only against already-inserted neighbors, so
// every pair is visited once and the expected cost stays O(n).
func (g *Game) collideBalls() {
	if len(g.balls) < 2 {
		return
	}

	grid := intmap.New[int64, []int32](len(g.balls))
	for i := range g.balls {
		cx := int(g.balls[i].X / hashCellSize)
		cy := int(g.balls[i].Y / hashCellSize)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				bucket, ok := grid.Get(hashKey(cx+dx, cy+dy))
				if !ok {
					continue
				}
				for _, j := range bucket {
					collidePair(&g.balls[j], &g.balls[i])
				}
			}
		}

		key := hashKey(cx, cy)
		bucket, _ := grid.Get(key)
		grid.Put(key, append(bucket, int32(i)))
	}
}

// hashKey packs spatial-hash cell coordinates. The bucket grid is coarser
// than the brick grid, so it gets its own encoding with the same shape as
// CellKey.
func hashKey(cx, cy int) int64 {
	return int64(cy+keyOffset)*keyStride + int64(cx+keyOffset)
}

// collidePair separates two overlapping balls and applies an elastic
// impulse along the collision normal, unit mass each.
func collidePair(a, b *Ball) {
	delta := b.pos().Sub(a.pos())
	minDist := a.Radius + b.Radius
	dist := delta.Len()
	if dist >= minDist || dist == 0 {
		return
	}

	n := delta.Scale(1 / dist)

	push := n.Scale((minDist - dist) / 2)
	ap, bp := a.pos().Sub(push), b.pos().Add(push)
	a.X, a.Y = ap.X, ap.Y
	b.X, b.Y = bp.X, bp.Y

	rel := b.vel().Sub(a.vel()).Dot(n)
	if rel >= 0 {
		return
	}

	imp := n.Scale(-(1 + ballRestitution) * rel / 2)
	av, bv := a.vel().Sub(imp), b.vel().Add(imp)
	a.VX, a.VY = av.X, av.Y
	b.VX, b.VY = bv.X, bv.Y
}

// animateBackground keeps leftover balls bouncing behind the level-cleared
// overlay. No bricks, paddle or scoring are touched.
func (g *Game) animateBackground(dt float64) {
	for i := range g.balls {
		b := &g.balls[i]
		b.X += b.VX * dt
		b.Y += b.VY * dt

		if b.X < b.Radius {
			b.X = b.Radius
			b.VX = math.Abs(b.VX)
		} else if b.X > BoardW-b.Radius {
			b.X = BoardW - b.Radius
			b.VX = -math.Abs(b.VX)
		}
		if b.Y < b.Radius {
			b.Y = b.Radius
			b.VY = math.Abs(b.VY)
		} else if b.Y > BoardH-b.Radius {
			b.Y = BoardH - b.Radius
			b.VY = -math.Abs(b.VY)
		}
	}
}
