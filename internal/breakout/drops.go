package breakout

import (
	"math"
	"time"
)

const (
	dropChance = 0.18
	dropSpeed  = 4.2
	dropHalfW  = 9.0
)

// maybeSpawnDrop rolls the drop chance for a destroyed brick. Exceeding the
// drop cap silently swallows the spawn.
func (g *Game) maybeSpawnDrop(brick *Brick) {
	if len(g.drops) >= MaxDrops || !g.dropRng.Chance(g.tun.DropChance) {
		return
	}
	g.drops = append(g.drops, DropItem{
		ID:   g.nextDropID,
		Type: DropType(g.dropRng.Pick(int(dropTypeCount))),
		X:    brick.Rect.CenterX(),
		Y:    brick.Rect.CenterY(),
		VY:   dropSpeed,
	})
	g.nextDropID++
}

// advanceDrops moves falling drops, applies the ones the paddle catches and
// discards the ones that leave the board.
func (g *Game) advanceDrops(dt float64, now time.Time) {
	paddle := g.PaddleRect()

	kept := g.drops[:0]
	for _, d := range g.drops {
		d.Y += d.VY * dt

		if d.Y+dropHalfW >= paddle.Y && d.Y-dropHalfW <= paddle.Bottom() &&
			d.X+dropHalfW >= paddle.X && d.X-dropHalfW <= paddle.Right() {
			g.applyDrop(d.Type, now)
			continue
		}
		if d.Y > BoardH+LostMargin {
			continue
		}
		kept = append(kept, d)
	}
	g.drops = kept
}

func (g *Game) applyDrop(t DropType, now time.Time) {
	g.runDrops[t]++
	g.levelDrops[t]++

	switch t {
	case DropSplit:
		g.applySplit()
	case DropTriple:
		g.applyTriple()
	case DropExpand:
		g.applyExpand(now)
	case DropShield:
		if g.shields < MaxShields {
			g.shields++
		}
	}
}

// applySplit fans up to three new balls out from the paddle center. Also
// counts as a launch when the ready ball was still waiting.
func (g *Game) applySplit() {
	cx := g.paddleX + g.paddleW/2
	fan := [3]struct{ vx, vy float64 }{
		{-3.2, -6.0},
		{0, -6.8},
		{3.2, -6.0},
	}
	for _, f := range fan {
		g.spawnBall(cx, PaddleY-BallRadius-contactEps, f.vx, f.vy)
	}
	g.launched = true
}

// applyTriple spawns two side balls beside every active ball with boosted
// upward speed, or one fresh ball when none are active.
func (g *Game) applyTriple() {
	if !g.launched || len(g.balls) == 0 {
		cx := g.paddleX + g.paddleW/2
		g.spawnBall(cx, PaddleY-BallRadius-contactEps, launchVX*g.tun.SpeedScale, launchVY*g.tun.SpeedScale)
		g.launched = true
		return
	}

	active := len(g.balls)
	for i := 0; i < active; i++ {
		b := g.balls[i]
		vy := -math.Abs(b.VY) * 1.15
		if vy > -minRise {
			vy = -minRise
		}
		g.spawnBall(b.X, b.Y, b.VX-2.5, vy)
		g.spawnBall(b.X, b.Y, b.VX+2.5, vy)
	}
}

// applyExpand widens the paddle up to its maximum and refreshes the expiry.
func (g *Game) applyExpand(now time.Time) {
	g.paddleW = math.Min(g.paddleW+expandStep, PaddleMaxW)
	g.expandUntil = now.Add(expandDuration)
	g.clampPaddle()
}

// spawnBall appends a ball unless the global cap is reached.
func (g *Game) spawnBall(x, y, vx, vy float64) {
	if len(g.balls) >= MaxBalls {
		return
	}
	g.balls = append(g.balls, Ball{
		ID:     g.nextBallID,
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: BallRadius,
	})
	g.nextBallID++
}
