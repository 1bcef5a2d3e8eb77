package breakout

import (
	"testing"
	"time"

	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

var testBase = time.Unix(1700000000, 0)

// startPlaying drives an idle game into the playing phase.
func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	g.Step(1, testBase, core.Input{Launch: true})
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v after start, want playing", g.Phase())
	}
}

func TestStartOnLaunch(t *testing.T) {
	g := NewGame(12345, nil)
	if g.Phase() != PhaseIdle {
		t.Fatalf("new game phase = %v, want idle", g.Phase())
	}

	// Ignored inputs keep the game idle.
	g.Step(1, testBase, core.Input{Left: true, Pause: true})
	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", g.Phase())
	}

	startPlaying(t, g)
	if len(g.Balls()) != 1 || g.Launched() {
		t.Errorf("want one unlaunched ready ball, got %d balls launched=%v", len(g.Balls()), g.Launched())
	}
	if g.AliveBricks() < MinBricks {
		t.Errorf("level loaded with %d bricks, want >= %d", g.AliveBricks(), MinBricks)
	}

	// Second launch fires the ball.
	g.Step(1, testBase.Add(16*time.Millisecond), core.Input{Launch: true})
	if !g.Launched() {
		t.Error("ball not launched")
	}
	if b := g.Balls()[0]; b.VY >= 0 {
		t.Errorf("launched ball not moving up: VY=%v", b.VY)
	}
}

func TestPauseToggle(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)

	g.Step(1, testBase, core.Input{Pause: true})
	if g.Phase() != PhasePaused {
		t.Fatalf("phase = %v, want paused", g.Phase())
	}

	// Movement is inert while paused.
	x := g.PaddleRect().X
	g.Step(1, testBase, core.Input{Left: true})
	if g.PaddleRect().X != x {
		t.Error("paddle moved while paused")
	}

	g.Step(1, testBase, core.Input{Pause: true})
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v after unpause, want playing", g.Phase())
	}
}

func TestPaddleMovementClamped(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)

	for i := 0; i < 200; i++ {
		g.Step(1, testBase, core.Input{Left: true})
	}
	if g.PaddleRect().X != 0 {
		t.Errorf("paddle X = %v, want clamped at 0", g.PaddleRect().X)
	}

	for i := 0; i < 200; i++ {
		g.Step(1, testBase, core.Input{Right: true})
	}
	if got := g.PaddleRect(); got.Right() != BoardW {
		t.Errorf("paddle right = %v, want clamped at %v", got.Right(), BoardW)
	}
}

// loseAllBalls teleports every ball past the loss margin so the next Step
// observes an empty table.
func loseAllBalls(g *Game) {
	g.launched = true
	for i := range g.balls {
		g.balls[i].X = BoardW / 2
		g.balls[i].Y = BoardH + LostMargin + 1
		g.balls[i].VX = 0
		g.balls[i].VY = 0
	}
}

func TestShieldConsumedOnBallLoss(t *testing.T) {
	g := NewGameTuned(1, Tuning{StartShields: 1}, nil)
	startPlaying(t, g)
	if g.Shields() != 1 {
		t.Fatalf("shields = %d, want 1", g.Shields())
	}

	loseAllBalls(g)
	tr := g.Step(1, testBase, core.Input{})

	if tr != TransitionNone {
		t.Errorf("transition = %v, want none", tr)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", g.Phase())
	}
	if g.Shields() != 0 {
		t.Errorf("shields = %d, want 0", g.Shields())
	}
	if len(g.Balls()) != 1 || g.Launched() {
		t.Errorf("want a fresh ready ball, got %d balls launched=%v", len(g.Balls()), g.Launched())
	}
}

func TestGameOverWithoutShields(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)

	loseAllBalls(g)
	tr := g.Step(1, testBase, core.Input{})

	if tr != TransitionGameOver {
		t.Errorf("transition = %v, want game over", tr)
	}
	if g.Phase() != PhaseOver {
		t.Errorf("phase = %v, want over", g.Phase())
	}
}

func TestRecordExactlyOnce(t *testing.T) {
	var results []RunResult
	g := NewGame(9, func(r RunResult) { results = append(results, r) })
	startPlaying(t, g)
	g.score = 120
	g.level = 2

	loseAllBalls(g)
	end := testBase.Add(90 * time.Second)
	g.Step(1, end, core.Input{})

	// Further steps in the over phase and a manual exit must not record a
	// second result.
	g.Step(1, end, core.Input{})
	g.Exit(end)

	if len(results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(results))
	}
	r := results[0]
	if r.Score != 120 || r.Level != 2 || r.Seed != 9 {
		t.Errorf("result = %+v", r)
	}
	if r.Reason != ReasonGameOver {
		t.Errorf("reason = %q, want %q", r.Reason, ReasonGameOver)
	}
	if r.Duration != 90*time.Second {
		t.Errorf("duration = %v, want 90s", r.Duration)
	}
}

func TestExitRecordsOnlyScoredRuns(t *testing.T) {
	var calls int
	g := NewGame(5, func(RunResult) { calls++ })
	startPlaying(t, g)

	// Zero score: nothing worth keeping.
	g.Exit(testBase)
	if calls != 0 {
		t.Fatalf("zero-score exit recorded %d results", calls)
	}

	g.score = 30
	g.Exit(testBase)
	if calls != 1 {
		t.Errorf("scored exit recorded %d results, want 1", calls)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := NewGame(77, nil)
	startPlaying(t, g)
	g.score = 500
	loseAllBalls(g)
	g.Step(1, testBase, core.Input{})

	g.Step(1, testBase.Add(time.Minute), core.Input{Restart: true})
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase = %v after restart, want idle", g.Phase())
	}
	if g.Score() != 0 || g.Level() != 1 {
		t.Errorf("restart kept state: score=%d level=%d", g.Score(), g.Level())
	}
	if g.Seed() == 77 {
		t.Error("restart reused the finished run's seed")
	}
}

func TestLevelClearAndAdvance(t *testing.T) {
	g := NewGame(12345, nil)
	startPlaying(t, g)
	score := g.Score()

	// Force the clear condition rather than simulating a full level.
	for i := range g.bricks {
		g.bricks[i].Alive = false
	}
	g.aliveBricks = 0

	tr := g.Step(1, testBase, core.Input{})
	if tr != TransitionLevelCleared {
		t.Fatalf("transition = %v, want level cleared", tr)
	}
	if g.Phase() != PhaseCleared {
		t.Fatalf("phase = %v, want cleared", g.Phase())
	}

	g.Step(1, testBase, core.Input{Next: true})
	if g.Phase() != PhasePlaying || g.Level() != 2 {
		t.Fatalf("phase=%v level=%d after advance, want playing level 2", g.Phase(), g.Level())
	}
	if g.AliveBricks() < MinBricks {
		t.Errorf("level 2 loaded with %d bricks", g.AliveBricks())
	}
	if g.Score() != score {
		t.Errorf("score changed across level load: %d -> %d", score, g.Score())
	}
	if len(g.Balls()) != 1 || g.Launched() {
		t.Error("level 2 should start with one ready ball")
	}
}

func TestSplitDrop(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)

	g.applyDrop(DropSplit, testBase)
	if !g.Launched() {
		t.Error("split should count as a launch")
	}
	if len(g.Balls()) != 4 {
		t.Errorf("ball count = %d after split, want 4", len(g.Balls()))
	}
	if g.LevelDrops()["split"] != 1 {
		t.Errorf("level drop counter = %v", g.LevelDrops())
	}
}

func TestTripleDropOnActiveBalls(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)
	g.Step(1, testBase, core.Input{Launch: true})

	before := len(g.Balls())
	g.applyDrop(DropTriple, testBase)
	if got := len(g.Balls()); got != before*3 {
		t.Errorf("ball count = %d after triple, want %d", got, before*3)
	}
	for _, b := range g.Balls() {
		if b.VY >= 0 {
			t.Errorf("triple spawned a downward ball: %+v", b)
		}
	}
}

func TestExpandDropAndExpiry(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)

	g.applyDrop(DropExpand, testBase)
	if w := g.PaddleRect().W; w != PaddleBaseW+expandStep {
		t.Fatalf("paddle width = %v after expand, want %v", w, PaddleBaseW+expandStep)
	}

	// Stacked expands saturate at the maximum.
	for i := 0; i < 10; i++ {
		g.applyDrop(DropExpand, testBase)
	}
	if w := g.PaddleRect().W; w != PaddleMaxW {
		t.Fatalf("paddle width = %v, want max %v", w, PaddleMaxW)
	}

	// Past the expiry the width snaps back.
	g.Step(1, testBase.Add(expandDuration+time.Second), core.Input{})
	if w := g.PaddleRect().W; w != PaddleBaseW {
		t.Errorf("paddle width = %v after expiry, want %v", w, PaddleBaseW)
	}
}

func TestShieldDropCapped(t *testing.T) {
	g := NewGame(1, nil)
	startPlaying(t, g)

	for i := 0; i < MaxShields+3; i++ {
		g.applyDrop(DropShield, testBase)
	}
	if g.Shields() != MaxShields {
		t.Errorf("shields = %d, want cap %d", g.Shields(), MaxShields)
	}
}

func TestTuningNormalized(t *testing.T) {
	g := NewGameTuned(1, Tuning{}, nil)
	if g.tun != DefaultTuning() {
		t.Errorf("zero tuning normalized to %+v, want defaults", g.tun)
	}

	g = NewGameTuned(1, Tuning{DropChance: 1.5, StartShields: 99}, nil)
	if g.tun.DropChance != dropChance {
		t.Errorf("out-of-range drop chance kept: %v", g.tun.DropChance)
	}
	if g.tun.StartShields != MaxShields {
		t.Errorf("start shields = %d, want clamp %d", g.tun.StartShields, MaxShields)
	}
}

// driveFrames runs a scripted session: launch early, then sweep the paddle
// back and forth.
func driveFrames(g *Game, frames int) {
	now := testBase
	for i := 0; i < frames; i++ {
		var in core.Input
		if i == 5 {
			in.Launch = true
		}
		if i == 8 {
			in.Launch = true
		}
		if i > 8 {
			if i%60 < 30 {
				in.Left = true
			} else {
				in.Right = true
			}
		}
		g.Step(1, now, in)
		now = now.Add(16 * time.Millisecond)
	}
}

func TestLongRunInvariants(t *testing.T) {
	g := NewGame(12345, nil)
	driveFrames(g, 1000)

	if len(g.Balls()) > MaxBalls {
		t.Errorf("ball cap breached: %d", len(g.Balls()))
	}
	if len(g.Drops()) > MaxDrops {
		t.Errorf("drop cap breached: %d", len(g.Drops()))
	}
	if g.Shields() > MaxShields {
		t.Errorf("shield cap breached: %d", g.Shields())
	}
	if g.Score() < 0 {
		t.Errorf("negative score: %d", g.Score())
	}
	if g.AliveBricks() < 0 || g.AliveBricks() > len(g.Bricks()) {
		t.Errorf("alive brick count out of range: %d of %d", g.AliveBricks(), len(g.Bricks()))
	}
	switch g.Phase() {
	case PhaseIdle, PhasePlaying, PhasePaused, PhaseCleared, PhaseOver:
	default:
		t.Errorf("invalid phase: %v", g.Phase())
	}
	for _, b := range g.Balls() {
		if b.X < 0 || b.X > BoardW || b.Y < -BallRadius || b.Y > BoardH+LostMargin {
			t.Errorf("ball escaped the board: %+v", b)
		}
	}
}

func TestIdenticalRunsMatch(t *testing.T) {
	g1 := NewGame(424242, nil)
	g2 := NewGame(424242, nil)
	driveFrames(g1, 600)
	driveFrames(g2, 600)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("identical runs diverged: %d != %d", s1.Hash(), s2.Hash())
	}
	if g1.Score() != g2.Score() || g1.Level() != g2.Level() {
		t.Errorf("score/level diverged: %d/%d vs %d/%d",
			g1.Score(), g1.Level(), g2.Score(), g2.Level())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	g1 := NewGame(1, nil)
	g2 := NewGame(2, nil)
	driveFrames(g1, 600)
	driveFrames(g2, 600)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() == s2.Hash() {
		t.Error("different seeds produced identical runs")
	}
}
