package breakout

import (
	"time"

	"github.com/kamstrup/intmap"

	"github.com/suoak/cockpit-tools-sub002/internal/core"
)

// Phase is the game's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseCleared
	PhaseOver
)

// String returns the phase's display name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseCleared:
		return "cleared"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Transition reports a terminal-ish state change produced by one Step call.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionLevelCleared
	TransitionGameOver
)

// End reasons recorded with a run result.
const (
	ReasonGameOver = "gameover"
	ReasonExit     = "exit"
)

// RunResult is the summary of one play session handed to the recorder.
type RunResult struct {
	Score    int
	Level    int
	Duration time.Duration
	Seed     uint32
	Reason   string
	Drops    map[string]int
}

// Tuning holds the run-level knobs a host may override. Zero fields fall
// back to defaults.
type Tuning struct {
	PaddleSpeed  float64
	SpeedScale   float64
	DropChance   float64
	StartShields int
}

// DefaultTuning returns the baseline tuning.
func DefaultTuning() Tuning {
	return Tuning{
		PaddleSpeed: paddleSpeed,
		SpeedScale:  1,
		DropChance:  dropChance,
	}
}

func (t Tuning) normalized() Tuning {
	def := DefaultTuning()
	if t.PaddleSpeed <= 0 {
		t.PaddleSpeed = def.PaddleSpeed
	}
	if t.SpeedScale <= 0 {
		t.SpeedScale = def.SpeedScale
	}
	if t.DropChance <= 0 || t.DropChance > 1 {
		t.DropChance = def.DropChance
	}
	if t.StartShields < 0 || t.StartShields > MaxShields {
		t.StartShields = core.Clamp(t.StartShields, 0, MaxShields)
	}
	return t
}

// Game is the aggregate root of one play session. It is mutated exclusively
// by Step and the explicit transition methods; no internal goroutines.
type Game struct {
	tun Tuning

	phase   Phase
	runSeed uint32
	level   int

	score      int
	levelScore int

	paddleX     float64
	paddleW     float64
	expandUntil time.Time

	launched bool

	layout      *Layout
	walls       []Wall
	bricks      []Brick
	lookup      *intmap.Map[int64, int32]
	aliveBricks int

	balls   []Ball
	drops   []DropItem
	shields int

	nextBallID int
	nextDropID int

	// dropRng drives drop spawns and launch direction only, so layout
	// generation stays a pure function of (runSeed, level).
	dropRng *Rand

	runDrops   [dropTypeCount]int
	levelDrops [dropTypeCount]int

	startedAt time.Time
	recorded  bool
	onRecord  func(RunResult)
}

// NewGame creates an idle game for the given run seed with default tuning.
// onRecord, if non-nil, receives the run result exactly once when the
// session ends.
func NewGame(seed uint32, onRecord func(RunResult)) *Game {
	return NewGameTuned(seed, DefaultTuning(), onRecord)
}

// NewGameTuned creates an idle game with explicit tuning.
func NewGameTuned(seed uint32, tun Tuning, onRecord func(RunResult)) *Game {
	g := &Game{tun: tun.normalized(), onRecord: onRecord}
	g.reset(seed)
	return g
}

func (g *Game) reset(seed uint32) {
	g.phase = PhaseIdle
	g.runSeed = seed
	g.level = 1
	g.score = 0
	g.levelScore = 0
	g.paddleW = PaddleBaseW
	g.paddleX = (BoardW - g.paddleW) / 2
	g.expandUntil = time.Time{}
	g.launched = false
	g.layout = nil
	g.walls = nil
	g.bricks = nil
	g.lookup = nil
	g.aliveBricks = 0
	g.balls = nil
	g.drops = nil
	g.shields = g.tun.StartShields
	g.nextBallID = 0
	g.nextDropID = 0
	g.dropRng = NewRand(seed ^ 0xA5A5A5A5)
	g.runDrops = [dropTypeCount]int{}
	g.levelDrops = [dropTypeCount]int{}
	g.recorded = false
}

// Start begins play: loads level 1 and arms the timer. No-op outside idle.
func (g *Game) Start(now time.Time) {
	if g.phase != PhaseIdle {
		return
	}
	g.startedAt = now
	g.loadLevel()
	g.phase = PhasePlaying
}

// loadLevel regenerates the current level's layout and resets per-level
// state. Score, seed and shields carry across levels.
func (g *Game) loadLevel() {
	g.layout = GenerateLevel(g.runSeed, g.level)
	g.walls = g.layout.Walls
	g.bricks = make([]Brick, len(g.layout.Bricks))
	copy(g.bricks, g.layout.Bricks)
	g.lookup = intmap.New[int64, int32](len(g.bricks))
	for i := range g.bricks {
		g.lookup.Put(CellKey(g.bricks[i].CellX, g.bricks[i].CellY), int32(i))
	}
	g.aliveBricks = len(g.bricks)

	g.levelScore = 0
	g.levelDrops = [dropTypeCount]int{}
	g.balls = g.balls[:0]
	g.drops = g.drops[:0]
	g.paddleW = PaddleBaseW
	g.paddleX = (BoardW - g.paddleW) / 2
	g.expandUntil = time.Time{}
	g.launched = false
	g.spawnReadyBall()
}

// spawnReadyBall places a single unlaunched ball on the paddle.
func (g *Game) spawnReadyBall() {
	g.launched = false
	g.balls = g.balls[:0]
	g.balls = append(g.balls, Ball{
		ID:     g.nextBallID,
		X:      g.paddleX + g.paddleW/2,
		Y:      PaddleY - BallRadius,
		Radius: BallRadius,
	})
	g.nextBallID++
}

// launch applies the launch velocity to the ready ball.
func (g *Game) launch() {
	if g.launched || len(g.balls) == 0 {
		return
	}
	vx := launchVX * g.tun.SpeedScale
	if g.dropRng.Chance(0.5) {
		vx = -vx
	}
	g.balls[0].VX = vx
	g.balls[0].VY = launchVY * g.tun.SpeedScale
	g.launched = true
}

// nextLevel advances to the next level after a clear.
func (g *Game) nextLevel() {
	g.level++
	g.loadLevel()
	g.phase = PhasePlaying
}

// restart abandons the finished run and returns to idle with a brand-new
// seed. The old seed is never reused.
func (g *Game) restart(now time.Time) {
	g.reset(uint32(now.UnixNano()))
}

// Step advances the game by one frame. dt is frame-normalized time (1.0 is
// one nominal frame); it is capped internally so stalls cannot produce huge
// steps. Input triggers are consumed here, so a caller only feeds input and
// reads state.
func (g *Game) Step(dt float64, now time.Time, in core.Input) Transition {
	switch g.phase {
	case PhaseIdle:
		if in.Launch {
			g.Start(now)
		}
		return TransitionNone

	case PhasePaused:
		if in.Pause {
			g.phase = PhasePlaying
		}
		return TransitionNone

	case PhaseCleared:
		// Leftover balls keep bouncing behind the overlay. Cosmetic only.
		g.animateBackground(min(dt, maxFrameDt))
		if in.Next {
			g.nextLevel()
		}
		return TransitionNone

	case PhaseOver:
		if in.Restart {
			g.restart(now)
		}
		return TransitionNone
	}

	// Playing.
	if in.Pause {
		g.phase = PhasePaused
		return TransitionNone
	}
	if in.Launch {
		g.launch()
	}

	g.stepPhysics(min(dt, maxFrameDt), now, in)

	if g.aliveBricks == 0 {
		g.phase = PhaseCleared
		return TransitionLevelCleared
	}
	if len(g.balls) == 0 {
		if g.shields > 0 {
			g.shields--
			g.spawnReadyBall()
			return TransitionNone
		}
		g.phase = PhaseOver
		g.record(now, ReasonGameOver)
		return TransitionGameOver
	}
	return TransitionNone
}

// Exit records the run on a manual quit. Safe to call from any phase.
func (g *Game) Exit(now time.Time) {
	if g.score > 0 {
		g.record(now, ReasonExit)
	}
}

// record hands the result to the recorder at most once per session, even if
// the terminal transition is observed twice.
func (g *Game) record(now time.Time, reason string) {
	if g.recorded || g.onRecord == nil {
		return
	}
	g.recorded = true
	g.onRecord(g.result(now, reason))
}

func (g *Game) result(now time.Time, reason string) RunResult {
	drops := make(map[string]int, dropTypeCount)
	for _, t := range DropTypes() {
		if n := g.runDrops[t]; n > 0 {
			drops[t.String()] = n
		}
	}
	return RunResult{
		Score:    g.score,
		Level:    g.level,
		Duration: now.Sub(g.startedAt),
		Seed:     g.runSeed,
		Reason:   reason,
		Drops:    drops,
	}
}

// Read-only accessors for presentation.

func (g *Game) Phase() Phase          { return g.phase }
func (g *Game) Seed() uint32          { return g.runSeed }
func (g *Game) Level() int            { return g.level }
func (g *Game) Score() int            { return g.score }
func (g *Game) LevelScore() int       { return g.levelScore }
func (g *Game) Shields() int          { return g.shields }
func (g *Game) Launched() bool        { return g.launched }
func (g *Game) Balls() []Ball         { return g.balls }
func (g *Game) Drops() []DropItem     { return g.drops }
func (g *Game) Walls() []Wall         { return g.walls }
func (g *Game) Bricks() []Brick       { return g.bricks }
func (g *Game) AliveBricks() int      { return g.aliveBricks }
func (g *Game) Layout() *Layout       { return g.layout }
func (g *Game) PaddleRect() core.Rect { return core.NewRect(g.paddleX, PaddleY, g.paddleW, PaddleH) }

// LevelDrops returns how many drops of each type were caught this level.
func (g *Game) LevelDrops() map[string]int {
	out := make(map[string]int, dropTypeCount)
	for _, t := range DropTypes() {
		if n := g.levelDrops[t]; n > 0 {
			out[t.String()] = n
		}
	}
	return out
}
