package breakout

// Snapshot captures the observable game state with primitive types only,
// positions quantized to milli-units so hashing is stable.
type Snapshot struct {
	Phase       string
	Seed        uint32
	Level       int
	Score       int
	LevelScore  int
	Shields     int
	PaddleX     int64
	PaddleWidth int64
	Launched    bool

	BallCount int
	BallData  []int64 // 4 per ball: X, Y, VX, VY

	DropCount int
	DropData  []int64 // 3 per drop: Type, X, Y

	// One int per brick in (y, x) layout order: 1 alive, 0 dead.
	BrickData []int64
}

const snapScale = 1000

func quantize(v float64) int64 {
	return int64(v * snapScale)
}

// Snapshot returns the current game state flattened for determinism checks.
func (g *Game) Snapshot() Snapshot {
	ballData := make([]int64, len(g.balls)*4)
	for i, b := range g.balls {
		idx := i * 4
		ballData[idx] = quantize(b.X)
		ballData[idx+1] = quantize(b.Y)
		ballData[idx+2] = quantize(b.VX)
		ballData[idx+3] = quantize(b.VY)
	}

	dropData := make([]int64, len(g.drops)*3)
	for i, d := range g.drops {
		idx := i * 3
		dropData[idx] = int64(d.Type)
		dropData[idx+1] = quantize(d.X)
		dropData[idx+2] = quantize(d.Y)
	}

	brickData := make([]int64, len(g.bricks))
	for i := range g.bricks {
		if g.bricks[i].Alive {
			brickData[i] = 1
		}
	}

	return Snapshot{
		Phase:       g.phase.String(),
		Seed:        g.runSeed,
		Level:       g.level,
		Score:       g.score,
		LevelScore:  g.levelScore,
		Shields:     g.shields,
		PaddleX:     quantize(g.paddleX),
		PaddleWidth: quantize(g.paddleW),
		Launched:    g.launched,

		BallCount: len(g.balls),
		BallData:  ballData,
		DropCount: len(g.drops),
		DropData:  dropData,
		BrickData: brickData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Seed)
	for _, c := range snap.Phase {
		h = h*31 + uint64(c)
	}
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelScore)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shields)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleX)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleWidth) //#nosec G115 -- hash computation
	if snap.Launched {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.BallCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DropCount) //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.DropData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
