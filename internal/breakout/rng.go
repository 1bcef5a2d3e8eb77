// Package breakout implements the brick-breaker simulation: procedural level
// generation, sub-stepped collision physics, power-up drops, and the game
// state machine driving them. All randomness flows through an explicit seeded
// generator so a run seed plus level number fully determines a layout.
package breakout

// Rand is a deterministic pseudo-random generator over a 32-bit state
// (mulberry32). The same seed always produces the same sequence.
type Rand struct {
	state uint32
}

// NewRand creates a generator from a 32-bit seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float returns the next value in [0, 1).
func (r *Rand) Float() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// IntRange returns a uniformly distributed integer in [min, max] inclusive.
func (r *Rand) IntRange(min, max int) int {
	if max < min {
		return min
	}
	return min + int(r.Float()*float64(max-min+1))
}

// Pick returns a uniformly chosen index in [0, n).
func (r *Rand) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float() * float64(n))
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float() < p
}

// levelSeed derives the generation seed for a level. Each level depends only
// on the run seed and its own number, never on how earlier levels were built.
func levelSeed(runSeed uint32, level int) uint32 {
	return runSeed ^ uint32(level+1)*0x9E3779B1
}

// attemptSeed perturbs a level seed for one retry of the generate-and-check
// loop. Attempt 0 uses the level seed unchanged.
func attemptSeed(seed uint32, attempt int) uint32 {
	return seed ^ uint32(attempt)*0x85EBCA6B
}
