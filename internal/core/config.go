package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The simulation always runs on a fixed logical board; screen dimensions only
// affect presentation scale.
type RuntimeConfig struct {
	ScreenW  int    // Terminal width in characters
	ScreenH  int    // Terminal height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     uint32 // Run seed (0 = derive from current time in the shell)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// ViewScale computes the uniform presentation scale factor for fitting a
// logical board into the available viewport, never magnifying above 1.
func ViewScale(availW, availH, boardW, boardH float64) float64 {
	if boardW <= 0 || boardH <= 0 {
		return 1
	}
	s := availW / boardW
	if sy := availH / boardH; sy < s {
		s = sy
	}
	if s > 1 {
		s = 1
	}
	return s
}
