package core

// Input carries one frame's worth of player intent.
// Held fields describe continuous state (movement keys held down);
// the remaining fields are discrete triggers consumed within the frame.
type Input struct {
	Left  bool // Move-left held
	Right bool // Move-right held

	Launch  bool // Launch the waiting ball
	Pause   bool // Toggle pause
	Restart bool // Start a fresh run after game over
	Next    bool // Advance to the next level after a clear
	Exit    bool // Close the game view
}

// Clear resets all input state for the next frame.
func (in *Input) Clear() {
	*in = Input{}
}

// Any reports whether any input is set this frame.
func (in Input) Any() bool {
	return in.Left || in.Right || in.Launch || in.Pause || in.Restart || in.Next || in.Exit
}
